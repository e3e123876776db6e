package model

type GenerateRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Prompt    string `json:"prompt"`
	// Context carries an optional caller-supplied conversation summary. When
	// set, generation runs against this summary instead of the session's
	// stored history and leaves the session untouched (branching mode).
	Context string `json:"context"`
}

type RenderRequest struct {
	SessionID  string         `json:"session_id" binding:"required"`
	Code       string         `json:"code" binding:"required"`
	SceneClass string         `json:"scene_class"`
	Settings   *VideoSettings `json:"settings"`
	Preview    *bool          `json:"preview"`
}

type ModelSelectRequest struct {
	Model string `json:"model" binding:"required"`
}
