package model

type GenerateResponse struct {
	Code       string `json:"code"`
	SceneClass string `json:"scene_class,omitempty"`
}

type RenderResponse struct {
	Success  bool   `json:"success"`
	VideoURL string `json:"video_url,omitempty"`
	Log      string `json:"log,omitempty"`
}

type MediaItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type MediaListResponse struct {
	Items []MediaItem `json:"items"`
}

type ModelsResponse struct {
	CurrentModel    string   `json:"current_model"`
	AvailableModels []string `json:"available_models"`
}

type ModelSelectResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
	Pulled bool   `json:"pulled"`
}
