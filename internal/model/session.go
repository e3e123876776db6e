package model

// Message roles stored in a session's history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn in a session's conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Quality tiers accepted in VideoSettings.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
	QualityUltra  = "ultra"
)

// VideoSettings governs one render invocation: output resolution, frame rate
// and the manim quality preset tier.
type VideoSettings struct {
	ResolutionWidth  int    `json:"resolution_width"`
	ResolutionHeight int    `json:"resolution_height"`
	FPS              int    `json:"fps"`
	Quality          string `json:"quality"`
}

// DefaultVideoSettings returns the fallback settings used when a session has
// not configured any: 854x480 at 30fps, low quality preset.
func DefaultVideoSettings() VideoSettings {
	return VideoSettings{
		ResolutionWidth:  854,
		ResolutionHeight: 480,
		FPS:              30,
		Quality:          QualityLow,
	}
}
