package storage

import (
	"github.com/niyarrbarman/automanim/internal/model"
)

// Store holds per-session conversation history and video settings for the
// lifetime of the process. Implementations must be safe for concurrent use.
type Store interface {
	// AppendMessage adds one turn to the session, creating the session on
	// first write.
	AppendMessage(sessionID, role, content string)
	// GetMessages returns a snapshot copy of the session's history in
	// insertion order. Unknown sessions yield an empty slice.
	GetMessages(sessionID string) []model.Message

	SetVideoSettings(sessionID string, settings model.VideoSettings)
	// GetVideoSettings returns the session's settings, or the documented
	// defaults when none were set.
	GetVideoSettings(sessionID string) model.VideoSettings

	// ClearSession removes all state for the session. Idempotent.
	ClearSession(sessionID string)
}
