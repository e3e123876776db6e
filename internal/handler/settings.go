package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/internal/storage"
)

type SettingsHandler struct {
	store storage.Store
}

func NewSettingsHandler(store storage.Store) *SettingsHandler {
	return &SettingsHandler{
		store: store,
	}
}

// SetSettings stores per-session video settings. Fields omitted from the body
// keep their documented defaults.
func (h *SettingsHandler) SetSettings(c *gin.Context) {
	sessionID := c.Param("session_id")

	settings := model.DefaultVideoSettings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if settings.ResolutionWidth <= 0 || settings.ResolutionHeight <= 0 || settings.FPS <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resolution and fps must be positive"})
		return
	}

	h.store.SetVideoSettings(sessionID, settings)
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": settings})
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	sessionID := c.Param("session_id")
	c.JSON(http.StatusOK, h.store.GetVideoSettings(sessionID))
}
