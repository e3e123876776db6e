package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/internal/service"
	"github.com/niyarrbarman/automanim/internal/storage"
)

// Renderer is the orchestrator surface the handler needs.
type Renderer interface {
	Render(ctx context.Context, sessionID, code, sceneClass string, settings *model.VideoSettings, preview bool) service.RenderResult
}

type RenderHandler struct {
	renderService Renderer
	store         storage.Store
}

func NewRenderHandler(renderService Renderer, store storage.Store) *RenderHandler {
	return &RenderHandler{
		renderService: renderService,
		store:         store,
	}
}

// Render invokes the external renderer on the submitted code. Renderer
// failures come back as success=false with the captured log, not as an error
// status. Settings omitted from the request fall back to the session's stored
// video settings.
func (h *RenderHandler) Render(c *gin.Context) {
	var req model.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := req.Settings
	if settings == nil {
		s := h.store.GetVideoSettings(req.SessionID)
		settings = &s
	}
	preview := true
	if req.Preview != nil {
		preview = *req.Preview
	}

	res := h.renderService.Render(c.Request.Context(), req.SessionID, req.Code, req.SceneClass, settings, preview)

	c.JSON(http.StatusOK, model.RenderResponse{
		Success:  res.Success,
		VideoURL: res.VideoURL,
		Log:      res.Log,
	})
}
