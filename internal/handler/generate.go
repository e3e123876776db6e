package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/internal/service"
)

type GenerateHandler struct {
	generateService *service.GenerateService
}

func NewGenerateHandler(generateService *service.GenerateService) *GenerateHandler {
	return &GenerateHandler{
		generateService: generateService,
	}
}

// Generate runs the code-generation pipeline for one prompt. Rejections are
// soft: the response carries the sentinel in the code field, never an error
// status.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.generateService.Generate(c.Request.Context(), req.SessionID, req.Prompt, req.Context)

	c.JSON(http.StatusOK, model.GenerateResponse{
		Code:       res.Code,
		SceneClass: res.SceneClass,
	})
}

// Reset drops all state for a session so the same key starts fresh.
func (h *GenerateHandler) Reset(c *gin.Context) {
	sessionID := c.Param("session_id")
	h.generateService.Reset(sessionID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
