package handler

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/llm"
	"github.com/niyarrbarman/automanim/internal/model"
)

type ModelsHandler struct {
	cfg      *config.Config
	provider llm.Provider
}

func NewModelsHandler(cfg *config.Config, provider llm.Provider) *ModelsHandler {
	return &ModelsHandler{
		cfg:      cfg,
		provider: provider,
	}
}

// GetModels reports the active model and the configured selectable set.
func (h *ModelsHandler) GetModels(c *gin.Context) {
	current := ""
	if switcher, ok := h.provider.(llm.ModelSwitcher); ok {
		current = switcher.CurrentModel()
	}

	c.JSON(http.StatusOK, model.ModelsResponse{
		CurrentModel:    current,
		AvailableModels: h.cfg.LLM.AvailableModels,
	})
}

// SelectModel switches the active model process-wide, pulling it on the
// backend first when it is not present.
func (h *ModelsHandler) SelectModel(c *gin.Context) {
	var req model.ModelSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !slices.Contains(h.cfg.LLM.AvailableModels, req.Model) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model"})
		return
	}

	switcher, ok := h.provider.(llm.ModelSwitcher)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active provider does not support model selection"})
		return
	}

	pulled, err := switcher.EnsureModel(c.Request.Context(), req.Model)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	switcher.SwitchModel(req.Model)

	c.JSON(http.StatusOK, model.ModelSelectResponse{
		Status: "success",
		Model:  req.Model,
		Pulled: pulled,
	})
}
