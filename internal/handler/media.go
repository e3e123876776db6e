package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niyarrbarman/automanim/internal/model"
)

// MediaLister enumerates rendered artifacts under the media root.
type MediaLister interface {
	ListMedia() ([]model.MediaItem, error)
}

type MediaHandler struct {
	renderService MediaLister
}

func NewMediaHandler(renderService MediaLister) *MediaHandler {
	return &MediaHandler{
		renderService: renderService,
	}
}

// ListMedia enumerates rendered videos under the public media root.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	items, err := h.renderService.ListMedia()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []model.MediaItem{}
	}
	c.JSON(http.StatusOK, model.MediaListResponse{Items: items})
}
