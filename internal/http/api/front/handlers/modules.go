package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/security"
)

// ModuleHandler serves module availability for app feature gating.
type ModuleHandler struct {
	poller *security.Poller
}

// NewModuleHandler constructs a ModuleHandler.
func NewModuleHandler(poller *security.Poller) *ModuleHandler {
	return &ModuleHandler{poller: poller}
}

// List returns the last polled availability snapshot.
func (h *ModuleHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modules": h.poller.Snapshot()})
}
