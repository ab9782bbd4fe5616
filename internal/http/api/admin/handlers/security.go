package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/security"
)

// SecurityHandler serves feature-flag gate administration.
type SecurityHandler struct {
	gate   *security.Gate
	poller *security.Poller
}

// NewSecurityHandler constructs a SecurityHandler.
func NewSecurityHandler(gate *security.Gate, poller *security.Poller) *SecurityHandler {
	return &SecurityHandler{gate: gate, poller: poller}
}

// State returns the current gate state and module availability.
func (h *SecurityHandler) State(c *gin.Context) {
	ctx := c.Request.Context()
	state := h.gate.State(ctx)

	modules := make(map[security.Module]bool, len(security.Modules))
	for _, module := range security.Modules {
		modules[module] = h.gate.IsModuleEnabled(ctx, module)
	}
	c.JSON(http.StatusOK, gin.H{
		"global_lock_active": state.GlobalLockActive,
		"disabled_modules":   state.DisabledModules,
		"last_anomaly":       state.LastAnomaly,
		"modules":            modules,
	})
}

// ReportAnomaly records an anomaly, possibly tripping the global lock.
func (h *SecurityHandler) ReportAnomaly(c *gin.Context) {
	var req struct {
		Type    string `json:"type" binding:"required"`
		Details string `json:"details"`
	}
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	ctx := c.Request.Context()
	h.gate.ReportAnomaly(ctx, req.Type, req.Details)
	h.refresh(ctx)
	c.JSON(http.StatusOK, gin.H{"global_lock_active": h.gate.State(ctx).GlobalLockActive})
}

// DisableModule disables a single module without touching the others.
func (h *SecurityHandler) DisableModule(c *gin.Context) {
	module, ok := security.ParseModule(c.Param("module"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown module"})
		return
	}

	ctx := c.Request.Context()
	if errDisable := h.gate.DisableModule(ctx, module); errDisable != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "disable module failed"})
		return
	}
	h.refresh(ctx)
	c.JSON(http.StatusOK, gin.H{"module": module, "enabled": false})
}

// Lock activates the global lock directly.
func (h *SecurityHandler) Lock(c *gin.Context) {
	var req struct {
		Trigger string `json:"trigger"`
		Details string `json:"details"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Trigger == "" {
		req.Trigger = "MANUAL"
	}

	ctx := c.Request.Context()
	if errLock := h.gate.ActivateGlobalLock(ctx, req.Trigger, req.Details); errLock != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activate lock failed"})
		return
	}
	h.refresh(ctx)
	c.JSON(http.StatusOK, gin.H{"global_lock_active": true})
}

// Unlock releases the global lock and every per-module flag.
func (h *SecurityHandler) Unlock(c *gin.Context) {
	ctx := c.Request.Context()
	if errRelease := h.gate.ReleaseLock(ctx); errRelease != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "release lock failed"})
		return
	}
	h.refresh(ctx)
	c.JSON(http.StatusOK, gin.H{"global_lock_active": false})
}

// refresh pushes gate changes into the poller snapshot immediately instead
// of waiting for the next tick.
func (h *SecurityHandler) refresh(ctx context.Context) {
	if h.poller != nil {
		h.poller.Refresh(ctx)
	}
}
