package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/entitlement"
)

// StatusHandler serves the creator's entitlement status.
type StatusHandler struct {
	svc *entitlement.Service
}

// NewStatusHandler constructs a StatusHandler.
func NewStatusHandler(svc *entitlement.Service) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// Get returns the creator's tier, quota and usage for today.
func (h *StatusHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	creatorID := auth.CreatorID(c)

	record := h.svc.Status(ctx, creatorID)
	quota := entitlement.DailyQuota(record.Tier)
	used := h.svc.UsedToday(ctx, creatorID)
	remaining := quota - used
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"tier":           record.Tier,
		"premium":        entitlement.IsPremium(record.Tier),
		"plan_id":        record.PlanID,
		"subscribed_at":  record.SubscribedAt,
		"expires_at":     record.ExpiresAt,
		"daily_quota":    quota,
		"used_today":     used,
		"remaining":      remaining,
		"can_generate":   h.svc.CanGenerate(ctx, creatorID),
		"remaining_days": h.svc.RemainingDays(ctx, creatorID),
	})
}
