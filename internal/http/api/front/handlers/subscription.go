package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/entitlement"
)

// SubscriptionHandler serves subscription purchase and cancellation.
type SubscriptionHandler struct {
	svc *entitlement.Service
}

// NewSubscriptionHandler constructs a SubscriptionHandler.
func NewSubscriptionHandler(svc *entitlement.Service) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Purchase activates the plan for the creator, replacing any prior record.
func (h *SubscriptionHandler) Purchase(c *gin.Context) {
	var req struct {
		PlanID string `json:"plan_id" binding:"required"`
	}
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan_id is required"})
		return
	}

	record, errSet := h.svc.SetTier(c.Request.Context(), auth.CreatorID(c), req.PlanID)
	if errSet != nil {
		if errors.Is(errSet, entitlement.ErrUnknownPlan) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown plan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activate plan failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tier":          record.Tier,
		"plan_id":       record.PlanID,
		"subscribed_at": record.SubscribedAt,
		"expires_at":    record.ExpiresAt,
		"daily_quota":   entitlement.DailyQuota(record.Tier),
	})
}

// Cancel drops the creator back to the free tier.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	if errRemove := h.svc.RemovePremium(c.Request.Context(), auth.CreatorID(c)); errRemove != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel subscription failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tier": entitlement.TierFree})
}
