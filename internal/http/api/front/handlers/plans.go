package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/plans"
)

// PlanHandler serves the subscription plan catalog.
type PlanHandler struct{}

// NewPlanHandler constructs a PlanHandler.
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// List returns the plan catalog with computed discount percentages.
func (h *PlanHandler) List(c *gin.Context) {
	out := make([]gin.H, 0, len(plans.Catalog))
	for _, plan := range plans.Catalog {
		out = append(out, gin.H{
			"id":               plan.ID,
			"name":             plan.Name,
			"price":            plan.Price,
			"original_price":   plan.OriginalPrice,
			"period":           plan.Period,
			"badge":            plan.Badge,
			"secondary_badge":  plan.SecondaryBadge,
			"features":         plan.Features,
			"description":      plan.Description,
			"discount_percent": plans.DiscountPercent(plan),
		})
	}
	c.JSON(http.StatusOK, gin.H{"plans": out})
}
