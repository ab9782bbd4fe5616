package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/plans"
	"github.com/waveup-app/waveup-api/internal/promo"
)

// PromoHandler validates promo codes against the catalog.
type PromoHandler struct {
	clock clock.Clock
}

// NewPromoHandler constructs a PromoHandler.
func NewPromoHandler(clk clock.Clock) *PromoHandler {
	if clk == nil {
		clk = clock.System{}
	}
	return &PromoHandler{clock: clk}
}

// Validate checks a promo code and, when a plan id is supplied, returns the
// discounted price.
func (h *PromoHandler) Validate(c *gin.Context) {
	var req struct {
		Code   string `json:"code" binding:"required"`
		PlanID string `json:"plan_id"`
	}
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	result := promo.Validate(req.Code, clock.DateKey(h.clock.Now()))
	out := gin.H{
		"valid":            result.Valid,
		"discount_percent": result.DiscountPercent,
		"message":          result.Message,
	}

	if result.Valid && req.PlanID != "" {
		plan, found := plans.Find(req.PlanID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown plan"})
			return
		}
		out["plan_id"] = plan.ID
		out["price"] = plan.Price
		out["discounted_price"] = promo.Apply(plan.Price, result.DiscountPercent)
	}

	c.JSON(http.StatusOK, out)
}
