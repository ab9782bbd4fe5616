package plans

import (
	"math"
	"strings"
)

// Billing periods.
const (
	PeriodMonthly = "monthly"
	PeriodAnnual  = "annual"
)

// Plan describes a purchasable subscription product. The catalog is
// immutable at runtime.
type Plan struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Period         string   `json:"period"`
	Price          float64  `json:"price"`
	OriginalPrice  float64  `json:"original_price,omitempty"`
	Features       []string `json:"features"`
	Description    string   `json:"description"`
	Badge          string   `json:"badge,omitempty"`
	SecondaryBadge string   `json:"secondary_badge,omitempty"`
}

// Catalog is the product catalog shown on the upgrade screen.
var Catalog = []Plan{
	{
		ID:     "monthly",
		Name:   "WaveUp+ Monthly",
		Period: PeriodMonthly,
		Price:  4.99,
		Features: []string{
			"5 AI ideas per day",
			"Real-time trending hashtags",
			"Optimized suggestions",
			"24/7 sync",
			"Standard support",
		},
		Description: "Full access for 1 month",
	},
	{
		ID:            "annual",
		Name:          "WaveUp+ Annual",
		Period:        PeriodAnnual,
		Price:         49.99,
		OriginalPrice: 59.88,
		Features: []string{
			"10 AI ideas per day",
			"Real-time trending hashtags",
			"Advanced suggestions",
			"24/7 sync",
			"Priority support",
			"Beta access to new features",
		},
		Description: "1 year of full access + 1 month free",
		Badge:       "1 MONTH FREE",
	},
	{
		ID:     "pro",
		Name:   "WaveUp Pro",
		Period: PeriodMonthly,
		Price:  20,
		Features: []string{
			"Unlimited AI ideas per day",
			"Real-time trending hashtags",
			"Full video analytics",
			"Schedule export & direct publishing",
			"Early access to new features",
			"VIP 24/7 support",
			"Innovative format suggestions",
			"Automatic hashtag optimization",
		},
		Description:    "For professional creators",
		Badge:          "FOR MICRO-CREATORS",
		SecondaryBadge: "FOR INFLUENCERS",
	},
}

// Find returns the plan with the given id.
func Find(id string) (Plan, bool) {
	normalized := strings.ToLower(strings.TrimSpace(id))
	for _, plan := range Catalog {
		if plan.ID == normalized {
			return plan, true
		}
	}
	return Plan{}, false
}

// DiscountPercent returns the rounded percentage saved against the
// crossed-out original price, or 0 when the plan has none.
func DiscountPercent(p Plan) int {
	if p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}
