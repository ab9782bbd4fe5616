package promo

import (
	"math"
	"strings"
)

// Code is a statically provisioned discount token. Codes are matched
// case-insensitively against the catalog.
type Code struct {
	Code            string `json:"code"`             // Canonical upper-case identifier.
	DiscountPercent int    `json:"discount_percent"` // Whole-percent discount, 1-100.
	MaxUses         int    `json:"max_uses"`         // Redemption cap.
	CurrentUses     int    `json:"current_uses"`     // Redemptions so far.
	ExpiryDate      string `json:"expiry_date"`      // Last valid calendar date (YYYY-MM-DD).
	IsActive        bool   `json:"is_active"`        // Kill switch.
}

// Catalog is the provisioned allow-list of promo codes.
var Catalog = []Code{
	{Code: "NOEL50", DiscountPercent: 50, MaxUses: 100, ExpiryDate: "2025-12-31", IsActive: true},
	{Code: "WAVEUP20", DiscountPercent: 20, MaxUses: 999, ExpiryDate: "2025-12-31", IsActive: true},
	{Code: "NEWCREATOR30", DiscountPercent: 30, MaxUses: 500, ExpiryDate: "2025-12-31", IsActive: true},
}

// User-facing validation messages.
const (
	MessageInvalid   = "invalid code"
	MessageDisabled  = "disabled"
	MessageExpired   = "expired"
	MessageExhausted = "exhausted"
	MessageApplied   = "applied"
)

// Result describes the outcome of a promo validation.
type Result struct {
	Valid           bool   `json:"valid"`
	DiscountPercent int    `json:"discount_percent"`
	Message         string `json:"message"`
}

// Validate checks code against the catalog for the given calendar day
// (YYYY-MM-DD). Checks short-circuit in order: existence, kill switch,
// expiry, usage cap. Validation is read-only and never consumes a use.
func Validate(code, today string) Result {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var found *Code
	for i := range Catalog {
		if Catalog[i].Code == normalized {
			found = &Catalog[i]
			break
		}
	}
	if found == nil {
		return Result{Message: MessageInvalid}
	}
	if !found.IsActive {
		return Result{Message: MessageDisabled}
	}
	// ISO dates compare correctly as strings.
	if today > found.ExpiryDate {
		return Result{Message: MessageExpired}
	}
	if found.CurrentUses >= found.MaxUses {
		return Result{Message: MessageExhausted}
	}
	return Result{Valid: true, DiscountPercent: found.DiscountPercent, Message: MessageApplied}
}

// Apply deducts a percentage discount from price, rounding half up on the
// cent boundary.
func Apply(price float64, discountPercent int) float64 {
	discounted := price - price*float64(discountPercent)/100
	return math.Floor(discounted*100+0.5) / 100
}
