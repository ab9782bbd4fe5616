package entitlement

import "strings"

// Tier is the subscription level controlling quotas and feature access.
type Tier string

const (
	TierFree    Tier = "free"
	TierMonthly Tier = "monthly"
	TierAnnual  Tier = "annual"
	TierPro     Tier = "pro"
)

// ProDailyQuota is the finite sentinel standing in for "unlimited".
// It must compare greater than any realistic daily count.
const ProDailyQuota = 999

// dailyQuotas maps each tier to its daily idea allowance.
var dailyQuotas = map[Tier]int{
	TierFree:    3,
	TierMonthly: 5,
	TierAnnual:  10,
	TierPro:     ProDailyQuota,
}

// DailyQuota returns the daily idea allowance for tier.
// Unknown tiers fail closed to the free allowance, never to unlimited.
func DailyQuota(tier Tier) int {
	if quota, ok := dailyQuotas[tier]; ok {
		return quota
	}
	return dailyQuotas[TierFree]
}

// ParseTier normalizes a stored tier value, failing closed to free.
func ParseTier(raw string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierMonthly:
		return TierMonthly
	case TierAnnual:
		return TierAnnual
	case TierPro:
		return TierPro
	default:
		return TierFree
	}
}

// IsPremium reports whether tier is a paid tier.
func IsPremium(tier Tier) bool { return tier != TierFree }

// VisibleIdeaCount caps how many generated ideas are shown for tier.
// Pro never truncates the candidate list; every other tier clamps the
// display to its daily quota even when the generator produced more.
func VisibleIdeaCount(tier Tier, totalGenerated int) int {
	if totalGenerated < 0 {
		return 0
	}
	if tier == TierPro {
		return totalGenerated
	}
	if quota := DailyQuota(tier); totalGenerated > quota {
		return quota
	}
	return totalGenerated
}
