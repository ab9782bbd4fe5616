package entitlement

import "time"

// Record is the persisted subscription state for one creator. It is always
// replaced wholesale; a purchase writes a complete new record.
type Record struct {
	Tier         Tier       `json:"tier"`
	PlanID       *string    `json:"plan_id,omitempty"`
	SubscribedAt *time.Time `json:"subscribed_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// DefaultRecord returns the free-tier state every creator starts from.
func DefaultRecord() Record {
	return Record{Tier: TierFree}
}

// valid reports whether the record honors the free/plan/expiry invariant:
// free has no plan and no dates, paid tiers have all of them with the
// expiry strictly after the subscription time.
func (r Record) valid() bool {
	if r.Tier == TierFree {
		return r.PlanID == nil && r.SubscribedAt == nil && r.ExpiresAt == nil
	}
	if r.PlanID == nil || r.SubscribedAt == nil || r.ExpiresAt == nil {
		return false
	}
	return r.ExpiresAt.After(*r.SubscribedAt)
}
