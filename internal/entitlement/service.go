package entitlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/settings"
	"github.com/waveup-app/waveup-api/internal/store"
	"github.com/waveup-app/waveup-api/internal/usage"

	log "github.com/sirupsen/logrus"
)

// ErrQuotaExceeded signals the creator spent today's idea allowance.
// The UI is expected to show an upsell, not an error screen.
var ErrQuotaExceeded = errors.New("daily idea quota exceeded")

// ErrUnknownPlan signals a purchase for a plan id outside the catalog.
var ErrUnknownPlan = errors.New("unknown plan id")

// planTerm describes the tier and term a purchasable plan grants.
type planTerm struct {
	tier   Tier
	months int
	years  int
}

// planTerms maps plan ids to the entitlement they grant.
// Pro is itself a recurring monthly product.
var planTerms = map[string]planTerm{
	"monthly": {tier: TierMonthly, months: 1},
	"annual":  {tier: TierAnnual, years: 1},
	"pro":     {tier: TierPro, months: 1},
}

// Service is the entitlement facade the HTTP layer consumes. It is
// constructed once at startup and injected; there is no package-level state.
type Service struct {
	store store.Store
	clock clock.Clock
	usage *usage.Counter
}

// NewService constructs the entitlement facade.
func NewService(st store.Store, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{store: st, clock: clk, usage: usage.NewCounter(st, clk)}
}

func statusKey(creatorID string) string {
	return settings.PremiumStatusKeyPrefix + creatorID
}

// Status loads the creator's subscription record. Store failures and corrupt
// or invariant-violating blobs degrade to free defaults; the app never
// crashes over a bad record.
func (s *Service) Status(ctx context.Context, creatorID string) Record {
	raw, ok, err := s.store.Get(ctx, statusKey(creatorID))
	if err != nil {
		log.WithError(err).WithField("creator_id", creatorID).Warn("entitlement: status read failed, using free defaults")
		return DefaultRecord()
	}
	if !ok {
		return DefaultRecord()
	}
	var rec Record
	if errUnmarshal := json.Unmarshal([]byte(raw), &rec); errUnmarshal != nil {
		log.WithError(errUnmarshal).WithField("creator_id", creatorID).Warn("entitlement: corrupt status record, using free defaults")
		return DefaultRecord()
	}
	rec.Tier = ParseTier(string(rec.Tier))
	if !rec.valid() {
		log.WithField("creator_id", creatorID).Warn("entitlement: status record violates invariant, using free defaults")
		return DefaultRecord()
	}
	return rec
}

// UsedToday returns how many ideas the creator consumed today.
func (s *Service) UsedToday(ctx context.Context, creatorID string) int {
	return s.usage.UsedToday(ctx, creatorID)
}

// CanGenerate reports whether the creator may request one more idea today.
func (s *Service) CanGenerate(ctx context.Context, creatorID string) bool {
	rec := s.Status(ctx, creatorID)
	return s.usage.UsedToday(ctx, creatorID) < DailyQuota(rec.Tier)
}

// ConsumeOne spends one generation from today's allowance. The check and the
// increment run as a single atomic store update. The spend is final: a failed
// downstream generation is not refunded.
func (s *Service) ConsumeOne(ctx context.Context, creatorID string) error {
	rec := s.Status(ctx, creatorID)
	errConsume := s.usage.Consume(ctx, creatorID, DailyQuota(rec.Tier))
	if errors.Is(errConsume, usage.ErrLimitReached) {
		return ErrQuotaExceeded
	}
	if errConsume != nil {
		return fmt.Errorf("entitlement: consume: %w", errConsume)
	}
	return nil
}

// SetTier replaces the creator's subscription record for a purchased plan.
// Monthly and pro run one calendar month; annual runs one calendar year.
func (s *Service) SetTier(ctx context.Context, creatorID, planID string) (Record, error) {
	normalized := strings.ToLower(strings.TrimSpace(planID))
	term, ok := planTerms[normalized]
	if !ok {
		return Record{}, ErrUnknownPlan
	}

	now := s.clock.Now().UTC()
	expires := now.AddDate(term.years, term.months, 0)
	rec := Record{
		Tier:         term.tier,
		PlanID:       &normalized,
		SubscribedAt: &now,
		ExpiresAt:    &expires,
	}

	payload, errMarshal := json.Marshal(rec)
	if errMarshal != nil {
		return Record{}, fmt.Errorf("entitlement: marshal status: %w", errMarshal)
	}
	if errSet := s.store.Set(ctx, statusKey(creatorID), string(payload)); errSet != nil {
		return Record{}, fmt.Errorf("entitlement: persist status: %w", errSet)
	}
	return rec, nil
}

// RemovePremium drops the creator back to the free tier.
func (s *Service) RemovePremium(ctx context.Context, creatorID string) error {
	if errRemove := s.store.Remove(ctx, statusKey(creatorID)); errRemove != nil {
		return fmt.Errorf("entitlement: remove status: %w", errRemove)
	}
	return nil
}

// RemainingDays returns the whole days left on the subscription, rounded up
// and clamped to zero. Free tier and missing expiries report zero.
func (s *Service) RemainingDays(ctx context.Context, creatorID string) int {
	rec := s.Status(ctx, creatorID)
	if rec.Tier == TierFree || rec.ExpiresAt == nil {
		return 0
	}
	diff := rec.ExpiresAt.Sub(s.clock.Now())
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}
