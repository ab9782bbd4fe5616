package usage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/settings"
	"github.com/waveup-app/waveup-api/internal/store"

	log "github.com/sirupsen/logrus"
)

// ErrLimitReached signals today's allowance is spent.
var ErrLimitReached = errors.New("daily usage limit reached")

// tracker is the persisted daily usage record.
type tracker struct {
	Date  string `json:"date"`  // Daily bucket key (YYYY-MM-DD).
	Count int    `json:"count"` // Ideas consumed on that date.
}

// Counter tracks per-creator daily idea consumption. A stored record from a
// previous day counts as zero, so the counter resets on date rollover without
// any cleanup job.
type Counter struct {
	store store.Store
	clock clock.Clock
}

// NewCounter constructs a Counter on the given store and clock.
func NewCounter(st store.Store, clk clock.Clock) *Counter {
	if clk == nil {
		clk = clock.System{}
	}
	return &Counter{store: st, clock: clk}
}

func usageKey(creatorID string) string {
	return settings.IdeasUsedKeyPrefix + creatorID
}

// UsedToday returns the creator's consumption for the current calendar day.
// Store failures and corrupt records degrade to zero.
func (c *Counter) UsedToday(ctx context.Context, creatorID string) int {
	raw, ok, err := c.store.Get(ctx, usageKey(creatorID))
	if err != nil {
		log.WithError(err).WithField("creator_id", creatorID).Warn("usage: read failed, assuming zero")
		return 0
	}
	if !ok {
		return 0
	}
	var t tracker
	if errUnmarshal := json.Unmarshal([]byte(raw), &t); errUnmarshal != nil {
		log.WithError(errUnmarshal).WithField("creator_id", creatorID).Warn("usage: corrupt record, assuming zero")
		return 0
	}
	if t.Date != clock.DateKey(c.clock.Now()) || t.Count < 0 {
		return 0
	}
	return t.Count
}

// Consume atomically spends one use against limit. The date rollover check
// runs inside the store update so interleaved calls cannot double-count or
// carry yesterday's count forward.
func (c *Counter) Consume(ctx context.Context, creatorID string, limit int) error {
	today := clock.DateKey(c.clock.Now())
	return c.store.Update(ctx, usageKey(creatorID), func(old string, ok bool) (string, error) {
		count := 0
		if ok {
			var t tracker
			if errUnmarshal := json.Unmarshal([]byte(old), &t); errUnmarshal == nil && t.Date == today && t.Count > 0 {
				count = t.Count
			}
		}
		if count >= limit {
			return "", ErrLimitReached
		}
		payload, errMarshal := json.Marshal(tracker{Date: today, Count: count + 1})
		if errMarshal != nil {
			return "", fmt.Errorf("usage: marshal tracker: %w", errMarshal)
		}
		return string(payload), nil
	})
}

// RecordUse increments today's count without a limit check.
func (c *Counter) RecordUse(ctx context.Context, creatorID string) error {
	return c.Consume(ctx, creatorID, math.MaxInt)
}
