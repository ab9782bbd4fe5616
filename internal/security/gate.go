package security

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/settings"
	"github.com/waveup-app/waveup-api/internal/store"

	log "github.com/sirupsen/logrus"
)

// Module identifies a gated app feature area.
type Module string

const (
	ModuleAI          Module = "AI"
	ModuleLeaderboard Module = "LEADERBOARD"
	ModuleAnalytics   Module = "ANALYTICS"
	ModuleIdeas       Module = "IDEAS"
	ModuleTrends      Module = "TRENDS"
)

// Modules lists every gated module.
var Modules = []Module{ModuleAI, ModuleLeaderboard, ModuleAnalytics, ModuleIdeas, ModuleTrends}

// ParseModule resolves a raw module name against the closed set.
func ParseModule(raw string) (Module, bool) {
	candidate := Module(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Modules {
		if candidate == known {
			return candidate, true
		}
	}
	return "", false
}

// anomalyTypeGlobalLock tags the audit record written when the lock trips.
const anomalyTypeGlobalLock = "GLOBAL_LOCK_ACTIVATED"

// Anomaly is the audit record of the event that last changed the gate state.
type Anomaly struct {
	Type      string `json:"type"`      // Anomaly classification.
	Timestamp int64  `json:"timestamp"` // Unix milliseconds.
	Details   string `json:"details"`   // Free-form description.
}

// State is the persisted feature-flag gate state.
type State struct {
	GlobalLockActive bool     `json:"global_lock_active"`
	DisabledModules  []Module `json:"disabled_modules"`
	LastAnomaly      *Anomaly `json:"last_anomaly,omitempty"`
}

// DefaultState returns the unlocked state with every module enabled.
func DefaultState() State {
	return State{DisabledModules: []Module{}}
}

// Gate decides which modules are enabled and escalates repeated anomalies
// into a global lock. The anomaly counter is in-memory; the lock state is
// persisted so it survives restarts until explicitly released.
type Gate struct {
	store store.Store
	clock clock.Clock

	mu           sync.Mutex
	anomalyCount int
}

// NewGate constructs a Gate on the given store and clock.
func NewGate(st store.Store, clk clock.Clock) *Gate {
	if clk == nil {
		clk = clock.System{}
	}
	return &Gate{store: st, clock: clk}
}

// State loads the persisted gate state. Store failures and corrupt blobs
// degrade to the unlocked default so a broken store never bricks the app.
func (g *Gate) State(ctx context.Context) State {
	raw, ok, err := g.store.Get(ctx, settings.SecurityStateKey)
	if err != nil {
		log.WithError(err).Warn("security: state read failed, using defaults")
		return DefaultState()
	}
	if !ok {
		return DefaultState()
	}
	var state State
	if errUnmarshal := json.Unmarshal([]byte(raw), &state); errUnmarshal != nil {
		log.WithError(errUnmarshal).Warn("security: corrupt state record, using defaults")
		return DefaultState()
	}
	return state
}

// IsModuleEnabled reports whether module may be used. An active global lock
// disables every module regardless of per-module flags.
func (g *Gate) IsModuleEnabled(ctx context.Context, module Module) bool {
	state := g.State(ctx)
	if state.GlobalLockActive {
		return false
	}
	for _, disabled := range state.DisabledModules {
		if disabled == module {
			return false
		}
	}
	return true
}

// ReportAnomaly counts a detected anomaly. Reaching the threshold activates
// the global lock, recording the triggering type. Reports while already
// locked leave the state unchanged.
func (g *Gate) ReportAnomaly(ctx context.Context, anomalyType, details string) {
	g.mu.Lock()
	g.anomalyCount++
	tripped := g.anomalyCount >= settings.AnomalyThreshold
	g.mu.Unlock()

	log.WithField("type", anomalyType).WithField("details", details).Warn("security: anomaly reported")
	if !tripped {
		return
	}
	if g.State(ctx).GlobalLockActive {
		return
	}
	if errLock := g.ActivateGlobalLock(ctx, anomalyType, details); errLock != nil {
		log.WithError(errLock).Error("security: failed to persist global lock")
	}
}

// DisableModule marks a single module as disabled, leaving the rest alone.
func (g *Gate) DisableModule(ctx context.Context, module Module) error {
	return g.store.Update(ctx, settings.SecurityStateKey, func(old string, ok bool) (string, error) {
		state := DefaultState()
		if ok {
			if errUnmarshal := json.Unmarshal([]byte(old), &state); errUnmarshal != nil {
				state = DefaultState()
			}
		}
		for _, disabled := range state.DisabledModules {
			if disabled == module {
				return old, nil
			}
		}
		state.DisabledModules = append(state.DisabledModules, module)
		payload, errMarshal := json.Marshal(state)
		if errMarshal != nil {
			return "", fmt.Errorf("security: marshal state: %w", errMarshal)
		}
		return string(payload), nil
	})
}

// ActivateGlobalLock replaces the gate state with an active global lock,
// recording what triggered it.
func (g *Gate) ActivateGlobalLock(ctx context.Context, trigger, details string) error {
	state := State{
		GlobalLockActive: true,
		DisabledModules:  []Module{},
		LastAnomaly: &Anomaly{
			Type:      anomalyTypeGlobalLock,
			Timestamp: g.clock.Now().UnixMilli(),
			Details:   fmt.Sprintf("triggered by: %s; %s", trigger, details),
		},
	}
	if module, ok := ParseModule(trigger); ok {
		state.DisabledModules = []Module{module}
	}

	payload, errMarshal := json.Marshal(state)
	if errMarshal != nil {
		return fmt.Errorf("security: marshal state: %w", errMarshal)
	}
	if errSet := g.store.Set(ctx, settings.SecurityStateKey, string(payload)); errSet != nil {
		return fmt.Errorf("security: persist state: %w", errSet)
	}
	return nil
}

// ReleaseLock clears all lock and disable state and resets the anomaly
// counter. This is the only transition back to the initial state; there is
// no automatic expiry.
func (g *Gate) ReleaseLock(ctx context.Context) error {
	if errRemove := g.store.Remove(ctx, settings.SecurityStateKey); errRemove != nil {
		return fmt.Errorf("security: clear state: %w", errRemove)
	}
	g.mu.Lock()
	g.anomalyCount = 0
	g.mu.Unlock()
	return nil
}
