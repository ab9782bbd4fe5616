package security

import (
	"context"
	"sync"
	"time"

	"github.com/waveup-app/waveup-api/internal/settings"
)

// Poller keeps a periodically refreshed snapshot of module availability so
// hot-path checks and the modules endpoint do not hit the store on every
// request.
type Poller struct {
	gate     *Gate
	interval time.Duration

	mu      sync.RWMutex
	enabled map[Module]bool
}

// NewPoller constructs a Poller over gate. A non-positive interval falls
// back to the default.
func NewPoller(gate *Gate, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = settings.DefaultModulePollInterval
	}
	return &Poller{gate: gate, interval: interval, enabled: make(map[Module]bool)}
}

// Run refreshes the snapshot until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.Refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh rebuilds the snapshot from the gate's current state.
func (p *Poller) Refresh(ctx context.Context) {
	snapshot := make(map[Module]bool, len(Modules))
	for _, module := range Modules {
		snapshot[module] = p.gate.IsModuleEnabled(ctx, module)
	}
	p.mu.Lock()
	p.enabled = snapshot
	p.mu.Unlock()
}

// Snapshot returns module availability as of the last refresh.
func (p *Poller) Snapshot() map[Module]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[Module]bool, len(p.enabled))
	for module, enabled := range p.enabled {
		out[module] = enabled
	}
	return out
}
