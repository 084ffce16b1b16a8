package tips

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultInterval = 5 * time.Second

// Rotator cycles through travel tips on a fixed interval until its context ends.
type Rotator struct {
	tips     []string
	interval time.Duration
	log      *zap.Logger

	mu      sync.RWMutex
	current int
}

func NewRotator(tips []string, interval time.Duration, log *zap.Logger) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Rotator{
		tips:     slices.Clone(tips),
		interval: interval,
		log:      log,
	}
}

// Current returns the tip on display, or "" when there are no tips.
func (r *Rotator) Current() string {
	if len(r.tips) == 0 {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tips[r.current]
}

func (r *Rotator) Run(ctx context.Context) {
	if len(r.tips) < 2 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Debug("Tip rotation started", zap.Duration("interval", r.interval), zap.Int("tips", len(r.tips)))
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Tip rotation stopped")
			return
		case <-ticker.C:
			r.advance()
		}
	}
}

func (r *Rotator) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = (r.current + 1) % len(r.tips)
}
