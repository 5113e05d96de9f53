package browse

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
)

// Refresher re-runs the browse pipeline on a fixed interval. A cycle still
// running when the ticker fires is never overlapped; the new tick is
// skipped instead, so slow backends cannot pile up concurrent fetches.
type Refresher struct {
	svc      *Service
	interval time.Duration
	busy     atomic.Bool
}

func NewRefresher(svc *Service, cfg *config.Config) *Refresher {
	interval := time.Duration(cfg.Browse.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Refresher{svc: svc, interval: interval}
}

// Run refreshes once immediately, then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("🔄 Browse refresher started (every %s)", r.interval)
	r.tick()

	for {
		select {
		case <-ctx.Done():
			log.Println("Browse refresher stopped")
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Refresher) tick() {
	if !r.busy.CompareAndSwap(false, true) {
		refreshes.WithLabelValues("skipped").Inc()
		log.Println("⚠️ Previous browse refresh still in flight, skipping tick")
		return
	}
	defer r.busy.Store(false)

	r.svc.Refresh()
}
