package wizard

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically prunes session ids from per-user index sets after
// the sessions behind them have expired.
type Sweeper struct {
	store *Store
}

func NewSweeper(store *Store) *Sweeper {
	return &Sweeper{store: store}
}

// Start registers the hourly sweep and starts the scheduler.
func (s *Sweeper) Start() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		removed, err := s.store.SweepUserIndexes(context.Background())
		if err != nil {
			log.Printf("[sweeper] session index sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("[sweeper] pruned %d expired session id(s)", removed)
		}
	})
	if err != nil {
		log.Printf("[sweeper] failed to register cron job: %v", err)
		return c
	}

	c.Start()
	return c
}
