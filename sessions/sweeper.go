package sessions

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/thejerf/abtime"
)

const sweeperTicker = iota

// Purger removes expired sessions.
type Purger interface {
	DeleteExpired() int
}

// Sweeper periodically purges expired sessions. It implements suture.Service.
// Lookups already ignore expired sessions, so the sweeper only bounds memory.
type Sweeper struct {
	purger   Purger
	interval time.Duration
	clock    abtime.AbstractTime
}

func NewSweeper(purger Purger, interval time.Duration, clock abtime.AbstractTime) *Sweeper {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{purger: purger, interval: interval, clock: clock}
}

// Serve runs until ctx is cancelled.
func (s *Sweeper) Serve(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval, sweeperTicker)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Channel():
			s.Sweep()
		}
	}
}

// Sweep performs one purge and returns the number of sessions removed.
func (s *Sweeper) Sweep() int {
	removed := s.purger.DeleteExpired()
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("expired sessions purged")
	}
	return removed
}

func (s *Sweeper) String() string {
	return "session sweeper"
}
