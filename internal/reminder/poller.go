package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/db"
)

// Poller re-evaluates every enabled reminder on a fixed interval. Minute
// granularity makes precise scheduling unnecessary; a 60 second poll plus the
// dedup set gives exactly-once delivery per day.
type Poller struct {
	store      db.Store
	dispatcher *Dispatcher
	interval   time.Duration
	now        func() time.Time
}

func NewPoller(store db.Store, dispatcher *Dispatcher, interval time.Duration) *Poller {
	return &Poller{
		store:      store,
		dispatcher: dispatcher,
		interval:   interval,
		now:        time.Now,
	}
}

// Run polls until ctx is cancelled. One tick fires immediately so reminders
// armed for the current minute are not lost on startup.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Tick()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reminder poller stopped")
			return
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick evaluates all enabled reminders against the current wall clock.
func (p *Poller) Tick() {
	now := p.now()
	reminders, err := p.store.ListEnabledReminders()
	if err != nil {
		log.Error().Err(err).Msg("failed to load reminders for due-check")
		return
	}

	for _, r := range reminders {
		if !Due(r, now) {
			continue
		}
		user, err := p.store.GetUserByID(r.UserID)
		if err != nil {
			log.Error().Err(err).Int("user_id", r.UserID).Msg("failed to load user for due reminder")
			continue
		}
		p.dispatcher.Dispatch(user, r, now)
	}
}
