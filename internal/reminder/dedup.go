package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/redis"
	"github.com/sajda-app/sajda/internal/streak"
)

// Deduper guarantees at most one notification per (prayer, HH:MM) pair per
// user per calendar day. The 60s poll can re-run inside the same minute, so
// the dispatcher consults this before sending and records after.
type Deduper interface {
	// FirstToday marks the pair as notified and reports whether this call
	// was the first one today.
	FirstToday(userID int, prayerName, hhmm string, now time.Time) bool
}

func dedupKey(userID int, prayerName, hhmm string, now time.Time) string {
	return fmt.Sprintf("notified:%d:%s:%s@%s", userID, now.Format("2006-01-02"), prayerName, hhmm)
}

// redisDeduper records sends as SETNX keys that expire at local midnight.
// When Redis errors mid-session it falls back to the in-process set rather
// than dropping or duplicating notifications.
type redisDeduper struct {
	fallback *memoryDeduper
}

func NewRedisDeduper() Deduper {
	return &redisDeduper{fallback: newMemoryDeduper()}
}

func (d *redisDeduper) FirstToday(userID int, prayerName, hhmm string, now time.Time) bool {
	ttl := streak.StartOfDay(now).AddDate(0, 0, 1).Sub(now)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	first, err := redis.SetNX(ctx, dedupKey(userID, prayerName, hhmm, now), 1, ttl)
	if err != nil {
		log.Warn().Err(err).Msg("dedup falling back to in-process set")
		return d.fallback.FirstToday(userID, prayerName, hhmm, now)
	}
	return first
}

// memoryDeduper is the in-process fallback: a per-day set cleared when the
// calendar date changes.
type memoryDeduper struct {
	mu   sync.Mutex
	day  string
	seen map[string]bool
}

func NewMemoryDeduper() Deduper { return newMemoryDeduper() }

func newMemoryDeduper() *memoryDeduper {
	return &memoryDeduper{seen: make(map[string]bool)}
}

func (d *memoryDeduper) FirstToday(userID int, prayerName, hhmm string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	day := now.Format("2006-01-02")
	if day != d.day {
		d.day = day
		d.seen = make(map[string]bool)
	}

	key := dedupKey(userID, prayerName, hhmm, now)
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	return true
}
