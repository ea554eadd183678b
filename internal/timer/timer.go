// Package timer holds the in-progress prayer timers. A timer is purely
// session state: nothing is persisted until it completes, and cancelling
// discards the timing entirely.
package timer

import (
	"errors"
	"math"
	"sync"
	"time"
)

// States of one timer. Transitions:
// idle -> running -> (paused <-> running) -> completed | cancelled.
const (
	StateRunning = "running"
	StatePaused  = "paused"
)

var (
	ErrTimerActive   = errors.New("a timer is already running")
	ErrNoActiveTimer = errors.New("no active timer")
	ErrNotRunning    = errors.New("timer is not running")
	ErrNotPaused     = errors.New("timer is not paused")
)

// Session is one user's in-progress timer.
type Session struct {
	PrayerName string    `json:"prayer_name"`
	State      string    `json:"state"`
	StartedAt  time.Time `json:"started_at"`
}

// Manager keeps at most one active timer per user.
type Manager struct {
	mu       sync.Mutex
	sessions map[int]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int]*Session)}
}

func (m *Manager) Start(userID int, prayerName string, now time.Time) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, active := m.sessions[userID]; active {
		return Session{}, ErrTimerActive
	}
	s := &Session{PrayerName: prayerName, State: StateRunning, StartedAt: now}
	m.sessions[userID] = s
	return *s, nil
}

func (m *Manager) Pause(userID int) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, ErrNoActiveTimer
	}
	if s.State != StateRunning {
		return Session{}, ErrNotRunning
	}
	s.State = StatePaused
	return *s, nil
}

func (m *Manager) Resume(userID int) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, ErrNoActiveTimer
	}
	if s.State != StatePaused {
		return Session{}, ErrNotPaused
	}
	s.State = StateRunning
	return *s, nil
}

// Complete ends the timer and returns the start/end pair plus the rounded
// minute duration the prayer log records.
func (m *Manager) Complete(userID int, now time.Time) (Session, time.Time, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, time.Time{}, 0, ErrNoActiveTimer
	}
	delete(m.sessions, userID)

	minutes := int(math.Round(now.Sub(s.StartedAt).Seconds() / 60))
	if minutes < 0 {
		minutes = 0
	}
	return *s, now, minutes, nil
}

// Cancel discards the timer; no partial log is ever written.
func (m *Manager) Cancel(userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; !ok {
		return ErrNoActiveTimer
	}
	delete(m.sessions, userID)
	return nil
}

// Get returns the user's active session, if any.
func (m *Manager) Get(userID int) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}
