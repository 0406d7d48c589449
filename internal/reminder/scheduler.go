// Package reminder sends the recurring water reminders the water dialogue
// sets up. One cron entry per user; firing takes the same per-user session
// lock as dialogue turns, so a reminder never races an in-progress mutation.
package reminder

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Ramz1k999/diplomaproject/internal/session"
	"github.com/Ramz1k999/diplomaproject/pkg/locales"
)

// Sender delivers one reminder message to a user.
type Sender func(userID int64, text string)

// Cron specs per frequency: on the hour, inside the 08:00-22:00 window.
var cronSpecs = map[session.ReminderFrequency]string{
	session.RemindEvery2: "0 8-22/2 * * *",
	session.RemindEvery3: "0 8-22/3 * * *",
}

// Scheduler keeps at most one recurring reminder entry per user.
type Scheduler struct {
	cron  *cron.Cron
	store *session.Store
	send  Sender
	log   *zap.Logger

	mu      sync.Mutex
	entries map[int64]cron.EntryID
}

// New builds a scheduler; call Start to begin firing.
func New(store *session.Store, send Sender, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		store:   store,
		send:    send,
		log:     log,
		entries: make(map[int64]cron.EntryID),
	}
}

// Start launches the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Schedule sets up recurring reminders for the user, replacing any existing
// entry. RemindNone cancels instead.
func (s *Scheduler) Schedule(userID int64, freq session.ReminderFrequency) error {
	if freq == session.RemindNone {
		s.Cancel(userID)
		return nil
	}
	spec, ok := cronSpecs[freq]
	if !ok {
		return fmt.Errorf("reminder: unknown frequency %q", freq)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[userID]; ok {
		s.cron.Remove(old)
	}
	id, err := s.cron.AddFunc(spec, func() { s.fire(userID) })
	if err != nil {
		return fmt.Errorf("reminder: schedule user %d: %w", userID, err)
	}
	s.entries[userID] = id
	s.log.Info("water reminders scheduled",
		zap.Int64("user", userID), zap.String("freq", string(freq)))
	return nil
}

// Cancel removes the user's reminder entry if one exists.
func (s *Scheduler) Cancel(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.entries[userID]; ok {
		s.cron.Remove(id)
		delete(s.entries, userID)
		s.log.Info("water reminders cancelled", zap.Int64("user", userID))
	}
}

// Count reports how many users currently have reminders.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// fire reads the user's plan under the session lock and sends the reminder.
// A session evicted since scheduling has no plan anymore; its entry is
// dropped instead of reminding with stale data.
func (s *Scheduler) fire(userID int64) {
	var text string
	s.store.Do(userID, func(sess *session.Session) {
		if sess.WaterPlan == nil {
			return
		}
		text = fmt.Sprintf(locales.Get("water_reminder", sess.Lang), sess.WaterPlan.Liters)
	})
	if text == "" {
		s.log.Debug("reminder fired for user without a plan, dropping entry",
			zap.Int64("user", userID))
		s.Cancel(userID)
		return
	}
	s.send(userID, text)
}
