package reminder

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/model"
	"github.com/sajda-app/sajda/internal/notify"
)

// Dispatcher fans a due reminder out to the system and toast channels. The
// channels are independent: a failure on one never suppresses the other. The
// system channel is additionally gated on the user's notification permission;
// a denied permission silently degrades to toast-only.
type Dispatcher struct {
	system notify.Channel
	toast  notify.Channel
	dedup  Deduper
}

func NewDispatcher(system, toast notify.Channel, dedup Deduper) *Dispatcher {
	return &Dispatcher{system: system, toast: toast, dedup: dedup}
}

func message(r model.PrayerReminder) notify.Message {
	return notify.Message{
		Title:      "Prayer Reminder",
		Body:       fmt.Sprintf("It's time for %s (%s)", r.PrayerName, r.ReminderTime),
		PrayerName: r.PrayerName,
		Time:       r.ReminderTime,
	}
}

// Dispatch delivers the reminder if it has not already fired today.
func (d *Dispatcher) Dispatch(user *model.User, r model.PrayerReminder, now time.Time) {
	if !d.dedup.FirstToday(user.ID, r.PrayerName, r.ReminderTime, now) {
		return
	}
	d.fanOut(user, r, user.NotificationPermission == model.PermissionGranted)
}

// Test delivers immediately, skipping the due-check and the dedup set. The
// permission gate on the system channel is relaxed so users can verify their
// setup before granting.
func (d *Dispatcher) Test(user *model.User, r model.PrayerReminder) {
	d.fanOut(user, r, user.NotificationPermission != model.PermissionUnsupported)
}

func (d *Dispatcher) fanOut(user *model.User, r model.PrayerReminder, system bool) {
	msg := message(r)

	if system {
		if err := d.system.Send(user.ID, msg); err != nil {
			log.Warn().Err(err).Int("user_id", user.ID).Str("channel", d.system.Name()).
				Str("prayer", r.PrayerName).Msg("notification channel failed")
		}
	}

	if err := d.toast.Send(user.ID, msg); err != nil {
		log.Warn().Err(err).Int("user_id", user.ID).Str("channel", d.toast.Name()).
			Str("prayer", r.PrayerName).Msg("notification channel failed")
	}
}
