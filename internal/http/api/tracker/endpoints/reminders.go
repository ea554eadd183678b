package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/db"
	"github.com/sajda-app/sajda/internal/http/api"
	"github.com/sajda-app/sajda/internal/http/api/tracker/packets"
	"github.com/sajda-app/sajda/internal/model"
	"github.com/sajda-app/sajda/internal/reminder"
)

type ReminderController struct {
	store      db.Store
	dispatcher *reminder.Dispatcher
}

func newReminderController(store db.Store, dispatcher *reminder.Dispatcher) *ReminderController {
	return &ReminderController{store: store, dispatcher: dispatcher}
}

// ReminderModule mounts reminder configuration and notification endpoints.
func ReminderModule(store db.Store, dispatcher *reminder.Dispatcher) api.Module {
	ctl := newReminderController(store, dispatcher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/reminders", ctl.listReminders)
		c.PUT("/reminders/:id", ctl.updateReminder)
		c.PUT("/notifications/permission", ctl.updatePermission)
		c.POST("/notifications/test", ctl.testNotification)
	})
}

// GET /api/reminders
func (r *ReminderController) listReminders(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	// lazily seed the five defaults for accounts that predate reminders
	if err := r.store.SeedReminders(user.ID); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not seed reminders")
	}

	reminders, err := r.store.ListReminders(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list reminders"}
	}

	out := packets.RemindersResponse{
		NotificationPermission: user.NotificationPermission,
		Reminders:              make([]packets.ReminderResponse, 0, len(reminders)),
	}
	for _, rem := range reminders {
		out.Reminders = append(out.Reminders, packets.ToReminderResponse(rem))
	}
	return out, nil
}

// PUT /api/reminders/:id
func (r *ReminderController) updateReminder(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateReminderRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.ReminderTime != nil && !reminder.ValidClock(*request.ReminderTime) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "reminder_time must be HH:MM"}
	}
	for _, d := range request.DaysOfWeek {
		if d < 1 || d > 7 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "days_of_week values must be 1..7"}
		}
	}

	id := ctx.Param("id")
	err := r.store.UpdateReminder(id, user.ID, request.ReminderTime, request.IsEnabled, request.DaysOfWeek)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "reminder not found"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update reminder"}
	}

	updated, err := r.store.GetReminder(id, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch updated reminder"}
	}
	return packets.ToReminderResponse(*updated), nil
}

// PUT /api/notifications/permission
func (r *ReminderController) updatePermission(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdatePermissionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !model.ValidPermission(request.State) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown permission state"}
	}

	if err := r.store.UpdateNotificationPermission(user.ID, request.State); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update permission"}
	}
	log.Info().Int("user_id", user.ID).Str("state", request.State).Msg("notification permission updated")
	return gin.H{"notification_permission": request.State}, nil
}

// POST /api/notifications/test
func (r *ReminderController) testNotification(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.TestNotificationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	rem, err := r.store.GetReminder(request.ReminderID, user.ID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "reminder not found"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch reminder"}
	}

	r.dispatcher.Test(user, *rem)
	return gin.H{"dispatched": true}, nil
}
