package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajda-app/sajda/internal/http/api"
	"github.com/sajda-app/sajda/internal/http/api/tracker/packets"
	"github.com/sajda-app/sajda/internal/model"
	"github.com/sajda-app/sajda/internal/streak"
	"github.com/sajda-app/sajda/internal/timer"
)

type TimerController struct {
	timers  *timer.Manager
	tracker *streak.Tracker
}

func newTimerController(timers *timer.Manager, tracker *streak.Tracker) *TimerController {
	return &TimerController{timers: timers, tracker: tracker}
}

// TimerModule mounts the prayer timer endpoints. Only a completed timer
// writes a log; pause state lives in memory and cancel discards everything.
func TimerModule(timers *timer.Manager, tracker *streak.Tracker) api.Module {
	ctl := newTimerController(timers, tracker)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayers/timer", ctl.getTimer)
		c.POST("/prayers/timer/start", ctl.startTimer)
		c.POST("/prayers/timer/pause", ctl.pauseTimer)
		c.POST("/prayers/timer/resume", ctl.resumeTimer)
		c.POST("/prayers/timer/complete", ctl.completeTimer)
		c.POST("/prayers/timer/cancel", ctl.cancelTimer)
	})
}

// GET /api/prayers/timer
func (t *TimerController) getTimer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	s, ok := t.timers.Get(user.ID)
	if !ok {
		return gin.H{"active": false}, nil
	}
	return gin.H{"active": true, "timer": s}, nil
}

// POST /api/prayers/timer/start
func (t *TimerController) startTimer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.StartTimerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !model.ValidPrayerName(request.PrayerName) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown prayer name"}
	}

	s, err := t.timers.Start(user.ID, request.PrayerName, time.Now())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: err.Error()}
	}
	return s, nil
}

// POST /api/prayers/timer/pause
func (t *TimerController) pauseTimer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	s, err := t.timers.Pause(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: err.Error()}
	}
	return s, nil
}

// POST /api/prayers/timer/resume
func (t *TimerController) resumeTimer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	s, err := t.timers.Resume(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: err.Error()}
	}
	return s, nil
}

// POST /api/prayers/timer/complete
func (t *TimerController) completeTimer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	s, end, minutes, err := t.timers.Complete(user.ID, time.Now())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: err.Error()}
	}

	start := s.StartedAt
	stored, updated, err := t.tracker.Record(model.PrayerLog{
		UserID:          user.ID,
		PrayerName:      s.PrayerName,
		LoggedAt:        end,
		StartTime:       &start,
		EndTime:         &end,
		DurationMinutes: &minutes,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not log prayer"}
	}

	return packets.LogPrayerResponse{
		Log:    packets.ToPrayerLogResponse(stored),
		Streak: packets.ToStreakResponse(updated),
	}, nil
}

// POST /api/prayers/timer/cancel
func (t *TimerController) cancelTimer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if err := t.timers.Cancel(user.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: err.Error()}
	}
	return gin.H{"cancelled": true}, nil
}
