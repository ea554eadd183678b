package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/db"
	"github.com/sajda-app/sajda/internal/http/api"
	"github.com/sajda-app/sajda/internal/http/api/tracker/packets"
	"github.com/sajda-app/sajda/internal/model"
	"github.com/sajda-app/sajda/internal/streak"
)

type PrayerController struct {
	store   db.Store
	tracker *streak.Tracker
}

func newPrayerController(store db.Store, tracker *streak.Tracker) *PrayerController {
	return &PrayerController{store: store, tracker: tracker}
}

// PrayerModule mounts the authenticated prayer log endpoints.
func PrayerModule(store db.Store, tracker *streak.Tracker) api.Module {
	ctl := newPrayerController(store, tracker)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/prayers", ctl.logPrayer)
		c.GET("/prayers", ctl.listPrayers)
		c.GET("/prayers/count", ctl.countPrayers)
		c.PATCH("/prayers/:id/duration", ctl.backfillDuration)
		c.GET("/streak", ctl.getStreak)
	})
}

// POST /api/prayers
func (p *PrayerController) logPrayer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.LogPrayerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !model.ValidPrayerName(request.PrayerName) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown prayer name"}
	}

	stored, updated, err := p.tracker.Record(model.PrayerLog{
		UserID:     user.ID,
		PrayerName: request.PrayerName,
		LoggedAt:   time.Now(),
		Notes:      request.Notes,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not log prayer"}
	}

	log.Info().Int("user_id", user.ID).Str("prayer", stored.PrayerName).Msg("prayer logged")
	return packets.LogPrayerResponse{
		Log:    packets.ToPrayerLogResponse(stored),
		Streak: packets.ToStreakResponse(updated),
	}, nil
}

// GET /api/prayers?days=7
func (p *PrayerController) listPrayers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var since *time.Time
	if raw := ctx.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid days"}
		}
		from := streak.StartOfDay(time.Now()).AddDate(0, 0, -(days - 1))
		since = &from
	}

	logs, err := p.store.ListPrayerLogs(user.ID, since, nil)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list prayers"}
	}

	out := make([]packets.PrayerLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, packets.ToPrayerLogResponse(l))
	}
	return out, nil
}

// GET /api/prayers/count
func (p *PrayerController) countPrayers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	n, err := p.store.CountPrayerLogs(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not count prayers"}
	}
	return packets.CountResponse{Count: n}, nil
}

// PATCH /api/prayers/:id/duration
func (p *PrayerController) backfillDuration(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.BackfillDurationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	id := ctx.Param("id")
	if err := p.store.BackfillDuration(id, user.ID, request.DurationMinutes); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "prayer log not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update duration"}
	}
	return gin.H{"updated": true}, nil
}

// GET /api/streak
func (p *PrayerController) getStreak(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	st, err := p.store.GetStreak(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load streak"}
	}
	return packets.ToStreakResponse(st), nil
}
