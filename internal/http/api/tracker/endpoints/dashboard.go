package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajda-app/sajda/internal/db"
	"github.com/sajda-app/sajda/internal/http/api"
	"github.com/sajda-app/sajda/internal/model"
	"github.com/sajda-app/sajda/internal/stats"
	"github.com/sajda-app/sajda/internal/streak"
)

type DashboardController struct {
	store db.Store
}

func newDashboardController(store db.Store) *DashboardController {
	return &DashboardController{store: store}
}

// DashboardModule mounts the read-side aggregation endpoints.
func DashboardModule(store db.Store) api.Module {
	ctl := newDashboardController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/dashboard/today", ctl.today)
		c.GET("/dashboard/weekly", ctl.weekly)
		c.GET("/dashboard/monthly", ctl.monthly)
		c.GET("/dashboard/calendar", ctl.calendar)
	})
}

func (d *DashboardController) logsSince(userID int, since time.Time) ([]model.PrayerLog, *api.APIError) {
	logs, err := d.store.ListPrayerLogs(userID, &since, nil)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load prayer logs"}
	}
	return logs, nil
}

// GET /api/dashboard/today
func (d *DashboardController) today(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	now := time.Now()
	logs, apiErr := d.logsSince(user.ID, streak.StartOfDay(now))
	if apiErr != nil {
		return nil, apiErr
	}
	return stats.Safe("today", func() stats.TodayProgress {
		return stats.Today(logs, now)
	}), nil
}

// GET /api/dashboard/weekly
func (d *DashboardController) weekly(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	now := time.Now()
	logs, apiErr := d.logsSince(user.ID, stats.WeekStart(now))
	if apiErr != nil {
		return nil, apiErr
	}
	return stats.Safe("weekly", func() stats.WeeklyStats {
		return stats.Weekly(logs, now)
	}), nil
}

// GET /api/dashboard/monthly
func (d *DashboardController) monthly(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	now := time.Now()
	logs, apiErr := d.logsSince(user.ID, streak.StartOfDay(now).AddDate(0, 0, -29))
	if apiErr != nil {
		return nil, apiErr
	}
	return stats.Safe("monthly", func() stats.MonthlyStats {
		return stats.Monthly(logs, now)
	}), nil
}

// GET /api/dashboard/calendar?year=2026&month=9
func (d *DashboardController) calendar(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := ctx.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid year"}
		}
		year = y
	}
	if raw := ctx.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid month"}
		}
		month = time.Month(m)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	next := first.AddDate(0, 1, 0)
	logs, err := d.store.ListPrayerLogs(user.ID, &first, &next)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load prayer logs"}
	}

	return stats.Safe("calendar", func() []stats.CalendarDay {
		return stats.Calendar(logs, year, month, now.Location())
	}), nil
}
