package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sajda-app/sajda/internal/db"
	"github.com/sajda-app/sajda/internal/http/api"
	authapi "github.com/sajda-app/sajda/internal/http/api/auth/endpoints"
	trackerapi "github.com/sajda-app/sajda/internal/http/api/tracker/endpoints"
	"github.com/sajda-app/sajda/internal/notify"
	"github.com/sajda-app/sajda/internal/reminder"
	"github.com/sajda-app/sajda/internal/streak"
	"github.com/sajda-app/sajda/internal/timer"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	tracker *streak.Tracker,
	timers *timer.Manager,
	dispatcher *reminder.Dispatcher,
	hub *notify.ToastHub,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		authapi.AuthSessionModule(env.SecretKey, store),
		trackerapi.PrayerModule(store, tracker),
		trackerapi.TimerModule(timers, tracker),
		trackerapi.ReminderModule(store, dispatcher),
		trackerapi.DashboardModule(store),
		trackerapi.ToastSocketModule(hub),
	)
}
