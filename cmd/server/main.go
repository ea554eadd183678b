package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/notify"
	"github.com/sajda-app/sajda/internal/reminder"
	"github.com/sajda-app/sajda/internal/streak"
	"github.com/sajda-app/sajda/internal/timer"
)

func main() {
	env := LoadEnvironment()

	// select persistence and dedup backings once, for the whole session
	store := InitStore(env)
	dedup := InitDeduper(env)

	// notification channels
	if env.MQTTBrokerURL != "" {
		notify.SetBrokerURL(env.MQTTBrokerURL)
	}
	if err := notify.InitMQTT("sajda-server"); err != nil {
		log.Warn().Err(err).Msg("system notifications unavailable, continuing toast-only")
	}
	defer notify.CleanupMQTT()

	hub := notify.NewToastHub()
	dispatcher := reminder.NewDispatcher(notify.NewSystemChannel(), hub, dedup)

	tracker := streak.NewTracker(store)
	timers := timer.NewManager()

	// reminder poll; minute granularity matching makes 60s sufficient
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	poller := reminder.NewPoller(store, dispatcher, 60*time.Second)
	go poller.Run(ctx)

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, tracker, timers, dispatcher, hub)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
