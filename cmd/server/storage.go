package main

import (
	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/db"
	"github.com/sajda-app/sajda/internal/redis"
	"github.com/sajda-app/sajda/internal/reminder"
)

// InitStore probes the database once at startup and selects the backing for
// the whole session: Postgres when reachable, the local fallback store
// otherwise. Application code never branches on persistence failures per
// call; the decision is centralized here.
func InitStore(env Environment) db.Store {
	if env.DatabaseURL != "" {
		if err := db.Connect(env.DatabaseURL); err == nil {
			if err := db.RunMigrations(env.MigrationsPath); err != nil {
				log.Fatal().Err(err).Msg("db migrate")
			}
			log.Info().Msg("using PostgreSQL store")
			return db.NewStore(db.DB)
		}
		log.Warn().Msg("database unreachable, falling back to local store")
	} else {
		log.Warn().Msg("DATABASE_URL not set, using local store")
	}

	log.Info().Str("path", env.LocalStorePath).Msg("using local fallback store")
	return db.NewLocalStore(env.LocalStorePath)
}

// InitDeduper selects the notification dedup backing the same way: Redis when
// reachable, an in-process per-day set otherwise.
func InitDeduper(env Environment) reminder.Deduper {
	if env.RedisAddress != "" {
		if err := redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword); err == nil {
			return reminder.NewRedisDeduper()
		}
		log.Warn().Msg("redis unreachable, using in-process notification dedup")
	}
	return reminder.NewMemoryDeduper()
}
