package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/store"
)

// seedconfig pushes the bundled site-config snapshot into the store,
// overwriting the existing document. It is the one-shot provisioning
// step run after migrations.
//
// Required environment: ADMIN_DB_DSN, ADMIN_REDIS_ADDR, ADMIN_SEED_TOKEN.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dsn := os.Getenv("ADMIN_DB_DSN")
	redisAddr := os.Getenv("ADMIN_REDIS_ADDR")
	token := os.Getenv("ADMIN_SEED_TOKEN")
	if dsn == "" || redisAddr == "" || token == "" {
		log.Error().Msg("ADMIN_DB_DSN, ADMIN_REDIS_ADDR and ADMIN_SEED_TOKEN must all be set")
		os.Exit(1)
	}

	db, err := store.Open(dsn)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	repo := store.NewConfigRepository(db)
	repo.SnapshotPath = os.Getenv("SITE_CONFIG_SNAPSHOT")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot := repo.Snapshot()
	if err := repo.Seed(ctx, snapshot); err != nil {
		log.Error().Err(err).Msg("Failed to write config document")
		os.Exit(1)
	}

	// Drop any cached tenant state so the next request re-reads.
	redisClient := store.OpenRedis(redisAddr)
	defer redisClient.Close()
	if err := redisClient.FlushDB(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Cache flush failed, cached reads may be stale until TTL")
	}

	log.Info().Str("site", snapshot.SiteName).Msg("Config document seeded")
}
