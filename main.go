package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gauravc/numble/internal/httpserver"
	"github.com/gauravc/numble/internal/results"
	"github.com/gauravc/numble/internal/session"
	"github.com/gauravc/numble/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/numble.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	// SESSION_STORE=memory keeps sessions in-process (dev); default sqlite.
	var sessStore session.Store
	if getEnv("SESSION_STORE", "sqlite") == "memory" {
		sessStore = store.NewMemory()
	} else {
		sessStore = store.NewSQLite(db)
	}

	srv := httpserver.New(session.NewManager(sessStore), results.NewStore(db))
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting numble server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
