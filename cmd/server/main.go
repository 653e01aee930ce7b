// Command server runs the wordleforge HTTP API. Grounded on the teacher's
// root main.go: godotenv for local env loading, zerolog level from
// LOG_LEVEL, then dictionary bootstrap before the router starts serving.
package main

import (
	"crypto/rand"
	"encoding/binary"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordleforge/server/internal/accountstore"
	"github.com/wordleforge/server/internal/dictionary"
	"github.com/wordleforge/server/internal/generator"
	"github.com/wordleforge/server/internal/httpserver"
	"github.com/wordleforge/server/internal/puzzle"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, freq, err := dictionary.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("words", dict.Len()).Msg("dictionary loaded")

	svc, err := puzzle.New(dict, freq, generator.DefaultConfig(), cryptoSeed())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build puzzle service")
	}

	var accounts *accountstore.Store
	if dsn := getEnv("DB_PATH", ""); dsn != "" {
		accounts, err = accountstore.Open(dsn, getEnv("MIGRATIONS_DIR", "sql"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open account store")
		}
		defer accounts.Close()
		log.Info().Str("path", dsn).Msg("account store ready")
	} else {
		log.Warn().Msg("DB_PATH not set; auth and stats routes are disabled")
	}

	srv := httpserver.New(svc, accounts, getEnv("SEED_SALT", "wordleforge"))
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting wordleforge server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// cryptoSeed seeds the one-time curator selection unpredictably at
// process start, per spec.md §5: reproducibility only matters within a
// single Generate call, not across server restarts.
func cryptoSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]))
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
