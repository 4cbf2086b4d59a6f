package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the embedder CLI's environment-driven defaults. OutputPackage
// can be overridden by the generate command's --package flag; the other
// values have no flag.
type Config struct {
	DefaultLocale string
	OutputPackage string

	SentryDSN         string
	SentryEnvironment string
}

// Load reads a .env file if present, then environment variables, falling
// back to the embedder's defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	return &Config{
		DefaultLocale:     getEnv("FLUENTGO_DEFAULT_LOCALE", "en"),
		OutputPackage:     getEnv("FLUENTGO_OUTPUT_PACKAGE", "locales"),
		SentryDSN:         getEnv("FLUENTGO_SENTRY_DSN", ""),
		SentryEnvironment: getEnv("FLUENTGO_SENTRY_ENVIRONMENT", "production"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
