package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// EnvConfig holds the process settings read from the environment
type EnvConfig struct {
	LogLevel string `env:"LOG_LEVEL"`
	APIPort  string `env:"API_PORT" envDefault:"8080"`
}

// LoadEnv loads a .env file if present and parses the environment
func LoadEnv() (EnvConfig, error) {
	_ = godotenv.Load()

	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger. LOG_LEVEL wins over verbose.
func NewLogger(level string, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	switch {
	case level != "":
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			logger.Warnf("Unknown LOG_LEVEL %q, using info", level)
			parsed = logrus.InfoLevel
		}
		logger.SetLevel(parsed)
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
