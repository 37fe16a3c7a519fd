package config

import (
	"log/slog"

	"github.com/kelseyhightower/envconfig"
	"github.com/subosito/gotenv"
)

// Config holds every tunable the server reads from the environment.
type Config struct {
	HTTPPort  string `envconfig:"HTTP_PORT" default:"8000"`
	StaticDir string `envconfig:"STATIC_DIR" default:"./static"`

	ModelDir           string `envconfig:"MODEL_DIR" default:"./models"`
	SentimentModelName string `envconfig:"SENTIMENT_MODEL" default:"cardiffnlp/twitter-roberta-base-sentiment-latest"`

	// Hard ceiling on uploaded file size. Oversized uploads are rejected
	// as client errors before any analysis starts.
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnv loads the env file for the given APP_ENV before Config processing.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}

// Load processes the environment into a Config.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
