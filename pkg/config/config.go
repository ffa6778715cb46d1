package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the defaults for the command-line flags and the settings for
// the speech service connection. Flags given on the command line win.
type Config struct {
	Language  string  `env:"TTS_LANG" envDefault:"es"`
	Gender    string  `env:"TTS_GENDER" envDefault:"neutral"`
	VoiceType string  `env:"TTS_VOICE_TYPE" envDefault:"wavenet"`
	Pitch     float64 `env:"TTS_PITCH" envDefault:"1.0"`
	Rate      float64 `env:"TTS_RATE" envDefault:"1.0"`
	LogLevel  string  `env:"TTS_LOG_LEVEL" envDefault:"info"`

	CredentialsFile string `env:"TTS_CREDENTIALS_FILE"`
	Endpoint        string `env:"TTS_ENDPOINT"`
	QuotaProject    string `env:"TTS_QUOTA_PROJECT"`

	// OTLPEndpoint enables telemetry export when set, e.g. "otel-collector:4317".
	OTLPEndpoint string `env:"TTS_OTLP_ENDPOINT"`
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
