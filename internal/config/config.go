package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds the process-level configuration of the planner service.
type Env struct {
	Port string `envconfig:"PORT" default:"8080"`

	// GeminiAPIKey is the default credential used when a request does not
	// carry its own Gemini key. Optional.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	// DefaultTimezone is applied when the browser sends no timezone.
	DefaultTimezone string `envconfig:"DEFAULT_TIMEZONE" default:"UTC"`

	GenerateTimeout time.Duration `envconfig:"GENERATE_TIMEOUT" default:"90s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// NewFromEnv creates a new Env from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func NewFromEnv() (*Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if env.Port == "" {
		return nil, fmt.Errorf("PORT environment variable must not be empty")
	}
	if env.GenerateTimeout < 0 {
		return nil, fmt.Errorf("GENERATE_TIMEOUT must not be negative")
	}
	return &env, nil
}
