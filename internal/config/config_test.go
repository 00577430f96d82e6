package config

import (
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		setEnv("PORT", "8080")
		setEnv("GEMINI_API_KEY", "")
		setEnv("DEFAULT_TIMEZONE", "UTC")

		env, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if env.Port != "8080" {
			t.Errorf("Expected Port to be '8080', got '%s'", env.Port)
		}
		if env.GenerateTimeout != 90*time.Second {
			t.Errorf("Expected GenerateTimeout to be 90s, got %s", env.GenerateTimeout)
		}
		if env.GeminiAPIKey != "" {
			t.Errorf("Expected GeminiAPIKey to be empty, got '%s'", env.GeminiAPIKey)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setEnv("PORT", "9191")
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("DEFAULT_TIMEZONE", "Asia/Shanghai")
		setEnv("GENERATE_TIMEOUT", "30s")

		env, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if env.Port != "9191" {
			t.Errorf("Expected Port to be '9191', got '%s'", env.Port)
		}
		if env.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", env.GeminiAPIKey)
		}
		if env.DefaultTimezone != "Asia/Shanghai" {
			t.Errorf("Expected DefaultTimezone to be 'Asia/Shanghai', got '%s'", env.DefaultTimezone)
		}
		if env.GenerateTimeout != 30*time.Second {
			t.Errorf("Expected GenerateTimeout to be 30s, got %s", env.GenerateTimeout)
		}
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		setEnv("PORT", "8080")
		setEnv("GENERATE_TIMEOUT", "soon")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for an invalid GENERATE_TIMEOUT, got nil")
		}
	})

	t.Run("EmptyPort", func(t *testing.T) {
		setEnv("PORT", "")
		setEnv("GENERATE_TIMEOUT", "90s")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for an empty PORT, got nil")
		}
	})
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.OpenAI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("Unexpected default base URL '%s'", c.OpenAI.BaseURL)
	}
	if c.OpenAI.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", c.OpenAI.Temperature)
	}
	if c.Gemini.ProbeModel == "" || c.Gemini.Model == "" {
		t.Error("Expected gemini models to be set")
	}

	if _, err := parseCatalog([]byte("gemini: {model: x}\n")); err == nil {
		t.Error("Expected an error for an incomplete catalog")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	const def = "https://api.openai.com/v1"
	tests := []struct {
		in, want string
	}{
		{"", def},
		{"   ", def},
		{"https://api.groq.com/openai/v1/", "https://api.groq.com/openai/v1"},
		{"https://api.groq.com/openai/v1", "https://api.groq.com/openai/v1"},
		{"http://localhost:1234/v1//", "http://localhost:1234/v1/"},
	}
	for _, tt := range tests {
		if got := NormalizeBaseURL(tt.in, def); got != tt.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProviderFreeform(t *testing.T) {
	if ProviderGemini.Freeform() {
		t.Error("Gemini enforces a schema")
	}
	if !ProviderOpenAI.Freeform() {
		t.Error("OpenAI-compatible endpoints are freeform")
	}
}
