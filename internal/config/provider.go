package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider identifies a backend family.
type Provider string

const (
	// ProviderGemini enforces the response schema natively.
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is any OpenAI-compatible chat completion endpoint.
	ProviderOpenAI Provider = "openai"
)

// Freeform reports whether the backend has no enforced output schema.
func (p Provider) Freeform() bool {
	return p == ProviderOpenAI
}

// ProviderConfig is the settings object sent by the browser with every call.
type ProviderConfig struct {
	Provider Provider `json:"provider"`
	APIKey   string   `json:"apiKey"`
	Model    string   `json:"model"`
	BaseURL  string   `json:"baseUrl,omitempty"`
	Timezone string   `json:"timezone"`
}

//go:embed providers.yaml
var providersYAML []byte

// Catalog holds the built-in defaults for each backend family.
type Catalog struct {
	Gemini struct {
		Model      string `yaml:"model"`
		ProbeModel string `yaml:"probe_model"`
	} `yaml:"gemini"`
	OpenAI struct {
		BaseURL     string  `yaml:"base_url"`
		Model       string  `yaml:"model"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"openai"`
}

// LoadCatalog decodes the embedded provider defaults.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(providersYAML)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse provider catalog: %w", err)
	}
	if c.Gemini.Model == "" || c.Gemini.ProbeModel == "" {
		return nil, fmt.Errorf("provider catalog: gemini model and probe_model are required")
	}
	if c.OpenAI.BaseURL == "" || c.OpenAI.Model == "" {
		return nil, fmt.Errorf("provider catalog: openai base_url and model are required")
	}
	return &c, nil
}

// NormalizeBaseURL trims one trailing slash, falling back to def when empty.
func NormalizeBaseURL(baseURL, def string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return def
	}
	return strings.TrimSuffix(baseURL, "/")
}
