package llm

import (
	"context"

	"weekly-planner/internal/config"
	"weekly-planner/internal/shared"
	"weekly-planner/internal/weekplan"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// GenerationResult is a normalized plan plus execution metadata.
type GenerationResult struct {
	Plan *weekplan.WeeklyPlanResponse
	Meta shared.AgentMeta
}

// Outcome is the verdict of a connectivity check.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ModelOption is a model discovered on an OpenAI-compatible endpoint.
type ModelOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ValidationResult is what the settings screen renders after a check.
type ValidationResult struct {
	Outcome Outcome       `json:"outcome"`
	Message string        `json:"message"`
	Models  []ModelOption `json:"discoveredModels"`
}

// FailedValidation turns an error into a failure result.
func FailedValidation(err error) ValidationResult {
	return ValidationResult{
		Outcome: OutcomeFailure,
		Message: err.Error(),
		Models:  []ModelOption{},
	}
}

// Adapter is a backend family able to generate plans and check credentials.
type Adapter interface {
	Provider() config.Provider
	Generate(ctx context.Context, goal string, cfg config.ProviderConfig, dateContext string) (GenerationResult, error)
	Validate(ctx context.Context, cfg config.ProviderConfig) (ValidationResult, error)
}
