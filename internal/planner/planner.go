package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"weekly-planner/internal/config"
	"weekly-planner/internal/llm"
	"weekly-planner/internal/weekplan"
)

// ErrUnsupportedProvider is returned when no adapter serves the configured provider.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// Planner dispatches generation and validation to the adapter of the
// configured provider.
type Planner struct {
	adapters map[config.Provider]llm.Adapter
	now      func() time.Time
}

// Option customizes a Planner.
type Option func(*Planner)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// NewPlanner creates a new Planner instance.
func NewPlanner(adapters []llm.Adapter, opts ...Option) *Planner {
	p := &Planner{
		adapters: make(map[config.Provider]llm.Adapter, len(adapters)),
		now:      time.Now,
	}
	for _, a := range adapters {
		p.adapters[a.Provider()] = a
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) adapter(provider config.Provider) (llm.Adapter, error) {
	a, ok := p.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
	return a, nil
}

// GeneratePlan turns a goal into a plan for the rest of the current week in
// the configured timezone.
func (p *Planner) GeneratePlan(ctx context.Context, goal string, cfg config.ProviderConfig) (*weekplan.WeeklyPlanResponse, error) {
	dateContext, err := DateContext(cfg.Timezone, p.now())
	if err != nil {
		return nil, err
	}

	adapter, err := p.adapter(cfg.Provider)
	if err != nil {
		return nil, err
	}

	res, err := adapter.Generate(ctx, goal, cfg, dateContext)
	if res.Meta.AgentName != "" {
		log.Printf("Generation finished: %s", res.Meta)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan with %s: %w", cfg.Provider, err)
	}

	return res.Plan, nil
}

// Validate checks the credentials in cfg. The returned result is always
// renderable; err carries the failure kind.
func (p *Planner) Validate(ctx context.Context, cfg config.ProviderConfig) (llm.ValidationResult, error) {
	adapter, err := p.adapter(cfg.Provider)
	if err != nil {
		return llm.FailedValidation(err), err
	}
	return adapter.Validate(ctx, cfg)
}
