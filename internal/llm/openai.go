package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"weekly-planner/internal/config"
	"weekly-planner/internal/shared"
	"weekly-planner/internal/weekplan"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	oaishared "github.com/openai/openai-go/shared"
)

const (
	openAIAgentName = "OpenAICompatible"

	// probeTimeout bounds the /models discovery call.
	probeTimeout = 10 * time.Second
)

// OpenAIAdapter talks to any OpenAI-compatible chat completion endpoint.
// The endpoint does not enforce a schema, so output is cleaned and checked.
type OpenAIAdapter struct {
	httpClient     *http.Client
	defaultBaseURL string
	model          string
	temperature    float64
	probeTimeout   time.Duration
	timeout        time.Duration
}

// OpenAIOption customizes an OpenAIAdapter.
type OpenAIOption func(*OpenAIAdapter)

// WithHTTPClient sets the HTTP client used for every call.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(a *OpenAIAdapter) { a.httpClient = c }
}

// WithOpenAITimeout bounds chat completion calls. Zero leaves them unbounded.
func WithOpenAITimeout(d time.Duration) OpenAIOption {
	return func(a *OpenAIAdapter) { a.timeout = d }
}

// NewOpenAIAdapter creates the freeform adapter.
func NewOpenAIAdapter(catalog *config.Catalog, opts ...OpenAIOption) *OpenAIAdapter {
	a := &OpenAIAdapter{
		defaultBaseURL: catalog.OpenAI.BaseURL,
		model:          catalog.OpenAI.Model,
		temperature:    catalog.OpenAI.Temperature,
		probeTimeout:   probeTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *OpenAIAdapter) Provider() config.Provider {
	return config.ProviderOpenAI
}

func (a *OpenAIAdapter) newClient(cfg config.ProviderConfig) openai.Client {
	opts := []option.RequestOption{
		option.WithBaseURL(config.NormalizeBaseURL(cfg.BaseURL, a.defaultBaseURL)),
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(0),
	}
	if a.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(a.httpClient))
	}
	return openai.NewClient(opts...)
}

// Generate posts one chat completion in JSON object mode. It never retries.
func (a *OpenAIAdapter) Generate(
	ctx context.Context,
	goal string,
	cfg config.ProviderConfig,
	dateContext string,
) (GenerationResult, error) {
	start := time.Now()

	if strings.TrimSpace(cfg.APIKey) == "" {
		return GenerationResult{}, ErrMissingCredential
	}

	prompts, err := weekplan.BuildPrompts(dateContext, goal, a.Provider().Freeform())
	if err != nil {
		return GenerationResult{}, fmt.Errorf("failed to build prompts: %w", err)
	}

	model := a.model
	if cfg.Model != "" {
		model = cfg.Model
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	client := a.newClient(cfg)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompts.SystemInstruction),
			openai.UserMessage(prompts.UserPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &oaishared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(a.temperature),
	})
	if err != nil {
		return GenerationResult{}, classifyOpenAIError(ctx, err)
	}

	meta := shared.AgentMeta{
		AgentName: openAIAgentName,
		Usage: shared.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
			Model:            model,
		},
		Latency: time.Since(start),
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return GenerationResult{Meta: meta}, ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	plan, err := weekplan.Decode(StripCodeFence(content))
	if err != nil {
		return GenerationResult{Meta: meta}, &APIError{Kind: ErrMalformedResponse, Body: content, Err: err}
	}

	return GenerationResult{Plan: plan, Meta: meta}, nil
}

// Validate lists the endpoint's models. An empty list is a failure.
func (a *OpenAIAdapter) Validate(ctx context.Context, cfg config.ProviderConfig) (ValidationResult, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return FailedValidation(ErrMissingCredential), ErrMissingCredential
	}

	ctx, cancel := context.WithTimeout(ctx, a.probeTimeout)
	defer cancel()

	client := a.newClient(cfg)
	page, err := client.Models.List(ctx)
	if err != nil {
		cerr := classifyOpenAIError(ctx, err)
		return FailedValidation(cerr), cerr
	}

	models := make([]ModelOption, 0, len(page.Data))
	for _, m := range page.Data {
		if m.ID == "" {
			continue
		}
		models = append(models, ModelOption{ID: m.ID, Label: m.ID})
	}
	if len(models) == 0 {
		return FailedValidation(ErrNoModelsFound), ErrNoModelsFound
	}
	sort.SliceStable(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	return ValidationResult{
		Outcome: OutcomeSuccess,
		Message: fmt.Sprintf("Connected, found %d models", len(models)),
		Models:  models,
	}, nil
}

func classifyOpenAIError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &APIError{Kind: ErrTimeout, Err: err}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &APIError{
			Kind:       ErrRequestFailed,
			StatusCode: apiErr.StatusCode,
			Body:       responseBody(apiErr),
		}
	}

	return &APIError{Kind: ErrRequestFailed, Err: err}
}

// responseBody returns the body text exactly as the server sent it.
// The SDK refills Response.Body after reading it.
func responseBody(apiErr *openai.Error) string {
	if apiErr.Response == nil || apiErr.Response.Body == nil {
		return apiErr.RawJSON()
	}
	b, err := io.ReadAll(apiErr.Response.Body)
	if err != nil {
		return apiErr.RawJSON()
	}
	return strings.TrimSpace(string(b))
}
