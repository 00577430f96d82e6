package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"weekly-planner/internal/config"
	"weekly-planner/internal/shared"
	"weekly-planner/internal/weekplan"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

const geminiAgentName = "Gemini"

// StructuredRequest is a single Gemini generation call.
type StructuredRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Schema            *genai.Schema
	MIMEType          string
	MaxOutputTokens   int32
}

// StructuredGenerator is the part of the Gemini SDK the adapter relies on.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (ContentResponse, error)
	Close() error
}

// GeminiDialer opens a client bound to one API key.
type GeminiDialer func(ctx context.Context, apiKey string) (StructuredGenerator, error)

// geminiClient is a client for the Google Gemini API.
type geminiClient struct {
	client *genai.Client
}

// DialGemini creates a new Gemini API client.
func DialGemini(ctx context.Context, apiKey string) (StructuredGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

// GenerateStructured sends the request and concatenates the text parts of
// the first candidate. An empty Content with a nil error means the model
// produced no text.
func (c *geminiClient) GenerateStructured(ctx context.Context, req StructuredRequest) (ContentResponse, error) {
	model := c.client.GenerativeModel(req.Model)
	if req.SystemInstruction != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.SystemInstruction))
	}
	if req.MIMEType != "" {
		model.ResponseMIMEType = req.MIMEType
	}
	if req.Schema != nil {
		model.ResponseSchema = req.Schema
	}
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(req.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return ContentResponse{}, err
	}

	out := ContentResponse{Usage: shared.TokenUsage{Model: req.Model}}
	if resp.UsageMetadata != nil {
		out.Usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.Usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		out.Usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out.Content = sb.String()
	return out, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

// GeminiAdapter generates plans with Gemini's schema-enforced JSON mode.
type GeminiAdapter struct {
	dial       GeminiDialer
	defaultKey string
	model      string
	probeModel string
	timeout    time.Duration
}

// GeminiOption customizes a GeminiAdapter.
type GeminiOption func(*GeminiAdapter)

// WithGeminiDialer replaces the SDK dialer.
func WithGeminiDialer(d GeminiDialer) GeminiOption {
	return func(a *GeminiAdapter) { a.dial = d }
}

// WithGeminiTimeout bounds every call. Zero leaves calls unbounded.
func WithGeminiTimeout(d time.Duration) GeminiOption {
	return func(a *GeminiAdapter) { a.timeout = d }
}

// NewGeminiAdapter creates the schema-enforced adapter. defaultKey is used by
// Generate when the request carries no key and may be empty.
func NewGeminiAdapter(catalog *config.Catalog, defaultKey string, opts ...GeminiOption) *GeminiAdapter {
	a := &GeminiAdapter{
		dial:       DialGemini,
		defaultKey: defaultKey,
		model:      catalog.Gemini.Model,
		probeModel: catalog.Gemini.ProbeModel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *GeminiAdapter) Provider() config.Provider {
	return config.ProviderGemini
}

// Generate issues one structured generation call. It never retries.
func (a *GeminiAdapter) Generate(
	ctx context.Context,
	goal string,
	cfg config.ProviderConfig,
	dateContext string,
) (GenerationResult, error) {
	start := time.Now()

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = a.defaultKey
	}
	if apiKey == "" {
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

	ctx, cancel := a.bound(ctx)
	defer cancel()

	gen, err := a.dial(ctx, apiKey)
	if err != nil {
		return GenerationResult{}, &APIError{Kind: ErrRequestFailed, Err: err}
	}
	defer gen.Close()

	resp, err := gen.GenerateStructured(ctx, StructuredRequest{
		Model:             model,
		SystemInstruction: prompts.SystemInstruction,
		Prompt:            prompts.UserPrompt,
		Schema:            PlanSchema(),
		MIMEType:          "application/json",
	})
	if err != nil {
		return GenerationResult{}, classifyGeminiError(ctx, err)
	}

	meta := shared.AgentMeta{
		AgentName: geminiAgentName,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	if strings.TrimSpace(resp.Content) == "" {
		return GenerationResult{Meta: meta}, ErrEmptyResponse
	}

	plan, err := weekplan.Decode(resp.Content)
	if err != nil {
		return GenerationResult{Meta: meta}, &APIError{Kind: ErrMalformedResponse, Body: resp.Content, Err: err}
	}

	return GenerationResult{Plan: plan, Meta: meta}, nil
}

// Validate checks the user's key with a tiny call against the probe model.
// Only the key in cfg is checked; the default credential is never used here.
func (a *GeminiAdapter) Validate(ctx context.Context, cfg config.ProviderConfig) (ValidationResult, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return FailedValidation(ErrMissingCredential), ErrMissingCredential
	}

	ctx, cancel := a.bound(ctx)
	defer cancel()

	fail := func(err error) (ValidationResult, error) {
		verr := &APIError{Kind: ErrValidationFailed, StatusCode: geminiStatus(err), Err: err}
		return FailedValidation(verr), verr
	}

	gen, err := a.dial(ctx, apiKey)
	if err != nil {
		return fail(err)
	}
	defer gen.Close()

	if _, err := gen.GenerateStructured(ctx, StructuredRequest{
		Model:           a.probeModel,
		Prompt:          "Reply with OK.",
		MaxOutputTokens: 8,
	}); err != nil {
		return fail(err)
	}

	return ValidationResult{
		Outcome: OutcomeSuccess,
		Message: fmt.Sprintf("Connected to Gemini (%s)", a.probeModel),
		Models:  []ModelOption{},
	}, nil
}

func (a *GeminiAdapter) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

func classifyGeminiError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &APIError{Kind: ErrTimeout, Err: err}
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &APIError{Kind: ErrEmptyResponse, Err: err}
	}

	return &APIError{Kind: ErrRequestFailed, StatusCode: geminiStatus(err), Err: err}
}

// grpcHTTPStatus maps the gRPC codes Gemini commonly returns to HTTP statuses.
var grpcHTTPStatus = map[codes.Code]int{
	codes.InvalidArgument:   http.StatusBadRequest,
	codes.Unauthenticated:   http.StatusUnauthorized,
	codes.PermissionDenied:  http.StatusForbidden,
	codes.NotFound:          http.StatusNotFound,
	codes.ResourceExhausted: http.StatusTooManyRequests,
	codes.Internal:          http.StatusInternalServerError,
	codes.Unavailable:       http.StatusServiceUnavailable,
	codes.DeadlineExceeded:  http.StatusGatewayTimeout,
}

func geminiStatus(err error) int {
	var ae *apierror.APIError
	if errors.As(err, &ae) {
		if code := ae.HTTPCode(); code > 0 {
			return code
		}
		if st := ae.GRPCStatus(); st != nil {
			return grpcHTTPStatus[st.Code()]
		}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
