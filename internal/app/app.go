package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"weekly-planner/internal/config"
	"weekly-planner/internal/llm"
	"weekly-planner/internal/planner"
	"weekly-planner/internal/weekplan"

	"golang.org/x/sync/errgroup"
)

// PlanService is what the HTTP layer needs from the planner.
type PlanService interface {
	GeneratePlan(ctx context.Context, goal string, cfg config.ProviderConfig) (*weekplan.WeeklyPlanResponse, error)
	Validate(ctx context.Context, cfg config.ProviderConfig) (llm.ValidationResult, error)
}

// App holds the application's dependencies.
type App struct {
	env       *config.Env
	planner   PlanService
	providers int
	startedAt time.Time
}

// NewApp creates an App around an existing PlanService.
func NewApp(env *config.Env, planner PlanService, providers int) *App {
	return &App{
		env:       env,
		planner:   planner,
		providers: providers,
		startedAt: time.Now(),
	}
}

// New wires both backend adapters into a planner.
func New(env *config.Env) (*App, error) {
	catalog, err := config.LoadCatalog()
	if err != nil {
		return nil, err
	}

	adapters := []llm.Adapter{
		llm.NewGeminiAdapter(catalog, env.GeminiAPIKey, llm.WithGeminiTimeout(env.GenerateTimeout)),
		llm.NewOpenAIAdapter(catalog, llm.WithOpenAITimeout(env.GenerateTimeout)),
	}
	if env.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set; Gemini requests must carry their own key")
	}

	return NewApp(env, planner.NewPlanner(adapters), len(adapters)), nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.env.Port,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Weekly planner listening on port %s", a.env.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.env.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
