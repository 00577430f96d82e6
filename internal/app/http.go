package app

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"weekly-planner/internal/config"
	"weekly-planner/internal/llm"
	"weekly-planner/internal/metrics"
	"weekly-planner/internal/planner"

	"github.com/google/uuid"
)

const maxBody = 1 << 20

type planRequest struct {
	Goal     string                `json:"goal"`
	Settings config.ProviderConfig `json:"settings"`
}

type validateRequest struct {
	Settings config.ProviderConfig `json:"settings"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// Handler returns the HTTP API used by the browser front-end.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/plan", a.handlePlan)
	mux.HandleFunc("POST /api/validate", a.handleValidate)
	mux.HandleFunc("GET /healthz", a.handleHealth)

	return requestLogger(secureMiddleware(mux))
}

func (a *App) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Goal) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "empty_goal", Message: "goal must not be empty"})
		return
	}
	if req.Settings.Timezone == "" {
		req.Settings.Timezone = a.env.DefaultTimezone
	}

	plan, err := a.planner.GeneratePlan(r.Context(), req.Goal, req.Settings)
	if err != nil {
		log.Printf("[%s] plan generation failed: %v", requestID(r), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (a *App) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	res, err := a.planner.Validate(r.Context(), req.Settings)
	if err != nil {
		log.Printf("[%s] validation of %s failed: %v", requestID(r), req.Settings.Provider, err)
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.GetSysHealth(a.startedAt, a.providers))
}

// writeError maps a failure kind to an HTTP status. The upstream status is
// passed through so the browser can tell an auth failure apart.
func writeError(w http.ResponseWriter, err error) {
	kind := llm.KindOf(err)
	if errors.Is(err, planner.ErrUnsupportedProvider) {
		kind = "unsupported_provider"
	}

	status := http.StatusInternalServerError
	switch kind {
	case "missing_credential", "invalid_timezone", "unsupported_provider":
		status = http.StatusBadRequest
	case "timeout":
		status = http.StatusGatewayTimeout
	case "request_failed", "empty_response", "malformed_response":
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{
		Error:   kind,
		Message: err.Error(),
		Status:  llm.StatusCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

const requestIDHeader = "X-Request-ID"

func requestID(r *http.Request) string {
	return r.Header.Get(requestIDHeader)
}

// requestLogger tags every request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Printf("[%s] %s %s %d %s", id, r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// secureMiddleware limits request bodies and sets basic security headers.
func secureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodTrace {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
