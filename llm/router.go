package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/brunobiangulo/ragduel/metrics"
)

// GenerateRequest is one generation task: a fully rendered prompt plus the
// raw context block the deterministic fallback synthesizes from.
type GenerateRequest struct {
	System      string
	Prompt      string
	Context     string
	MaxTokens   int
	Temperature float64
}

// BackendFailure records why one backend was skipped during a Generate call,
// kept for observability on the response.
type BackendFailure struct {
	Backend string `json:"backend"`
	Reason  string `json:"reason"`
}

// GenerationResponse is the produced answer. Degraded marks answers from the
// deterministic fallback so the presentation layer can flag reduced quality.
type GenerationResponse struct {
	Answer   string           `json:"answer"`
	Backend  string           `json:"backend"`
	Degraded bool             `json:"degraded"`
	Failures []BackendFailure `json:"failures,omitempty"`
}

type routerEntry struct {
	name     string
	provider Provider
	timeout  time.Duration
}

// Router walks generation backends in a fixed priority order decided at
// startup. A backend failure advances to the next backend; no backend is
// retried within one Generate call. If every backend fails or none is
// configured, the deterministic mock responder answers, so Generate never
// fails for a well-formed request.
type Router struct {
	entries []routerEntry
	skipped []BackendFailure
}

// NewRouter builds the backend chain from configuration, in the order given.
// Backends whose kind requires an API key but have none configured are
// registered as unavailable and skipped (not an error).
func NewRouter(cfgs []Config) (*Router, error) {
	r := &Router{}
	for _, cfg := range cfgs {
		if RequiresAPIKey(cfg.Provider) && cfg.APIKey == "" {
			slog.Warn("llm: backend unavailable, missing API key", "backend", cfg.Provider)
			r.skipped = append(r.skipped, BackendFailure{Backend: cfg.Provider, Reason: "missing API key"})
			continue
		}
		p, err := NewProvider(cfg)
		if err != nil {
			return nil, err
		}
		// Each backend keeps its own attempt deadline.
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		r.entries = append(r.entries, routerEntry{name: cfg.Provider, provider: p, timeout: timeout})
	}
	return r, nil
}

// Backends returns the usable backend names in priority order.
func (r *Router) Backends() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Generate attempts each backend once, in priority order, and falls back to
// the deterministic mock responder when all of them fail. It never returns
// an empty answer.
func (r *Router) Generate(ctx context.Context, req GenerateRequest) *GenerationResponse {
	failures := append([]BackendFailure(nil), r.skipped...)

	messages := []Message{
		{Role: "system", Content: req.System},
		{Role: "user", Content: req.Prompt},
	}

	for _, entry := range r.entries {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(ctx, entry.timeout)
		resp, err := entry.provider.Chat(callCtx, ChatRequest{
			Messages:    messages,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		})
		cancel()

		if err == nil && strings.TrimSpace(resp.Content) == "" {
			err = errEmptyCompletion
		}
		metrics.Default().IncBackendCall(entry.name, err == nil)
		metrics.Default().ObserveBackendSeconds(entry.name, err == nil, time.Since(start).Seconds())

		if err != nil {
			slog.Warn("llm: backend failed, advancing",
				"backend", entry.name, "error", err, "elapsed", time.Since(start).Round(time.Millisecond))
			failures = append(failures, BackendFailure{Backend: entry.name, Reason: err.Error()})
			continue
		}

		return &GenerationResponse{
			Answer:   strings.TrimSpace(resp.Content),
			Backend:  entry.name,
			Failures: failures,
		}
	}

	if len(r.entries) > 0 {
		slog.Warn("llm: all backends exhausted, using mock responder", "attempted", len(r.entries))
	}
	return &GenerationResponse{
		Answer:   mockAnswer(req.Context),
		Backend:  MockBackend,
		Degraded: true,
		Failures: failures,
	}
}

var errEmptyCompletion = errEmpty{}

type errEmpty struct{}

func (errEmpty) Error() string { return "empty completion content" }
