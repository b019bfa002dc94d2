// Package server exposes the budget analysis workflow over HTTP: a JSON API
// for triggering runs and reading results, individual tool endpoints, service
// availability probing, a health check, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/fallback"
	"github.com/abenson/pbbdash/internal/logging"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/session"
	"github.com/abenson/pbbdash/internal/upload"
	"github.com/abenson/pbbdash/internal/workflow"
)

// shutdownTimeout bounds graceful shutdown once the context is canceled.
const shutdownTimeout = 10 * time.Second

// Config carries the analysis defaults applied when a request omits the
// corresponding form fields.
type Config struct {
	Addr                  string
	OrgURL                string
	OrgName               string
	ProgramsPerDepartment int
	CostThreshold         int
	Insights              bool
	LiveScoring           bool
}

// Server serves the dashboard HTTP API.
type Server struct {
	cfg       Config
	caller    *services.Client
	provider  *fallback.Provider
	endpoints map[services.Capability]services.Endpoint
	store     *session.Store
	metrics   *Metrics
	security  SecurityConfig
	logger    logging.Logger

	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger configures structured logging.
func WithServerLogger(l logging.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithSecurity overrides the default security configuration.
func WithSecurity(sec SecurityConfig) ServerOption {
	return func(s *Server) { s.security = sec }
}

// WithMetrics overrides the default metrics instance.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates a Server over the given collaborators.
func NewServer(
	cfg Config,
	caller *services.Client,
	provider *fallback.Provider,
	endpoints map[services.Capability]services.Endpoint,
	store *session.Store,
	opts ...ServerOption,
) *Server {
	s := &Server{
		cfg:       cfg,
		caller:    caller,
		provider:  provider,
		endpoints: endpoints,
		store:     store,
		security:  DefaultSecurityConfig(),
		logger:    logging.NewDefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	return s
}

// Routes builds the request multiplexer with all handlers wrapped in the
// metrics and security middleware.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return s.metricsMiddleware(SecurityMiddleware(s.security, h))
	}
	mux.HandleFunc("/api/analyze", wrap(s.handleAnalyze))
	mux.HandleFunc("/api/summary", wrap(s.handleSummary))
	mux.HandleFunc("/api/status", wrap(s.handleStatus))
	mux.HandleFunc("/api/tools/", wrap(s.handleTool))
	mux.HandleFunc("/healthz", wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// listener fails. Shutdown is graceful with a bounded timeout.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.cfg.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// metricsMiddleware tracks in-flight and total requests for every handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest(r.URL.Path)
		next(w, r)
	}
}

// handleAnalyze triggers a full workflow run from a multipart upload.
//
// Form fields: positions and budgets (files, required); org_url, org_name,
// programs_per_department, cost_threshold, insights (optional overrides).
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}

	positions, err := s.formFile(r, "positions", upload.KindPositions)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	budgets, err := s.formFile(r, "budgets", upload.KindBudgets)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := workflow.Inputs{
		Positions:             positions,
		Budgets:               budgets,
		OrgURL:                formValue(r, "org_url", s.cfg.OrgURL),
		OrgName:               formValue(r, "org_name", s.cfg.OrgName),
		ProgramsPerDepartment: formIntValue(r, "programs_per_department", s.cfg.ProgramsPerDepartment),
		CostThreshold:         formIntValue(r, "cost_threshold", s.cfg.CostThreshold),
	}

	insights := s.cfg.Insights
	if v := r.FormValue("insights"); v != "" {
		insights = v == "true" || v == "1"
	}

	opts := []workflow.SequencerOption{
		workflow.WithStore(s.store),
		workflow.WithInsights(insights),
		workflow.WithSequencerLogger(s.logger),
	}
	if s.cfg.LiveScoring {
		opts = append(opts, workflow.WithScoringStrategy(workflow.LiveScoring{
			Caller:   s.caller,
			Endpoint: s.endpoints[services.CapabilityEvaluation],
			Provider: s.provider,
		}))
	}

	seq := workflow.NewSequencer(s.caller, s.provider, s.endpoints, silentRenderer{}, opts...)

	start := time.Now()
	summary, err := seq.Run(r.Context(), in)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveWorkflowRun("failure", elapsed.Seconds())
		s.logger.Error("workflow run failed", err, logging.String("remote_addr", r.RemoteAddr))
		s.writeError(w, workflowErrorStatus(err), err.Error())
		return
	}

	s.metrics.ObserveWorkflowRun("success", elapsed.Seconds())
	s.logger.Info("workflow run completed",
		logging.Int("total_programs", summary.TotalPrograms),
		logging.String("duration", elapsed.String()))
	s.writeJSON(w, http.StatusOK, summary)
}

// handleSummary returns the most recently completed workflow summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	summary, ok := s.store.Latest()
	if !ok {
		s.writeError(w, http.StatusNotFound, "no completed analysis")
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// handleStatus probes all configured services and reports availability.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	statuses := s.caller.Probe(r.Context(), s.endpoints)
	s.writeJSON(w, http.StatusOK, map[string]any{"services": statuses})
}

// handleTool invokes a single capability outside the workflow. The tool name
// is the last path segment: /api/tools/program-inventory etc.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}

	tool := strings.TrimPrefix(r.URL.Path, "/api/tools/")
	res, err := s.runTool(r, tool)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !res.OK() {
		s.writeError(w, http.StatusBadGateway, res.FailureMessage())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Payload())
}

// runTool dispatches a tool request to the matching capability, falling back
// to canned results when the endpoint is an unconfigured placeholder.
func (s *Server) runTool(r *http.Request, tool string) (services.CallResult, error) {
	ctx := r.Context()

	switch tool {
	case "program-inventory":
		file, err := s.formFile(r, "file", upload.KindPositions)
		if err != nil {
			return services.CallResult{}, err
		}
		ep := s.endpoints[services.CapabilityInventory]
		if s.provider.ShouldFallback(ep) {
			return s.provider.Inventory(file), nil
		}
		return s.caller.ProgramInventory(ctx, ep, file,
			formValue(r, "org_url", s.cfg.OrgURL),
			formIntValue(r, "programs_per_department", s.cfg.ProgramsPerDepartment)), nil

	case "budget-allocation":
		inventory, err := s.formFile(r, "file", upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		budgets, err := s.formFile(r, "budgets", upload.KindBudgets)
		if err != nil {
			return services.CallResult{}, err
		}
		ep := s.endpoints[services.CapabilityAllocation]
		if s.provider.ShouldFallback(ep) {
			return s.provider.Allocation(), nil
		}
		return s.caller.BudgetAllocation(ctx, ep, inventory, budgets), nil

	case "program-evaluation":
		file, err := s.formFile(r, "file", upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		ep := s.endpoints[services.CapabilityEvaluation]
		if s.provider.ShouldFallback(ep) {
			return s.provider.Evaluation(), nil
		}
		return s.caller.ProgramEvaluation(ctx, ep, file,
			formValue(r, "government_website_url", s.cfg.OrgURL),
			formIntValue(r, "cost_threshold", s.cfg.CostThreshold)), nil

	case "program-insights":
		file, err := s.formFile(r, "file", upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		orgName := formValue(r, "organization_name", s.cfg.OrgName)
		ep := s.endpoints[services.CapabilityInsights]
		if s.provider.ShouldFallback(ep) {
			return s.provider.Insights(orgName), nil
		}
		return s.caller.ProgramInsights(ctx, ep, file, orgName), nil

	case "benchmark-analysis":
		file, err := s.formFile(r, "file", upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		return s.caller.BenchmarkAnalysis(ctx, s.endpoints[services.CapabilityBenchmark], file), nil

	default:
		return services.CallResult{}, fmt.Errorf("unknown tool %q", tool)
	}
}

// handleHealth is a liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves Prometheus metrics. GET only.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// formFile extracts one uploaded file from a multipart request.
func (s *Server) formFile(r *http.Request, field string, kind upload.Kind) (upload.File, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return upload.File{}, fmt.Errorf("missing %s upload: %w", field, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return upload.File{}, fmt.Errorf("reading %s upload: %w", field, err)
	}
	return upload.New(header.Filename, content, kind), nil
}

// methodNotAllowed rejects a request with 405 and logs the attempt.
func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("method not allowed",
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path))
	s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, map[string]string{"error": message})
}

// workflowErrorStatus maps a workflow error to an HTTP status code.
func workflowErrorStatus(err error) int {
	var cfgErr *apperrors.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case apperrors.IsTimeout(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// formValue returns the form field value or the fallback when absent.
func formValue(r *http.Request, field, fallbackValue string) string {
	if v := r.FormValue(field); v != "" {
		return v
	}
	return fallbackValue
}

// formIntValue returns the form field parsed as int, or the fallback when
// absent or invalid.
func formIntValue(r *http.Request, field string, fallbackValue int) int {
	if v := r.FormValue(field); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallbackValue
}

// silentRenderer satisfies workflow.Renderer for HTTP runs, where results are
// returned in the response body instead of rendered to a terminal.
type silentRenderer struct{}

func (silentRenderer) RenderSuccess(workflow.Summary)    {}
func (silentRenderer) RenderError(workflow.Step, string) {}
