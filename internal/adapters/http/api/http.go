// Package api exposes the pick engine over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/poolpick/internal/app"
	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/pkg/logger"
)

const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. *service.Engine implements it.
type Dependencies interface {
	Generate(ctx context.Context, req service.Request) (service.Result, error)
	Combine(ctx context.Context, req service.CombineRequest) (service.CombineResult, error)
	ValueReport(ctx context.Context, entries []model.Entry) ([]fusion.ValuePlay, fusion.Report, error)
}

// Server wires HTTP routes for the pick API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	picksHandler   *PicksHandler
	combineHandler *CombineHandler
	reportHandler  *ReportHandler
	limiter        *Limiter
	logger         logger.Logger
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithLimiter guards the POST endpoints with l.
func WithLimiter(l *Limiter) ServerOption {
	return func(s *Server) {
		s.limiter = l
	}
}

// WithServerLogger sets the logger used for failed requests.
func WithServerLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.picksHandler = &PicksHandler{deps: deps, logger: s.logger}
	s.combineHandler = &CombineHandler{deps: deps, logger: s.logger}
	s.reportHandler = &ReportHandler{deps: deps, logger: s.logger}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/picks", MetricsMiddleware(s.limit(s.picksHandler.HandlePostPicks, "picks"), "picks"))
	mux.HandleFunc("/combine", MetricsMiddleware(s.limit(s.combineHandler.HandlePostCombine, "combine"), "combine"))
	mux.HandleFunc("/value-report", MetricsMiddleware(s.limit(s.reportHandler.HandlePostReport, "value_report"), "value_report"))
}

func (s *Server) limit(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	if s.limiter == nil {
		return next
	}
	return s.limiter.Middleware(next, endpoint)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decode reads a JSON body into v, rejecting unknown fields and bodies
// over one megabyte.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decode body: trailing data")
	}
	return nil
}
