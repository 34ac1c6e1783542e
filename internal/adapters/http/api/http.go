// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/repository"
	service "github.com/dagoperezh-lgtm/athlos-360-app/internal/app"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/report"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	StatsProvider

	Report(ctx context.Context) (report.Report, error)
	Team(ctx context.Context) (service.Team, error)
	Athletes(ctx context.Context) ([]report.Athlete, error)
	Athlete(ctx context.Context, name string) (report.Athlete, error)

	// PutWorkbook replaces the current or history workbook.
	PutWorkbook(ctx context.Context, kind repository.Kind, wb *workbook.Workbook) error
}

// Server wires HTTP routes for the report API.
type Server struct {
	maxUploadBytes int64

	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	reportHandler   *ReportHandler
	workbookHandler *WorkbookHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{maxUploadBytes: defaultMaxUploadBytes}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.reportHandler = NewReportHandler(deps)
	s.workbookHandler = NewWorkbookHandler(deps, s.maxUploadBytes)
	return s
}

// Register attaches all HTTP routes to router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	if router == nil {
		panic("router is nil")
	}

	router.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	router.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	router.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleReport, "report")).Methods(http.MethodGet)
	router.HandleFunc("/report/team", MetricsMiddleware(s.reportHandler.HandleTeam, "report_team")).Methods(http.MethodGet)
	router.HandleFunc("/report/athletes", MetricsMiddleware(s.reportHandler.HandleAthletes, "report_athletes")).Methods(http.MethodGet)
	router.HandleFunc("/report/athletes/{name}", MetricsMiddleware(s.reportHandler.HandleAthlete, "report_athlete")).Methods(http.MethodGet)

	router.HandleFunc("/workbooks/{kind}", MetricsMiddleware(s.workbookHandler.HandlePut, "workbooks")).Methods(http.MethodPut)
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

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service failures into API errors.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoSnapshot), errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, service.ErrAthleteNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrInvalidKind), errors.Is(err, repository.ErrNilWorkbook):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
