package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ReportHandler serves the weekly report and its parts.
type ReportHandler struct {
	deps Dependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleReport handles GET /report requests.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	rep, err := h.deps.Report(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleTeam handles GET /report/team requests.
func (h *ReportHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	team, err := h.deps.Team(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// HandleAthletes handles GET /report/athletes requests.
func (h *ReportHandler) HandleAthletes(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_athletes"
	athletes, err := h.deps.Athletes(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, athletes)
}

// HandleAthlete handles GET /report/athletes/{name} requests.
func (h *ReportHandler) HandleAthlete(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_athlete"
	name := mux.Vars(r)["name"]
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	a, err := h.deps.Athlete(r.Context(), name)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
