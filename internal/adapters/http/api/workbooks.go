package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/repository"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// WorkbookHandler accepts workbook uploads.
type WorkbookHandler struct {
	deps     Dependencies
	maxBytes int64
}

// NewWorkbookHandler creates a new workbook handler.
func NewWorkbookHandler(deps Dependencies, maxBytes int64) *WorkbookHandler {
	return &WorkbookHandler{deps: deps, maxBytes: maxBytes}
}

// HandlePut handles PUT /workbooks/{kind} requests. The body is a JSON
// workbook snapshot.
func (h *WorkbookHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_workbook"
	kind, err := repository.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	wb, err := workbook.Decode(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.PutWorkbook(r.Context(), kind, wb); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
