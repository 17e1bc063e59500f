package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/nsxbet/abap-reviewer/pkg/advisor"
	"github.com/nsxbet/abap-reviewer/pkg/reviewer"
	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "2.0"

// requiredUnitFields must be present and non-null on every submitted unit.
var requiredUnitFields = []string{"pgm_name", "inc_name", "type"}

type handlers struct {
	reviewer     *reviewer.Reviewer
	logger       *slog.Logger
	maxBodyBytes int64
	concurrency  int
}

type healthResponse struct {
	OK      bool   `json:"ok"`
	Rule    int    `json:"rule"`
	Version string `json:"version"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// requestError is a client error answered with status.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func unprocessable(format string, args ...any) error {
	return &requestError{status: http.StatusUnprocessableEntity, msg: fmt.Sprintf(format, args...)}
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		OK:      true,
		Rule:    advisor.SAPNoteDraftFilter,
		Version: ServiceVersion,
	})
}

func (h *handlers) remediate(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := h.decode(w, r, &raw); err != nil {
		h.writeError(w, r, err)
		return
	}
	unit, err := decodeUnit(raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	scanned, err := h.reviewer.Scan(r.Context(), unit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scanned)
}

func (h *handlers) remediateArray(w http.ResponseWriter, r *http.Request) {
	var raws []json.RawMessage
	if err := h.decode(w, r, &raws); err != nil {
		h.writeError(w, r, err)
		return
	}
	units := make([]*types.SourceUnit, 0, len(raws))
	for i, raw := range raws {
		unit, err := decodeUnit(raw)
		if err != nil {
			h.writeError(w, r, errors.WithMessagef(err, "unit #%d", i))
			return
		}
		units = append(units, unit)
	}

	opts := []reviewer.ScanOption{reviewer.WithFindingsOnly()}
	if h.concurrency > 0 {
		opts = append(opts, reviewer.WithConcurrency(h.concurrency))
	}
	report, err := h.reviewer.ScanAll(r.Context(), units, opts...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Debug("batch scanned",
		"request_id", middleware.GetReqID(r.Context()),
		"units", report.Summary.Units,
		"findings", report.Summary.Findings,
	)
	h.writeJSON(w, http.StatusOK, report.Units)
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &requestError{status: http.StatusRequestEntityTooLarge, msg: err.Error()}
		}
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// decodeUnit checks the required fields of one unit and decodes it.
func decodeUnit(raw json.RawMessage) (*types.SourceUnit, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, unprocessable("unit must be a JSON object")
	}
	for _, name := range requiredUnitFields {
		v, ok := fields[name]
		if !ok || string(v) == "null" {
			return nil, unprocessable("field required: %s", name)
		}
	}

	var unit types.SourceUnit
	if err := json.Unmarshal(raw, &unit); err != nil {
		return nil, unprocessable("%v", err)
	}
	unit.Findings = nil
	return &unit, nil
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		status = reqErr.status
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}

	h.logger.Warn("request failed",
		"request_id", middleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	h.writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
