package api

import (
	"net/http"

	service "github.com/okian/poolpick/internal/app"
	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/pkg/logger"
)

// CombineHandler handles multi-source combination requests.
type CombineHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// HandlePostCombine handles POST /combine requests.
func (h *CombineHandler) HandlePostCombine(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_combine"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req service.CombineRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Combine(r.Context(), req)
	if err != nil {
		h.logger.Warn(r.Context(), "combine failed", logger.String("op", op), logger.Error(err))
		writeError(w, WrapKind(op, kindOf(err), err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ReportHandler handles value report requests.
type ReportHandler struct {
	deps   Dependencies
	logger logger.Logger
}

type reportRequest struct {
	Entries []model.Entry `json:"entries"`
}

type reportResponse struct {
	Plays  []fusion.ValuePlay `json:"plays"`
	Report fusion.Report      `json:"report"`
}

// HandlePostReport handles POST /value-report requests.
func (h *ReportHandler) HandlePostReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_value_report"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req reportRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	plays, report, err := h.deps.ValueReport(r.Context(), req.Entries)
	if err != nil {
		h.logger.Warn(r.Context(), "value report failed", logger.String("op", op), logger.Error(err))
		writeError(w, WrapKind(op, kindOf(err), err))
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Plays: plays, Report: report})
}
