package api

import (
	"net/http"

	service "github.com/okian/poolpick/internal/app"
	"github.com/okian/poolpick/pkg/logger"
)

// PicksHandler handles pick generation requests.
type PicksHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// HandlePostPicks handles POST /picks requests.
func (h *PicksHandler) HandlePostPicks(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_picks"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req service.Request
	if err := decode(w, r, &req); err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Generate(r.Context(), req)
	if err != nil {
		h.logger.Warn(r.Context(), "generate failed", logger.String("op", op), logger.Error(err))
		writeError(w, WrapKind(op, kindOf(err), err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// kindOf keeps domain failures as bad requests and everything else as
// internal.
func kindOf(err error) error {
	if status, _ := classify(err); status == http.StatusBadRequest {
		return ErrBadRequest
	}
	return ErrInternal
}
