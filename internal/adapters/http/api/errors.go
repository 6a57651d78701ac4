package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/poolpick/internal/domain/combine"
	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/strategy"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limited")
	ErrInternal    = errors.New("internal error")
)

// Error carries the operation, a sentinel kind and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewKind returns an error of kind for op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// WrapKind wraps err as kind for op.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// classify maps a domain error to an HTTP status and a stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, game.ErrMalformedGameIdentifier):
		return http.StatusBadRequest, "malformed_game"
	case errors.Is(err, model.ErrInvalidConfidenceRange):
		return http.StatusBadRequest, "invalid_confidence"
	case errors.Is(err, model.ErrDuplicateConfidenceInSource):
		return http.StatusBadRequest, "duplicate_confidence"
	case errors.Is(err, model.ErrTeamNotInGame):
		return http.StatusBadRequest, "team_not_in_game"
	case errors.Is(err, model.ErrInvalidSourceWeight), errors.Is(err, model.ErrMissingSourceName):
		return http.StatusBadRequest, "invalid_source"
	case errors.Is(err, strategy.ErrUnknownStrategy):
		return http.StatusBadRequest, "unknown_strategy"
	case errors.Is(err, combine.ErrUnknownMode):
		return http.StatusBadRequest, "unknown_mode"
	case errors.Is(err, combine.ErrNoSources), errors.Is(err, fusion.ErrNoValuePlays):
		return http.StatusBadRequest, "empty_input"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
