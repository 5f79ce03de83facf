package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"donorhub/internal/archive"
	"donorhub/internal/domain"
	"donorhub/internal/middleware"
	"donorhub/internal/report"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type App struct {
	Logger     zerolog.Logger
	DB         Pinger
	Donations  domain.DonationRepository
	Volunteers domain.VolunteerRepository
	Users      domain.UserRepository
	Reports    *report.Generator
	Archiver   *archive.Archiver
	Programs   []domain.Program
	Now        func() time.Time
}

const internalErrorBody = `{"error":{"code":"internal","message":"internal server error"}}`

// json encodes v before writing the header so an unencodable value turns
// into a 500 instead of a truncated 2xx.
func (a *App) json(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		a.Logger.Error().Err(err).Int("status", code).Msg("encode response")
		code, body = http.StatusInternalServerError, []byte(internalErrorBody)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorBody{"error": {Code: errCode, Message: message}})
}

// fail maps domain and report errors onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without internal detail.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, report.ErrUnknownType),
		errors.Is(err, report.ErrUnknownFormat),
		errors.Is(err, report.ErrInvalidFilter),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "insufficient permissions")
	default:
		a.logger(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// logger prefers the request scoped logger installed by middleware.Logger.
func (a *App) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}
