package stats

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldline/triage/pkg/handlers"
	"github.com/fieldline/triage/pkg/routes"
)

// ErrInvalidWindow reports an out-of-range or unparsable days parameter.
var ErrInvalidWindow = errors.New("invalid stats window")

// Handler provides the HTTP endpoint for aggregate metrics.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "stats"),
	}
}

// Routes returns the route group definition for the stats endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/stats",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Summarize},
		},
	}
}

// Summarize returns aggregate metrics over a trailing window of days
// (query parameter "days", default 7).
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	days := defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidWindow)
			return
		}
		days = parsed
	}

	summary, err := h.sys.Summarize(r.Context(), days)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidWindow) {
			status = http.StatusBadRequest
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
