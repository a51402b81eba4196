package airports

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hava/airport-lookup/backend/httpx"
)

const usage = "Airport lookup API\n\n" +
	"GET /airport?iata_code=<code>\n\n" +
	"Returns the airport with the given IATA code together with its city and country,\n" +
	"for example /airport?iata_code=HYD\n"

// Handler exposes the airport lookup endpoints.
type Handler struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewHandler creates an airports handler.
func NewHandler(resolver *Resolver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{resolver: resolver, logger: logger}
}

// Routes registers airport routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Get("/airport", h.getAirport)
	r.Get("/health", h.health)
	return r
}

type airportResponse struct {
	Airport ResolvedAirport `json:"airport"`
}

func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	httpx.Text(w, http.StatusOK, usage)
}

func (h *Handler) getAirport(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("iata_code")

	airport, err := h.resolver.Resolve(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			httpx.Error(w, http.StatusBadRequest, "Missing iata_code parameter")
		case errors.Is(err, ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "Airport not found")
		default:
			h.logFailure(code, err)
			httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.logger.Debug("airport resolved", "code", code,
		"city", airport.City.Present(), "country", airport.Country.Present())
	httpx.WriteJSON(w, http.StatusOK, airportResponse{Airport: airport})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.resolver.Ping(r.Context()); err != nil {
		h.logger.Warn("store health check failed", "error", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) logFailure(code string, err error) {
	switch {
	case errors.Is(err, ErrNotConnected):
		h.logger.Error("lookup before store connected", "code", code)
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Error("lookup timed out", "code", code, "error", err)
	case errors.Is(err, context.Canceled):
		h.logger.Warn("lookup canceled", "code", code, "error", err)
	default:
		h.logger.Error("lookup failed", "code", code, "error", err)
	}
}
