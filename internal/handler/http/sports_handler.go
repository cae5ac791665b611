package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/sportsdata"
)

// SportsHandler proxies cached sports data reads for the app.
type SportsHandler struct {
	fetcher sportsdata.Fetcher
	logger  zerolog.Logger
}

// NewSportsHandler creates a new sports data HTTP handler
func NewSportsHandler(fetcher sportsdata.Fetcher, logger zerolog.Logger) *SportsHandler {
	return &SportsHandler{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "sports_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *SportsHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/sports/:sport/odds - current betting lines
	// GET /api/v1/sports/:sport/games?date=YYYY-MM-DD - schedule
	// GET /api/v1/sports/:sport/news - recent news
	// GET /api/v1/sports/:sport/teams/:team_id/stats - team statistics
	mux.HandleFunc("/api/v1/sports/", h.handleSports)
}

func (h *SportsHandler) handleSports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/sports/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/sports/:sport/...")
		return
	}
	sport := parts[0]

	var (
		body json.RawMessage
		err  error
	)
	switch {
	case len(parts) == 2 && parts[1] == "odds":
		body, err = h.fetcher.Odds(r.Context(), sport)
	case len(parts) == 2 && parts[1] == "games":
		date := r.URL.Query().Get("date")
		if date == "" {
			h.errorResponse(w, http.StatusBadRequest, "date query parameter is required")
			return
		}
		body, err = h.fetcher.Games(r.Context(), sport, date)
	case len(parts) == 2 && parts[1] == "news":
		body, err = h.fetcher.News(r.Context(), sport)
	case len(parts) == 4 && parts[1] == "teams" && parts[3] == "stats":
		body, err = h.fetcher.TeamStats(r.Context(), sport, parts[2])
	default:
		h.errorResponse(w, http.StatusNotFound, "unknown sports data resource")
		return
	}

	if err != nil {
		status := http.StatusBadGateway
		switch apperr.KindOf(err) {
		case apperr.NotFound:
			status = http.StatusNotFound
		case apperr.ResourceExhausted:
			status = http.StatusTooManyRequests
		}
		h.logger.Warn().Err(err).Str("sport", sport).Str("path", r.URL.Path).Msg("sports data fetch failed")
		h.errorResponse(w, status, "failed to fetch sports data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}

// errorResponse writes a JSON error response
func (h *SportsHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
