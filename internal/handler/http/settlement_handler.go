package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/models"
	"github.com/rivalbet/settlement-service/internal/service"
)

// SettlementHandler handles HTTP requests for settlement operations
type SettlementHandler struct {
	settlement   *service.SettlementService
	combat       *service.CombatService
	leaderboards *service.LeaderboardService
	wallets      *service.WalletService
	adminToken   string
	logger       zerolog.Logger
}

// NewSettlementHandler creates a new settlement HTTP handler
func NewSettlementHandler(
	settlement *service.SettlementService,
	combat *service.CombatService,
	leaderboards *service.LeaderboardService,
	wallets *service.WalletService,
	adminToken string,
	logger zerolog.Logger,
) *SettlementHandler {
	return &SettlementHandler{
		settlement:   settlement,
		combat:       combat,
		leaderboards: leaderboards,
		wallets:      wallets,
		adminToken:   adminToken,
		logger:       logger.With().Str("component", "settlement_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *SettlementHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST /api/v1/admin/settle/:game_id - force-settle a game
	// POST /api/v1/admin/events/:event_id/refund - refund an event's pools
	// POST /api/v1/admin/leaderboards/:type/refresh - rebuild a snapshot
	// POST /api/v1/admin/grants - grant a bonus or promotion
	mux.HandleFunc("/api/v1/admin/settle/", h.handleAdminSettle)
	mux.HandleFunc("/api/v1/admin/events/", h.handleAdminEventRefund)
	mux.HandleFunc("/api/v1/admin/leaderboards/", h.handleAdminLeaderboardRefresh)
	mux.HandleFunc("/api/v1/admin/grants", h.handleAdminGrant)

	// POST /api/v1/bets/:bet_id/cancel - user cancels a pending bet
	mux.HandleFunc("/api/v1/bets/", h.handleCancelBet)

	// GET /api/v1/leaderboards/:type - read a snapshot
	mux.HandleFunc("/api/v1/leaderboards/", h.handleGetLeaderboard)

	// GET /api/v1/users/:user_id/stats - per-user stats for a window
	mux.HandleFunc("/api/v1/users/", h.handleGetUserStats)

	// GET /api/v1/wallets/me - caller's balance
	// GET /api/v1/wallets/me/transactions - caller's ledger
	mux.HandleFunc("/api/v1/wallets/me", h.handleGetWallet)
	mux.HandleFunc("/api/v1/wallets/me/transactions", h.handleGetTransactions)
}

// requireAdmin checks the admin token header. An empty configured token
// disables the admin surface entirely.
func (h *SettlementHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if h.adminToken == "" || r.Header.Get("X-Admin-Token") != h.adminToken {
		h.errorResponse(w, http.StatusForbidden, "admin token required")
		return false
	}
	return true
}

// requireUser extracts the authenticated user ID set by the API gateway.
func (h *SettlementHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		h.errorResponse(w, http.StatusUnauthorized, "user identity required")
		return "", false
	}
	return userID, true
}

// handleAdminSettle handles POST /api/v1/admin/settle/:game_id
func (h *SettlementHandler) handleAdminSettle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/settle/")
	if gameID == "" || strings.Contains(gameID, "/") {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/admin/settle/:game_id")
		return
	}

	summary, err := h.settlement.SettleGame(r.Context(), gameID)
	if err != nil {
		h.serviceError(w, err, "failed to settle game")
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

// handleAdminEventRefund handles POST /api/v1/admin/events/:event_id/refund
func (h *SettlementHandler) handleAdminEventRefund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/events/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "refund" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/admin/events/:event_id/refund")
		return
	}

	summary, err := h.combat.RefundEvent(r.Context(), parts[0])
	if err != nil {
		h.serviceError(w, err, "failed to refund event")
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

// handleAdminLeaderboardRefresh handles POST /api/v1/admin/leaderboards/:type/refresh
func (h *SettlementHandler) handleAdminLeaderboardRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/leaderboards/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[1] != "refresh" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/admin/leaderboards/:type/refresh")
		return
	}

	lbType, ok := parseLeaderboardType(parts[0])
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "unknown leaderboard type")
		return
	}

	snapshot, err := h.leaderboards.Refresh(r.Context(), lbType, time.Now().UTC())
	if err != nil {
		h.serviceError(w, err, "failed to refresh leaderboard")
		return
	}
	h.jsonResponse(w, http.StatusOK, snapshot)
}

// grantRequest is the POST body for admin grants.
type grantRequest struct {
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"` // bonus or promotion
	Description string  `json:"description,omitempty"`
}

// handleAdminGrant handles POST /api/v1/admin/grants
func (h *SettlementHandler) handleAdminGrant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}

	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		h.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	entry, err := h.wallets.Grant(r.Context(), req.UserID,
		decimal.NewFromFloat(req.Amount), models.TransactionType(req.Type), req.Description)
	if err != nil {
		h.serviceError(w, err, "failed to apply grant")
		return
	}
	h.jsonResponse(w, http.StatusCreated, entry)
}

// handleCancelBet handles POST /api/v1/bets/:bet_id/cancel
func (h *SettlementHandler) handleCancelBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/bets/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "cancel" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/bets/:bet_id/cancel")
		return
	}

	bet, err := h.settlement.CancelBet(r.Context(), userID, parts[0])
	if err != nil {
		h.serviceError(w, err, "failed to cancel bet")
		return
	}
	h.jsonResponse(w, http.StatusOK, bet)
}

// handleGetLeaderboard handles GET /api/v1/leaderboards/:type
func (h *SettlementHandler) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/v1/leaderboards/")
	lbType, ok := parseLeaderboardType(name)
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "unknown leaderboard type")
		return
	}

	snapshot, err := h.leaderboards.Get(r.Context(), lbType)
	if err != nil {
		h.serviceError(w, err, "failed to load leaderboard")
		return
	}

	// Optional ?metric= narrows the response to a single ranking and
	// ?limit= truncates it. The stored snapshot is shared, so shape a copy.
	metricParam := r.URL.Query().Get("metric")
	limitParam := r.URL.Query().Get("limit")
	if metricParam != "" || limitParam != "" {
		metric, ok := parseRankingMetric(metricParam)
		if metricParam != "" && !ok {
			h.errorResponse(w, http.StatusBadRequest, "unknown ranking metric")
			return
		}
		limit := 0
		if limitParam != "" {
			limit, err = strconv.Atoi(limitParam)
			if err != nil || limit < 1 {
				h.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
		}

		shaped := *snapshot
		shaped.Rankings = make(map[models.RankingMetric][]models.LeaderboardEntry, len(snapshot.Rankings))
		for m, entries := range snapshot.Rankings {
			if metricParam != "" && m != metric {
				continue
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			shaped.Rankings[m] = entries
		}
		snapshot = &shaped
	}
	h.jsonResponse(w, http.StatusOK, snapshot)
}

// handleGetUserStats handles GET /api/v1/users/:user_id/stats?window=daily
func (h *SettlementHandler) handleGetUserStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "stats" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/users/:user_id/stats")
		return
	}

	lbType := models.LeaderboardAllTime
	if window := r.URL.Query().Get("window"); window != "" {
		parsed, ok := parseLeaderboardType(window)
		if !ok {
			h.errorResponse(w, http.StatusBadRequest, "unknown stats window")
			return
		}
		lbType = parsed
	}

	stats, err := h.leaderboards.UserStats(r.Context(), parts[0], lbType)
	if err != nil {
		h.serviceError(w, err, "failed to compute user stats")
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// handleGetWallet handles GET /api/v1/wallets/me
func (h *SettlementHandler) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	wallet, err := h.wallets.Wallet(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "failed to load wallet")
		return
	}
	h.jsonResponse(w, http.StatusOK, wallet)
}

// handleGetTransactions handles GET /api/v1/wallets/me/transactions
func (h *SettlementHandler) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.wallets.History(r.Context(), userID, 50)
	if err != nil {
		h.serviceError(w, err, "failed to load transactions")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"user_id":      userID,
		"count":        len(entries),
		"transactions": entries,
	})
}

func parseRankingMetric(name string) (models.RankingMetric, bool) {
	for _, m := range models.AllRankingMetrics {
		if string(m) == name {
			return m, true
		}
	}
	return "", false
}

func parseLeaderboardType(name string) (models.LeaderboardType, bool) {
	switch models.LeaderboardType(name) {
	case models.LeaderboardDaily, models.LeaderboardWeekly, models.LeaderboardMonthly, models.LeaderboardAllTime:
		return models.LeaderboardType(name), true
	}
	return "", false
}

// serviceError maps an application error kind to an HTTP status.
func (h *SettlementHandler) serviceError(w http.ResponseWriter, err error, msg string) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.InvalidArgument:
		status = http.StatusBadRequest
	case apperr.PermissionDenied:
		status = http.StatusForbidden
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.FailedPrecondition:
		status = http.StatusConflict
	case apperr.ResourceExhausted:
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg(msg)
	} else {
		h.logger.Debug().Err(err).Msg(msg)
	}
	h.errorResponse(w, status, err.Error())
}

// jsonResponse writes a JSON response
func (h *SettlementHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// errorResponse writes a JSON error response
func (h *SettlementHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
