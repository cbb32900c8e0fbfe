package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/service"
	"github.com/sudoku-arena/internal/websocket"
)

// Handler provides HTTP handlers for the arena API
type Handler struct {
	auth         *Auth
	authService  *service.AuthService
	games        *service.GameService
	leaderboards *service.LeaderboardService
	groups       *service.GroupService
	challenges   *service.ChallengeService
	matches      *service.MatchService
	hub          *websocket.Hub
	logger       *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	auth *Auth,
	authService *service.AuthService,
	games *service.GameService,
	leaderboards *service.LeaderboardService,
	groups *service.GroupService,
	challenges *service.ChallengeService,
	matches *service.MatchService,
	hub *websocket.Hub,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:         auth,
		authService:  authService,
		games:        games,
		leaderboards: leaderboards,
		groups:       groups,
		challenges:   challenges,
		matches:      matches,
		hub:          hub,
		logger:       logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)

	// Health check
	r.Get("/health", h.HealthCheck)
	r.Get("/ready", h.ReadyCheck)

	// WebSocket endpoint (token authenticated)
	r.Get("/ws", h.HandleWebSocket)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Public leaderboards
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/leaderboard/top100", h.GetLeaderboardTop100)
		r.Get("/leaderboard/realtime", h.GetRealtimeStandings)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Post("/games", h.SubmitGame)
			r.Get("/games/today", h.GetTodayRecord)
			r.Get("/medals", h.GetMedals)
			r.Get("/leaderboard/rank", h.GetPlayerRank)

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", h.CreateGroup)
				r.Route("/{groupID}", func(r chi.Router) {
					r.Get("/", h.GetGroup)
					r.Post("/join", h.JoinGroup)
					r.Post("/leave", h.LeaveGroup)
					r.Get("/members", h.GetGroupMembers)
					r.Get("/leaderboard", h.GetGroupLeaderboard)
				})
			})

			r.Route("/challenges", func(r chi.Router) {
				r.Post("/", h.CreateChallenge)
				r.Get("/", h.ListChallenges)
				r.Route("/{challengeID}", func(r chi.Router) {
					r.Post("/accept", h.AcceptChallenge)
					r.Post("/reject", h.RejectChallenge)
					r.Post("/complete", h.CompleteChallenge)
				})
			})

			r.Route("/matches", func(r chi.Router) {
				r.Post("/", h.CreateMatch)
				r.Route("/{matchID}", func(r chi.Router) {
					r.Get("/", h.GetMatch)
					r.Post("/accept", h.AcceptMatch)
					r.Post("/start", h.StartMatch)
					r.Post("/complete", h.CompleteMatch)
					r.Post("/cancel", h.CancelMatch)
				})
			})
		})

		// WebSocket info endpoint
		r.Get("/ws/stats", h.GetWebSocketStats)
	})

	return r
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeSuccess writes a successful JSON response
func (h *Handler) writeSuccess(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError writes an error JSON response
func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// writeDomainError maps classified domain errors onto HTTP statuses.
// Unclassified errors are treated as internal and not leaked.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		h.writeError(w, http.StatusBadRequest, err)
	case domain.IsAuthorization(err):
		h.writeError(w, http.StatusForbidden, err)
	case domain.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, err)
	case domain.IsConflict(err):
		h.writeError(w, http.StatusConflict, err)
	default:
		h.logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
	}
}

// decodeBody decodes a JSON request body.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidRequest
	}
	return nil
}

// urlParamInt64 extracts a numeric URL parameter.
func urlParamInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidRequest
	}
	return id, nil
}

// queryLimit extracts an optional ?limit= parameter, 0 meaning default.
func queryLimit(r *http.Request) int {
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// queryPeriod extracts the ?period= parameter, defaulting to all.
func queryPeriod(r *http.Request) domain.Period {
	if s := r.URL.Query().Get("period"); s != "" {
		return domain.Period(s)
	}
	return domain.PeriodAll
}

// HandleWebSocket authenticates the token and upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	player, err := h.auth.VerifyToken(token)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, domain.ErrInvalidRequest)
		return
	}
	websocket.ServeWs(h.hub, player, h.logger, w, r)
}

// GetWebSocketStats returns WebSocket connection statistics
func (h *Handler) GetWebSocketStats(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]interface{}{
		"total_connections": h.hub.GetTotalConnections(),
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "healthy"})
}

// ReadyCheck returns service readiness status
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "ready"})
}
