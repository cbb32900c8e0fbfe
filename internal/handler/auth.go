package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sudoku-arena/internal/config"
	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/service"
)

type contextKey string

const playerContextKey contextKey = "player"

// Auth issues and verifies bearer tokens for the API and the
// WebSocket endpoint.
type Auth struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewAuth creates a token authority from the auth configuration
func NewAuth(cfg *config.AuthConfig) *Auth {
	return &Auth{
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
	}
}

// IssueToken signs a token identifying the player.
func (a *Auth) IssueToken(player domain.PlayerInfo, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(player.ID, 10),
		"name": player.Username,
		"iat":  now.Unix(),
		"exp":  now.Add(a.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyToken parses a signed token and returns the player identity.
func (a *Auth) VerifyToken(tokenString string) (domain.PlayerInfo, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.PlayerInfo{}, domain.ErrBadCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.PlayerInfo{}, domain.ErrBadCredentials
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return domain.PlayerInfo{}, domain.ErrBadCredentials
	}
	name, _ := claims["name"].(string)

	return domain.PlayerInfo{ID: id, Username: name}, nil
}

// authenticate requires a valid bearer token and puts the player
// identity on the request context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			h.writeError(w, http.StatusUnauthorized, domain.ErrBadCredentials)
			return
		}
		player, err := h.auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			h.writeError(w, http.StatusUnauthorized, domain.ErrBadCredentials)
			return
		}
		ctx := context.WithValue(r.Context(), playerContextKey, player)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// playerFrom returns the authenticated player from the request context
func playerFrom(r *http.Request) domain.PlayerInfo {
	player, _ := r.Context().Value(playerContextKey).(domain.PlayerInfo)
	return player
}

// authPayload is the response to a successful register or login
type authPayload struct {
	Token  string         `json:"token"`
	Player *domain.Player `json:"player"`
}

// Register creates a player account and returns a token
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	player, err := h.authService.Register(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	token, err := h.auth.IssueToken(domain.PlayerInfo{ID: player.ID, Username: player.Username}, time.Now())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    authPayload{Token: token, Player: player},
	})
}

// Login verifies credentials and returns a token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	player, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if domain.IsAuthorization(err) {
			h.writeError(w, http.StatusUnauthorized, err)
			return
		}
		h.writeDomainError(w, err)
		return
	}

	token, err := h.auth.IssueToken(domain.PlayerInfo{ID: player.ID, Username: player.Username}, time.Now())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeSuccess(w, authPayload{Token: token, Player: player})
}
