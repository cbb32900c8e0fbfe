package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/postgres"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthService manages player accounts. The core trusts the identity it
// produces; everything downstream receives a PlayerInfo.
type AuthService struct {
	postgres *postgres.Repository
	logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(pg *postgres.Repository, logger *slog.Logger) *AuthService {
	return &AuthService{
		postgres: pg,
		logger:   logger,
	}
}

// Register creates a new player account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.Player, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" || email == "" || len(req.Password) < 6 {
		return nil, domain.ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return s.postgres.CreatePlayer(ctx, domain.Player{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// Login verifies credentials and returns the player.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*domain.Player, error) {
	player, err := s.postgres.GetPlayerByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrBadCredentials
	}
	return player, nil
}
