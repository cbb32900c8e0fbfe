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

// CreateGroupRequest is the payload for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Password    string `json:"password,omitempty"`
}

// JoinGroupRequest is the payload for joining a group
type JoinGroupRequest struct {
	Password string `json:"password,omitempty"`
}

// GroupService manages groups and memberships
type GroupService struct {
	postgres *postgres.Repository
	logger   *slog.Logger
}

// NewGroupService creates a new group service
func NewGroupService(pg *postgres.Repository, logger *slog.Logger) *GroupService {
	return &GroupService{
		postgres: pg,
		logger:   logger,
	}
}

// Create creates a group with the caller as its leader. A password
// makes the group private.
func (s *GroupService) Create(ctx context.Context, creator domain.PlayerInfo, req CreateGroupRequest) (*domain.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidRequest
	}

	group := domain.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing group password: %w", err)
		}
		group.PasswordHash = string(hash)
	}

	return s.postgres.CreateGroup(ctx, group, creator.ID)
}

// Get returns a group by id.
func (s *GroupService) Get(ctx context.Context, groupID int64) (*domain.Group, error) {
	return s.postgres.GetGroup(ctx, groupID)
}

// Join adds the caller to a group, checking the password for private
// groups.
func (s *GroupService) Join(ctx context.Context, player domain.PlayerInfo, groupID int64, req JoinGroupRequest) error {
	group, err := s.postgres.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if group.Private {
		if err := bcrypt.CompareHashAndPassword([]byte(group.PasswordHash), []byte(req.Password)); err != nil {
			return domain.ErrWrongPassword
		}
	}

	return s.postgres.AddMember(ctx, groupID, player.ID)
}

// Leave removes the caller from a group.
func (s *GroupService) Leave(ctx context.Context, player domain.PlayerInfo, groupID int64) error {
	return s.postgres.RemoveMember(ctx, groupID, player.ID)
}

// Members lists a group's members with their win/loss/draw records.
func (s *GroupService) Members(ctx context.Context, groupID int64) ([]domain.GroupMember, error) {
	if _, err := s.postgres.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.postgres.ListMembers(ctx, groupID)
}
