package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/puzzle"
	"github.com/sudoku-arena/internal/websocket"
)

// MatchService runs the synchronous contest lifecycle, coordinating the
// two players over the WebSocket relay.
type MatchService struct {
	store   ContestStore
	games   GameRecorder
	puzzles puzzle.Generator
	hub     *websocket.Hub
	logger  *slog.Logger
}

// NewMatchService creates a new live match service
func NewMatchService(store ContestStore, games GameRecorder, puzzles puzzle.Generator, hub *websocket.Hub, logger *slog.Logger) *MatchService {
	return &MatchService{
		store:   store,
		games:   games,
		puzzles: puzzles,
		hub:     hub,
		logger:  logger,
	}
}

// Create issues a live match invitation. The challenged player is
// notified over the relay if connected.
func (s *MatchService) Create(ctx context.Context, challenger domain.PlayerInfo, req CreateContestRequest) (*domain.Match, error) {
	if err := validateContestRequest(ctx, s.store, challenger, req); err != nil {
		return nil, err
	}

	m := domain.Match{
		ChallengerID: challenger.ID,
		ChallengedID: req.ChallengedID,
		GroupID:      req.GroupID,
		Difficulty:   req.Difficulty,
		PuzzleData:   s.puzzles.Generate(req.Difficulty),
		Status:       domain.MatchPending,
	}
	created, err := s.store.CreateMatch(ctx, m)
	if err != nil {
		return nil, err
	}

	s.hub.SendToPlayer(req.ChallengedID, websocket.Message{
		Type:    websocket.MessageTypeMatchEvent,
		MatchID: created.ID,
		Data: map[string]interface{}{
			"event":         "invited",
			"challenger_id": challenger.ID,
			"challenger":    challenger.Username,
			"difficulty":    req.Difficulty,
		},
	})
	return created, nil
}

// Get returns a match to one of its participants.
func (s *MatchService) Get(ctx context.Context, actor domain.PlayerInfo, matchID int64) (*domain.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsParticipant(actor.ID) {
		return nil, domain.ErrNotParticipant
	}
	return m, nil
}

// Accept activates a pending match.
func (s *MatchService) Accept(ctx context.Context, actor domain.PlayerInfo, matchID int64) (*domain.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := m.Accept(actor.ID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}
	s.hub.BroadcastMatchEvent(m.ID, "accepted", map[string]interface{}{
		"player_id": actor.ID,
		"username":  actor.Username,
	})
	return m, nil
}

// Start records that one side began playing and tells the room.
func (s *MatchService) Start(ctx context.Context, actor domain.PlayerInfo, matchID int64) error {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := m.Start(actor.ID, time.Now()); err != nil {
		return err
	}
	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return err
	}
	s.hub.BroadcastMatchEvent(m.ID, "started", map[string]interface{}{
		"player_id": actor.ID,
		"username":  actor.Username,
	})
	return nil
}

// Complete records one side's result. The first finisher waits for the
// opponent; the second completion resolves the match, updates group
// records, and pushes the final result to the room. Each completion
// feeds the ledger for that player.
func (s *MatchService) Complete(ctx context.Context, actor domain.PlayerInfo, matchID int64, req CompleteContestRequest) (*ContestCompletion, error) {
	if req.TimeSeconds < 0 || req.Mistakes < 0 {
		return nil, domain.ErrInvalidGame
	}

	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	result := domain.ContestResult{
		TimeSeconds: req.TimeSeconds,
		Mistakes:    req.Mistakes,
		Score:       domain.Score(m.Difficulty, req.TimeSeconds, req.Mistakes),
	}

	outcome, resolved, err := m.Complete(actor.ID, result, time.Now())
	if err != nil {
		return nil, err
	}

	if resolved {
		if err := s.store.ResolveContest(ctx, m.GroupID, m.ChallengerID, m.ChallengedID, outcome); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}

	game := domain.GameSubmission{
		Difficulty:  m.Difficulty,
		TimeSeconds: req.TimeSeconds,
		Mistakes:    req.Mistakes,
	}
	if _, err := s.games.SubmitGame(ctx, actor, game); err != nil {
		return nil, err
	}

	completion := &ContestCompletion{Score: result.Score, Resolved: resolved}
	if !resolved {
		s.hub.BroadcastMatchEvent(m.ID, "opponent_finished", map[string]interface{}{
			"player_id": actor.ID,
			"username":  actor.Username,
			"score":     result.Score,
		})
		return completion, nil
	}

	completion.Outcome = outcome
	switch outcome {
	case domain.OutcomeChallenger:
		completion.WinnerID = m.ChallengerID
	case domain.OutcomeChallenged:
		completion.WinnerID = m.ChallengedID
	}
	if completion.WinnerID != 0 {
		if err := s.store.AwardMedal(ctx, completion.WinnerID, domain.MedalMatchWin); err != nil {
			s.logger.Warn("failed to award medal", "player_id", completion.WinnerID, "error", err)
		}
	}

	s.hub.BroadcastMatchEvent(m.ID, "resolved", map[string]interface{}{
		"outcome":          outcome,
		"winner_id":        completion.WinnerID,
		"challenger_score": m.Challenger.Result.Score,
		"challenged_score": m.Challenged.Result.Score,
	})
	return completion, nil
}

// Cancel aborts a match that has not completed.
func (s *MatchService) Cancel(ctx context.Context, actor domain.PlayerInfo, matchID int64) error {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := m.Cancel(actor.ID); err != nil {
		return err
	}
	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return err
	}
	s.hub.BroadcastMatchEvent(m.ID, "cancelled", map[string]interface{}{
		"player_id": actor.ID,
		"username":  actor.Username,
	})
	return nil
}
