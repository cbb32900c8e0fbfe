package service

import (
	"context"
	"log/slog"

	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/puzzle"
)

// ContestStore is the persistence surface the contest services use,
// satisfied by *postgres.Repository.
type ContestStore interface {
	GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error)
	IsMember(ctx context.Context, groupID, playerID int64) (bool, error)
	CreateChallenge(ctx context.Context, ch domain.Challenge) (*domain.Challenge, error)
	GetChallenge(ctx context.Context, challengeID int64) (*domain.Challenge, error)
	ListChallengesForPlayer(ctx context.Context, playerID int64) ([]domain.Challenge, error)
	UpdateChallenge(ctx context.Context, ch *domain.Challenge) error
	ResolveChallenge(ctx context.Context, ch *domain.Challenge, outcome domain.ContestOutcome) error
	CreateMatch(ctx context.Context, m domain.Match) (*domain.Match, error)
	GetMatch(ctx context.Context, matchID int64) (*domain.Match, error)
	UpdateMatch(ctx context.Context, m *domain.Match) error
	ResolveContest(ctx context.Context, groupID, challengerID, challengedID int64, outcome domain.ContestOutcome) error
	AwardMedal(ctx context.Context, playerID int64, medalType domain.MedalType) error
}

// GameRecorder feeds finished contest games into the daily ledger and
// realtime standings, satisfied by *GameService.
type GameRecorder interface {
	SubmitGame(ctx context.Context, player domain.PlayerInfo, sub domain.GameSubmission) (*GameResult, error)
}

// CreateContestRequest is the payload for issuing a challenge or match
type CreateContestRequest struct {
	ChallengedID int64             `json:"challenged_id"`
	GroupID      int64             `json:"group_id"`
	Difficulty   domain.Difficulty `json:"difficulty"`
}

// CompleteContestRequest is one side's finished game in a contest
type CompleteContestRequest struct {
	TimeSeconds int `json:"time_seconds"`
	Mistakes    int `json:"mistakes"`
}

// ContestCompletion is returned after a participant submits a result
type ContestCompletion struct {
	Score    int                   `json:"score"`
	Resolved bool                  `json:"resolved"`
	Outcome  domain.ContestOutcome `json:"outcome,omitempty"`
	WinnerID int64                 `json:"winner_id,omitempty"`
}

// ChallengeService runs the asynchronous contest lifecycle
type ChallengeService struct {
	store   ContestStore
	games   GameRecorder
	puzzles puzzle.Generator
	logger  *slog.Logger
}

// NewChallengeService creates a new challenge service
func NewChallengeService(store ContestStore, games GameRecorder, puzzles puzzle.Generator, logger *slog.Logger) *ChallengeService {
	return &ChallengeService{
		store:   store,
		games:   games,
		puzzles: puzzles,
		logger:  logger,
	}
}

// validateContestRequest checks a contest issuance: known difficulty,
// a real opponent, and both participants in the group.
func validateContestRequest(ctx context.Context, pg ContestStore, challenger domain.PlayerInfo, req CreateContestRequest) error {
	if !req.Difficulty.Valid() {
		return domain.ErrInvalidDifficulty
	}
	if req.ChallengedID == 0 || req.ChallengedID == challenger.ID {
		return domain.ErrInvalidRequest
	}
	if _, err := pg.GetPlayer(ctx, req.ChallengedID); err != nil {
		return err
	}
	for _, playerID := range []int64{challenger.ID, req.ChallengedID} {
		member, err := pg.IsMember(ctx, req.GroupID, playerID)
		if err != nil {
			return err
		}
		if !member {
			return domain.ErrNotGroupMember
		}
	}
	return nil
}

// Create issues a challenge: a fresh puzzle is snapshotted and the
// challenger plays first.
func (s *ChallengeService) Create(ctx context.Context, challenger domain.PlayerInfo, req CreateContestRequest) (*domain.Challenge, error) {
	if err := validateContestRequest(ctx, s.store, challenger, req); err != nil {
		return nil, err
	}

	ch := domain.Challenge{
		ChallengerID: challenger.ID,
		ChallengedID: req.ChallengedID,
		GroupID:      req.GroupID,
		Difficulty:   req.Difficulty,
		PuzzleData:   s.puzzles.Generate(req.Difficulty),
		Status:       domain.ChallengeChallengerPlaying,
	}
	return s.store.CreateChallenge(ctx, ch)
}

// List returns the caller's challenges.
func (s *ChallengeService) List(ctx context.Context, playerID int64) ([]domain.Challenge, error) {
	return s.store.ListChallengesForPlayer(ctx, playerID)
}

// Accept lets the challenged player take up a pending challenge.
func (s *ChallengeService) Accept(ctx context.Context, actor domain.PlayerInfo, challengeID int64) (*domain.Challenge, error) {
	ch, err := s.store.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if err := ch.Accept(actor.ID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateChallenge(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// Reject lets the challenged player decline a pending challenge. The
// row stays in its terminal state.
func (s *ChallengeService) Reject(ctx context.Context, actor domain.PlayerInfo, challengeID int64) error {
	ch, err := s.store.GetChallenge(ctx, challengeID)
	if err != nil {
		return err
	}
	if err := ch.Reject(actor.ID); err != nil {
		return err
	}
	return s.store.UpdateChallenge(ctx, ch)
}

// Complete records the acting participant's finished game. The
// challenger's completion publishes the challenge; the challenged
// player's completion resolves it, updating both group records and
// deleting the row in one transaction before feeding the ledger.
func (s *ChallengeService) Complete(ctx context.Context, actor domain.PlayerInfo, challengeID int64, req CompleteContestRequest) (*ContestCompletion, error) {
	if req.TimeSeconds < 0 || req.Mistakes < 0 {
		return nil, domain.ErrInvalidGame
	}

	ch, err := s.store.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	result := domain.ContestResult{
		TimeSeconds: req.TimeSeconds,
		Mistakes:    req.Mistakes,
		Score:       domain.Score(ch.Difficulty, req.TimeSeconds, req.Mistakes),
	}
	game := domain.GameSubmission{
		Difficulty:  ch.Difficulty,
		TimeSeconds: req.TimeSeconds,
		Mistakes:    req.Mistakes,
	}

	if actor.ID == ch.ChallengerID {
		if err := ch.RecordChallengerResult(actor.ID, result); err != nil {
			return nil, err
		}
		if err := s.store.UpdateChallenge(ctx, ch); err != nil {
			return nil, err
		}
		if _, err := s.games.SubmitGame(ctx, actor, game); err != nil {
			return nil, err
		}
		return &ContestCompletion{Score: result.Score}, nil
	}

	outcome, err := ch.RecordChallengedResult(actor.ID, result)
	if err != nil {
		return nil, err
	}

	// Group records and row deletion commit together, so a retry after
	// resolution sees ErrChallengeNotFound instead of counting the
	// contest twice.
	if err := s.store.ResolveChallenge(ctx, ch, outcome); err != nil {
		return nil, err
	}

	completion := &ContestCompletion{
		Score:    result.Score,
		Resolved: true,
		Outcome:  outcome,
	}
	switch outcome {
	case domain.OutcomeChallenger:
		completion.WinnerID = ch.ChallengerID
	case domain.OutcomeChallenged:
		completion.WinnerID = ch.ChallengedID
	}
	if completion.WinnerID != 0 {
		if err := s.store.AwardMedal(ctx, completion.WinnerID, domain.MedalChallengeWin); err != nil {
			s.logger.Warn("failed to award medal", "player_id", completion.WinnerID, "error", err)
		}
	}

	// The resolution is already committed; a ledger miss here loses one
	// daily record entry, never the group records.
	if _, err := s.games.SubmitGame(ctx, actor, game); err != nil {
		s.logger.Error("ledger feed failed for resolved challenge",
			"challenge_id", ch.ID, "player_id", actor.ID, "error", err)
	}

	return completion, nil
}
