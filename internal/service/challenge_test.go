package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/puzzle"
)

// contestStoreStub backs the contest services in tests. It shares a
// call log with gameRecorderStub so tests can assert ordering across
// the store and the ledger feed.
type contestStoreStub struct {
	players   map[int64]*domain.Player
	members   map[int64]bool
	challenge *domain.Challenge

	calls      *[]string
	resolveErr error
	outcome    domain.ContestOutcome
	medals     []int64
}

func (s *contestStoreStub) record(call string) {
	*s.calls = append(*s.calls, call)
}

func (s *contestStoreStub) GetPlayer(_ context.Context, playerID int64) (*domain.Player, error) {
	if p, ok := s.players[playerID]; ok {
		return p, nil
	}
	return nil, domain.ErrPlayerNotFound
}

func (s *contestStoreStub) IsMember(_ context.Context, _, playerID int64) (bool, error) {
	return s.members[playerID], nil
}

func (s *contestStoreStub) CreateChallenge(_ context.Context, ch domain.Challenge) (*domain.Challenge, error) {
	ch.ID = 1
	s.challenge = &ch
	return &ch, nil
}

func (s *contestStoreStub) GetChallenge(_ context.Context, challengeID int64) (*domain.Challenge, error) {
	if s.challenge == nil || s.challenge.ID != challengeID {
		return nil, domain.ErrChallengeNotFound
	}
	ch := *s.challenge
	return &ch, nil
}

func (s *contestStoreStub) ListChallengesForPlayer(_ context.Context, _ int64) ([]domain.Challenge, error) {
	if s.challenge == nil {
		return nil, nil
	}
	return []domain.Challenge{*s.challenge}, nil
}

func (s *contestStoreStub) UpdateChallenge(_ context.Context, ch *domain.Challenge) error {
	if s.challenge == nil || s.challenge.ID != ch.ID {
		return domain.ErrChallengeNotFound
	}
	updated := *ch
	s.challenge = &updated
	return nil
}

func (s *contestStoreStub) ResolveChallenge(_ context.Context, ch *domain.Challenge, outcome domain.ContestOutcome) error {
	s.record("ResolveChallenge")
	if s.resolveErr != nil {
		return s.resolveErr
	}
	if s.challenge == nil || s.challenge.ID != ch.ID {
		return domain.ErrChallengeNotFound
	}
	s.outcome = outcome
	s.challenge = nil
	return nil
}

func (s *contestStoreStub) CreateMatch(_ context.Context, m domain.Match) (*domain.Match, error) {
	m.ID = 1
	return &m, nil
}

func (s *contestStoreStub) GetMatch(_ context.Context, _ int64) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}

func (s *contestStoreStub) UpdateMatch(_ context.Context, _ *domain.Match) error {
	return nil
}

func (s *contestStoreStub) ResolveContest(_ context.Context, _, _, _ int64, outcome domain.ContestOutcome) error {
	s.record("ResolveContest")
	s.outcome = outcome
	return nil
}

func (s *contestStoreStub) AwardMedal(_ context.Context, playerID int64, _ domain.MedalType) error {
	s.record("AwardMedal")
	s.medals = append(s.medals, playerID)
	return nil
}

type gameRecorderStub struct {
	calls *[]string
	err   error
}

func (g *gameRecorderStub) SubmitGame(_ context.Context, _ domain.PlayerInfo, sub domain.GameSubmission) (*GameResult, error) {
	*g.calls = append(*g.calls, "SubmitGame")
	if g.err != nil {
		return nil, g.err
	}
	return &GameResult{Score: domain.Score(sub.Difficulty, sub.TimeSeconds, sub.Mistakes)}, nil
}

// newChallengeFixture wires a ChallengeService over stubs holding an
// accepted challenge between players 10 and 20 in group 3, with the
// challenger's result already recorded.
func newChallengeFixture(t *testing.T) (*ChallengeService, *contestStoreStub, *gameRecorderStub) {
	t.Helper()
	calls := &[]string{}
	store := &contestStoreStub{
		players: map[int64]*domain.Player{
			10: {ID: 10, Username: "alice"},
			20: {ID: 20, Username: "bob"},
		},
		members: map[int64]bool{10: true, 20: true},
		challenge: &domain.Challenge{
			ID:           7,
			ChallengerID: 10,
			ChallengedID: 20,
			GroupID:      3,
			Difficulty:   domain.DifficultyMedium,
			Status:       domain.ChallengeAccepted,
			Challenger: domain.ContestResult{
				TimeSeconds: 600,
				Score:       domain.Score(domain.DifficultyMedium, 600, 0),
			},
		},
		calls: calls,
	}
	games := &gameRecorderStub{calls: calls}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewChallengeService(store, games, puzzle.NewShuffleGenerator(1), logger)
	return svc, store, games
}

func TestChallengeCompleteResolvesAndRemovesRow(t *testing.T) {
	svc, store, _ := newChallengeFixture(t)
	bob := domain.PlayerInfo{ID: 20, Username: "bob"}

	completion, err := svc.Complete(context.Background(), bob, 7, CompleteContestRequest{TimeSeconds: 900, Mistakes: 1})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !completion.Resolved {
		t.Error("completion not resolved")
	}
	if completion.Outcome != domain.OutcomeChallenger {
		t.Errorf("outcome = %q, want %q", completion.Outcome, domain.OutcomeChallenger)
	}
	if completion.WinnerID != 10 {
		t.Errorf("winner = %d, want 10", completion.WinnerID)
	}
	if store.challenge != nil {
		t.Error("resolved challenge row still present")
	}

	want := []string{"ResolveChallenge", "AwardMedal", "SubmitGame"}
	if len(*store.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", *store.calls, want)
	}
	for i, call := range want {
		if (*store.calls)[i] != call {
			t.Errorf("call %d = %q, want %q", i, (*store.calls)[i], call)
		}
	}
}

func TestChallengeCompleteRetryAfterResolution(t *testing.T) {
	svc, store, _ := newChallengeFixture(t)
	bob := domain.PlayerInfo{ID: 20, Username: "bob"}
	req := CompleteContestRequest{TimeSeconds: 900, Mistakes: 1}

	if _, err := svc.Complete(context.Background(), bob, 7, req); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	// The row is gone, so a retried completion cannot touch the group
	// records a second time.
	_, err := svc.Complete(context.Background(), bob, 7, req)
	if !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Errorf("retry error = %v, want ErrChallengeNotFound", err)
	}

	resolutions := 0
	for _, call := range *store.calls {
		if call == "ResolveChallenge" {
			resolutions++
		}
	}
	if resolutions != 1 {
		t.Errorf("ResolveChallenge called %d times, want 1", resolutions)
	}
}

func TestChallengeCompleteResolveFailureSurfaces(t *testing.T) {
	svc, store, _ := newChallengeFixture(t)
	store.resolveErr = errors.New("connection reset")
	bob := domain.PlayerInfo{ID: 20, Username: "bob"}

	_, err := svc.Complete(context.Background(), bob, 7, CompleteContestRequest{TimeSeconds: 900, Mistakes: 1})
	if !errors.Is(err, store.resolveErr) {
		t.Fatalf("error = %v, want resolve failure", err)
	}
	if store.challenge == nil {
		t.Error("challenge row dropped despite failed resolution")
	}
	for _, call := range *store.calls {
		if call == "AwardMedal" || call == "SubmitGame" {
			t.Errorf("%s called after failed resolution", call)
		}
	}
}

func TestChallengeCompleteLedgerFailureKeepsResolution(t *testing.T) {
	svc, store, games := newChallengeFixture(t)
	games.err = errors.New("ledger write failed")
	bob := domain.PlayerInfo{ID: 20, Username: "bob"}

	completion, err := svc.Complete(context.Background(), bob, 7, CompleteContestRequest{TimeSeconds: 900, Mistakes: 1})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !completion.Resolved {
		t.Error("completion not resolved")
	}
	if store.challenge != nil {
		t.Error("resolved challenge row still present")
	}
}

func TestChallengeCompleteDrawAwardsNoMedal(t *testing.T) {
	svc, store, _ := newChallengeFixture(t)
	bob := domain.PlayerInfo{ID: 20, Username: "bob"}

	// Same time and mistakes as the challenger yields the same score.
	completion, err := svc.Complete(context.Background(), bob, 7, CompleteContestRequest{TimeSeconds: 600, Mistakes: 0})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completion.Outcome != domain.OutcomeDraw {
		t.Errorf("outcome = %q, want %q", completion.Outcome, domain.OutcomeDraw)
	}
	if completion.WinnerID != 0 {
		t.Errorf("winner = %d, want 0", completion.WinnerID)
	}
	if len(store.medals) != 0 {
		t.Errorf("medals awarded on draw: %v", store.medals)
	}
}

func TestChallengeCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateContestRequest
		want error
	}{
		{
			name: "unknown difficulty",
			req:  CreateContestRequest{ChallengedID: 20, GroupID: 3, Difficulty: "brutal"},
			want: domain.ErrInvalidDifficulty,
		},
		{
			name: "self challenge",
			req:  CreateContestRequest{ChallengedID: 10, GroupID: 3, Difficulty: domain.DifficultyEasy},
			want: domain.ErrInvalidRequest,
		},
		{
			name: "unknown opponent",
			req:  CreateContestRequest{ChallengedID: 99, GroupID: 3, Difficulty: domain.DifficultyEasy},
			want: domain.ErrPlayerNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newChallengeFixture(t)
			alice := domain.PlayerInfo{ID: 10, Username: "alice"}
			_, err := svc.Create(context.Background(), alice, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChallengeCreateRequiresMembership(t *testing.T) {
	svc, store, _ := newChallengeFixture(t)
	store.members[20] = false
	alice := domain.PlayerInfo{ID: 10, Username: "alice"}

	_, err := svc.Create(context.Background(), alice, CreateContestRequest{
		ChallengedID: 20, GroupID: 3, Difficulty: domain.DifficultyEasy,
	})
	if !errors.Is(err, domain.ErrNotGroupMember) {
		t.Errorf("error = %v, want ErrNotGroupMember", err)
	}
}
