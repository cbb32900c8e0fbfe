package domain

import (
	"errors"
	"testing"
	"time"
)

func newTestMatch() *Match {
	return &Match{
		ID:           1,
		ChallengerID: 10,
		ChallengedID: 20,
		GroupID:      5,
		Difficulty:   DifficultyHard,
		Status:       MatchPending,
	}
}

func TestMatchFullLifecycle(t *testing.T) {
	m := newTestMatch()
	now := time.Now()

	if err := m.Accept(20); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if m.Status != MatchActive {
		t.Fatalf("status = %q, want %q", m.Status, MatchActive)
	}

	if err := m.Start(10, now); err != nil {
		t.Fatalf("Start challenger: %v", err)
	}
	if err := m.Start(20, now); err != nil {
		t.Fatalf("Start challenged: %v", err)
	}
	if m.Challenger.StartedAt == nil || m.Challenged.StartedAt == nil {
		t.Fatal("start times not recorded")
	}

	// First completion leaves the match open
	outcome, resolved, err := m.Complete(10, ContestResult{TimeSeconds: 900, Score: 1500}, now)
	if err != nil {
		t.Fatalf("Complete challenger: %v", err)
	}
	if resolved {
		t.Fatal("match resolved after one side completed")
	}
	if outcome != "" {
		t.Fatalf("outcome = %q, want empty", outcome)
	}
	if m.Status != MatchActive {
		t.Fatalf("status = %q, want %q", m.Status, MatchActive)
	}

	// Second completion resolves it
	outcome, resolved, err = m.Complete(20, ContestResult{TimeSeconds: 800, Score: 1800}, now)
	if err != nil {
		t.Fatalf("Complete challenged: %v", err)
	}
	if !resolved {
		t.Fatal("match not resolved after both sides completed")
	}
	if outcome != OutcomeChallenged {
		t.Errorf("outcome = %q, want %q", outcome, OutcomeChallenged)
	}
	if m.Status != MatchCompleted {
		t.Errorf("status = %q, want %q", m.Status, MatchCompleted)
	}
}

func TestMatchAcceptGuards(t *testing.T) {
	tests := []struct {
		name    string
		status  MatchStatus
		actorID int64
		wantErr error
	}{
		{"outsider", MatchPending, 99, ErrNotParticipant},
		{"challenger cannot accept", MatchPending, 10, ErrNotChallenged},
		{"already active", MatchActive, 20, ErrWrongState},
		{"cancelled", MatchCancelled, 20, ErrWrongState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch()
			m.Status = tt.status
			if err := m.Accept(tt.actorID); !errors.Is(err, tt.wantErr) {
				t.Errorf("Accept = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMatchStartRequiresActive(t *testing.T) {
	m := newTestMatch()
	if err := m.Start(10, time.Now()); !errors.Is(err, ErrWrongState) {
		t.Errorf("Start on pending match = %v, want %v", err, ErrWrongState)
	}
}

func TestMatchStartKeepsFirstTimestamp(t *testing.T) {
	m := newTestMatch()
	m.Status = MatchActive

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := m.Start(10, first); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start(10, first.Add(time.Minute)); err != nil {
		t.Fatalf("Start again: %v", err)
	}
	if !m.Challenger.StartedAt.Equal(first) {
		t.Errorf("StartedAt = %v, want %v", m.Challenger.StartedAt, first)
	}
}

func TestMatchCompleteTwiceFails(t *testing.T) {
	m := newTestMatch()
	m.Status = MatchActive
	now := time.Now()

	if _, _, err := m.Complete(10, ContestResult{Score: 1000}, now); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, _, err := m.Complete(10, ContestResult{Score: 2000}, now); !errors.Is(err, ErrAlreadyPlayed) {
		t.Errorf("second Complete = %v, want %v", err, ErrAlreadyPlayed)
	}
}

func TestMatchCancel(t *testing.T) {
	now := time.Now()

	t.Run("pending match", func(t *testing.T) {
		m := newTestMatch()
		if err := m.Cancel(10); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if m.Status != MatchCancelled {
			t.Errorf("status = %q, want %q", m.Status, MatchCancelled)
		}
	})

	t.Run("active half-completed match", func(t *testing.T) {
		m := newTestMatch()
		m.Status = MatchActive
		if _, _, err := m.Complete(10, ContestResult{Score: 1000}, now); err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if err := m.Cancel(20); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
	})

	t.Run("completed match", func(t *testing.T) {
		m := newTestMatch()
		m.Status = MatchActive
		if _, _, err := m.Complete(10, ContestResult{Score: 1000}, now); err != nil {
			t.Fatalf("Complete challenger: %v", err)
		}
		if _, _, err := m.Complete(20, ContestResult{Score: 900}, now); err != nil {
			t.Fatalf("Complete challenged: %v", err)
		}
		if err := m.Cancel(10); !errors.Is(err, ErrMatchFinished) {
			t.Errorf("Cancel after completion = %v, want %v", err, ErrMatchFinished)
		}
	})

	t.Run("outsider", func(t *testing.T) {
		m := newTestMatch()
		if err := m.Cancel(99); !errors.Is(err, ErrNotParticipant) {
			t.Errorf("Cancel by outsider = %v, want %v", err, ErrNotParticipant)
		}
	})
}
