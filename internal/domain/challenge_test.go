package domain

import (
	"errors"
	"testing"
)

func newTestChallenge() *Challenge {
	return &Challenge{
		ID:           1,
		ChallengerID: 10,
		ChallengedID: 20,
		GroupID:      5,
		Difficulty:   DifficultyMedium,
		Status:       ChallengeChallengerPlaying,
	}
}

func TestChallengeFullLifecycle(t *testing.T) {
	ch := newTestChallenge()

	if err := ch.RecordChallengerResult(10, ContestResult{TimeSeconds: 700, Mistakes: 1, Score: 1500}); err != nil {
		t.Fatalf("RecordChallengerResult: %v", err)
	}
	if ch.Status != ChallengePending {
		t.Fatalf("status = %q, want %q", ch.Status, ChallengePending)
	}

	if err := ch.Accept(20); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if ch.Status != ChallengeAccepted {
		t.Fatalf("status = %q, want %q", ch.Status, ChallengeAccepted)
	}

	outcome, err := ch.RecordChallengedResult(20, ContestResult{TimeSeconds: 600, Mistakes: 0, Score: 1800})
	if err != nil {
		t.Fatalf("RecordChallengedResult: %v", err)
	}
	if outcome != OutcomeChallenged {
		t.Errorf("outcome = %q, want %q", outcome, OutcomeChallenged)
	}
}

func TestChallengeRecordChallengerResultGuards(t *testing.T) {
	tests := []struct {
		name    string
		status  ChallengeStatus
		actorID int64
		wantErr error
	}{
		{"outsider", ChallengeChallengerPlaying, 99, ErrNotParticipant},
		{"challenged cannot record first", ChallengeChallengerPlaying, 20, ErrWrongState},
		{"already pending", ChallengePending, 10, ErrWrongState},
		{"already rejected", ChallengeRejected, 10, ErrWrongState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newTestChallenge()
			ch.Status = tt.status
			err := ch.RecordChallengerResult(tt.actorID, ContestResult{Score: 100})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordChallengerResult = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChallengeAcceptGuards(t *testing.T) {
	tests := []struct {
		name    string
		status  ChallengeStatus
		actorID int64
		wantErr error
	}{
		{"outsider", ChallengePending, 99, ErrNotParticipant},
		{"challenger cannot accept", ChallengePending, 10, ErrNotChallenged},
		{"not yet pending", ChallengeChallengerPlaying, 20, ErrWrongState},
		{"already rejected", ChallengeRejected, 20, ErrWrongState},
		{"already accepted", ChallengeAccepted, 20, ErrWrongState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newTestChallenge()
			ch.Status = tt.status
			if err := ch.Accept(tt.actorID); !errors.Is(err, tt.wantErr) {
				t.Errorf("Accept = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChallengeRejectThenAcceptFails(t *testing.T) {
	ch := newTestChallenge()
	ch.Status = ChallengePending

	if err := ch.Reject(20); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if ch.Status != ChallengeRejected {
		t.Fatalf("status = %q, want %q", ch.Status, ChallengeRejected)
	}

	if err := ch.Accept(20); !errors.Is(err, ErrWrongState) {
		t.Errorf("Accept after reject = %v, want %v", err, ErrWrongState)
	}
	if _, err := ch.RecordChallengedResult(20, ContestResult{Score: 100}); !errors.Is(err, ErrWrongState) {
		t.Errorf("RecordChallengedResult after reject = %v, want %v", err, ErrWrongState)
	}
}

func TestChallengeRecordChallengedResultRequiresAccepted(t *testing.T) {
	ch := newTestChallenge()
	ch.Status = ChallengePending

	if _, err := ch.RecordChallengedResult(20, ContestResult{Score: 100}); !errors.Is(err, ErrWrongState) {
		t.Errorf("RecordChallengedResult before accept = %v, want %v", err, ErrWrongState)
	}
}

func TestDetermineWinner(t *testing.T) {
	tests := []struct {
		name            string
		challengerScore int
		challengedScore int
		want            ContestOutcome
	}{
		{"challenger wins", 1800, 1500, OutcomeChallenger},
		{"challenged wins", 1500, 1800, OutcomeChallenged},
		{"draw", 1500, 1500, OutcomeDraw},
		{"zero scores draw", 0, 0, OutcomeDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineWinner(tt.challengerScore, tt.challengedScore)
			if got != tt.want {
				t.Errorf("DetermineWinner(%d, %d) = %q, want %q",
					tt.challengerScore, tt.challengedScore, got, tt.want)
			}
		})
	}
}
