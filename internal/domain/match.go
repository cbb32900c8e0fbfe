package domain

import "time"

// MatchStatus represents the lifecycle state of a live match
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchActive    MatchStatus = "active"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchPending:   {MatchActive, MatchCancelled},
	MatchActive:    {MatchCompleted, MatchCancelled},
	MatchCompleted: nil,
	MatchCancelled: nil,
}

// CanTransition reports whether moving from s to next is a legal transition.
func (s MatchStatus) CanTransition(next MatchStatus) bool {
	for _, allowed := range matchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MatchSide holds one player's progress through a live match. A
// half-completed match is tracked through CompletedAt, not a distinct
// status.
type MatchSide struct {
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Result      ContestResult `json:"result"`
}

// Match is a synchronous head-to-head contest raced in real time. Unlike
// challenges, completed matches are retained.
type Match struct {
	ID           int64       `json:"id"`
	ChallengerID int64       `json:"challenger_id"`
	ChallengedID int64       `json:"challenged_id"`
	GroupID      int64       `json:"group_id"`
	Difficulty   Difficulty  `json:"difficulty"`
	PuzzleData   PuzzleData  `json:"puzzle_data"`
	Status       MatchStatus `json:"status"`
	Challenger   MatchSide   `json:"challenger"`
	Challenged   MatchSide   `json:"challenged"`
	CreatedAt    time.Time   `json:"created_at"`
}

// IsParticipant reports whether playerID is one of the two named participants.
func (m *Match) IsParticipant(playerID int64) bool {
	return playerID == m.ChallengerID || playerID == m.ChallengedID
}

func (m *Match) side(playerID int64) *MatchSide {
	if playerID == m.ChallengerID {
		return &m.Challenger
	}
	if playerID == m.ChallengedID {
		return &m.Challenged
	}
	return nil
}

// Accept activates a pending match. Only the challenged player may accept.
func (m *Match) Accept(actorID int64) error {
	if !m.IsParticipant(actorID) {
		return ErrNotParticipant
	}
	if actorID != m.ChallengedID {
		return ErrNotChallenged
	}
	if !m.Status.CanTransition(MatchActive) {
		return ErrWrongState
	}
	m.Status = MatchActive
	return nil
}

// Start records that one side began playing.
func (m *Match) Start(actorID int64, now time.Time) error {
	side := m.side(actorID)
	if side == nil {
		return ErrNotParticipant
	}
	if m.Status != MatchActive {
		return ErrWrongState
	}
	if side.StartedAt == nil {
		side.StartedAt = &now
	}
	return nil
}

// Complete records one side's result. The second return value is true
// once both sides have completed and the match resolved; the caller then
// performs the group record update. The first finisher waits.
func (m *Match) Complete(actorID int64, result ContestResult, now time.Time) (ContestOutcome, bool, error) {
	side := m.side(actorID)
	if side == nil {
		return "", false, ErrNotParticipant
	}
	if m.Status != MatchActive {
		return "", false, ErrWrongState
	}
	if side.CompletedAt != nil {
		return "", false, ErrAlreadyPlayed
	}
	side.CompletedAt = &now
	side.Result = result

	if m.Challenger.CompletedAt == nil || m.Challenged.CompletedAt == nil {
		return "", false, nil
	}
	m.Status = MatchCompleted
	return DetermineWinner(m.Challenger.Result.Score, m.Challenged.Result.Score), true, nil
}

// Cancel aborts a match that has not completed. Either participant may cancel.
func (m *Match) Cancel(actorID int64) error {
	if !m.IsParticipant(actorID) {
		return ErrNotParticipant
	}
	if m.Status == MatchCompleted {
		return ErrMatchFinished
	}
	if !m.Status.CanTransition(MatchCancelled) {
		return ErrWrongState
	}
	m.Status = MatchCancelled
	return nil
}
