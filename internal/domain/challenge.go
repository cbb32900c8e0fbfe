package domain

import "time"

// ChallengeStatus represents the lifecycle state of an asynchronous challenge
type ChallengeStatus string

const (
	// ChallengerPlaying: the challenge exists but the challenger has not
	// finished their own game yet.
	ChallengeChallengerPlaying ChallengeStatus = "challenger_playing"
	// Pending: the challenger's result is recorded, waiting on the
	// challenged player to accept or reject.
	ChallengePending ChallengeStatus = "pending"
	// Accepted: the challenged player agreed to play.
	ChallengeAccepted ChallengeStatus = "accepted"
	// Rejected: terminal. The row is kept so later actions fail loudly.
	ChallengeRejected ChallengeStatus = "rejected"
)

var challengeTransitions = map[ChallengeStatus][]ChallengeStatus{
	ChallengeChallengerPlaying: {ChallengePending},
	ChallengePending:           {ChallengeAccepted, ChallengeRejected},
	ChallengeAccepted:          nil, // resolution deletes the row
	ChallengeRejected:          nil,
}

// CanTransition reports whether moving from s to next is a legal transition.
func (s ChallengeStatus) CanTransition(next ChallengeStatus) bool {
	for _, allowed := range challengeTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ContestResult is one participant's side of a contest
type ContestResult struct {
	TimeSeconds int `json:"time_seconds"`
	Mistakes    int `json:"mistakes"`
	Score       int `json:"score"`
}

// Challenge is an asynchronous head-to-head contest. Both players solve
// the same snapshotted puzzle independently; the row is deleted when the
// challenged player's result resolves the contest.
type Challenge struct {
	ID           int64           `json:"id"`
	ChallengerID int64           `json:"challenger_id"`
	ChallengedID int64           `json:"challenged_id"`
	GroupID      int64           `json:"group_id"`
	Difficulty   Difficulty      `json:"difficulty"`
	PuzzleData   PuzzleData      `json:"puzzle_data"`
	Status       ChallengeStatus `json:"status"`
	Challenger   ContestResult   `json:"challenger"`
	Challenged   ContestResult   `json:"challenged"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IsParticipant reports whether playerID is one of the two named participants.
func (c *Challenge) IsParticipant(playerID int64) bool {
	return playerID == c.ChallengerID || playerID == c.ChallengedID
}

// RecordChallengerResult applies the challenger's finished game and moves
// the challenge to pending.
func (c *Challenge) RecordChallengerResult(actorID int64, result ContestResult) error {
	if !c.IsParticipant(actorID) {
		return ErrNotParticipant
	}
	if actorID != c.ChallengerID {
		return ErrWrongState
	}
	if !c.Status.CanTransition(ChallengePending) {
		return ErrWrongState
	}
	c.Challenger = result
	c.Status = ChallengePending
	return nil
}

// Accept moves a pending challenge to accepted. Only the challenged
// player may accept.
func (c *Challenge) Accept(actorID int64) error {
	if !c.IsParticipant(actorID) {
		return ErrNotParticipant
	}
	if actorID != c.ChallengedID {
		return ErrNotChallenged
	}
	if !c.Status.CanTransition(ChallengeAccepted) {
		return ErrWrongState
	}
	c.Status = ChallengeAccepted
	return nil
}

// Reject moves a pending challenge to the terminal rejected state. Only
// the challenged player may reject.
func (c *Challenge) Reject(actorID int64) error {
	if !c.IsParticipant(actorID) {
		return ErrNotParticipant
	}
	if actorID != c.ChallengedID {
		return ErrNotChallenged
	}
	if !c.Status.CanTransition(ChallengeRejected) {
		return ErrWrongState
	}
	c.Status = ChallengeRejected
	return nil
}

// RecordChallengedResult applies the challenged player's finished game
// and resolves the contest, returning the outcome. The caller is
// responsible for the group record update and for deleting the row.
func (c *Challenge) RecordChallengedResult(actorID int64, result ContestResult) (ContestOutcome, error) {
	if !c.IsParticipant(actorID) {
		return "", ErrNotParticipant
	}
	if actorID != c.ChallengedID {
		return "", ErrNotChallenged
	}
	if c.Status != ChallengeAccepted {
		return "", ErrWrongState
	}
	c.Challenged = result
	return DetermineWinner(c.Challenger.Score, c.Challenged.Score), nil
}
