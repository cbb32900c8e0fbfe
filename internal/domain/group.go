package domain

import "time"

// GroupRole represents a member's role within a group
type GroupRole string

const (
	RoleMember GroupRole = "member"
	RoleLeader GroupRole = "leader"
)

// Group is a named collection of players. A non-empty password hash
// marks the group as private.
type Group struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PasswordHash string    `json:"-"`
	Private      bool      `json:"private"`
	CreatedAt    time.Time `json:"created_at"`
}

// GroupMember is a player's membership and head-to-head record in a group
type GroupMember struct {
	GroupID  int64     `json:"group_id"`
	PlayerID int64     `json:"player_id"`
	Username string    `json:"username"`
	Role     GroupRole `json:"role"`
	Wins     int       `json:"wins"`
	Losses   int       `json:"losses"`
	Draws    int       `json:"draws"`
	JoinedAt time.Time `json:"joined_at"`
}

// ContestOutcome identifies the winner of a resolved contest
type ContestOutcome string

const (
	OutcomeChallenger ContestOutcome = "challenger"
	OutcomeChallenged ContestOutcome = "challenged"
	OutcomeDraw       ContestOutcome = "draw"
)

// DetermineWinner resolves a contest by strict score comparison.
func DetermineWinner(challengerScore, challengedScore int) ContestOutcome {
	switch {
	case challengedScore > challengerScore:
		return OutcomeChallenged
	case challengerScore > challengedScore:
		return OutcomeChallenger
	default:
		return OutcomeDraw
	}
}
