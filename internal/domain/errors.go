package domain

import "errors"

// Domain errors
var (
	// Validation
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidPeriod     = errors.New("invalid leaderboard period")
	ErrInvalidGame       = errors.New("invalid game result")

	// Not found
	ErrPlayerNotFound    = errors.New("player not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrMatchNotFound     = errors.New("match not found")

	// Authorization
	ErrNotParticipant = errors.New("player is not a participant in this contest")
	ErrNotChallenged  = errors.New("only the challenged player may perform this action")
	ErrNotGroupMember = errors.New("player is not a member of this group")
	ErrWrongPassword  = errors.New("wrong password")
	ErrBadCredentials = errors.New("invalid username or password")

	// Conflict
	ErrPlayerExists  = errors.New("username or email already taken")
	ErrAlreadyMember = errors.New("player is already a member of this group")
	ErrWrongState    = errors.New("contest is not in the expected state for this action")
	ErrAlreadyPlayed = errors.New("player has already submitted a result for this contest")
	ErrMatchFinished = errors.New("match is already completed")

	ErrInternalError = errors.New("internal server error")
)

// IsNotFound reports whether err is a not-found class error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrMatchNotFound)
}

// IsValidation reports whether err is a validation class error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidDifficulty) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidGame)
}

// IsAuthorization reports whether err is an authorization class error.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrNotParticipant) ||
		errors.Is(err, ErrNotChallenged) ||
		errors.Is(err, ErrNotGroupMember) ||
		errors.Is(err, ErrWrongPassword) ||
		errors.Is(err, ErrBadCredentials)
}

// IsConflict reports whether err is a conflict class error, including
// stale state-machine transition attempts.
func IsConflict(err error) bool {
	return errors.Is(err, ErrPlayerExists) ||
		errors.Is(err, ErrAlreadyMember) ||
		errors.Is(err, ErrWrongState) ||
		errors.Is(err, ErrAlreadyPlayed) ||
		errors.Is(err, ErrMatchFinished)
}
