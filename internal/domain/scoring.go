package domain

import "math"

// Difficulty represents a puzzle difficulty level
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

var difficultyMultipliers = map[Difficulty]float64{
	DifficultyEasy:   0.33,
	DifficultyMedium: 0.7,
	DifficultyHard:   1.5,
}

// timeTargets are the par times in seconds per difficulty
var timeTargets = map[Difficulty]int{
	DifficultyEasy:   600,
	DifficultyMedium: 1200,
	DifficultyHard:   1800,
}

// Fallbacks for unknown difficulties, kept for compatibility with
// historical score data.
const (
	fallbackMultiplier = 1.0
	fallbackTimeTarget = 600
)

// Score computes the points awarded for a completed game. It is pure and
// never fails: finishing under the difficulty's time target earns 2 points
// per second of margin on top of a 1000 point base, scaled by the
// difficulty multiplier and a mistake penalty floored at 0.4.
func Score(difficulty Difficulty, timeSeconds, mistakes int) int {
	multiplier, ok := difficultyMultipliers[difficulty]
	if !ok {
		multiplier = fallbackMultiplier
	}
	target, ok := timeTargets[difficulty]
	if !ok {
		target = fallbackTimeTarget
	}

	penalty := 1 - 0.1*float64(mistakes)
	if penalty < 0.4 {
		penalty = 0.4
	}

	margin := (target - timeSeconds) * 2
	if margin < 0 {
		margin = 0
	}

	return int(math.Round(multiplier * penalty * float64(margin+1000)))
}

// GameSubmission is a completed game reported by a player
type GameSubmission struct {
	Difficulty  Difficulty `json:"difficulty"`
	TimeSeconds int        `json:"time_seconds"`
	Mistakes    int        `json:"mistakes"`
}

// Validate checks the submission fields.
func (g GameSubmission) Validate() error {
	if !g.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	if g.TimeSeconds < 0 || g.Mistakes < 0 {
		return ErrInvalidGame
	}
	return nil
}
