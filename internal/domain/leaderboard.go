package domain

import "time"

// Period represents a leaderboard time window
type Period string

const (
	PeriodAll   Period = "all"
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodAll, PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// Start returns the inclusive lower bound of the period containing now.
// The week starts on the most recent Sunday. For PeriodAll the second
// return value is false and no restriction applies.
func (p Period) Start(now time.Time) (time.Time, bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodDay:
		return midnight, true
	case PeriodWeek:
		return midnight.AddDate(0, 0, -int(now.Weekday())), true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// LeaderboardRow is one ranked entry in an aggregated leaderboard.
// BestTime is nil when the player has no usable best time: a recorded
// time of exactly 0 seconds is treated as absent, matching the
// historical NULLIF(x, 0) behavior.
type LeaderboardRow struct {
	Rank       int    `json:"rank"`
	PlayerID   int64  `json:"player_id"`
	Username   string `json:"username"`
	TotalScore int64  `json:"total_score"`
	TotalGames int64  `json:"total_games"`
	BestTime   *int   `json:"best_time,omitempty"`
}

// RealtimeEntry is one entry in the Redis standings mirror
type RealtimeEntry struct {
	Rank     int64  `json:"rank"`
	PlayerID int64  `json:"player_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
}

// PlayerTotal is a player's summed score for a period, used when
// rebuilding the realtime mirror from the ledger
type PlayerTotal struct {
	PlayerID   int64
	Username   string
	TotalScore int64
}
