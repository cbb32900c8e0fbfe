package domain

import "time"

// DailyScore is a player's aggregate record for one calendar day. Exactly
// one row exists per (player, day); every completed game merges into it.
// Best-time slots use 0 for "no time recorded yet".
type DailyScore struct {
	PlayerID int64     `json:"player_id"`
	PlayDate time.Time `json:"play_date"`

	BestTimeEasy   int `json:"best_time_easy"`
	BestTimeMedium int `json:"best_time_medium"`
	BestTimeHard   int `json:"best_time_hard"`

	BestTimeEasyNoMistakes   int `json:"best_time_easy_no_mistakes"`
	BestTimeMediumNoMistakes int `json:"best_time_medium_no_mistakes"`
	BestTimeHardNoMistakes   int `json:"best_time_hard_no_mistakes"`

	GamesEasy   int `json:"games_easy"`
	GamesMedium int `json:"games_medium"`
	GamesHard   int `json:"games_hard"`

	GamesEasyNoMistakes   int `json:"games_easy_no_mistakes"`
	GamesMediumNoMistakes int `json:"games_medium_no_mistakes"`
	GamesHardNoMistakes   int `json:"games_hard_no_mistakes"`

	DailyScore int64 `json:"daily_score"`
}
