package domain

// MedalType identifies a class of medal
type MedalType string

const (
	MedalChallengeWin MedalType = "challenge_win"
	MedalMatchWin     MedalType = "match_win"
	MedalFlawless     MedalType = "flawless"
)

var medalDescriptions = map[MedalType]string{
	MedalChallengeWin: "Won a challenge",
	MedalMatchWin:     "Won a live match",
	MedalFlawless:     "Completed a game without mistakes",
}

// Description returns the display text for the medal type.
func (t MedalType) Description() string {
	return medalDescriptions[t]
}

// Medal counts awards of one type for a player. The count only ever
// increases.
type Medal struct {
	PlayerID    int64     `json:"player_id"`
	Type        MedalType `json:"medal_type"`
	Description string    `json:"description"`
	Count       int       `json:"number_of_medals"`
}
