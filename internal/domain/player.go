package domain

import "time"

// Player represents a registered player
type Player struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlayerInfo is the authenticated identity attached to every core operation
type PlayerInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
