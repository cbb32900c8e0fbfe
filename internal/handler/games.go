package handler

import (
	"net/http"

	"github.com/sudoku-arena/internal/domain"
)

// SubmitGame records a completed solo game
func (h *Handler) SubmitGame(w http.ResponseWriter, r *http.Request) {
	var sub domain.GameSubmission
	if err := decodeBody(r, &sub); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.games.SubmitGame(r.Context(), playerFrom(r), sub)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, result)
}

// GetTodayRecord returns the caller's daily record for today
func (h *Handler) GetTodayRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.games.TodayRecord(r.Context(), playerFrom(r).ID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, record)
}

// GetMedals returns the caller's medals
func (h *Handler) GetMedals(w http.ResponseWriter, r *http.Request) {
	medals, err := h.games.Medals(r.Context(), playerFrom(r).ID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, medals)
}

// GetLeaderboard returns the global leaderboard for a period
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.leaderboards.TopPlayers(r.Context(), nil, queryPeriod(r), queryLimit(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, rows)
}

// GetLeaderboardTop100 returns the top 100 players for a period
func (h *Handler) GetLeaderboardTop100(w http.ResponseWriter, r *http.Request) {
	rows, err := h.leaderboards.TopPlayers(r.Context(), nil, queryPeriod(r), 100)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, rows)
}

// GetRealtimeStandings returns the realtime standings mirror
func (h *Handler) GetRealtimeStandings(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboards.Realtime(r.Context(), queryPeriod(r), queryLimit(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, entries)
}

// GetPlayerRank returns the caller's realtime rank for a period
func (h *Handler) GetPlayerRank(w http.ResponseWriter, r *http.Request) {
	entry, err := h.leaderboards.PlayerRank(r.Context(), queryPeriod(r), playerFrom(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, entry)
}
