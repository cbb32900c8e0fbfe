package handler

import (
	"net/http"

	"github.com/sudoku-arena/internal/service"
)

// CreateChallenge issues an asynchronous challenge
func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req service.CreateContestRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	ch, err := h.challenges.Create(r.Context(), playerFrom(r), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: ch})
}

// ListChallenges returns the caller's challenges
func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challenges.List(r.Context(), playerFrom(r).ID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, challenges)
}

// AcceptChallenge lets the challenged player take up a challenge
func (h *Handler) AcceptChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := urlParamInt64(r, "challengeID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	ch, err := h.challenges.Accept(r.Context(), playerFrom(r), challengeID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, ch)
}

// RejectChallenge lets the challenged player decline a challenge
func (h *Handler) RejectChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := urlParamInt64(r, "challengeID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.challenges.Reject(r.Context(), playerFrom(r), challengeID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, map[string]string{"status": "rejected"})
}

// CompleteChallenge records the caller's finished challenge game
func (h *Handler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := urlParamInt64(r, "challengeID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req service.CompleteContestRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	completion, err := h.challenges.Complete(r.Context(), playerFrom(r), challengeID, req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, completion)
}

// CreateMatch issues a live match invitation
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req service.CreateContestRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := h.matches.Create(r.Context(), playerFrom(r), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: m})
}

// GetMatch returns a match to one of its participants
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt64(r, "matchID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := h.matches.Get(r.Context(), playerFrom(r), matchID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, m)
}

// AcceptMatch activates a pending match
func (h *Handler) AcceptMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt64(r, "matchID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := h.matches.Accept(r.Context(), playerFrom(r), matchID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, m)
}

// StartMatch records that the caller began playing
func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt64(r, "matchID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.matches.Start(r.Context(), playerFrom(r), matchID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, map[string]string{"status": "started"})
}

// CompleteMatch records the caller's finished match game
func (h *Handler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt64(r, "matchID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req service.CompleteContestRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	completion, err := h.matches.Complete(r.Context(), playerFrom(r), matchID, req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, completion)
}

// CancelMatch aborts a match that has not completed
func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt64(r, "matchID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.matches.Cancel(r.Context(), playerFrom(r), matchID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, map[string]string{"status": "cancelled"})
}
