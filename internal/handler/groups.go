package handler

import (
	"net/http"

	"github.com/sudoku-arena/internal/service"
)

// CreateGroup creates a group with the caller as leader
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGroupRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	group, err := h.groups.Create(r.Context(), playerFrom(r), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: group})
}

// GetGroup returns a group by id
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := urlParamInt64(r, "groupID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	group, err := h.groups.Get(r.Context(), groupID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, group)
}

// JoinGroup adds the caller to a group
func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := urlParamInt64(r, "groupID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req service.JoinGroupRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	if err := h.groups.Join(r.Context(), playerFrom(r), groupID, req); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, map[string]string{"status": "joined"})
}

// LeaveGroup removes the caller from a group
func (h *Handler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := urlParamInt64(r, "groupID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.groups.Leave(r.Context(), playerFrom(r), groupID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, map[string]string{"status": "left"})
}

// GetGroupMembers lists a group's members with their records
func (h *Handler) GetGroupMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := urlParamInt64(r, "groupID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	members, err := h.groups.Members(r.Context(), groupID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, members)
}

// GetGroupLeaderboard returns a group-scoped leaderboard
func (h *Handler) GetGroupLeaderboard(w http.ResponseWriter, r *http.Request) {
	groupID, err := urlParamInt64(r, "groupID")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	rows, err := h.leaderboards.GroupTopPlayers(r.Context(), groupID, queryPeriod(r), queryLimit(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeSuccess(w, rows)
}
