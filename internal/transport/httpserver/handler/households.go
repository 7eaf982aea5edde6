package handler

import (
	"net/http"
	"strings"

	"baby-tracker-go/internal/domain/household"
)

type householdNameRequest struct {
	Name string `json:"name"`
}

type joinHouseholdRequest struct {
	Code string `json:"code"`
}

type deleteHouseholdRequest struct {
	Confirmation string `json:"confirmation"`
}

type updateMemberRequest struct {
	Role string `json:"role"`
}

type inviteCodeResponse struct {
	InviteCode string `json:"inviteCode"`
}

func (h *Handlers) ListHouseholds(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	households, err := h.Households.ListHouseholds(r.Context(), user.ID)
	if households == nil {
		households = []household.HouseholdWithRole{}
	}
	h.reply(w, "households.list", http.StatusOK, households, err, "user_id", user.ID)
}

func (h *Handlers) CreateHousehold(w http.ResponseWriter, r *http.Request) {
	var req householdNameRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		invalidRequest(w, "name is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.Households.CreateHousehold(r.Context(), user.ID, req.Name)
	h.reply(w, "households.create", http.StatusCreated, result, err, "user_id", user.ID)
}

func (h *Handlers) JoinHousehold(w http.ResponseWriter, r *http.Request) {
	var req joinHouseholdRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		invalidRequest(w, "code is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.Households.JoinHousehold(r.Context(), user.ID, req.Code)
	h.reply(w, "households.join", http.StatusOK, result, err, "user_id", user.ID, "code", req.Code)
}

func (h *Handlers) GetHousehold(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}

	result, err := h.Households.GetHousehold(r.Context(), m)
	if err != nil {
		h.fail(w, "households.get", err, "household_id", m.HouseholdID)
		return
	}
	writeJSON(w, http.StatusOK, household.HouseholdWithRole{Household: *result, Role: m.Role})
}

func (h *Handlers) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	var req householdNameRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	m, ok := membership(w, r)
	if !ok {
		return
	}

	result, err := h.Households.UpdateHousehold(r.Context(), m, req.Name)
	h.reply(w, "households.update", http.StatusOK, result, err, "household_id", m.HouseholdID, "user_id", m.UserID)
}

func (h *Handlers) DeleteHousehold(w http.ResponseWriter, r *http.Request) {
	var req deleteHouseholdRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	m, ok := membership(w, r)
	if !ok {
		return
	}

	err := h.Households.DeleteHousehold(r.Context(), m, req.Confirmation)
	h.reply(w, "households.delete", http.StatusNoContent, nil, err, "household_id", m.HouseholdID, "user_id", m.UserID)
}

func (h *Handlers) RegenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}

	code, err := h.Households.RegenerateInviteCode(r.Context(), m)
	h.reply(w, "households.invite_code", http.StatusOK, inviteCodeResponse{InviteCode: code}, err, "household_id", m.HouseholdID)
}

func (h *Handlers) LeaveHousehold(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}

	err := h.Households.LeaveHousehold(r.Context(), m)
	h.reply(w, "households.leave", http.StatusNoContent, nil, err, "household_id", m.HouseholdID, "user_id", m.UserID)
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}

	members, err := h.Households.ListMembers(r.Context(), m)
	if members == nil {
		members = []household.MemberProfile{}
	}
	h.reply(w, "households.list_members", http.StatusOK, members, err, "household_id", m.HouseholdID)
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	role, valid := household.ParseRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if !valid {
		invalidRequest(w, "role must be OWNER, ADMIN, CAREGIVER or VIEWER")
		return
	}

	m, ok := membership(w, r)
	if !ok {
		return
	}
	memberID := pathParam(r, "userID")

	err := h.Households.UpdateMemberRole(r.Context(), m, memberID, role)
	h.reply(w, "households.update_member", http.StatusNoContent, nil, err, "household_id", m.HouseholdID, "actor_id", m.UserID, "member_id", memberID)
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}
	memberID := pathParam(r, "userID")

	err := h.Households.RemoveMember(r.Context(), m, memberID)
	h.reply(w, "households.remove_member", http.StatusNoContent, nil, err, "household_id", m.HouseholdID, "actor_id", m.UserID, "member_id", memberID)
}
