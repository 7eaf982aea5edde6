package handler

import (
	"net/http"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/child"
)

type createChildRequest struct {
	Name      string  `json:"name"`
	BirthDate string  `json:"birthDate"`
	Gender    *string `json:"gender"`
	Notes     *string `json:"notes"`
}

type updateChildRequest struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birthDate"`
	Gender    *string `json:"gender"`
	Notes     *string `json:"notes"`
}

type childResponse struct {
	child.Child
	Age string `json:"age"`
}

func (h *Handlers) toChildResponse(c child.Child) childResponse {
	return childResponse{Child: c, Age: h.Children.Age(&c).String()}
}

// parseBirthDate accepts yyyy-MM-dd or a full timestamp.
func parseBirthDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.DateOnly, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

func parseGender(value *string) *child.Gender {
	if value == nil {
		return nil
	}
	gender := child.Gender(strings.ToUpper(strings.TrimSpace(*value)))
	return &gender
}

func (h *Handlers) ListChildren(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}

	children, err := h.Children.ListChildren(r.Context(), m)
	if err != nil {
		h.fail(w, "children.list", err, "household_id", m.HouseholdID)
		return
	}

	response := make([]childResponse, 0, len(children))
	for _, c := range children {
		response = append(response, h.toChildResponse(c))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	birthDate, valid := parseBirthDate(req.BirthDate)
	if !valid {
		invalidRequest(w, "birthDate must be yyyy-MM-dd")
		return
	}

	m, ok := membership(w, r)
	if !ok {
		return
	}

	created, err := h.Children.CreateChild(r.Context(), m, child.CreateChildInput{
		Name:      req.Name,
		BirthDate: birthDate,
		Gender:    parseGender(req.Gender),
		Notes:     req.Notes,
	})
	if err != nil {
		h.fail(w, "children.create", err, "household_id", m.HouseholdID, "user_id", m.UserID)
		return
	}
	writeJSON(w, http.StatusCreated, h.toChildResponse(*created))
}

func (h *Handlers) GetChild(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}
	childID := pathParam(r, "childID")

	found, err := h.Children.GetChild(r.Context(), m, childID)
	if err != nil {
		h.fail(w, "children.get", err, "child_id", childID)
		return
	}
	writeJSON(w, http.StatusOK, h.toChildResponse(*found))
}

func (h *Handlers) UpdateChild(w http.ResponseWriter, r *http.Request) {
	var req updateChildRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	input := child.UpdateChildInput{
		Name:   req.Name,
		Gender: parseGender(req.Gender),
		Notes:  req.Notes,
	}
	if req.BirthDate != nil {
		birthDate, valid := parseBirthDate(*req.BirthDate)
		if !valid {
			invalidRequest(w, "birthDate must be yyyy-MM-dd")
			return
		}
		input.BirthDate = &birthDate
	}

	m, ok := membership(w, r)
	if !ok {
		return
	}
	childID := pathParam(r, "childID")

	updated, err := h.Children.UpdateChild(r.Context(), m, childID, input)
	if err != nil {
		h.fail(w, "children.update", err, "child_id", childID, "user_id", m.UserID)
		return
	}
	writeJSON(w, http.StatusOK, h.toChildResponse(*updated))
}

func (h *Handlers) DeleteChild(w http.ResponseWriter, r *http.Request) {
	m, ok := membership(w, r)
	if !ok {
		return
	}
	childID := pathParam(r, "childID")

	err := h.Children.DeleteChild(r.Context(), m, childID)
	h.reply(w, "children.delete", http.StatusNoContent, nil, err, "child_id", childID, "user_id", m.UserID)
}
