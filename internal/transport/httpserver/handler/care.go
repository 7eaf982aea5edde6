package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/tracking"
)

type logDiaperRequest struct {
	Time        *time.Time `json:"time"`
	DiaperType  string     `json:"diaperType"`
	Color       *string    `json:"color"`
	Consistency *string    `json:"consistency"`
	Amount      *string    `json:"amount"`
	Notes       *string    `json:"notes"`
}

type updateDiaperRequest struct {
	Time        *time.Time `json:"time"`
	DiaperType  *string    `json:"diaperType"`
	Color       *string    `json:"color"`
	Consistency *string    `json:"consistency"`
	Amount      *string    `json:"amount"`
	Notes       *string    `json:"notes"`
}

func (h *Handlers) ListDiapers(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListDiapers(r.Context(), m, childID, filter)
	h.reply(w, "diapers.list", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) LogDiaper(w http.ResponseWriter, r *http.Request) {
	var req logDiaperRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogDiaper(r.Context(), m, childID, tracking.LogDiaperInput{
		Time:        req.Time,
		DiaperType:  upper[tracking.DiaperType](req.DiaperType),
		Color:       req.Color,
		Consistency: req.Consistency,
		Amount:      upperPtr[tracking.DiaperAmount](req.Amount),
		Notes:       req.Notes,
	})
	h.reply(w, "diapers.log", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdateDiaper(w http.ResponseWriter, r *http.Request) {
	var req updateDiaperRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	record, err := h.Tracking.UpdateDiaper(r.Context(), m, childID, recordID, tracking.UpdateDiaperInput{
		Time:        req.Time,
		DiaperType:  upperPtr[tracking.DiaperType](req.DiaperType),
		Color:       req.Color,
		Consistency: req.Consistency,
		Amount:      upperPtr[tracking.DiaperAmount](req.Amount),
		Notes:       req.Notes,
	})
	h.reply(w, "diapers.update", http.StatusOK, record, err, "child_id", childID, "record_id", recordID)
}

func (h *Handlers) DeleteDiaper(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeleteDiaper(r.Context(), m, childID, recordID)
	h.reply(w, "diapers.delete", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}

type startPumpingRequest struct {
	StartTime *time.Time `json:"startTime"`
	Side      *string    `json:"side"`
}

type endPumpingRequest struct {
	EndTime  *time.Time `json:"endTime"`
	AmountMl *float64   `json:"amountMl"`
	Notes    *string    `json:"notes"`
}

type logPumpingRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	AmountMl  *float64  `json:"amountMl"`
	Side      *string   `json:"side"`
	Notes     *string   `json:"notes"`
}

type updatePumpingRequest struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	AmountMl  *float64   `json:"amountMl"`
	Side      *string    `json:"side"`
	Notes     *string    `json:"notes"`
}

func (h *Handlers) ListPumping(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListPumping(r.Context(), m, childID, filter)
	h.reply(w, "pumping.list", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) ActivePumping(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.ActivePumping(r.Context(), m, childID)
	h.reply(w, "pumping.active", http.StatusOK, record, err, "child_id", childID)
}

func (h *Handlers) StartPumping(w http.ResponseWriter, r *http.Request) {
	var req startPumpingRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.StartPumping(r.Context(), m, childID, tracking.StartPumpingInput{
		StartTime: req.StartTime,
		Side:      upperPtr[tracking.Side](req.Side),
	})
	h.reply(w, "pumping.start", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) EndPumping(w http.ResponseWriter, r *http.Request) {
	var req endPumpingRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.EndPumping(r.Context(), m, childID, tracking.EndPumpingInput{
		EndTime:  req.EndTime,
		AmountMl: req.AmountMl,
		Notes:    req.Notes,
	})
	h.reply(w, "pumping.end", http.StatusOK, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) LogPumping(w http.ResponseWriter, r *http.Request) {
	var req logPumpingRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogPumping(r.Context(), m, childID, tracking.LogPumpingInput{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		AmountMl:  req.AmountMl,
		Side:      upperPtr[tracking.Side](req.Side),
		Notes:     req.Notes,
	})
	h.reply(w, "pumping.log", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdatePumping(w http.ResponseWriter, r *http.Request) {
	var req updatePumpingRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	record, err := h.Tracking.UpdatePumping(r.Context(), m, childID, recordID, tracking.UpdatePumpingInput{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		AmountMl:  req.AmountMl,
		Side:      upperPtr[tracking.Side](req.Side),
		Notes:     req.Notes,
	})
	h.reply(w, "pumping.update", http.StatusOK, record, err, "child_id", childID, "record_id", recordID)
}

func (h *Handlers) DeletePumping(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeletePumping(r.Context(), m, childID, recordID)
	h.reply(w, "pumping.delete", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}
