package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/tracking"
)

type growthRequest struct {
	Date                *time.Time `json:"date"`
	WeightKg            *float64   `json:"weightKg"`
	HeightCm            *float64   `json:"heightCm"`
	HeadCircumferenceCm *float64   `json:"headCircumferenceCm"`
	Notes               *string    `json:"notes"`
}

func (req growthRequest) input() tracking.LogGrowthInput {
	return tracking.LogGrowthInput{
		Date:                req.Date,
		WeightKg:            req.WeightKg,
		HeightCm:            req.HeightCm,
		HeadCircumferenceCm: req.HeadCircumferenceCm,
		Notes:               req.Notes,
	}
}

func (h *Handlers) ListGrowth(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListGrowth(r.Context(), m, childID, filter)
	h.reply(w, "growth.list", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) LogGrowth(w http.ResponseWriter, r *http.Request) {
	var req growthRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogGrowth(r.Context(), m, childID, req.input())
	h.reply(w, "growth.log", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdateGrowth(w http.ResponseWriter, r *http.Request) {
	var req growthRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	record, err := h.Tracking.UpdateGrowth(r.Context(), m, childID, recordID, tracking.UpdateGrowthInput(req.input()))
	h.reply(w, "growth.update", http.StatusOK, record, err, "child_id", childID, "record_id", recordID)
}

func (h *Handlers) DeleteGrowth(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeleteGrowth(r.Context(), m, childID, recordID)
	h.reply(w, "growth.delete", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}

type logTemperatureRequest struct {
	Time               *time.Time `json:"time"`
	TemperatureCelsius float64    `json:"temperatureCelsius"`
	Notes              *string    `json:"notes"`
}

type updateTemperatureRequest struct {
	Time               *time.Time `json:"time"`
	TemperatureCelsius *float64   `json:"temperatureCelsius"`
	Notes              *string    `json:"notes"`
}

func (h *Handlers) ListTemperatures(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListTemperatures(r.Context(), m, childID, filter)
	h.reply(w, "temperatures.list", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) LogTemperature(w http.ResponseWriter, r *http.Request) {
	var req logTemperatureRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogTemperature(r.Context(), m, childID, tracking.LogTemperatureInput{
		Time:               req.Time,
		TemperatureCelsius: req.TemperatureCelsius,
		Notes:              req.Notes,
	})
	h.reply(w, "temperatures.log", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdateTemperature(w http.ResponseWriter, r *http.Request) {
	var req updateTemperatureRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	record, err := h.Tracking.UpdateTemperature(r.Context(), m, childID, recordID, tracking.UpdateTemperatureInput{
		Time:               req.Time,
		TemperatureCelsius: req.TemperatureCelsius,
		Notes:              req.Notes,
	})
	h.reply(w, "temperatures.update", http.StatusOK, record, err, "child_id", childID, "record_id", recordID)
}

func (h *Handlers) DeleteTemperature(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeleteTemperature(r.Context(), m, childID, recordID)
	h.reply(w, "temperatures.delete", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}
