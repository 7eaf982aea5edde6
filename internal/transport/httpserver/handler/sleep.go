package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/tracking"
)

type startSleepRequest struct {
	SleepType string     `json:"sleepType"`
	StartTime *time.Time `json:"startTime"`
	Notes     *string    `json:"notes"`
}

type endSleepRequest struct {
	EndTime *time.Time `json:"endTime"`
	Quality *int       `json:"quality"`
	Notes   *string    `json:"notes"`
}

type logSleepRequest struct {
	SleepType string    `json:"sleepType"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Quality   *int      `json:"quality"`
	Notes     *string   `json:"notes"`
}

type updateSleepRequest struct {
	SleepType *string    `json:"sleepType"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Quality   *int       `json:"quality"`
	Notes     *string    `json:"notes"`
}

func (h *Handlers) ListSleep(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListSleep(r.Context(), m, childID, filter)
	h.reply(w, "sleep.list", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) ActiveSleep(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.ActiveSleep(r.Context(), m, childID)
	h.reply(w, "sleep.active", http.StatusOK, record, err, "child_id", childID)
}

func (h *Handlers) StartSleep(w http.ResponseWriter, r *http.Request) {
	var req startSleepRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	sleepType := tracking.SleepNap
	if req.SleepType != "" {
		sleepType = upper[tracking.SleepType](req.SleepType)
	}
	record, err := h.Tracking.StartSleep(r.Context(), m, childID, tracking.StartSleepInput{
		SleepType: sleepType,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	h.reply(w, "sleep.start", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) EndSleep(w http.ResponseWriter, r *http.Request) {
	var req endSleepRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.EndSleep(r.Context(), m, childID, tracking.EndSleepInput{
		EndTime: req.EndTime,
		Quality: req.Quality,
		Notes:   req.Notes,
	})
	h.reply(w, "sleep.end", http.StatusOK, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) LogSleep(w http.ResponseWriter, r *http.Request) {
	var req logSleepRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogSleep(r.Context(), m, childID, tracking.LogSleepInput{
		SleepType: upper[tracking.SleepType](req.SleepType),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Quality:   req.Quality,
		Notes:     req.Notes,
	})
	h.reply(w, "sleep.log", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdateSleep(w http.ResponseWriter, r *http.Request) {
	var req updateSleepRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	record, err := h.Tracking.UpdateSleep(r.Context(), m, childID, recordID, tracking.UpdateSleepInput{
		SleepType: upperPtr[tracking.SleepType](req.SleepType),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Quality:   req.Quality,
		Notes:     req.Notes,
	})
	h.reply(w, "sleep.update", http.StatusOK, record, err, "child_id", childID, "record_id", recordID)
}

func (h *Handlers) DeleteSleep(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeleteSleep(r.Context(), m, childID, recordID)
	h.reply(w, "sleep.delete", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}
