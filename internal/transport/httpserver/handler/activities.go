package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/tracking"
)

type startActivityRequest struct {
	ActivityType string     `json:"activityType"`
	StartTime    *time.Time `json:"startTime"`
	Notes        *string    `json:"notes"`
}

type endActivityRequest struct {
	ActivityType string     `json:"activityType"`
	EndTime      *time.Time `json:"endTime"`
	Notes        *string    `json:"notes"`
}

type logActivityRequest struct {
	ActivityType string     `json:"activityType"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Notes        *string    `json:"notes"`
}

type updateActivityRequest struct {
	ActivityType *string    `json:"activityType"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Notes        *string    `json:"notes"`
}

func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListActivities(r.Context(), m, childID, filter)
	h.reply(w, "activities.list", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) ActiveActivities(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	records, err := h.Tracking.ActiveActivities(r.Context(), m, childID)
	h.reply(w, "activities.active", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) StartActivity(w http.ResponseWriter, r *http.Request) {
	var req startActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.StartActivity(r.Context(), m, childID, tracking.StartActivityInput{
		ActivityType: upper[tracking.ActivityType](req.ActivityType),
		StartTime:    req.StartTime,
		Notes:        req.Notes,
	})
	h.reply(w, "activities.start", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) EndActivity(w http.ResponseWriter, r *http.Request) {
	var req endActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.EndActivity(r.Context(), m, childID, tracking.EndActivityInput{
		ActivityType: upper[tracking.ActivityType](req.ActivityType),
		EndTime:      req.EndTime,
		Notes:        req.Notes,
	})
	h.reply(w, "activities.end", http.StatusOK, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) LogActivity(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogActivity(r.Context(), m, childID, tracking.LogActivityInput{
		ActivityType: upper[tracking.ActivityType](req.ActivityType),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Notes:        req.Notes,
	})
	h.reply(w, "activities.log", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req updateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	record, err := h.Tracking.UpdateActivity(r.Context(), m, childID, recordID, tracking.UpdateActivityInput{
		ActivityType: upperPtr[tracking.ActivityType](req.ActivityType),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Notes:        req.Notes,
	})
	h.reply(w, "activities.update", http.StatusOK, record, err, "child_id", childID, "record_id", recordID)
}

func (h *Handlers) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeleteActivity(r.Context(), m, childID, recordID)
	h.reply(w, "activities.delete", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}
