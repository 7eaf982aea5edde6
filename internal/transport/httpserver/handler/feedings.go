package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/tracking"
)

type startBreastRequest struct {
	Side      string     `json:"side"`
	StartTime *time.Time `json:"startTime"`
}

type switchSideRequest struct {
	At *time.Time `json:"at"`
}

type endBreastRequest struct {
	EndTime *time.Time `json:"endTime"`
	Notes   *string    `json:"notes"`
}

type logBreastRequest struct {
	StartTime    time.Time `json:"startTime"`
	LeftSeconds  int       `json:"leftDurationSeconds"`
	RightSeconds int       `json:"rightDurationSeconds"`
	Notes        *string   `json:"notes"`
}

type logBottleRequest struct {
	Time              *time.Time `json:"time"`
	AmountMl          float64    `json:"amountMl"`
	BottleContentType *string    `json:"bottleContentType"`
	Notes             *string    `json:"notes"`
}

type logSolidsRequest struct {
	Time      *time.Time `json:"time"`
	FoodItems []string   `json:"foodItems"`
	Notes     *string    `json:"notes"`
}

type updateFeedingRequest struct {
	StartTime         *time.Time `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	Side              *string    `json:"side"`
	LeftSeconds       *int       `json:"leftDurationSeconds"`
	RightSeconds      *int       `json:"rightDurationSeconds"`
	AmountMl          *float64   `json:"amountMl"`
	BottleContentType *string    `json:"bottleContentType"`
	FoodItems         []string   `json:"foodItems"`
	Notes             *string    `json:"notes"`
}

func (h *Handlers) ListFeedings(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListFeedings(r.Context(), m, childID, filter)
	h.reply(w, "feedings.list", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) ActiveBreastfeeding(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.ActiveBreastfeeding(r.Context(), m, childID)
	h.reply(w, "feedings.breast_active", http.StatusOK, record, err, "child_id", childID)
}

func (h *Handlers) StartBreastfeeding(w http.ResponseWriter, r *http.Request) {
	var req startBreastRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.StartBreastfeeding(r.Context(), m, childID, tracking.StartBreastfeedingInput{
		Side:      upper[tracking.Side](req.Side),
		StartTime: req.StartTime,
	})
	h.reply(w, "feedings.breast_start", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) SwitchBreastSide(w http.ResponseWriter, r *http.Request) {
	var req switchSideRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.SwitchBreastSide(r.Context(), m, childID, tracking.SwitchSideInput{At: req.At})
	h.reply(w, "feedings.breast_switch", http.StatusOK, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) EndBreastfeeding(w http.ResponseWriter, r *http.Request) {
	var req endBreastRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.EndBreastfeeding(r.Context(), m, childID, tracking.EndBreastfeedingInput{
		EndTime: req.EndTime,
		Notes:   req.Notes,
	})
	h.reply(w, "feedings.breast_end", http.StatusOK, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) LogBreastfeeding(w http.ResponseWriter, r *http.Request) {
	var req logBreastRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogBreastfeeding(r.Context(), m, childID, tracking.LogBreastfeedingInput{
		StartTime:    req.StartTime,
		LeftSeconds:  req.LeftSeconds,
		RightSeconds: req.RightSeconds,
		Notes:        req.Notes,
	})
	h.reply(w, "feedings.breast_log", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) LogBottle(w http.ResponseWriter, r *http.Request) {
	var req logBottleRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogBottle(r.Context(), m, childID, tracking.LogBottleInput{
		Time:        req.Time,
		AmountMl:    req.AmountMl,
		ContentType: upperPtr[tracking.BottleContent](req.BottleContentType),
		Notes:       req.Notes,
	})
	h.reply(w, "feedings.bottle", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) LogSolids(w http.ResponseWriter, r *http.Request) {
	var req logSolidsRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogSolids(r.Context(), m, childID, tracking.LogSolidsInput{
		Time:      req.Time,
		FoodItems: req.FoodItems,
		Notes:     req.Notes,
	})
	h.reply(w, "feedings.solids", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdateFeeding(w http.ResponseWriter, r *http.Request) {
	var req updateFeedingRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	record, err := h.Tracking.UpdateFeeding(r.Context(), m, childID, recordID, tracking.UpdateFeedingInput{
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Side:              upperPtr[tracking.Side](req.Side),
		LeftSeconds:       req.LeftSeconds,
		RightSeconds:      req.RightSeconds,
		AmountMl:          req.AmountMl,
		BottleContentType: upperPtr[tracking.BottleContent](req.BottleContentType),
		FoodItems:         req.FoodItems,
		Notes:             req.Notes,
	})
	h.reply(w, "feedings.update", http.StatusOK, record, err, "child_id", childID, "record_id", recordID)
}

func (h *Handlers) DeleteFeeding(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeleteFeeding(r.Context(), m, childID, recordID)
	h.reply(w, "feedings.delete", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}
