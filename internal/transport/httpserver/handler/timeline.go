package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/timeline"
)

// logicalDay turns ?date=yyyy-MM-dd into the start of that logical day. An
// absent date means the day containing now.
func (h *Handlers) logicalDay(r *http.Request, key string) (time.Time, error) {
	date, err := parseDateParam(r.URL.Query().Get(key), h.Timeline.Location())
	if err != nil || date == nil {
		return time.Time{}, err
	}
	return timeline.DayStart(*date, h.Timeline.DayStartHour()), nil
}

// window reads from/to, defaulting to the current logical day.
func (h *Handlers) window(r *http.Request) (timeline.Window, error) {
	filter, err := h.listFilter(r)
	if err != nil {
		return timeline.Window{}, err
	}
	window := h.Timeline.DayWindow(time.Time{})
	if filter.From != nil {
		window.Start = *filter.From
	}
	if filter.To != nil {
		window.End = *filter.To
	}
	return window, window.Validate()
}

func (h *Handlers) TimelineDay(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	at, err := h.logicalDay(r, "date")
	if err != nil {
		invalidRequest(w, "invalid date")
		return
	}

	summary, err := h.Timeline.Day(r.Context(), m, childID, at)
	h.reply(w, "timeline.day", http.StatusOK, summary, err, "child_id", childID)
}

func (h *Handlers) TimelineWeek(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	start, err := h.logicalDay(r, "start")
	if err != nil {
		invalidRequest(w, "invalid start")
		return
	}

	days, err := h.Timeline.Week(r.Context(), m, childID, start)
	h.reply(w, "timeline.week", http.StatusOK, days, err, "child_id", childID)
}

func (h *Handlers) TimelineList(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	window, err := h.window(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	result, err := h.Timeline.List(r.Context(), m, childID, window)
	h.reply(w, "timeline.list", http.StatusOK, result, err, "child_id", childID)
}

func (h *Handlers) TimelineSummary(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	window, err := h.window(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	stats, err := h.Timeline.Summary(r.Context(), m, childID, window)
	h.reply(w, "timeline.summary", http.StatusOK, stats, err, "child_id", childID)
}

func (h *Handlers) LastActivity(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	snapshot, err := h.Timeline.LastActivity(r.Context(), m, childID)
	h.reply(w, "timeline.last", http.StatusOK, snapshot, err, "child_id", childID)
}
