package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/tracking"
	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

func parseDateParam(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseInstantParam accepts RFC 3339 or a bare date, which means local midnight.
func parseInstantParam(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, nil
	}
	return parseDateParam(value, loc)
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func parseBoolParam(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}

// listFilter reads from, to, limit and completedOnly from the query string.
func (h *Handlers) listFilter(r *http.Request) (tracking.Filter, error) {
	query := r.URL.Query()
	loc := h.Timeline.Location()

	from, err := parseInstantParam(query.Get("from"), loc)
	if err != nil {
		return tracking.Filter{}, fmt.Errorf("invalid from")
	}
	to, err := parseInstantParam(query.Get("to"), loc)
	if err != nil {
		return tracking.Filter{}, fmt.Errorf("invalid to")
	}
	if from != nil && to != nil && !to.After(*from) {
		return tracking.Filter{}, fmt.Errorf("to must be after from")
	}
	limit, err := parseIntParam(query.Get("limit"), defaultListLimit)
	if err != nil || limit == 0 || limit > maxListLimit {
		return tracking.Filter{}, fmt.Errorf("limit must be between 1 and %d", maxListLimit)
	}

	return tracking.Filter{
		From:          from,
		To:            to,
		Limit:         limit,
		CompletedOnly: parseBoolParam(query.Get("completedOnly")),
	}, nil
}

func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}
