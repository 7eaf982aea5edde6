package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/pkg/logger"
)

func TestLogicalDayOnClockChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	h := New(Services{Timeline: timeline.NewService(nil, 8, loc)}, logger.NewNop())

	cases := []struct {
		date string
		want time.Time
	}{
		{"2024-11-03", time.Date(2024, 11, 3, 8, 0, 0, 0, loc)},
		{"2024-03-10", time.Date(2024, 3, 10, 8, 0, 0, 0, loc)},
		{"2024-06-01", time.Date(2024, 6, 1, 8, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/timeline/day?date="+tc.date, nil)
		at, err := h.logicalDay(req, "date")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.date, err)
		}
		if !at.Equal(tc.want) {
			t.Fatalf("%s: expected %s, got %s", tc.date, tc.want, at)
		}

		window := h.Timeline.DayWindow(at)
		if got := window.Start.Format(time.DateOnly); got != tc.date {
			t.Fatalf("%s: resolved to logical day %s", tc.date, got)
		}
	}
}

func TestLogicalDayWithoutDate(t *testing.T) {
	h := New(Services{Timeline: timeline.NewService(nil, 8, time.UTC)}, logger.NewNop())

	at, err := h.logicalDay(httptest.NewRequest("GET", "/timeline/day", nil), "date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !at.IsZero() {
		t.Fatalf("expected zero time for the current day, got %s", at)
	}

	if _, err := h.logicalDay(httptest.NewRequest("GET", "/timeline/day?date=11/03/2024", nil), "date"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
