package handler

import (
	"net/http"
	"strings"

	"baby-tracker-go/internal/domain/household"
)

// scope returns the caller's membership and the child in the route.
func scope(w http.ResponseWriter, r *http.Request) (household.Membership, string, bool) {
	m, ok := membership(w, r)
	if !ok {
		return household.Membership{}, "", false
	}
	return m, pathParam(r, "childID"), true
}

// upper normalizes an enum value from a request body.
func upper[T ~string](value string) T {
	return T(strings.ToUpper(strings.TrimSpace(value)))
}

func upperPtr[T ~string](value *string) *T {
	if value == nil {
		return nil
	}
	converted := upper[T](*value)
	return &converted
}

// listOf keeps empty results encoded as [] rather than null.
func listOf[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
