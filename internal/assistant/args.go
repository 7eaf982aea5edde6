package assistant

import (
	"strings"
	"time"

	"baby-tracker-go/internal/domain/errs"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultQueryDays  = 1
	defaultQueryLimit = 50
	maxQueryLimit     = 500
)

var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// args reads tool arguments. Values arrive from JSON, so numbers are float64
// and absent keys are distinct from zero values.
type args struct {
	req mcp.CallToolRequest
	loc *time.Location
}

func (a args) has(key string) bool {
	value, ok := a.req.GetArguments()[key]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

func (a args) requiredString(key string) (string, error) {
	value := strings.TrimSpace(a.req.GetString(key, ""))
	if value == "" {
		return "", missing(key)
	}
	return value, nil
}

func (a args) optionalString(key string) *string {
	if !a.has(key) {
		return nil
	}
	value := strings.TrimSpace(a.req.GetString(key, ""))
	return &value
}

func (a args) optionalFloat(key string) *float64 {
	if !a.has(key) {
		return nil
	}
	value := a.req.GetFloat(key, 0)
	return &value
}

func (a args) optionalInt(key string) *int {
	if !a.has(key) {
		return nil
	}
	value := a.req.GetInt(key, 0)
	return &value
}

func (a args) intOr(key string, fallback int) int {
	if !a.has(key) {
		return fallback
	}
	return a.req.GetInt(key, fallback)
}

func (a args) boolean(key string) bool {
	return a.req.GetBool(key, false)
}

func (a args) stringList(key string) []string {
	return a.req.GetStringSlice(key, nil)
}

func (a args) optionalTime(key string) (*time.Time, error) {
	if !a.has(key) {
		return nil, nil
	}
	value, err := parseInstant(a.req.GetString(key, ""), a.loc)
	if err != nil {
		return nil, errs.BadRequestf("%s: %v", key, err)
	}
	return &value, nil
}

func (a args) requiredTime(key string) (time.Time, error) {
	value, err := a.optionalTime(key)
	if err != nil {
		return time.Time{}, err
	}
	if value == nil {
		return time.Time{}, missing(key)
	}
	return *value, nil
}

// parseInstant accepts RFC 3339 or a local wall-clock time in loc.
func parseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range instantLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.BadRequestf("expected an ISO 8601 time, got %q", value)
}

func enumOf[T ~string](a args, key string) *T {
	if !a.has(key) {
		return nil
	}
	value := T(strings.ToUpper(strings.TrimSpace(a.req.GetString(key, ""))))
	return &value
}

func missing(key string) error {
	return errs.BadRequestf("%s is required", key)
}
