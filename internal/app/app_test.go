package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"baby-tracker-go/internal/chat"
	"baby-tracker-go/internal/config"
	"baby-tracker-go/pkg/logger"
	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
)

const jwtSecret = "api-test-secret"

const answerStream = `event: content_block_start
data: {"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"She slept "}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"well."}}

event: content_block_stop
data: {"type":"content_block_stop","index":0}

event: message_delta
data: {"type":"message_delta","delta":{"stop_reason":"end_turn"}}

event: message_stop
data: {"type":"message_stop"}

`

type apiEnv struct {
	t      *testing.T
	server *httptest.Server
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, answerStream)
	}))
	t.Cleanup(llm.Close)

	cfg := config.Config{
		HTTPPort:           "0",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		DB: config.DBConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "api.db"),
		},
		Supabase: config.SupabaseConfig{JWTSecret: jwtSecret},
		Timeline: config.TimelineConfig{DayStartHour: 8, TimeZone: "UTC"},
		AI: config.AIConfig{
			APIKey:       "test",
			BaseURL:      llm.URL,
			DefaultModel: "test-model",
			MaxTokens:    256,
			Timeout:      5 * time.Second,
		},
		MCP:                config.MCPConfig{Enabled: true},
		MembershipCacheTTL: time.Second,
		LiveUpdatesEnabled: true,
		MetricsEnabled:     true,
	}

	application, err := NewWithConfig(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = application.Close() })

	server := httptest.NewServer(application.HTTPServer().Handler)
	t.Cleanup(server.Close)
	return &apiEnv{t: t, server: server}
}

func (e *apiEnv) token(userID string) string {
	e.t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		e.t.Fatalf("sign token: %v", err)
	}
	return token
}

func (e *apiEnv) do(userID, method, path string, body any) (int, []byte) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		e.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(userID))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, payload
}

func (e *apiEnv) mustDo(userID, method, path string, body any, want int, out any) {
	e.t.Helper()
	status, payload := e.do(userID, method, path, body)
	if status != want {
		e.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, status, payload)
	}
	if out != nil {
		if err := sonic.Unmarshal(payload, out); err != nil {
			e.t.Fatalf("%s %s: decode: %v (%s)", method, path, err, payload)
		}
	}
}

type fixture struct {
	householdID string
	inviteCode  string
	childID     string
}

// seed creates a household owned by "owner" with one child.
func (e *apiEnv) seed() fixture {
	e.t.Helper()

	var created struct {
		ID         string `json:"id"`
		InviteCode string `json:"inviteCode"`
	}
	e.mustDo("owner", http.MethodPost, "/api/households", map[string]any{"name": "Home"}, http.StatusCreated, &created)

	var child struct {
		ID  string `json:"id"`
		Age string `json:"age"`
	}
	e.mustDo("owner", http.MethodPost, "/api/households/"+created.ID+"/children",
		map[string]any{"name": "Mila", "birthDate": "2024-01-15"}, http.StatusCreated, &child)
	if child.Age == "" {
		e.t.Fatalf("expected child age in response")
	}

	return fixture{householdID: created.ID, inviteCode: created.InviteCode, childID: child.ID}
}

func TestHealthAndMetrics(t *testing.T) {
	env := newAPIEnv(t)

	env.mustDo("", http.MethodGet, "/api/health", nil, http.StatusOK, nil)

	status, body := env.do("", http.MethodGet, "/metrics", nil)
	if status != http.StatusOK || !strings.Contains(string(body), "http_requests_total") {
		t.Fatalf("expected request metrics, got %d", status)
	}
}

func TestAuthRequired(t *testing.T) {
	env := newAPIEnv(t)

	status, body := env.do("", http.MethodGet, "/api/households", nil)
	if status != http.StatusUnauthorized || !strings.Contains(string(body), "invalid_token") {
		t.Fatalf("expected 401 invalid_token, got %d %s", status, body)
	}
}

func TestSleepLifecycle(t *testing.T) {
	env := newAPIEnv(t)
	fx := env.seed()
	base := "/api/children/" + fx.childID

	start := "2024-05-01T10:00:00Z"
	env.mustDo("owner", http.MethodPost, base+"/sleep/start", map[string]any{"sleepType": "nap", "startTime": start}, http.StatusCreated, nil)

	status, _ := env.do("owner", http.MethodPost, base+"/sleep/start", map[string]any{"startTime": "2024-05-01T10:30:00Z"})
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for a second open sleep, got %d", status)
	}

	var active map[string]any
	env.mustDo("owner", http.MethodGet, base+"/sleep/active", nil, http.StatusOK, &active)
	if active["sleepType"] != "NAP" {
		t.Fatalf("expected active NAP, got %v", active)
	}

	var ended struct {
		EndTime string `json:"endTime"`
		Quality int    `json:"quality"`
	}
	env.mustDo("owner", http.MethodPost, base+"/sleep/end", map[string]any{"endTime": "2024-05-01T11:30:00Z", "quality": 4}, http.StatusOK, &ended)
	if ended.EndTime == "" || ended.Quality != 4 {
		t.Fatalf("unexpected ended record %+v", ended)
	}

	status, body := env.do("owner", http.MethodGet, base+"/sleep/active", nil)
	if status != http.StatusOK || strings.TrimSpace(string(body)) != "null" {
		t.Fatalf("expected null active sleep, got %d %s", status, body)
	}

	status, _ = env.do("owner", http.MethodPost, base+"/sleep/end", map[string]any{})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 ending without an open sleep, got %d", status)
	}

	var records []map[string]any
	env.mustDo("owner", http.MethodGet, base+"/sleep?from=2024-05-01&to=2024-05-02", nil, http.StatusOK, &records)
	if len(records) != 1 {
		t.Fatalf("expected 1 sleep record, got %d", len(records))
	}
}

func TestDailyTimelineUsesLogicalDay(t *testing.T) {
	env := newAPIEnv(t)
	fx := env.seed()
	base := "/api/children/" + fx.childID

	env.mustDo("owner", http.MethodPost, base+"/sleep", map[string]any{
		"sleepType": "NIGHT",
		"startTime": "2024-05-01T20:00:00Z",
		"endTime":   "2024-05-02T06:00:00Z",
	}, http.StatusCreated, nil)
	env.mustDo("owner", http.MethodPost, base+"/diapers", map[string]any{"diaperType": "both", "time": "2024-05-02T07:00:00Z"}, http.StatusCreated, nil)
	env.mustDo("owner", http.MethodPost, base+"/feedings/bottle", map[string]any{"amountMl": 120, "time": "2024-05-01T12:00:00Z"}, http.StatusCreated, nil)

	var day struct {
		Date  string `json:"date"`
		Stats struct {
			SleepTotal  string  `json:"sleepTotal"`
			NightCount  int     `json:"nightCount"`
			WetCount    int     `json:"wetCount"`
			DirtyCount  int     `json:"dirtyCount"`
			BottleMl    float64 `json:"bottleMl"`
			DiaperCount int     `json:"diaperCount"`
		} `json:"stats"`
	}
	env.mustDo("owner", http.MethodGet, base+"/timeline/day?date=2024-05-01", nil, http.StatusOK, &day)
	if day.Date != "2024-05-01" {
		t.Fatalf("unexpected day %q", day.Date)
	}
	if day.Stats.NightCount != 1 || day.Stats.SleepTotal != "10h 0m" {
		t.Fatalf("unexpected sleep stats %+v", day.Stats)
	}
	if day.Stats.DiaperCount != 1 || day.Stats.WetCount != 1 || day.Stats.DirtyCount != 1 {
		t.Fatalf("expected the 07:00 diaper on the previous logical day, got %+v", day.Stats)
	}
	if day.Stats.BottleMl != 120 {
		t.Fatalf("expected 120 ml, got %v", day.Stats.BottleMl)
	}

	var week []struct {
		Date string `json:"date"`
	}
	env.mustDo("owner", http.MethodGet, base+"/timeline/week?start=2024-05-01", nil, http.StatusOK, &week)
	if len(week) != 7 || week[0].Date != "2024-05-01" || week[6].Date != "2024-05-07" {
		t.Fatalf("unexpected week %+v", week)
	}

	var list struct {
		Entries []map[string]any `json:"entries"`
		Groups  []map[string]any `json:"groups"`
	}
	env.mustDo("owner", http.MethodGet, base+"/timeline/list?from=2024-05-01&to=2024-05-03", nil, http.StatusOK, &list)
	if len(list.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list.Entries))
	}
}

func TestRolesAndMembership(t *testing.T) {
	env := newAPIEnv(t)
	fx := env.seed()
	base := "/api/children/" + fx.childID

	env.mustDo("helper", http.MethodPost, "/api/households/join", map[string]any{"code": fx.inviteCode}, http.StatusOK, nil)
	env.mustDo("helper", http.MethodPost, base+"/diapers", map[string]any{"diaperType": "WET"}, http.StatusCreated, nil)

	env.mustDo("owner", http.MethodPatch, "/api/households/"+fx.householdID+"/members/helper", map[string]any{"role": "VIEWER"}, http.StatusNoContent, nil)

	status, _ := env.do("helper", http.MethodPost, base+"/diapers", map[string]any{"diaperType": "WET"})
	if status != http.StatusForbidden {
		t.Fatalf("viewer must not log records, got %d", status)
	}
	var diapers []map[string]any
	env.mustDo("helper", http.MethodGet, base+"/diapers", nil, http.StatusOK, &diapers)
	if len(diapers) != 1 {
		t.Fatalf("viewer should read 1 diaper, got %d", len(diapers))
	}

	status, _ = env.do("stranger", http.MethodGet, base, nil)
	if status != http.StatusForbidden {
		t.Fatalf("stranger must be forbidden, got %d", status)
	}
	status, _ = env.do("stranger", http.MethodGet, "/api/households/"+fx.householdID, nil)
	if status != http.StatusForbidden {
		t.Fatalf("stranger must be forbidden from the household, got %d", status)
	}
}

func TestRejectsInvalidInput(t *testing.T) {
	env := newAPIEnv(t)
	fx := env.seed()
	base := "/api/children/" + fx.childID

	status, body := env.do("owner", http.MethodPost, base+"/diapers", map[string]any{"diaperType": "WET", "colour": "green"})
	if status != http.StatusBadRequest || !strings.Contains(string(body), "invalid_json") {
		t.Fatalf("expected invalid_json for unknown field, got %d %s", status, body)
	}

	status, _ = env.do("owner", http.MethodPost, base+"/temperatures", map[string]any{"temperatureCelsius": 50})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range temperature, got %d", status)
	}

	status, _ = env.do("owner", http.MethodGet, base+"/sleep?limit=5000", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for limit above maximum, got %d", status)
	}
}

func TestChatStreamsAnswer(t *testing.T) {
	env := newAPIEnv(t)
	fx := env.seed()

	payload, _ := sonic.Marshal(chat.Request{ChildID: fx.childID, Message: "How did she sleep?"})
	req, _ := http.NewRequest(http.MethodPost, env.server.URL+"/api/chat", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+env.token("owner"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		t.Fatalf("expected event stream, got %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	var transcript chat.Transcript
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := chat.ReadStream(ctx, resp.Body, func(event chat.Event) error {
		transcript.Apply(event)
		return nil
	}); err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if transcript.Text() != "She slept well." || transcript.Err != "" {
		t.Fatalf("unexpected transcript %q err=%q", transcript.Text(), transcript.Err)
	}

	status, _ := env.do("stranger", http.MethodPost, "/api/chat", chat.Request{ChildID: fx.childID, Message: "hi"})
	if status != http.StatusForbidden {
		t.Fatalf("stranger chat must be forbidden, got %d", status)
	}
}
