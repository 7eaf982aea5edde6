//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"baby-tracker-go/internal/app"
	"baby-tracker-go/internal/config"
	"baby-tracker-go/internal/db"
	"baby-tracker-go/pkg/logger"
	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

type testEnv struct {
	server     *httptest.Server
	authServer *httptest.Server
	app        *app.App
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	authServer := newAuthServer(t)
	log := logger.NewNop()

	cfg := config.Config{
		HTTPPort: "0",
		DB:       config.DBConfig{Driver: config.DriverPostgres, DSN: dsn},
		Supabase: config.SupabaseConfig{
			URL:            authServer.URL,
			PublishableKey: "test-key",
			AuthTimeout:    2 * time.Second,
		},
		Timeline: config.TimelineConfig{DayStartHour: 8, TimeZone: "UTC"},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}
	_ = db.Close(dbConn)

	application, err := app.NewWithConfig(cfg, log)
	if err != nil {
		t.Fatalf("app: %v", err)
	}

	server := httptest.NewServer(application.HTTPServer().Handler)
	return &testEnv{server: server, authServer: authServer, app: application}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.authServer.Close()
	_ = e.app.Close()
}

// newAuthServer accepts any bearer token and treats it as the user id.
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		payload := map[string]interface{}{
			"id":    token,
			"email": token + "@example.com",
			"user_metadata": map[string]interface{}{
				"name":       "User " + token,
				"avatar_url": "https://example.com/avatar.png",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigStd.NewEncoder(w).Encode(payload)
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE activity_records, temperature_records, growth_records, medicine_records, medicines, " +
			"pumping_records, diaper_records, feeding_records, sleep_records, children, household_members, " +
			"households, user_profiles CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := sonic.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func decode(t *testing.T, body []byte, out interface{}) {
	t.Helper()
	if err := sonic.Unmarshal(body, out); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type authMeResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type householdResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode"`
}

type memberResponse struct {
	UserID string  `json:"userId"`
	Role   string  `json:"role"`
	Email  *string `json:"email"`
}

type childResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  string `json:"age"`
}

// seeded is the household every flow test starts from.
type seeded struct {
	owner     string
	household householdResponse
	child     childResponse
}

func seedHousehold(t *testing.T, env *testEnv, client *http.Client) seeded {
	t.Helper()

	owner := "11111111-1111-1111-1111-111111111111"
	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/households", owner, map[string]string{"name": "Petrovs"})
	expectStatus(t, resp, body, http.StatusCreated)
	var household householdResponse
	decode(t, body, &household)

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/households/"+household.ID+"/children", owner, map[string]string{
		"name":      "Mila",
		"birthDate": "2024-01-15",
	})
	expectStatus(t, resp, body, http.StatusCreated)
	var child childResponse
	decode(t, body, &child)

	return seeded{owner: owner, household: household, child: child}
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/health", "", nil)
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", "", nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)
	var errResp errorEnvelope
	decode(t, body, &errResp)
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	userID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", userID, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var me authMeResponse
	decode(t, body, &me)
	if me.ID != userID || me.Email != userID+"@example.com" {
		t.Fatalf("unexpected me %+v", me)
	}
}

func TestE2EHouseholdFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	fx := seedHousehold(t, env, client)
	base := env.server.URL + "/api/households/" + fx.household.ID

	caregiver := "22222222-2222-2222-2222-222222222222"
	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/households/join", caregiver, map[string]string{"code": fx.household.InviteCode})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/households/join", caregiver, map[string]string{"code": fx.household.InviteCode})
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = requestJSON(t, client, http.MethodGet, base+"/members", fx.owner, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var members []memberResponse
	decode(t, body, &members)
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	resp, body = requestJSON(t, client, http.MethodPatch, base, caregiver, map[string]string{"name": "Renamed"})
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodDelete, base, fx.owner, map[string]string{"confirmation": "wrong"})
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = requestJSON(t, client, http.MethodPost, base+"/leave", caregiver, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/children/"+fx.child.ID, caregiver, nil)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodDelete, base, fx.owner, map[string]string{"confirmation": fx.household.Name})
	expectStatus(t, resp, body, http.StatusNoContent)
}

func TestE2ETrackingFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	fx := seedHousehold(t, env, client)
	base := env.server.URL + "/api/children/" + fx.child.ID

	resp, body := requestJSON(t, client, http.MethodPost, base+"/feedings/breast/start", fx.owner, map[string]string{
		"side":      "LEFT",
		"startTime": "2024-05-01T09:00:00Z",
	})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = requestJSON(t, client, http.MethodPost, base+"/feedings/breast/start", fx.owner, map[string]string{"side": "RIGHT"})
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = requestJSON(t, client, http.MethodPost, base+"/feedings/breast/switch", fx.owner, map[string]string{"at": "2024-05-01T09:06:00Z"})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodPost, base+"/feedings/breast/end", fx.owner, map[string]string{"endTime": "2024-05-01T09:10:00Z"})
	expectStatus(t, resp, body, http.StatusOK)
	var feeding struct {
		LeftDurationSeconds  int `json:"leftDurationSeconds"`
		RightDurationSeconds int `json:"rightDurationSeconds"`
	}
	decode(t, body, &feeding)
	if feeding.LeftDurationSeconds != 360 || feeding.RightDurationSeconds != 240 {
		t.Fatalf("unexpected side split %+v", feeding)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/medicines", fx.owner, map[string]string{"name": "Vitamin D", "dosage": "1 drop"})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = requestJSON(t, client, http.MethodPost, base+"/medicines/doses", fx.owner, map[string]interface{}{
		"medicineName": "Vitamin D",
		"time":         "2024-05-01T10:00:00Z",
	})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = requestJSON(t, client, http.MethodGet, base+"/timeline/summary?from=2024-05-01T08:00:00Z&to=2024-05-02T08:00:00Z", fx.owner, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var stats struct {
		BreastCount       int   `json:"breastCount"`
		BreastLeftSeconds int64 `json:"breastLeftSeconds"`
		MedicineGiven     int   `json:"medicineGiven"`
	}
	decode(t, body, &stats)
	if stats.BreastCount != 1 || stats.BreastLeftSeconds != 360 || stats.MedicineGiven != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/timeline/last", fx.owner, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var snapshot struct {
		Feeding  map[string]interface{} `json:"feeding"`
		Medicine map[string]interface{} `json:"medicine"`
	}
	decode(t, body, &snapshot)
	if snapshot.Feeding == nil || snapshot.Medicine == nil {
		t.Fatalf("expected last feeding and medicine, got %s", string(body))
	}
}
