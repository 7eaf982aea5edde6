package assistant

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"baby-tracker-go/internal/db"
	"baby-tracker-go/internal/domain/child"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/internal/metrics"
	trackingrepo "baby-tracker-go/internal/repository/postgres/tracking"
	"baby-tracker-go/pkg/logger"
	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	testChildID     = "0d9e6f4a-2b1c-4e8f-a7d3-5c6b9e2f1a04"
	testHouseholdID = "7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

var testNow = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

// ─── Test helpers ────────────────────────────────────────────────────────────

type fakeAccess struct {
	roles map[string]household.Role
}

func (f fakeAccess) Authorize(_ context.Context, userID string, target household.Target, min household.Role) (household.Membership, error) {
	role, ok := f.roles[userID]
	if !ok || target.ChildID != testChildID {
		return household.Membership{}, household.ErrNotMember
	}
	membership := household.Membership{HouseholdID: testHouseholdID, UserID: userID, Role: role}
	if err := membership.Require(min); err != nil {
		return household.Membership{}, err
	}
	return membership, nil
}

type fakeChildren struct {
	children []child.Child
}

func (f fakeChildren) GetChild(_ context.Context, _ household.Membership, childID string) (*child.Child, error) {
	for _, ch := range f.children {
		if ch.ID == childID {
			return &ch, nil
		}
	}
	return nil, child.ErrChildNotFound
}

func (f fakeChildren) ListChildrenForUser(_ context.Context, _ string) ([]child.Child, error) {
	return f.children, nil
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	log := logger.New(io.Discard, slog.LevelError, "text")
	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "assistant.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gormDB) })
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := trackingrepo.NewPostgres(gormDB)
	catalog := NewCatalog(Deps{
		Access: fakeAccess{roles: map[string]household.Role{
			"owner":  household.RoleOwner,
			"viewer": household.RoleViewer,
		}},
		Children: fakeChildren{children: []child.Child{{
			ID:          testChildID,
			HouseholdID: testHouseholdID,
			Name:        "Mila",
			BirthDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		}}},
		Tracking: tracking.NewService(repo),
		Timeline: timeline.NewService(repo, timeline.DefaultDayStartHour, time.UTC),
		Metrics:  metrics.New(),
		Log:      log,
	})
	catalog.now = func() time.Time { return testNow }
	return catalog
}

func as(userID string) context.Context {
	return WithActor(context.Background(), userID)
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func mustExecute(t *testing.T, catalog *Catalog, ctx context.Context, name string, args map[string]any) string {
	t.Helper()
	result := catalog.Execute(ctx, name, args)
	if result.IsError {
		t.Fatalf("%s failed: %s", name, result.Text)
	}
	return result.Text
}

// ─── Catalog Tests ───────────────────────────────────────────────────────────

func TestCatalogListsEveryTool(t *testing.T) {
	catalog := newTestCatalog(t)

	want := []string{
		"end-activity", "end-breastfeeding", "end-pumping", "end-sleep",
		"get-child", "get-daily-summary", "get-last-activity", "get-timeline",
		"list-children", "log-bottle-feeding", "log-diaper", "log-growth",
		"log-medicine", "log-sleep", "log-solids", "log-temperature",
		"query-activity-records", "query-diaper-records", "query-feeding-records",
		"query-growth-records", "query-medicine-records", "query-pumping-records",
		"query-sleep-records", "query-temperature-records",
		"start-activity", "start-breastfeeding", "start-pumping", "start-sleep",
		"switch-breastfeeding-side",
	}
	sort.Strings(want)

	tools := catalog.Tools()
	if len(tools) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(tools))
	}
	for i, tool := range tools {
		if tool.Name != want[i] {
			t.Errorf("tool %d = %q, want %q", i, tool.Name, want[i])
		}
	}
}

func TestToolDefinitionsRequireChildID(t *testing.T) {
	catalog := newTestCatalog(t)
	for _, tool := range catalog.Tools() {
		if tool.Name == "list-children" {
			continue
		}
		found := false
		for _, name := range tool.InputSchema.Required {
			if name == "childId" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s does not require childId", tool.Name)
		}
	}
}

func TestExecuteMatchesToolNamesExactly(t *testing.T) {
	catalog := newTestCatalog(t)

	for _, name := range []string{"log-breastfeeding-bottle", "sleep", "query-sleep", "Start-Sleep"} {
		result := catalog.Execute(as("owner"), name, map[string]any{"childId": testChildID})
		if !result.IsError {
			t.Fatalf("%q should not dispatch, got %s", name, result.Text)
		}
		if !strings.HasPrefix(result.Text, "Error: unknown tool") {
			t.Fatalf("unexpected error text %q", result.Text)
		}
	}
}

func TestExecuteRequiresActor(t *testing.T) {
	catalog := newTestCatalog(t)

	result := catalog.Execute(context.Background(), "list-children", nil)
	if !result.IsError || result.Text != "Error: authentication required" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestViewerCannotMutate(t *testing.T) {
	catalog := newTestCatalog(t)

	result := catalog.Execute(as("viewer"), "start-sleep", map[string]any{"childId": testChildID})
	if !result.IsError {
		t.Fatalf("expected viewer to be rejected")
	}
	if result.Text != "Error: insufficient role for this action" {
		t.Fatalf("unexpected error text %q", result.Text)
	}

	mustExecute(t, catalog, as("viewer"), "query-sleep-records", map[string]any{"childId": testChildID})
}

func TestStrangerCannotRead(t *testing.T) {
	catalog := newTestCatalog(t)

	result := catalog.Execute(as("stranger"), "get-last-activity", map[string]any{"childId": testChildID})
	if !result.IsError || result.Text != "Error: no access to this household" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestMissingRequiredArgument(t *testing.T) {
	catalog := newTestCatalog(t)

	result := catalog.Execute(as("owner"), "log-bottle-feeding", map[string]any{"childId": testChildID})
	if !result.IsError || result.Text != "Error: amountMl is required" {
		t.Fatalf("unexpected result %+v", result)
	}
}

type sleepQuery struct {
	Records []tracking.SleepRecord `json:"records"`
	Summary timeline.Stats         `json:"summary"`
}

func TestQuerySleepRecordsCompletedOnly(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := as("owner")

	mustExecute(t, catalog, ctx, "log-sleep", map[string]any{
		"childId": testChildID, "sleepType": "nap",
		"startTime": "2024-05-01T09:00:00Z", "endTime": "2024-05-01T10:00:00Z",
	})
	mustExecute(t, catalog, ctx, "log-sleep", map[string]any{
		"childId": testChildID, "sleepType": "NAP",
		"startTime": "2024-05-01T13:00:00Z", "endTime": "2024-05-01T13:30:00Z",
	})
	mustExecute(t, catalog, ctx, "start-sleep", map[string]any{
		"childId": testChildID, "startTime": "2024-05-01T16:00:00Z",
	})

	window := map[string]any{
		"childId": testChildID,
		"from":    "2024-05-01T00:00:00Z",
		"to":      "2024-05-02T00:00:00Z",
	}

	var all sleepQuery
	if err := sonic.UnmarshalString(mustExecute(t, catalog, ctx, "query-sleep-records", window), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(all.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all.Records))
	}
	if all.Summary.SleepTotal != "1h 30m" || !all.Summary.SleepOngoing {
		t.Fatalf("unexpected summary %+v", all.Summary)
	}

	window["completedOnly"] = true
	var completed sleepQuery
	if err := sonic.UnmarshalString(mustExecute(t, catalog, ctx, "query-sleep-records", window), &completed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(completed.Records) != 2 {
		t.Fatalf("expected 2 completed records, got %d", len(completed.Records))
	}
	for _, record := range completed.Records {
		if record.EndTime == nil {
			t.Fatalf("open session %s leaked into completed list", record.ID)
		}
	}
	if completed.Summary.SleepTotal != "1h 30m" || completed.Summary.SleepOngoing || completed.Summary.SleepCount != 2 {
		t.Fatalf("unexpected summary %+v", completed.Summary)
	}
}

func TestHandleReturnsErrorsAsToolResults(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := as("owner")

	result, err := catalog.Handle(ctx, makeReq("start-sleep", map[string]interface{}{"childId": testChildID, "startTime": "2024-05-01T12:00:00Z"}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if result.IsError || !strings.Contains(resultText(result), "Sleep started") {
		t.Fatalf("unexpected result %q", resultText(result))
	}

	result, err = catalog.Handle(ctx, makeReq("start-sleep", map[string]interface{}{"childId": testChildID}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !result.IsError || !strings.HasPrefix(resultText(result), "Error: ") {
		t.Fatalf("expected tool error, got %q", resultText(result))
	}
}

func TestBreastfeedingToolsTrackSides(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := as("owner")

	mustExecute(t, catalog, ctx, "start-breastfeeding", map[string]any{
		"childId": testChildID, "side": "left", "startTime": "2024-05-01T09:00:00Z",
	})
	mustExecute(t, catalog, ctx, "switch-breastfeeding-side", map[string]any{
		"childId": testChildID, "at": "2024-05-01T09:06:00Z",
	})
	text := mustExecute(t, catalog, ctx, "end-breastfeeding", map[string]any{
		"childId": testChildID, "endTime": "2024-05-01T09:10:00Z",
	})
	if !strings.Contains(text, "left 6m, right 4m") {
		t.Fatalf("unexpected confirmation %q", text)
	}
}

func TestLogMedicineNeedsAnIdentifier(t *testing.T) {
	catalog := newTestCatalog(t)

	result := catalog.Execute(as("owner"), "log-medicine", map[string]any{"childId": testChildID})
	if !result.IsError || result.Text != "Error: medicineId or medicineName is required" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestGetDailySummaryUsesLogicalDay(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := as("owner")

	mustExecute(t, catalog, ctx, "log-diaper", map[string]any{
		"childId": testChildID, "diaperType": "both", "time": "2024-05-02T07:00:00Z",
	})

	var summary timeline.DaySummary
	text := mustExecute(t, catalog, ctx, "get-daily-summary", map[string]any{"childId": testChildID, "date": "2024-05-01"})
	if err := sonic.UnmarshalString(text, &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Stats.WetCount != 1 || summary.Stats.DirtyCount != 1 {
		t.Fatalf("early morning diaper should belong to the previous logical day: %+v", summary.Stats)
	}
}

func TestListChildrenIncludesAge(t *testing.T) {
	catalog := newTestCatalog(t)

	text := mustExecute(t, catalog, as("owner"), "list-children", nil)
	if !strings.Contains(text, `"name":"Mila"`) || !strings.Contains(text, `"age":`) {
		t.Fatalf("unexpected payload %s", text)
	}
}
