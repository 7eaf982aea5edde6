package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"baby-tracker-go/internal/assistant"
	"baby-tracker-go/internal/db"
	"baby-tracker-go/internal/domain/child"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	trackingrepo "baby-tracker-go/internal/repository/postgres/tracking"
	"baby-tracker-go/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

type allowAll struct{}

func (allowAll) Authorize(_ context.Context, userID string, target household.Target, _ household.Role) (household.Membership, error) {
	return household.Membership{HouseholdID: "h1", UserID: userID, Role: household.RoleOwner}, nil
}

type noChildren struct{}

func (noChildren) GetChild(context.Context, household.Membership, string) (*child.Child, error) {
	return nil, child.ErrChildNotFound
}

func (noChildren) ListChildrenForUser(context.Context, string) ([]child.Child, error) {
	return nil, nil
}

func newCatalog(t *testing.T) *assistant.Catalog {
	t.Helper()
	log := logger.New(io.Discard, slog.LevelError, "text")
	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "mcp.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gormDB) })
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := trackingrepo.NewPostgres(gormDB)
	return assistant.NewCatalog(assistant.Deps{
		Access:   allowAll{},
		Children: noChildren{},
		Tracking: tracking.NewService(repo),
		Timeline: timeline.NewService(repo, timeline.DefaultDayStartHour, time.UTC),
		Log:      log,
	})
}

func TestNewRegistersCatalog(t *testing.T) {
	catalog := newCatalog(t)
	s := New(catalog)

	tools := s.ListTools()
	if len(tools) != len(catalog.Tools()) {
		t.Fatalf("expected %d tools, got %d", len(catalog.Tools()), len(tools))
	}
	if _, ok := tools["query-sleep-records"]; !ok {
		t.Fatalf("query-sleep-records not registered")
	}
}

func TestServeStdioRequiresUser(t *testing.T) {
	if err := ServeStdio(New(newCatalog(t)), "  "); err != ErrNoStdioUser {
		t.Fatalf("expected ErrNoStdioUser, got %v", err)
	}
}

func TestHTTPHandlerInitializes(t *testing.T) {
	handler := HTTPHandler(New(newCatalog(t)), func(*http.Request) (string, bool) { return "user-1", true })

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"` + mcp.LATEST_PROTOCOL_VERSION +
		`","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), Name) {
		t.Fatalf("expected server name in %s", rec.Body.String())
	}
}
