package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type fakeAuthorizer struct {
	targets []household.Target
	err     error
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, userID string, target household.Target, min household.Role) (household.Membership, error) {
	f.targets = append(f.targets, target)
	if f.err != nil {
		return household.Membership{}, f.err
	}
	return household.Membership{HouseholdID: "h1", UserID: userID, Role: household.RoleCaregiver}, nil
}

func accessRouter(access Authorizer) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := r.Header.Get("X-User"); userID != "" {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.With(HouseholdAccess(access, logger.NewNop())).Get("/children/{childID}", func(w http.ResponseWriter, r *http.Request) {
		m, ok := MembershipFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(m.HouseholdID + "|" + string(m.Role)))
	})
	return r
}

func TestHouseholdAccessAttachesMembership(t *testing.T) {
	access := &fakeAuthorizer{}
	req := httptest.NewRequest(http.MethodGet, "/children/c1", nil)
	req.Header.Set("X-User", "u1")
	rec := httptest.NewRecorder()
	accessRouter(access).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "h1|CAREGIVER" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
	if len(access.targets) != 1 || access.targets[0].ChildID != "c1" || access.targets[0].HouseholdID != "" {
		t.Fatalf("unexpected targets %+v", access.targets)
	}
}

func TestHouseholdAccessMapsErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{household.ErrNotMember, http.StatusForbidden},
		{errs.New(errs.KindNotFound, "child not found"), http.StatusNotFound},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/children/c1", nil)
		req.Header.Set("X-User", "u1")
		rec := httptest.NewRecorder()
		accessRouter(&fakeAuthorizer{err: tc.err}).ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
	}
}

func TestHouseholdAccessRequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	accessRouter(&fakeAuthorizer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/children/c1", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	status, code := StatusFor(errs.New(errs.KindConflict, "sleep already in progress"))
	if status != http.StatusConflict || code != "conflict" {
		t.Fatalf("unexpected %d %q", status, code)
	}
	status, code = StatusFor(errs.BadRequestf("bad"))
	if status != http.StatusBadRequest || code != "bad_request" {
		t.Fatalf("unexpected %d %q", status, code)
	}
	status, code = StatusFor(context.Canceled)
	if status != http.StatusInternalServerError || code != "internal_error" {
		t.Fatalf("unexpected %d %q", status, code)
	}
}
