package middleware

import (
	"context"
	"net/http"
	"strings"

	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Authorizer interface {
	Authorize(ctx context.Context, userID string, target household.Target, min household.Role) (household.Membership, error)
}

// HouseholdAccess resolves the {householdID} or {childID} route parameter to
// the caller's membership. Viewer access is enough to pass; handlers check
// the minimum role of each action.
func HouseholdAccess(access Authorizer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			target := household.Target{
				HouseholdID: strings.TrimSpace(chi.URLParam(r, "householdID")),
				ChildID:     strings.TrimSpace(chi.URLParam(r, "childID")),
			}
			membership, err := access.Authorize(r.Context(), userID, target, household.RoleViewer)
			if err != nil {
				status, _ := StatusFor(err)
				if status == http.StatusInternalServerError {
					log.InternalError("access: resolve membership failed", err, "user_id", userID, "household_id", target.HouseholdID, "child_id", target.ChildID)
				} else {
					log.BusinessError("access: denied", err, "user_id", userID, "household_id", target.HouseholdID, "child_id", target.ChildID)
				}
				WriteDomainError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithMembership(r.Context(), membership)))
		})
	}
}

func WithMembership(ctx context.Context, m household.Membership) context.Context {
	return context.WithValue(ctx, membershipKey, m)
}

func MembershipFromContext(ctx context.Context) (household.Membership, bool) {
	m, ok := ctx.Value(membershipKey).(household.Membership)
	return m, ok && m.UserID != ""
}
