package assistant

import (
	"context"

	"baby-tracker-go/internal/domain/errs"
)

type actorKey struct{}

// ErrNoActor is returned when a tool runs without an authenticated user in its context.
var ErrNoActor = errs.New(errs.KindUnauthorized, "authentication required")

func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func ActorFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(actorKey{}).(string)
	return userID, ok && userID != ""
}
