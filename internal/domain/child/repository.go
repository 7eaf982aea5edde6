package child

import "context"

type Repository interface {
	GetChild(ctx context.Context, childID string) (*Child, error)
	ListChildren(ctx context.Context, householdID string) ([]Child, error)
	ListChildrenForUser(ctx context.Context, userID string) ([]Child, error)
	CreateChild(ctx context.Context, child *Child) error
	UpdateChild(ctx context.Context, child *Child) error
	// DeleteChild removes the child together with every record that belongs to it.
	DeleteChild(ctx context.Context, childID string) (bool, error)
}
