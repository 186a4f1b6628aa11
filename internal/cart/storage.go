package cart

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("no cart stored for session")
	ErrItemNotFound = errors.New("item not found in cart")
)

// Storage is the session-scoped persistence port for cart items. The
// userEmail entry is a read-only input written by the sign-in flow, never by
// this package.
type Storage interface {
	LoadItems(ctx context.Context, sessionID string) ([]Item, error)
	SaveItems(ctx context.Context, sessionID string, items []Item) error
	ClearItems(ctx context.Context, sessionID string) error
	UserEmail(ctx context.Context, sessionID string) (string, error)
}
