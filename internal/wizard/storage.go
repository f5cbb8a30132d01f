package wizard

import (
	"context"
	"errors"
)

// ErrSessionNotFound indicates that no draft snapshot exists for a session id.
var ErrSessionNotFound = errors.New("wizard session not found")

// Storage defines the persistence contract for wizard session drafts.
type Storage interface {
	// Load returns the stored session draft for the given id.
	Load(ctx context.Context, id string) (*Session, error)
	// Save snapshots the session draft under its id.
	Save(ctx context.Context, session *Session) error
	// Clear removes the draft for the given id.
	Clear(ctx context.Context, id string) error
}
