package ports

import "context"

// Session is a server-side web login keyed by an opaque id stored in a cookie.
type Session struct {
	ID     string
	UserID string
}

// SessionStore holds web sessions. Create always mints a fresh id, so logging
// in rotates the session identifier and closes session-fixation replays.
type SessionStore interface {
	Create(ctx context.Context, userID string) (*Session, error)
	// Get returns nil, nil when the id is unknown or expired.
	Get(ctx context.Context, id string) (*Session, error)
	Destroy(ctx context.Context, id string) error
}
