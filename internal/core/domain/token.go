package domain

import (
	"errors"
	"time"
)

var ErrTokenRevoked = errors.New("token revoked or unknown")

// AccessToken is the server-side record backing a bearer credential. The
// bearer value itself is a signed JWT; this record is the allowlist entry that
// makes single-token revocation possible. Abilities are snapshotted at
// issuance and never re-read from the role tables.
type AccessToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Abilities []string  `json:"abilities"`
	CreatedAt time.Time `json:"created_at"`
}
