package model

import "time"

// Session is the server-side record of an authenticated browser. ID is the
// opaque token carried in the session cookie.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	Role      Role
	LoggedIn  bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given instant.
// A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Principal returns the identity held by the session.
func (s Session) Principal() Principal {
	return Principal{UserID: s.UserID, Username: s.Username, Role: s.Role}
}
