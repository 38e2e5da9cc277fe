package model

import "time"

// Session is the server-side record behind an opaque session token
type Session struct {
	Token     string    `db:"token"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
