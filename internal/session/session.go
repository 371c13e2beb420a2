package session

import "time"

// AdminRole is the role value the sweets API assigns to administrators
const AdminRole = "admin"

// Session is the explicit per-browser session state: who the user is and the
// bearer token the sweets API issued. It is owned by the application root and
// injected into handlers; nothing reads it through package-level state.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session belongs to an administrator. The
// backend enforces authorization on every call; this predicate only gates
// navigation and rendering.
func (s *Session) IsAdmin() bool {
	return s.Role == AdminRole
}

// Expired reports whether the remote token has passed its expiry
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
