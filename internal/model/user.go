package model

// Roles. The set is open; only RoleAdmin grants write access.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Credential is one entry of the static credentials file.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Session is the authenticated state of one client. A nil *Session is
// anonymous.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewSession builds a session, defaulting an empty role to guest.
func NewSession(username, role string) *Session {
	if role == "" {
		role = RoleGuest
	}
	return &Session{Username: username, Role: role}
}

// CurrentUser returns the username, or false for an anonymous session.
func (s *Session) CurrentUser() (string, bool) {
	if s == nil || s.Username == "" {
		return "", false
	}
	return s.Username, true
}

// CurrentRole returns the session role, defaulting to guest.
func (s *Session) CurrentRole() string {
	if s == nil || s.Role == "" {
		return RoleGuest
	}
	return s.Role
}

// IsAdmin reports whether the role is exactly "admin".
func (s *Session) IsAdmin() bool {
	return s.CurrentRole() == RoleAdmin
}
