package models

// SessionStatus is the lifecycle state of the client session.
type SessionStatus string

const (
	StatusUninitialized   SessionStatus = "uninitialized"
	StatusRestoring       SessionStatus = "restoring"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// Session is an immutable snapshot of the authentication state handed to
// subscribers. CurrentUser is a copy; mutating it does not affect the session.
type Session struct {
	Status      SessionStatus
	CurrentUser *User
	IsLoading   bool
}

// IsAuthenticated reports whether a user is signed in.
func (s Session) IsAuthenticated() bool {
	return s.CurrentUser != nil
}
