package models

import "time"

// User is the stored account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	CompanyName  string
	CompanySize  string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	LastLogin    *time.Time
}

// UserUpdate lists the profile fields a user may change. Nil means unchanged.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	CompanyName *string
	CompanySize *string
}

// Apply copies the non-nil fields of upd onto u.
func (upd UserUpdate) Apply(u *User) {
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.CompanyName != nil {
		u.CompanyName = *upd.CompanyName
	}
	if upd.CompanySize != nil {
		u.CompanySize = *upd.CompanySize
	}
}
