// Package models defines client-side data models exchanged with the Agent
// Synergy backend and held by the session.
package models

import (
	"strings"
	"time"
)

// User is the backend's account record. The client caches it locally but
// never edits it except through UpdateProfile.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	CompanySize string     `json:"company_size,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsVerified  bool       `json:"is_verified"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// DisplayName returns "First Last" when known, otherwise the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// UserUpdate is the PUT /users/me payload. Nil fields are left untouched.
type UserUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	CompanySize *string `json:"company_size,omitempty"`
}
