package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the access level attached to an authenticated user. It gates both
// API routes and which dashboard cards the user may see.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var allRoles = []Role{RoleAdmin, RoleEditor, RoleViewer}

// ParseRole normalises a role string to its canonical lowercase form.
// The dashboard client historically sent roles in upper case.
func ParseRole(value string) (Role, bool) {
	normalized := Role(strings.ToLower(strings.TrimSpace(value)))
	for _, r := range allRoles {
		if r == normalized {
			return r, true
		}
	}
	return "", false
}

// CanWrite reports whether the role may mutate domain resources.
// Viewers are read-only by definition.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleEditor
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	DisplayName  string    `json:"display_name,omitempty" bson:"display_name,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
