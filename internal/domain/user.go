// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

// Roles assignable to users. Role gates are enforced by the middleware for
// whole routes and by services for ownership checks.
const (
	RoleClient  = "client"
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

var (
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
	// ErrPermissionDenied indicates that the caller lacks the required role or ownership.
	ErrPermissionDenied = errors.New("permission denied")
)

// SupportedRoles holds all the assignable roles.
var SupportedRoles = []string{RoleClient, RoleAdmin, RoleCashier}

// IsSupportedRole returns true if the role is assignable.
func IsSupportedRole(role string) bool {
	for _, r := range SupportedRoles {
		if r == role {
			return true
		}
	}

	return false
}

// User holds user data.
type User struct {
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}

// UserWithoutPassword is User data excluding password data.
type UserWithoutPassword struct {
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Caller identifies the authenticated principal on whose behalf a service
// operation runs. Every manager operation takes it explicitly.
type Caller struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
