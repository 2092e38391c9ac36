package model

import "time"

// Roles a user account can hold. The role is fixed when the account is
// created: self-registration always produces a passenger, and only admins
// create driver or admin accounts.
const (
	RolePassenger = "PASSENGER"
	RoleDriver    = "DRIVER"
	RoleAdmin     = "ADMIN"
)

// User represents an account record as stored in the `users` table.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – unique, lowercased email address.
//	Name         – display name shown in the portals.
//	PasswordHash – bcrypt hashed password.
//	Role         – one of RolePassenger, RoleDriver, RoleAdmin.
//	IsActive     – whether the account is active.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RolePassenger || s == RoleDriver || s == RoleAdmin
}
