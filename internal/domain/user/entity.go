package user

import "time"

type Role string

const (
	RoleUser  Role = "USER"  // Regular employee, records own attendance
	RoleAdmin Role = "ADMIN" // Can manage users and correct records
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can access administrative endpoints
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
