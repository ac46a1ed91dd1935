package domain

import "time"

// Role gates capability checks and is fixed at registration.
type Role string

const (
	RoleJobSeeker Role = "JOBSEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is an account holder. RefreshTokenHash is nil when no session is active.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	RefreshTokenHash *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasSession reports whether a refresh token hash is currently stored.
func (u *User) HasSession() bool {
	return u != nil && u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}

// UserSummary is the public projection of a user.
type UserSummary struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Summary returns the public projection.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
