package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// ToInput converts the payload.
func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role}
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToInput converts the payload.
func (r LoginRequest) ToInput() service.LoginInput {
	return service.LoginInput{Email: r.Email, Password: r.Password}
}

// UserResponse is the public user shape.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a user summary.
func NewUserResponse(u domain.UserSummary) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// SessionResponse reports token expiries. The tokens themselves travel in cookies.
type SessionResponse struct {
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User    UserResponse    `json:"user"`
	Session SessionResponse `json:"session"`
}

// NewAuthResponse maps a register, login or refresh result.
func NewAuthResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		User: NewUserResponse(res.User.Summary()),
		Session: SessionResponse{
			AccessExpiresAt:  res.Session.AccessExpiresAt,
			RefreshExpiresAt: res.Session.RefreshExpiresAt,
		},
	}
}
