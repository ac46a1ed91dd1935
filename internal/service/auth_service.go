package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// AuthService coordinates registration, login and session refresh flows.
type AuthService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	sessions  *auth.SessionManager
	passwords *auth.PasswordHasher
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
	Sessions    *auth.SessionManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:     deps.UserRepo,
		profiles:  deps.ProfileRepo,
		sessions:  deps.Sessions,
		passwords: auth.NewPasswordHasher(cfg.BcryptCost),
	}
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// Validate runs validation rules.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 128)),
		validation.Field(&in.Role, validation.Required, validation.In(domain.RoleJobSeeker, domain.RoleEmployer)),
	)
}

// LoginInput describes credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs validation rules.
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	)
}

// AuthResult is a user together with the session just issued for it.
type AuthResult struct {
	User    *domain.User
	Session auth.Session
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and its role profile atomically and starts a session.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("email already in use", map[string]any{"email": in.Email})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.users.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("email already in use", map[string]any{"email": in.Email})
		}
		return nil, err
	}

	session, err := s.sessions.Start(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Session: session}, nil
}

// Login authenticates by email and password and starts a session, revoking any earlier one.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = s.passwords.CompareAbsent(in.Password)
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := s.passwords.Compare(user.PasswordHash, in.Password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	session, err := s.sessions.Start(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Session: session}, nil
}

// Refresh rotates the presented refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.NewUnauthorized("no refresh token")
	}
	user, session, err := s.sessions.Rotate(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Session: session}, nil
}

// Logout ends the caller's session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.End(ctx, userID)
}

// Me returns the caller's account and role profile.
func (s *AuthService) Me(ctx context.Context, actor domain.Actor) (*Account, error) {
	return loadAccount(ctx, s.users, s.profiles, actor.ID)
}
