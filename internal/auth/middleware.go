package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

const (
	principalKey = "auth_principal"

	// AccessCookie and RefreshCookie name the session cookies.
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

type principalCtxKey struct{}

// Principal represents the authenticated caller. It is a value and is never mutated after
// the gate builds it.
type Principal struct {
	Actor domain.Actor
	User  domain.User
}

// ID returns the caller's user id.
func (p Principal) ID() string { return p.Actor.ID }

// Role returns the caller's role.
func (p Principal) Role() domain.Role { return p.Actor.Role }

// AuthMiddleware validates access tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Authenticate resolves an access token to a principal. Expired and tampered tokens are
// reported the same way.
func (m *AuthMiddleware) Authenticate(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, apperrors.NewUnauthorized("unauthorized")
	}
	claims, err := m.tokens.VerifyAccess(token)
	if err != nil {
		return Principal{}, apperrors.NewUnauthorized("invalid or expired token")
	}

	user, err := m.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Principal{}, apperrors.NewUnauthorized("user not found")
		}
		return Principal{}, err
	}

	user.RefreshTokenHash = nil
	user.PasswordHash = ""
	return Principal{
		Actor: domain.Actor{ID: user.ID, Role: user.Role},
		User:  *user,
	}, nil
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.Authenticate(c.UserContext(), extractAccessToken(c))
	if err != nil {
		return err
	}

	c.Locals(principalKey, principal)
	c.SetUserContext(WithPrincipal(c.UserContext(), principal))
	return c.Next()
}

func extractAccessToken(c *fiber.Ctx) string {
	if token := c.Cookies(AccessCookie); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// WithPrincipal attaches the principal to ctx.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated caller from a request context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	principal, ok := ctx.Value(principalCtxKey{}).(Principal)
	return principal, ok
}

// PrincipalFromFiber retrieves the authenticated caller stored by Handle.
func PrincipalFromFiber(c *fiber.Ctx) (Principal, bool) {
	principal, ok := c.Locals(principalKey).(Principal)
	return principal, ok
}
