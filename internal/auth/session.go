package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// Session is the token pair handed to a client.
type Session struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionManager binds a user to a single live refresh token.
// It is the only component that writes the stored refresh hash.
type SessionManager struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewSessionManager constructs the manager.
func NewSessionManager(tokens *TokenManager, users repository.UserRepository) *SessionManager {
	return &SessionManager{tokens: tokens, users: users}
}

// HashToken returns the hex sha256 digest stored in place of a refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Start issues a fresh pair and overwrites any previously stored refresh hash.
func (m *SessionManager) Start(ctx context.Context, user *domain.User) (Session, error) {
	session, err := m.issue(user)
	if err != nil {
		return Session{}, err
	}
	hash := HashToken(session.RefreshToken)
	if err := m.users.SetRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, apperrors.NewUnauthorized("unauthorized")
		}
		return Session{}, err
	}
	return session, nil
}

// Rotate exchanges a valid, current refresh token for a new pair.
// A token that has already been rotated away is rejected even before it expires,
// and of two concurrent rotations with the same token only one succeeds.
func (m *SessionManager) Rotate(ctx context.Context, presented string) (*domain.User, Session, error) {
	claims, err := m.tokens.VerifyRefresh(presented)
	if err != nil {
		return nil, Session{}, apperrors.NewUnauthorized("invalid or expired refresh token")
	}

	user, err := m.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Session{}, apperrors.NewUnauthorized("unauthorized")
		}
		return nil, Session{}, err
	}
	if !user.HasSession() {
		return nil, Session{}, apperrors.NewUnauthorized("unauthorized")
	}

	current := *user.RefreshTokenHash
	presentedHash := HashToken(presented)
	if subtle.ConstantTimeCompare([]byte(current), []byte(presentedHash)) != 1 {
		return nil, Session{}, apperrors.NewUnauthorized("unauthorized")
	}

	session, err := m.issue(user)
	if err != nil {
		return nil, Session{}, err
	}
	swapped, err := m.users.SwapRefreshTokenHash(ctx, user.ID, current, HashToken(session.RefreshToken))
	if err != nil {
		return nil, Session{}, err
	}
	if !swapped {
		return nil, Session{}, apperrors.NewUnauthorized("unauthorized")
	}
	return user, session, nil
}

// End clears the stored refresh hash. Ending an ended session is not an error.
func (m *SessionManager) End(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if err := m.users.SetRefreshTokenHash(ctx, userID, nil); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (m *SessionManager) issue(user *domain.User) (Session, error) {
	access, accessExp, err := m.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return Session{}, err
	}
	refresh, refreshExp, err := m.tokens.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
