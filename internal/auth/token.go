package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

var (
	// ErrTokenInvalid covers bad signatures, malformed tokens and wrong token types.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned once a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// TokenConfig carries the two signing secrets and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type signer struct {
	kind   domain.TokenKind
	secret []byte
	ttl    time.Duration
}

// TokenManager handles issuing and validating access and refresh JWTs.
type TokenManager struct {
	access  signer
	refresh signer
	now     func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		access:  signer{kind: domain.TokenKindAccess, secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: signer{kind: domain.TokenKindRefresh, secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		now:     time.Now,
	}
}

// WithClock returns a copy of the manager that reads time from now.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	c := *tm
	c.now = now
	return &c
}

// AccessTTL returns the access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.access.ttl }

// RefreshTTL returns the refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refresh.ttl }

// Claims describes JWT payload.
type Claims struct {
	Role domain.Role      `json:"role"`
	Kind domain.TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// UserID returns the subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// IssueAccess signs a short-lived access token.
func (tm *TokenManager) IssueAccess(userID string, role domain.Role) (string, time.Time, error) {
	return tm.issue(tm.access, userID, role)
}

// IssueRefresh signs a long-lived refresh token.
func (tm *TokenManager) IssueRefresh(userID string, role domain.Role) (string, time.Time, error) {
	return tm.issue(tm.refresh, userID, role)
}

// VerifyAccess validates an access token and returns its claims.
func (tm *TokenManager) VerifyAccess(token string) (*Claims, error) {
	return tm.verify(tm.access, token)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (tm *TokenManager) VerifyRefresh(token string) (*Claims, error) {
	return tm.verify(tm.refresh, token)
}

func (tm *TokenManager) issue(s signer, userID string, role domain.Role) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(s.ttl)
	claims := &Claims{
		Role: role,
		Kind: s.kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (tm *TokenManager) verify(s signer, tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrTokenInvalid
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Kind != s.kind || claims.Subject == "" || !claims.Role.IsValid() {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
