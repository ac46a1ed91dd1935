package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match its stored hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordHasher hashes and checks account passwords at a fixed bcrypt cost.
type PasswordHasher struct {
	cost int

	decoyOnce sync.Once
	decoy     []byte
}

// NewPasswordHasher falls back to bcrypt.DefaultCost for out-of-range costs.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plain.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare checks plain against hashed.
func (h *PasswordHasher) Compare(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// CompareAbsent spends the same work as Compare when no account exists, so
// login latency does not reveal which emails are registered. It always fails.
func (h *PasswordHasher) CompareAbsent(plain string) error {
	h.decoyOnce.Do(func() {
		h.decoy, _ = bcrypt.GenerateFromPassword([]byte("decoy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.decoy, []byte(plain))
	return ErrPasswordMismatch
}
