package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func TestRegisterCreatesUserProfileAndSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	res, err := f.auth.Register(ctx, RegisterInput{
		Name:     "  Ada  ",
		Email:    " Ada@Example.com ",
		Password: "secret1",
		Role:     domain.RoleJobSeeker,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.User.Name)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.NotEmpty(t, res.Session.AccessToken)

	account, err := f.auth.Me(ctx, domain.Actor{ID: res.User.ID, Role: res.User.Role})
	require.NoError(t, err)
	assert.NotNil(t, account.JobSeeker)
	assert.Nil(t, account.Employer)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	cases := map[string]RegisterInput{
		"missing name":   {Email: "a@example.com", Password: "secret1", Role: domain.RoleJobSeeker},
		"bad email":      {Name: "A", Email: "nope", Password: "secret1", Role: domain.RoleJobSeeker},
		"short password": {Name: "A", Email: "a@example.com", Password: "12345", Role: domain.RoleJobSeeker},
		"admin role":     {Name: "A", Email: "a@example.com", Password: "secret1", Role: domain.RoleAdmin},
		"unknown role":   {Name: "A", Email: "a@example.com", Password: "secret1", Role: "BOSS"},
	}
	for name, in := range cases {
		_, err := f.auth.Register(ctx, in)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), name)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.register(t, "dup@example.com", domain.RoleEmployer)

	_, err := f.auth.Register(ctx, RegisterInput{Name: "B", Email: "DUP@example.com", Password: "secret1", Role: domain.RoleJobSeeker})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.register(t, "login@example.com", domain.RoleJobSeeker)

	res, err := f.auth.Login(ctx, LoginInput{Email: "Login@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Session.RefreshToken)

	_, err = f.auth.Login(ctx, LoginInput{Email: "login@example.com", Password: "wrong-pass"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))

	_, err = f.auth.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "secret1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))

	_, err = f.auth.Login(ctx, LoginInput{Email: "not-an-email", Password: "secret1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.register(t, "r@example.com", domain.RoleEmployer)

	login, err := f.auth.Login(ctx, LoginInput{Email: "r@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.auth.Refresh(ctx, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))

	rotated, err := f.auth.Refresh(ctx, login.Session.RefreshToken)
	require.NoError(t, err)

	_, err = f.auth.Refresh(ctx, login.Session.RefreshToken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated), "replayed token")

	require.NoError(t, f.auth.Logout(ctx, login.User.ID))
	require.NoError(t, f.auth.Logout(ctx, login.User.ID))

	_, err = f.auth.Refresh(ctx, rotated.Session.RefreshToken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated), "after logout")
}
