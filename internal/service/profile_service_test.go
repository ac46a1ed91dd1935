package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func TestUpdateMineEmployer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	employer := f.register(t, "e@example.com", domain.RoleEmployer)

	name := " Acme HR "
	company := "Acme"
	website := "https://acme.example.com"
	phone := "12345"
	account, err := f.profiles.UpdateMine(ctx, employer, ProfileUpdate{
		Name:           &name,
		CompanyName:    &company,
		CompanyWebsite: &website,
		Phone:          &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme HR", account.User.Name)
	require.NotNil(t, account.Employer)
	assert.Equal(t, "Acme", account.Employer.CompanyName)
	assert.Equal(t, website, account.Employer.CompanyWebsite)
	assert.Nil(t, account.JobSeeker)

	public, err := f.profiles.GetEmployer(ctx, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", public.Employer.CompanyName)

	_, err = f.profiles.GetJobSeeker(ctx, employer.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateMineValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	employer := f.register(t, "e@example.com", domain.RoleEmployer)

	empty := "   "
	_, err := f.profiles.UpdateMine(ctx, employer, ProfileUpdate{Name: &empty})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	website := "not a url"
	_, err = f.profiles.UpdateMine(ctx, employer, ProfileUpdate{CompanyWebsite: &website})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestPublicProfileLookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	seeker := f.register(t, "s@example.com", domain.RoleJobSeeker)

	account, err := f.profiles.GetJobSeeker(ctx, seeker.ID)
	require.NoError(t, err)
	assert.NotNil(t, account.JobSeeker)

	_, err = f.profiles.GetEmployer(ctx, seeker.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = f.profiles.GetJobSeeker(ctx, "bogus")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
