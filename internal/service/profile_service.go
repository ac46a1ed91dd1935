package service

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// Account is a user's public summary plus the profile matching its role.
type Account struct {
	User      domain.UserSummary
	JobSeeker *domain.JobSeekerProfile
	Employer  *domain.EmployerProfile
}

func loadAccount(ctx context.Context, users repository.UserRepository, profiles repository.ProfileRepository, userID string) (*Account, error) {
	if err := checkID("user", userID); err != nil {
		return nil, err
	}
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("user", err)
	}
	account := &Account{User: user.Summary()}

	switch user.Role {
	case domain.RoleJobSeeker:
		profile, err := profiles.GetJobSeeker(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		account.JobSeeker = profile
	case domain.RoleEmployer:
		profile, err := profiles.GetEmployer(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		account.Employer = profile
	}
	return account, nil
}

// ProfileService manages self-service profile edits and public profile reads.
type ProfileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

// NewProfileService constructs the service.
func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{users: users, profiles: profiles}
}

// ProfileUpdate carries optional changes. Nil fields are left untouched; fields that do not
// apply to the caller's role are ignored.
type ProfileUpdate struct {
	Name *string `json:"name"`

	Phone      *string  `json:"phone"`
	Location   *string  `json:"location"`
	ResumeURL  *string  `json:"resume_url"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`

	CompanyName        *string `json:"company_name"`
	CompanyWebsite     *string `json:"company_website"`
	CompanyDescription *string `json:"company_description"`
}

// Validate runs validation rules.
func (in ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&in.Phone, validation.Length(0, 32)),
		validation.Field(&in.Location, validation.Length(0, 200)),
		validation.Field(&in.ResumeURL, validation.Length(0, 2048)),
		validation.Field(&in.CompanyName, validation.Length(0, 200)),
		validation.Field(&in.CompanyWebsite, validation.Length(0, 2048), is.URL),
		validation.Field(&in.CompanyDescription, validation.Length(0, 5000)),
	)
}

// Mine returns the caller's account.
func (s *ProfileService) Mine(ctx context.Context, actor domain.Actor) (*Account, error) {
	return loadAccount(ctx, s.users, s.profiles, actor.ID)
}

// UpdateMine applies the caller's own profile changes.
func (s *ProfileService) UpdateMine(ctx context.Context, actor domain.Actor, in ProfileUpdate) (*Account, error) {
	in.Name = trimPtr(in.Name)
	in.Phone = trimPtr(in.Phone)
	in.Location = trimPtr(in.Location)
	in.ResumeURL = trimPtr(in.ResumeURL)
	in.CompanyName = trimPtr(in.CompanyName)
	in.CompanyWebsite = trimPtr(in.CompanyWebsite)
	in.CompanyDescription = trimPtr(in.CompanyDescription)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	if in.Name != nil {
		if err := s.users.UpdateName(ctx, actor.ID, *in.Name); err != nil {
			return nil, storeError("user", err)
		}
	}

	switch actor.Role {
	case domain.RoleJobSeeker:
		profile, err := s.profiles.GetJobSeeker(ctx, actor.ID)
		if err != nil {
			return nil, storeError("profile", err)
		}
		applySeekerUpdate(profile, in)
		if err := s.profiles.UpdateJobSeeker(ctx, profile); err != nil {
			return nil, storeError("profile", err)
		}
	case domain.RoleEmployer:
		profile, err := s.profiles.GetEmployer(ctx, actor.ID)
		if err != nil {
			return nil, storeError("profile", err)
		}
		applyEmployerUpdate(profile, in)
		if err := s.profiles.UpdateEmployer(ctx, profile); err != nil {
			return nil, storeError("profile", err)
		}
	}

	return loadAccount(ctx, s.users, s.profiles, actor.ID)
}

func applySeekerUpdate(profile *domain.JobSeekerProfile, in ProfileUpdate) {
	if in.Phone != nil {
		profile.Phone = *in.Phone
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
	if in.ResumeURL != nil {
		profile.ResumeURL = *in.ResumeURL
	}
	if in.Skills != nil {
		profile.Skills = trimAll(in.Skills)
	}
	if in.Education != nil {
		profile.Education = trimAll(in.Education)
	}
	if in.Experience != nil {
		profile.Experience = trimAll(in.Experience)
	}
}

func applyEmployerUpdate(profile *domain.EmployerProfile, in ProfileUpdate) {
	if in.CompanyName != nil {
		profile.CompanyName = *in.CompanyName
	}
	if in.CompanyWebsite != nil {
		profile.CompanyWebsite = *in.CompanyWebsite
	}
	if in.CompanyDescription != nil {
		profile.CompanyDescription = *in.CompanyDescription
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
}

// GetEmployer returns a public employer account.
func (s *ProfileService) GetEmployer(ctx context.Context, userID string) (*Account, error) {
	return s.publicAccount(ctx, userID, domain.RoleEmployer, "employer")
}

// GetJobSeeker returns a public job seeker account.
func (s *ProfileService) GetJobSeeker(ctx context.Context, userID string) (*Account, error) {
	return s.publicAccount(ctx, userID, domain.RoleJobSeeker, "job seeker")
}

func (s *ProfileService) publicAccount(ctx context.Context, userID string, role domain.Role, resource string) (*Account, error) {
	account, err := loadAccount(ctx, s.users, s.profiles, userID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.NewNotFound(resource, nil)
		}
		return nil, err
	}
	if account.User.Role != role {
		return nil, apperrors.NewNotFound(resource, nil)
	}
	return account, nil
}
