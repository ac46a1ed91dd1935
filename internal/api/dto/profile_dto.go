package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// UpdateProfileRequest payload. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name               *string  `json:"name"`
	Phone              *string  `json:"phone"`
	Location           *string  `json:"location"`
	ResumeURL          *string  `json:"resume_url"`
	Skills             []string `json:"skills"`
	Education          []string `json:"education"`
	Experience         []string `json:"experience"`
	CompanyName        *string  `json:"company_name"`
	CompanyWebsite     *string  `json:"company_website"`
	CompanyDescription *string  `json:"company_description"`
}

// ToInput converts the payload.
func (r UpdateProfileRequest) ToInput() service.ProfileUpdate {
	return service.ProfileUpdate{
		Name:               r.Name,
		Phone:              r.Phone,
		Location:           r.Location,
		ResumeURL:          r.ResumeURL,
		Skills:             r.Skills,
		Education:          r.Education,
		Experience:         r.Experience,
		CompanyName:        r.CompanyName,
		CompanyWebsite:     r.CompanyWebsite,
		CompanyDescription: r.CompanyDescription,
	}
}

// JobSeekerProfileResponse response.
type JobSeekerProfileResponse struct {
	Phone      string    `json:"phone"`
	Location   string    `json:"location"`
	ResumeURL  string    `json:"resume_url"`
	Skills     []string  `json:"skills"`
	Education  []string  `json:"education"`
	Experience []string  `json:"experience"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewJobSeekerProfileResponse maps a profile; nil stays nil.
func NewJobSeekerProfileResponse(p *domain.JobSeekerProfile) *JobSeekerProfileResponse {
	if p == nil {
		return nil
	}
	return &JobSeekerProfileResponse{
		Phone:      p.Phone,
		Location:   p.Location,
		ResumeURL:  p.ResumeURL,
		Skills:     emptyIfNil(p.Skills),
		Education:  emptyIfNil(p.Education),
		Experience: emptyIfNil(p.Experience),
		UpdatedAt:  p.UpdatedAt,
	}
}

// EmployerProfileResponse response.
type EmployerProfileResponse struct {
	CompanyName        string    `json:"company_name"`
	CompanyWebsite     string    `json:"company_website"`
	CompanyDescription string    `json:"company_description"`
	Location           string    `json:"location"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewEmployerProfileResponse maps a profile; nil stays nil.
func NewEmployerProfileResponse(p *domain.EmployerProfile) *EmployerProfileResponse {
	if p == nil {
		return nil
	}
	return &EmployerProfileResponse{
		CompanyName:        p.CompanyName,
		CompanyWebsite:     p.CompanyWebsite,
		CompanyDescription: p.CompanyDescription,
		Location:           p.Location,
		UpdatedAt:          p.UpdatedAt,
	}
}

// AccountResponse is a user with the profile matching its role.
type AccountResponse struct {
	User             UserResponse              `json:"user"`
	JobSeekerProfile *JobSeekerProfileResponse `json:"jobseeker_profile,omitempty"`
	EmployerProfile  *EmployerProfileResponse  `json:"employer_profile,omitempty"`
}

// NewAccountResponse maps an account.
func NewAccountResponse(a *service.Account) AccountResponse {
	return AccountResponse{
		User:             NewUserResponse(a.User),
		JobSeekerProfile: NewJobSeekerProfileResponse(a.JobSeeker),
		EmployerProfile:  NewEmployerProfileResponse(a.Employer),
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
