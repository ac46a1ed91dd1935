package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// ApplyRequest payload.
type ApplyRequest struct {
	CoverLetter       string `json:"cover_letter"`
	ResumeURLSnapshot string `json:"resume_url_snapshot"`
}

// ToInput converts the payload.
func (r ApplyRequest) ToInput() service.ApplyInput {
	return service.ApplyInput{CoverLetter: r.CoverLetter, ResumeURL: r.ResumeURLSnapshot}
}

// ApplicationStatusRequest payload.
type ApplicationStatusRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// ApplicationResponse response. Job and Candidate are set depending on the listing.
type ApplicationResponse struct {
	ID                string                    `json:"id"`
	JobID             string                    `json:"job_id"`
	CandidateID       string                    `json:"candidate_id"`
	CoverLetter       string                    `json:"cover_letter"`
	ResumeURLSnapshot string                    `json:"resume_url_snapshot"`
	Status            domain.ApplicationStatus  `json:"status"`
	AppliedAt         time.Time                 `json:"applied_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
	Job               *JobResponse              `json:"job,omitempty"`
	Candidate         *UserResponse             `json:"candidate,omitempty"`
	CandidateProfile  *JobSeekerProfileResponse `json:"candidate_profile,omitempty"`
}

// NewApplicationResponse maps an application.
func NewApplicationResponse(a *domain.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:                a.ID,
		JobID:             a.JobID,
		CandidateID:       a.CandidateID,
		CoverLetter:       a.CoverLetter,
		ResumeURLSnapshot: a.ResumeURLSnapshot,
		Status:            a.Status,
		AppliedAt:         a.AppliedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.Job != nil {
		job := NewJobResponse(a.Job)
		resp.Job = &job
	}
	if a.Candidate != nil {
		candidate := NewUserResponse(*a.Candidate)
		resp.Candidate = &candidate
	}
	return resp
}

// NewApplicationListResponse maps a candidate's applications.
func NewApplicationListResponse(apps []domain.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}

// NewApplicantListResponse maps the applications on an employer's job.
func NewApplicantListResponse(applicants []service.Applicant) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(applicants))
	for i := range applicants {
		resp := NewApplicationResponse(&applicants[i].Application)
		resp.CandidateProfile = NewJobSeekerProfileResponse(applicants[i].Profile)
		out = append(out, resp)
	}
	return out
}
