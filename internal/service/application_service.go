package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ApplyInput describes an application. An empty ResumeURL falls back to the candidate's
// profile resume.
type ApplyInput struct {
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

// Validate runs validation rules.
func (in ApplyInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CoverLetter, validation.Length(0, 10000)),
		validation.Field(&in.ResumeURL, validation.Length(0, 2048)),
	)
}

// Applicant is an application on an employer's job with the candidate's profile attached.
type Applicant struct {
	Application domain.Application
	Profile     *domain.JobSeekerProfile
}

// ApplicationService coordinates the application lifecycle.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	profiles     repository.ProfileRepository
	dispatcher   events.Dispatcher
	strict       bool
}

// ApplicationDependencies bundles repositories for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	ProfileRepo     repository.ProfileRepository
	Dispatcher      events.Dispatcher
}

// NewApplicationService constructs the service.
func NewApplicationService(cfg config.LifecycleConfig, deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		profiles:     deps.ProfileRepo,
		dispatcher:   deps.Dispatcher,
		strict:       cfg.StrictTransitions,
	}
}

// Apply submits the caller's application to an open job.
func (s *ApplicationService) Apply(ctx context.Context, actor domain.Actor, jobID string, in ApplyInput) (*domain.Application, error) {
	if err := auth.Require(actor, auth.CapApplyToJob); err != nil {
		return nil, err
	}
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)
	in.ResumeURL = strings.TrimSpace(in.ResumeURL)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := checkID("job", jobID); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError("job", err)
	}
	if !job.AcceptsApplications() {
		return nil, apperrors.NewInvalidState("applications are closed for this job")
	}

	snapshot := in.ResumeURL
	if snapshot == "" {
		profile, err := s.profiles.GetJobSeeker(ctx, actor.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if profile != nil {
			snapshot = profile.ResumeURL
		}
	}

	application := &domain.Application{
		JobID:             job.ID,
		CandidateID:       actor.ID,
		CoverLetter:       in.CoverLetter,
		ResumeURLSnapshot: snapshot,
		Status:            domain.ApplicationStatusApplied,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperrors.NewConflict("you have already applied to this job", map[string]any{"job_id": job.ID})
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFound("job", nil)
		default:
			return nil, err
		}
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:      events.EventApplicationSubmitted,
		SubjectID: application.ID,
		Actor:     events.ActorFrom(actor),
		Payload:   events.ApplicationSubmittedPayload{JobID: job.ID, CandidateID: actor.ID},
	})
	return application, nil
}

// ListForCandidate returns the caller's applications with their jobs, newest first.
func (s *ApplicationService) ListForCandidate(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	if err := auth.Require(actor, auth.CapListOwnApplications); err != nil {
		return nil, err
	}
	return s.applications.ListByCandidate(ctx, actor.ID)
}

// ListForJob returns every application on a job the caller owns.
func (s *ApplicationService) ListForJob(ctx context.Context, actor domain.Actor, jobID string) ([]Applicant, error) {
	if err := auth.Require(actor, auth.CapReviewApplications); err != nil {
		return nil, err
	}
	if err := checkID("job", jobID); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError("job", err)
	}
	if !job.OwnedBy(actor.ID) {
		return nil, apperrors.NewForbidden("you do not own this job")
	}

	applications, err := s.applications.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	candidateIDs := make([]string, 0, len(applications))
	for _, app := range applications {
		candidateIDs = append(candidateIDs, app.CandidateID)
	}
	profiles, err := s.profiles.ListJobSeekers(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]*domain.JobSeekerProfile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	out := make([]Applicant, 0, len(applications))
	for _, app := range applications {
		out = append(out, Applicant{Application: app, Profile: byUser[app.CandidateID]})
	}
	return out, nil
}

// SetStatus records a review decision on an application to one of the caller's jobs.
func (s *ApplicationService) SetStatus(ctx context.Context, actor domain.Actor, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	if err := auth.Require(actor, auth.CapReviewApplications); err != nil {
		return nil, err
	}
	if err := checkID("application", applicationID); err != nil {
		return nil, err
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, storeError("application", err)
	}
	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, storeError("application", err)
	}
	if !job.OwnedBy(actor.ID) {
		return nil, apperrors.NewForbidden("you do not own this job")
	}
	if s.strict && !application.Status.CanTransitionTo(status) {
		return nil, apperrors.NewInvalidState("cannot move application from " + string(application.Status) + " to " + string(status))
	}

	previous := application.Status
	updated, err := s.applications.UpdateStatus(ctx, application.ID, status)
	if err != nil {
		return nil, storeError("application", err)
	}
	if previous != status {
		publish(ctx, s.dispatcher, events.Event{
			Type:      events.EventApplicationStatusChanged,
			SubjectID: updated.ID,
			Actor:     events.ActorFrom(actor),
			Payload: events.ApplicationStatusChangedPayload{
				JobID:     updated.JobID,
				OldStatus: previous,
				NewStatus: status,
			},
		})
	}
	return updated, nil
}
