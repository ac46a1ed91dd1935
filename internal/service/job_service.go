package service

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func jobTypeRule() validation.Rule {
	allowed := make([]interface{}, 0, len(domain.JobTypes))
	for _, t := range domain.JobTypes {
		allowed = append(allowed, t)
	}
	return validation.In(allowed...)
}

func jobStatusRule() validation.Rule {
	allowed := make([]interface{}, 0, len(domain.JobStatuses))
	for _, s := range domain.JobStatuses {
		allowed = append(allowed, s)
	}
	return validation.In(allowed...)
}

// JobInput describes a new posting.
type JobInput struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Requirements []string         `json:"requirements"`
	Location     string           `json:"location"`
	JobType      domain.JobType   `json:"job_type"`
	SalaryRange  string           `json:"salary_range"`
	Deadline     *time.Time       `json:"deadline"`
	Status       domain.JobStatus `json:"status"`
}

// Validate runs validation rules.
func (in JobInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 10000)),
		validation.Field(&in.Location, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.JobType, validation.Required, jobTypeRule()),
		validation.Field(&in.SalaryRange, validation.Length(0, 100)),
		validation.Field(&in.Status, jobStatusRule()),
	)
}

// JobPatch carries optional changes to a posting.
type JobPatch struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Requirements []string          `json:"requirements"`
	Location     *string           `json:"location"`
	JobType      *domain.JobType   `json:"job_type"`
	SalaryRange  *string           `json:"salary_range"`
	Deadline     *time.Time        `json:"deadline"`
	Status       *domain.JobStatus `json:"status"`

	// ClearDeadline removes the deadline. It takes precedence over Deadline.
	ClearDeadline bool `json:"-"`
}

// JobService coordinates the job posting lifecycle.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
}

// JobDependencies bundles repositories for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Dispatcher events.Dispatcher
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{jobs: deps.JobRepo, dispatcher: deps.Dispatcher}
}

// Create posts a job owned by the calling employer.
func (s *JobService) Create(ctx context.Context, actor domain.Actor, in JobInput) (*domain.Job, error) {
	if err := auth.Require(actor, auth.CapPostJob); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.SalaryRange = strings.TrimSpace(in.SalaryRange)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	job := &domain.Job{
		EmployerID:   actor.ID,
		Title:        in.Title,
		Description:  in.Description,
		Requirements: trimAll(in.Requirements),
		Location:     in.Location,
		JobType:      in.JobType,
		SalaryRange:  in.SalaryRange,
		Deadline:     in.Deadline,
		Status:       in.Status,
	}
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, storeError("employer", err)
	}
	return job, nil
}

// Get returns a posting by id. It is a public read.
func (s *JobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	if err := checkID("job", jobID); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError("job", err)
	}
	return job, nil
}

// ListForEmployer returns the caller's own postings, newest first.
func (s *JobService) ListForEmployer(ctx context.Context, actor domain.Actor) ([]domain.Job, error) {
	if err := auth.Require(actor, auth.CapListOwnJobs); err != nil {
		return nil, err
	}
	return s.jobs.ListByEmployer(ctx, actor.ID)
}

// Update merges the patch into a posting the caller owns.
func (s *JobService) Update(ctx context.Context, actor domain.Actor, jobID string, patch JobPatch) (*domain.Job, error) {
	job, err := s.owned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	previous := job.Status

	if patch.Title != nil {
		job.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		job.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Requirements != nil {
		job.Requirements = trimAll(patch.Requirements)
	}
	if patch.Location != nil {
		job.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.JobType != nil {
		job.JobType = *patch.JobType
	}
	if patch.SalaryRange != nil {
		job.SalaryRange = strings.TrimSpace(*patch.SalaryRange)
	}
	if patch.ClearDeadline {
		job.Deadline = nil
	} else if patch.Deadline != nil {
		job.Deadline = patch.Deadline
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*patch.Status)})
		}
		job.Status = *patch.Status
	}

	merged := JobInput{
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		JobType:     job.JobType,
		SalaryRange: job.SalaryRange,
		Status:      job.Status,
	}
	if err := merged.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, storeError("job", err)
	}
	if job.Status != previous {
		s.publishStatusChange(ctx, actor, job, previous)
	}
	return job, nil
}

// SetStatus moves a posting to any status.
func (s *JobService) SetStatus(ctx context.Context, actor domain.Actor, jobID string, status domain.JobStatus) (*domain.Job, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	job, err := s.owned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}

	previous := job.Status
	job.Status = status
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, storeError("job", err)
	}
	if status != previous {
		s.publishStatusChange(ctx, actor, job, previous)
	}
	return job, nil
}

// Delete removes a posting the caller owns together with its applications.
func (s *JobService) Delete(ctx context.Context, actor domain.Actor, jobID string) error {
	job, err := s.owned(ctx, actor, jobID)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return storeError("job", err)
	}
	publish(ctx, s.dispatcher, events.Event{
		Type:      events.EventJobDeleted,
		SubjectID: job.ID,
		Actor:     events.ActorFrom(actor),
		Payload:   events.JobDeletedPayload{EmployerID: job.EmployerID, Title: job.Title},
	})
	return nil
}

// owned loads a job and checks that the caller may manage it.
func (s *JobService) owned(ctx context.Context, actor domain.Actor, jobID string) (*domain.Job, error) {
	if err := auth.Require(actor, auth.CapManageJob); err != nil {
		return nil, err
	}
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(actor.ID) {
		return nil, apperrors.NewForbidden("you do not own this job")
	}
	return job, nil
}

func (s *JobService) publishStatusChange(ctx context.Context, actor domain.Actor, job *domain.Job, previous domain.JobStatus) {
	publish(ctx, s.dispatcher, events.Event{
		Type:      events.EventJobStatusChanged,
		SubjectID: job.ID,
		Actor:     events.ActorFrom(actor),
		Payload: events.JobStatusChangedPayload{
			EmployerID: job.EmployerID,
			OldStatus:  previous,
			NewStatus:  job.Status,
		},
	})
}
