package dto

import (
	"encoding/json"
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// CreateJobRequest payload.
type CreateJobRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Requirements []string         `json:"requirements"`
	Location     string           `json:"location"`
	JobType      domain.JobType   `json:"job_type"`
	SalaryRange  string           `json:"salary_range"`
	Deadline     *time.Time       `json:"deadline"`
	Status       domain.JobStatus `json:"status"`
}

// ToInput converts the payload.
func (r CreateJobRequest) ToInput() service.JobInput {
	return service.JobInput{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		JobType:      r.JobType,
		SalaryRange:  r.SalaryRange,
		Deadline:     r.Deadline,
		Status:       r.Status,
	}
}

// UpdateJobRequest payload. Omitted fields are left unchanged.
type UpdateJobRequest struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Requirements []string          `json:"requirements"`
	Location     *string           `json:"location"`
	JobType      *domain.JobType   `json:"job_type"`
	SalaryRange  *string           `json:"salary_range"`
	Deadline     NullableTime      `json:"deadline"`
	Status       *domain.JobStatus `json:"status"`
}

// NullableTime tells an omitted field apart from an explicit null.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

// ToPatch converts the payload. An explicit null deadline clears it.
func (r UpdateJobRequest) ToPatch() service.JobPatch {
	return service.JobPatch{
		Title:         r.Title,
		Description:   r.Description,
		Requirements:  r.Requirements,
		Location:      r.Location,
		JobType:       r.JobType,
		SalaryRange:   r.SalaryRange,
		Deadline:      r.Deadline.Value,
		Status:        r.Status,
		ClearDeadline: r.Deadline.Set && r.Deadline.Value == nil,
	}
}

// JobStatusRequest payload.
type JobStatusRequest struct {
	Status domain.JobStatus `json:"status"`
}

// JobResponse response.
type JobResponse struct {
	ID           string           `json:"id"`
	EmployerID   string           `json:"employer_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Requirements []string         `json:"requirements"`
	Location     string           `json:"location"`
	JobType      domain.JobType   `json:"job_type"`
	SalaryRange  string           `json:"salary_range"`
	Deadline     *time.Time       `json:"deadline"`
	Status       domain.JobStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewJobResponse maps a job.
func NewJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		EmployerID:   j.EmployerID,
		Title:        j.Title,
		Description:  j.Description,
		Requirements: emptyIfNil(j.Requirements),
		Location:     j.Location,
		JobType:      j.JobType,
		SalaryRange:  j.SalaryRange,
		Deadline:     j.Deadline,
		Status:       j.Status,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// NewJobListResponse maps a list of jobs.
func NewJobListResponse(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return out
}
