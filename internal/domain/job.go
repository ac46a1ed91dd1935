package domain

import "time"

// JobStatus is the posting state. Any status may follow any other.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusFilled JobStatus = "FILLED"
	JobStatusClosed JobStatus = "CLOSED"
)

// JobStatuses lists every job status.
var JobStatuses = []JobStatus{JobStatusOpen, JobStatusFilled, JobStatusClosed}

// IsValid reports whether the status is known.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusOpen, JobStatusFilled, JobStatusClosed:
		return true
	default:
		return false
	}
}

// JobType is the employment arrangement of a posting.
type JobType string

const (
	JobTypeInternship JobType = "Internship"
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeRemote     JobType = "Remote"
)

// JobTypes lists every job type.
var JobTypes = []JobType{JobTypeInternship, JobTypeFullTime, JobTypePartTime, JobTypeRemote}

// Job is a posting owned by exactly one employer.
type Job struct {
	ID           string
	EmployerID   string
	Title        string
	Description  string
	Requirements []string
	Location     string
	JobType      JobType
	SalaryRange  string
	Deadline     *time.Time
	Status       JobStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnedBy reports whether the employer owns the job.
func (j *Job) OwnedBy(employerID string) bool {
	return j != nil && employerID != "" && j.EmployerID == employerID
}

// AcceptsApplications reports whether candidates may apply.
func (j *Job) AcceptsApplications() bool {
	return j != nil && j.Status == JobStatusOpen
}
