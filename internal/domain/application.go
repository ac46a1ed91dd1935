package domain

import "time"

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "APPLIED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusSelected    ApplicationStatus = "SELECTED"
)

// ApplicationStatuses lists every application status.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusApplied,
	ApplicationStatusUnderReview,
	ApplicationStatusRejected,
	ApplicationStatusSelected,
}

// IsValid reports whether the status is known.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusUnderReview, ApplicationStatusRejected, ApplicationStatusSelected:
		return true
	default:
		return false
	}
}

// applicationTransitions is the intended review flow. It is only enforced in strict mode.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:     {ApplicationStatusUnderReview, ApplicationStatusRejected, ApplicationStatusSelected},
	ApplicationStatusUnderReview: {ApplicationStatusRejected, ApplicationStatusSelected},
	ApplicationStatusRejected:    {},
	ApplicationStatusSelected:    {},
}

// CanTransitionTo reports whether next follows s in the intended review flow.
// Re-applying the current status is always allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application binds a candidate to a job. Job and candidate never change after creation.
type Application struct {
	ID                string
	JobID             string
	CandidateID       string
	CoverLetter       string
	ResumeURLSnapshot string
	Status            ApplicationStatus
	AppliedAt         time.Time
	UpdatedAt         time.Time

	// Job is populated by candidate listings.
	Job *Job
	// Candidate is populated by employer listings.
	Candidate *UserSummary
}
