package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
		allowed  bool
	}{
		{ApplicationStatusApplied, ApplicationStatusUnderReview, true},
		{ApplicationStatusApplied, ApplicationStatusSelected, true},
		{ApplicationStatusUnderReview, ApplicationStatusRejected, true},
		{ApplicationStatusUnderReview, ApplicationStatusApplied, false},
		{ApplicationStatusRejected, ApplicationStatusSelected, false},
		{ApplicationStatusSelected, ApplicationStatusUnderReview, false},
		{ApplicationStatusSelected, ApplicationStatusSelected, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusValidity(t *testing.T) {
	for _, s := range JobStatuses {
		assert.True(t, s.IsValid())
	}
	for _, s := range ApplicationStatuses {
		assert.True(t, s.IsValid())
	}
	assert.False(t, JobStatus("ARCHIVED").IsValid())
	assert.False(t, JobStatus("open").IsValid())
	assert.False(t, ApplicationStatus("HIRED").IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("GUEST").IsValid())
}

func TestJobOwnershipAndAvailability(t *testing.T) {
	job := &Job{EmployerID: "emp-1", Status: JobStatusOpen}
	assert.True(t, job.OwnedBy("emp-1"))
	assert.False(t, job.OwnedBy("emp-2"))
	assert.False(t, job.OwnedBy(""))
	assert.True(t, job.AcceptsApplications())

	job.Status = JobStatusFilled
	assert.False(t, job.AcceptsApplications())

	var missing *Job
	assert.False(t, missing.OwnedBy("emp-1"))
	assert.False(t, missing.AcceptsApplications())
}

func TestUserSession(t *testing.T) {
	u := &User{ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "x", Role: RoleJobSeeker}
	assert.False(t, u.HasSession())

	empty := ""
	u.RefreshTokenHash = &empty
	assert.False(t, u.HasSession())

	hash := "abc"
	u.RefreshTokenHash = &hash
	assert.True(t, u.HasSession())

	summary := u.Summary()
	assert.Equal(t, "ann@example.com", summary.Email)
	assert.Equal(t, RoleJobSeeker, summary.Role)
}
