package memstore

import (
	"context"
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(_ context.Context, job *domain.Job) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[job.EmployerID]; !ok {
		return repository.ErrNotFound
	}
	now := s.now()
	job.ID = newID()
	job.CreatedAt = now
	job.UpdatedAt = now
	s.jobs[job.ID] = cloneJob(job)
	s.jobSeq[job.ID] = s.next()
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneJob(job), nil
}

func (r *jobRepo) Update(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.jobs[job.ID]
	if !ok {
		return repository.ErrNotFound
	}
	job.UpdatedAt = r.s.now()
	updated := cloneJob(job)
	updated.EmployerID = stored.EmployerID
	updated.CreatedAt = stored.CreatedAt
	r.s.jobs[job.ID] = updated
	return nil
}

func (r *jobRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.jobs, id)
	delete(s.jobSeq, id)
	for appID, app := range s.applications {
		if app.JobID != id {
			continue
		}
		delete(s.appIndex, applicationKey{jobID: app.JobID, candidateID: app.CandidateID})
		delete(s.appSeq, appID)
		delete(s.applications, appID)
	}
	return nil
}

func (r *jobRepo) ListByEmployer(_ context.Context, employerID string) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Job{}
	for _, job := range r.s.jobs {
		if job.EmployerID == employerID {
			result = append(result, *cloneJob(job))
		}
	}
	sortNewestFirst(result,
		func(j domain.Job) time.Time { return j.CreatedAt },
		func(j domain.Job) int64 { return r.s.jobSeq[j.ID] },
	)
	return result, nil
}
