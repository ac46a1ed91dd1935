package memstore

import (
	"context"
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(_ context.Context, app *domain.Application) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[app.JobID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.users[app.CandidateID]; !ok {
		return repository.ErrNotFound
	}
	key := applicationKey{jobID: app.JobID, candidateID: app.CandidateID}
	if _, exists := s.appIndex[key]; exists {
		return repository.ErrDuplicate
	}

	now := s.now()
	app.ID = newID()
	app.AppliedAt = now
	app.UpdatedAt = now
	s.applications[app.ID] = cloneApplication(app)
	s.appSeq[app.ID] = s.next()
	s.appIndex[key] = app.ID
	return nil
}

func (r *applicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneApplication(app), nil
}

func (r *applicationRepo) ListByCandidate(_ context.Context, candidateID string) ([]domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Application{}
	for _, app := range r.s.applications {
		if app.CandidateID != candidateID {
			continue
		}
		c := cloneApplication(app)
		if job, ok := r.s.jobs[app.JobID]; ok {
			c.Job = cloneJob(job)
		}
		result = append(result, *c)
	}
	r.sort(result)
	return result, nil
}

func (r *applicationRepo) ListByJob(_ context.Context, jobID string) ([]domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Application{}
	for _, app := range r.s.applications {
		if app.JobID != jobID {
			continue
		}
		c := cloneApplication(app)
		if user, ok := r.s.users[app.CandidateID]; ok {
			summary := user.Summary()
			c.Candidate = &summary
		}
		result = append(result, *c)
	}
	r.sort(result)
	return result, nil
}

func (r *applicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = r.s.now()
	return cloneApplication(app), nil
}

// sort must be called with the read lock held.
func (r *applicationRepo) sort(items []domain.Application) {
	sortNewestFirst(items,
		func(a domain.Application) time.Time { return a.AppliedAt },
		func(a domain.Application) int64 { return r.s.appSeq[a.ID] },
	)
}
