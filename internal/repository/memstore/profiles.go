package memstore

import (
	"context"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

type profileRepo struct{ s *Store }

func cloneSeeker(p *domain.JobSeekerProfile) *domain.JobSeekerProfile {
	c := *p
	c.Skills = cloneStrings(p.Skills)
	c.Education = cloneStrings(p.Education)
	c.Experience = cloneStrings(p.Experience)
	return &c
}

func (r *profileRepo) GetJobSeeker(_ context.Context, userID string) (*domain.JobSeekerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.seekers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneSeeker(p), nil
}

func (r *profileRepo) GetEmployer(_ context.Context, userID string) (*domain.EmployerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.employers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *profileRepo) ListJobSeekers(_ context.Context, userIDs []string) ([]domain.JobSeekerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]domain.JobSeekerProfile, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.s.seekers[id]; ok {
			result = append(result, *cloneSeeker(p))
		}
	}
	return result, nil
}

func (r *profileRepo) UpdateJobSeeker(_ context.Context, profile *domain.JobSeekerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.seekers[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = r.s.now()
	r.s.seekers[profile.UserID] = cloneSeeker(profile)
	return nil
}

func (r *profileRepo) UpdateEmployer(_ context.Context, profile *domain.EmployerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employers[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = r.s.now()
	c := *profile
	r.s.employers[profile.UserID] = &c
	return nil
}
