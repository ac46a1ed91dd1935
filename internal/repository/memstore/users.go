package memstore

import (
	"context"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) CreateWithProfile(_ context.Context, user *domain.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, exists := s.emails[key]; exists {
		return repository.ErrDuplicate
	}

	now := s.now()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = cloneUser(user)
	s.emails[key] = user.ID

	switch user.Role {
	case domain.RoleJobSeeker:
		s.seekers[user.ID] = &domain.JobSeekerProfile{
			UserID:     user.ID,
			Skills:     []string{},
			Education:  []string{},
			Experience: []string{},
			UpdatedAt:  now,
		}
	case domain.RoleEmployer:
		s.employers[user.ID] = &domain.EmployerProfile{UserID: user.ID, UpdatedAt: now}
	}
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[normalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

func (r *userRepo) UpdateName(_ context.Context, id, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Name = name
	user.UpdatedAt = r.s.now()
	return nil
}

func (r *userRepo) SetRefreshTokenHash(_ context.Context, id string, hash *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if hash == nil {
		user.RefreshTokenHash = nil
	} else {
		h := *hash
		user.RefreshTokenHash = &h
	}
	user.UpdatedAt = r.s.now()
	return nil
}

func (r *userRepo) SwapRefreshTokenHash(_ context.Context, id, expected, next string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return false, nil
	}
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != expected {
		return false, nil
	}
	h := next
	user.RefreshTokenHash = &h
	user.UpdatedAt = r.s.now()
	return true, nil
}
