// Package memstore is an in-process implementation of the repository interfaces.
// It enforces the same uniqueness and cascade rules as the Postgres schema.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

type applicationKey struct {
	jobID       string
	candidateID string
}

// Store holds all tables behind a single lock.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users        map[string]*domain.User
	emails       map[string]string
	seekers      map[string]*domain.JobSeekerProfile
	employers    map[string]*domain.EmployerProfile
	jobs         map[string]*domain.Job
	jobSeq       map[string]int64
	applications map[string]*domain.Application
	appSeq       map[string]int64
	appIndex     map[applicationKey]string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		now:          time.Now,
		users:        make(map[string]*domain.User),
		emails:       make(map[string]string),
		seekers:      make(map[string]*domain.JobSeekerProfile),
		employers:    make(map[string]*domain.EmployerProfile),
		jobs:         make(map[string]*domain.Job),
		jobSeq:       make(map[string]int64),
		applications: make(map[string]*domain.Application),
		appSeq:       make(map[string]int64),
		appIndex:     make(map[applicationKey]string),
	}
}

// Users returns the account repository.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Profiles returns the profile repository.
func (s *Store) Profiles() repository.ProfileRepository { return &profileRepo{s} }

// Jobs returns the job repository.
func (s *Store) Jobs() repository.JobRepository { return &jobRepo{s} }

// Applications returns the application repository.
func (s *Store) Applications() repository.ApplicationRepository { return &applicationRepo{s} }

// next must be called with the write lock held.
func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.RefreshTokenHash != nil {
		h := *u.RefreshTokenHash
		c.RefreshTokenHash = &h
	}
	return &c
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.Requirements = cloneStrings(j.Requirements)
	if j.Deadline != nil {
		d := *j.Deadline
		c.Deadline = &d
	}
	return &c
}

func cloneApplication(a *domain.Application) *domain.Application {
	c := *a
	c.Job = nil
	c.Candidate = nil
	return &c
}

// sortNewestFirst orders by timestamp, breaking ties with insertion order.
func sortNewestFirst[T any](items []T, at func(T) time.Time, seq func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return seq(items[i]) > seq(items[j])
	})
}

func newID() string {
	return uuid.NewString()
}
