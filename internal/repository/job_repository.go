package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	// Delete removes the job; its applications are removed by the same statement's cascade.
	Delete(ctx context.Context, id string) error
	ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository builds repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, employer_id, title, description, requirements, location, job_type, salary_range, deadline, status, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (employer_id, title, description, requirements, location, job_type, salary_range, deadline, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return mapError(r.pool.QueryRow(ctx, query,
		job.EmployerID,
		job.Title,
		job.Description,
		nonNil(job.Requirements),
		job.Location,
		job.JobType,
		job.SalaryRange,
		job.Deadline,
		job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt))
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`
	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, requirements=$3, location=$4, job_type=$5,
            salary_range=$6, deadline=$7, status=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return mapError(r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		nonNil(job.Requirements),
		job.Location,
		job.JobType,
		job.SalaryRange,
		job.Deadline,
		job.Status,
		job.ID,
	).Scan(&job.UpdatedAt))
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE employer_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, employerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, mapError(err)
		}
		result = append(result, *job)
	}
	return result, mapError(rows.Err())
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Description,
		&job.Requirements,
		&job.Location,
		&job.JobType,
		&job.SalaryRange,
		&job.Deadline,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}
