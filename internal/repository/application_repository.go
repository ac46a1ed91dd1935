package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// ApplicationRepository persists applications. The (job_id, candidate_id) pair is unique.
type ApplicationRepository interface {
	// Create returns ErrDuplicate when the candidate already applied to the job.
	Create(ctx context.Context, application *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	// ListByCandidate returns the candidate's applications with their jobs, newest first.
	ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error)
	// ListByJob returns the job's applications with candidate summaries, newest first.
	ListByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository builds repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `a.id, a.job_id, a.candidate_id, a.cover_letter, a.resume_url_snapshot, a.status, a.applied_at, a.updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, candidate_id, cover_letter, resume_url_snapshot, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, applied_at, updated_at`
	return mapError(r.pool.QueryRow(ctx, query,
		app.JobID,
		app.CandidateID,
		app.CoverLetter,
		app.ResumeURLSnapshot,
		app.Status,
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt))
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a WHERE a.id=$1`
	app, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return app, nil
}

func (r *applicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `
        SELECT ` + applicationColumns + `,
            j.id, j.employer_id, j.title, j.description, j.requirements, j.location, j.job_type,
            j.salary_range, j.deadline, j.status, j.created_at, j.updated_at
        FROM applications a
        JOIN jobs j ON j.id = a.job_id
        WHERE a.candidate_id=$1
        ORDER BY a.applied_at DESC`
	rows, err := r.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		var job domain.Job
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.CandidateID,
			&app.CoverLetter,
			&app.ResumeURLSnapshot,
			&app.Status,
			&app.AppliedAt,
			&app.UpdatedAt,
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
			return nil, mapError(err)
		}
		app.Job = &job
		result = append(result, app)
	}
	return result, mapError(rows.Err())
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `
        SELECT ` + applicationColumns + `, u.id, u.name, u.email, u.role, u.created_at
        FROM applications a
        JOIN users u ON u.id = a.candidate_id
        WHERE a.job_id=$1
        ORDER BY a.applied_at DESC`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		var candidate domain.UserSummary
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.CandidateID,
			&app.CoverLetter,
			&app.ResumeURLSnapshot,
			&app.Status,
			&app.AppliedAt,
			&app.UpdatedAt,
			&candidate.ID,
			&candidate.Name,
			&candidate.Email,
			&candidate.Role,
			&candidate.CreatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		app.Candidate = &candidate
		result = append(result, app)
	}
	return result, mapError(rows.Err())
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	query := `
        UPDATE applications a SET status=$1, updated_at=NOW()
        WHERE a.id=$2
        RETURNING ` + applicationColumns
	app, err := scanApplication(r.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		return nil, mapError(err)
	}
	return app, nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	if err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.CandidateID,
		&app.CoverLetter,
		&app.ResumeURLSnapshot,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}
