package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// ProfileRepository manages role-specific profile rows.
type ProfileRepository interface {
	GetJobSeeker(ctx context.Context, userID string) (*domain.JobSeekerProfile, error)
	GetEmployer(ctx context.Context, userID string) (*domain.EmployerProfile, error)
	// ListJobSeekers loads many profiles in a single query.
	ListJobSeekers(ctx context.Context, userIDs []string) ([]domain.JobSeekerProfile, error)
	UpdateJobSeeker(ctx context.Context, profile *domain.JobSeekerProfile) error
	UpdateEmployer(ctx context.Context, profile *domain.EmployerProfile) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository constructs repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const jobSeekerColumns = `user_id, phone, location, resume_url, skills, education, experience, updated_at`

func (r *profileRepository) GetJobSeeker(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	query := `SELECT ` + jobSeekerColumns + ` FROM jobseeker_profiles WHERE user_id=$1`
	var p domain.JobSeekerProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Phone,
		&p.Location,
		&p.ResumeURL,
		&p.Skills,
		&p.Education,
		&p.Experience,
		&p.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *profileRepository) GetEmployer(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	const query = `
        SELECT user_id, company_name, company_website, company_description, location, updated_at
        FROM employer_profiles WHERE user_id=$1`
	var p domain.EmployerProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.CompanyName,
		&p.CompanyWebsite,
		&p.CompanyDescription,
		&p.Location,
		&p.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *profileRepository) ListJobSeekers(ctx context.Context, userIDs []string) ([]domain.JobSeekerProfile, error) {
	if len(userIDs) == 0 {
		return []domain.JobSeekerProfile{}, nil
	}
	query := `SELECT ` + jobSeekerColumns + ` FROM jobseeker_profiles WHERE user_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := make([]domain.JobSeekerProfile, 0, len(userIDs))
	for rows.Next() {
		var p domain.JobSeekerProfile
		if err := rows.Scan(
			&p.UserID,
			&p.Phone,
			&p.Location,
			&p.ResumeURL,
			&p.Skills,
			&p.Education,
			&p.Experience,
			&p.UpdatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		result = append(result, p)
	}
	return result, mapError(rows.Err())
}

func (r *profileRepository) UpdateJobSeeker(ctx context.Context, p *domain.JobSeekerProfile) error {
	const query = `
        UPDATE jobseeker_profiles
        SET phone=$1, location=$2, resume_url=$3, skills=$4, education=$5, experience=$6, updated_at=NOW()
        WHERE user_id=$7
        RETURNING updated_at`
	return mapError(r.pool.QueryRow(ctx, query,
		p.Phone,
		p.Location,
		p.ResumeURL,
		nonNil(p.Skills),
		nonNil(p.Education),
		nonNil(p.Experience),
		p.UserID,
	).Scan(&p.UpdatedAt))
}

func (r *profileRepository) UpdateEmployer(ctx context.Context, p *domain.EmployerProfile) error {
	const query = `
        UPDATE employer_profiles
        SET company_name=$1, company_website=$2, company_description=$3, location=$4, updated_at=NOW()
        WHERE user_id=$5
        RETURNING updated_at`
	return mapError(r.pool.QueryRow(ctx, query,
		p.CompanyName,
		p.CompanyWebsite,
		p.CompanyDescription,
		p.Location,
		p.UserID,
	).Scan(&p.UpdatedAt))
}

// nonNil keeps NOT NULL text[] columns from receiving NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
