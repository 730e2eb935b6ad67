package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mateo/matchwork/internal/types"
)

const jobColumns = `id, title, description, employer_id, skills, COALESCE(location, ''),
	COALESCE(budget_min, 0), COALESCE(budget_max, 0), budget_currency,
	job_type, experience_level, status,
	created_at, updated_at`

// GetJobByID retrieves a job posting by ID. Returns (nil, nil) when no row
// matches.
func (s *Store) GetJobByID(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListActiveJobs retrieves the most recent Active postings, newest first.
// Non-Active postings never participate in matching.
func (s *Store) ListActiveJobs(ctx context.Context, limit int) ([]types.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC LIMIT $2`,
		types.JobStatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*types.Job, error) {
	var job types.Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.EmployerID, &job.Skills,
		&job.Location, &job.Budget.Min, &job.Budget.Max, &job.Budget.Currency,
		&job.JobType, &job.ExperienceLevel, &job.Status,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
