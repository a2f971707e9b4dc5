package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jua-kali/internal/data/entity"
	"jua-kali/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job, skillIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	List(ctx context.Context, filter entity.JobFilter, limit, offset int) ([]*entity.Job, error)
	Count(ctx context.Context, filter entity.JobFilter) (int64, error)
	// Update fails with ErrStale when the stored status is no longer
	// expected.
	Update(ctx context.Context, job *entity.Job, expected entity.JobStatus, skillIDs []uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.JobStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewJobRepository(db database.PgxIface, log *zap.Logger) JobRepository {
	return &jobRepository{
		db:  db,
		log: log.With(zap.String("repository", "job")),
	}
}

const jobSelect = `
	SELECT j.id, j.client_id, j.title, j.description, j.location,
	       j.budget::float8, j.status, j.assigned_artisan_id, j.created_at, j.updated_at,
	       COALESCE(ARRAY_AGG(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}')
	FROM jobs j
	LEFT JOIN job_required_skills r ON r.job_id = j.id
	LEFT JOIN skills s ON s.id = r.skill_id
`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var job entity.Job
	err := row.Scan(
		&job.ID,
		&job.ClientID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.Budget,
		&job.Status,
		&job.AssignedArtisanID,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.RequiredSkills,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func jobWhere(filter entity.JobFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conds = append(conds, fmt.Sprintf("j.client_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job, skillIDs []uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		query := `
			INSERT INTO jobs (id, client_id, title, description, location, budget,
			                  status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := q.Exec(ctx, query,
			job.ID,
			job.ClientID,
			job.Title,
			job.Description,
			job.Location,
			job.Budget,
			job.Status,
			job.CreatedAt,
			job.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert job: %w", err)
		}

		return replaceJobSkills(ctx, q, job.ID, skillIDs)
	})

	if err != nil {
		r.log.Error("Failed to create job",
			zap.Error(err),
			zap.String("client_id", job.ClientID.String()),
		)
		return fmt.Errorf("create job for client %s: %w", job.ClientID.String(), err)
	}

	return nil
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	query := jobSelect + ` WHERE j.id = $1 GROUP BY j.id`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find job by ID",
			zap.Error(err),
			zap.String("job_id", id.String()),
		)
		return nil, fmt.Errorf("find job by ID %s: %w", id.String(), err)
	}

	return job, nil
}

func (r *jobRepository) List(ctx context.Context, filter entity.JobFilter, limit, offset int) ([]*entity.Job, error) {
	where, args := jobWhere(filter)
	args = append(args, limit, offset)
	query := jobSelect + where + fmt.Sprintf(`
		GROUP BY j.id
		ORDER BY j.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list jobs",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			r.log.Error("Failed to scan job row", zap.Error(err))
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job rows: %w", err)
	}

	return jobs, nil
}

func (r *jobRepository) Count(ctx context.Context, filter entity.JobFilter) (int64, error) {
	where, args := jobWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs j`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count jobs", zap.Error(err))
		return 0, fmt.Errorf("count jobs: %w", err)
	}

	return count, nil
}

// Update rewrites the editable fields and replaces the required skills.
func (r *jobRepository) Update(ctx context.Context, job *entity.Job, expected entity.JobStatus, skillIDs []uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		query := `
			UPDATE jobs
			SET title = $2, description = $3, location = $4, budget = $5,
			    status = $6, updated_at = $7
			WHERE id = $1 AND status = $8
		`
		result, err := q.Exec(ctx, query,
			job.ID,
			job.Title,
			job.Description,
			job.Location,
			job.Budget,
			job.Status,
			job.UpdatedAt,
			expected,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrStale
		}

		return replaceJobSkills(ctx, q, job.ID, skillIDs)
	})

	if errors.Is(err, ErrStale) {
		return fmt.Errorf("update job %s: %w", job.ID.String(), err)
	}
	if err != nil {
		r.log.Error("Failed to update job",
			zap.Error(err),
			zap.String("job_id", job.ID.String()),
		)
		return fmt.Errorf("update job %s: %w", job.ID.String(), err)
	}

	return nil
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.JobStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update job status",
			zap.Error(err),
			zap.String("job_id", id.String()),
		)
		return fmt.Errorf("update job %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update job %s status: %w", id.String(), pgx.ErrNoRows)
	}

	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete job",
			zap.Error(err),
			zap.String("job_id", id.String()),
		)
		return fmt.Errorf("delete job %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete job %s: %w", id.String(), pgx.ErrNoRows)
	}

	r.log.Info("Job deleted", zap.String("job_id", id.String()))
	return nil
}

func replaceJobSkills(ctx context.Context, q database.Querier, jobID uuid.UUID, skillIDs []uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM job_required_skills WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("clear job skills: %w", err)
	}
	if len(skillIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO job_required_skills (job_id, skill_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	if _, err := q.Exec(ctx, query, jobID, skillIDs); err != nil {
		return fmt.Errorf("insert job skills: %w", err)
	}
	return nil
}
