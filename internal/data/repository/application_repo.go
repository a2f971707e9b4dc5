package repository

import (
	"context"
	"errors"
	"fmt"

	"jua-kali/internal/data/entity"
	"jua-kali/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.JobApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error)
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error)
	FindByArtisanID(ctx context.Context, artisanID uuid.UUID, limit, offset int) ([]*entity.JobApplication, error)
	CountByArtisanID(ctx context.Context, artisanID uuid.UUID) (int64, error)
	// Accept marks the application accepted, rejects the job's other pending
	// applications and assigns the job, all in one transaction. It returns
	// the artisans whose applications were rejected.
	Accept(ctx context.Context, jobID, applicationID, artisanID uuid.UUID) ([]uuid.UUID, error)
}

type applicationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewApplicationRepository(db database.PgxIface, log *zap.Logger) ApplicationRepository {
	return &applicationRepository{
		db:  db,
		log: log.With(zap.String("repository", "application")),
	}
}

const applicationColumns = `id, job_id, artisan_id, bid_amount::float8, message, status, created_at, updated_at`

func scanApplication(row pgx.Row) (*entity.JobApplication, error) {
	var a entity.JobApplication
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.ArtisanID,
		&a.BidAmount,
		&a.Message,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepository) Create(ctx context.Context, a *entity.JobApplication) error {
	query := `
		INSERT INTO job_applications (id, job_id, artisan_id, bid_amount, message,
		                              status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.JobID,
		a.ArtisanID,
		a.BidAmount,
		a.Message,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		err = asDuplicate(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create application",
				zap.Error(err),
				zap.String("job_id", a.JobID.String()),
				zap.String("artisan_id", a.ArtisanID.String()),
			)
		}
		return fmt.Errorf("create application for job %s by artisan %s: %w",
			a.JobID.String(), a.ArtisanID.String(), err)
	}

	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id = $1`

	a, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find application by ID",
			zap.Error(err),
			zap.String("application_id", id.String()),
		)
		return nil, fmt.Errorf("find application by ID %s: %w", id.String(), err)
	}

	return a, nil
}

func (r *applicationRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM job_applications
		WHERE job_id = $1
		ORDER BY created_at
	`
	return r.list(ctx, query, jobID)
}

func (r *applicationRepository) FindByArtisanID(ctx context.Context, artisanID uuid.UUID, limit, offset int) ([]*entity.JobApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM job_applications
		WHERE artisan_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, artisanID, limit, offset)
}

func (r *applicationRepository) CountByArtisanID(ctx context.Context, artisanID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE artisan_id = $1`, artisanID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count applications",
			zap.Error(err),
			zap.String("artisan_id", artisanID.String()),
		)
		return 0, fmt.Errorf("count applications by artisan %s: %w", artisanID.String(), err)
	}
	return count, nil
}

func (r *applicationRepository) Accept(ctx context.Context, jobID, applicationID, artisanID uuid.UUID) ([]uuid.UUID, error) {
	var rejected []uuid.UUID

	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		result, err := q.Exec(ctx, `
			UPDATE job_applications
			SET status = 'accepted', updated_at = NOW()
			WHERE id = $1 AND job_id = $2 AND status = 'pending'
		`, applicationID, jobID)
		if err != nil {
			return fmt.Errorf("accept application: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrStale
		}

		result, err = q.Exec(ctx, `
			UPDATE jobs
			SET status = 'assigned', assigned_artisan_id = $2, updated_at = NOW()
			WHERE id = $1 AND status = 'open'
		`, jobID, artisanID)
		if err != nil {
			return fmt.Errorf("assign job: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrStale
		}

		rows, err := q.Query(ctx, `
			UPDATE job_applications
			SET status = 'rejected', updated_at = NOW()
			WHERE job_id = $1 AND id <> $2 AND status = 'pending'
			RETURNING artisan_id
		`, jobID, applicationID)
		if err != nil {
			return fmt.Errorf("reject other applications: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("scan rejected artisan: %w", err)
			}
			rejected = append(rejected, id)
		}
		return rows.Err()
	})

	if err != nil {
		if !errors.Is(err, ErrStale) {
			r.log.Error("Failed to accept application",
				zap.Error(err),
				zap.String("job_id", jobID.String()),
				zap.String("application_id", applicationID.String()),
			)
		}
		return nil, fmt.Errorf("accept application %s: %w", applicationID.String(), err)
	}

	return rejected, nil
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]*entity.JobApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query applications", zap.Error(err))
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var applications []*entity.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			r.log.Error("Failed to scan application row", zap.Error(err))
			return nil, fmt.Errorf("scan application row: %w", err)
		}
		applications = append(applications, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate application rows: %w", err)
	}

	return applications, nil
}
