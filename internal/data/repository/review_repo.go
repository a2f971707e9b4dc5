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

type ReviewRepository interface {
	// Create stores the review and recomputes the artisan's rating in the
	// same transaction.
	Create(ctx context.Context, review *entity.Review) error
	FindByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Review, error)
	FindByArtisanID(ctx context.Context, artisanID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByArtisanID(ctx context.Context, artisanID uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, job_id, client_id, artisan_id, rating, comment, created_at, updated_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.JobID,
		&review.ClientID,
		&review.ArtisanID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		query := `
			INSERT INTO job_reviews (id, job_id, client_id, artisan_id, rating, comment,
			                         created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := q.Exec(ctx, query,
			review.ID,
			review.JobID,
			review.ClientID,
			review.ArtisanID,
			review.Rating,
			review.Comment,
			review.CreatedAt,
			review.UpdatedAt,
		); err != nil {
			return asDuplicate(err)
		}

		query = `
			UPDATE artisan_details
			SET average_rating = stats.avg_rating, total_reviews = stats.review_count
			FROM (
				SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0) AS avg_rating,
				       COUNT(*) AS review_count
				FROM job_reviews
				WHERE artisan_id = $1
			) AS stats
			WHERE user_id = $1
		`
		if _, err := q.Exec(ctx, query, review.ArtisanID); err != nil {
			return fmt.Errorf("update artisan rating: %w", err)
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create review",
				zap.Error(err),
				zap.String("job_id", review.JobID.String()),
				zap.String("artisan_id", review.ArtisanID.String()),
			)
		}
		return fmt.Errorf("create review for job %s: %w", review.JobID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM job_reviews WHERE job_id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by job",
			zap.Error(err),
			zap.String("job_id", jobID.String()),
		)
		return nil, fmt.Errorf("find review by job %s: %w", jobID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByArtisanID(ctx context.Context, artisanID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM job_reviews
		WHERE artisan_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, artisanID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by artisan",
			zap.Error(err),
			zap.String("artisan_id", artisanID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by artisan %s: %w", artisanID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByArtisanID(ctx context.Context, artisanID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_reviews WHERE artisan_id = $1`, artisanID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by artisan",
			zap.Error(err),
			zap.String("artisan_id", artisanID.String()),
		)
		return 0, fmt.Errorf("count reviews by artisan %s: %w", artisanID.String(), err)
	}

	return count, nil
}
