package repository

import (
	"context"
	"testing"

	"jua-kali/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReviewRepository_CreateRecomputesRating(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReviewRepository(mock, zap.NewNop())
	review := &entity.Review{
		Base:      entity.Base{ID: uuid.New()},
		JobID:     uuid.New(),
		ClientID:  uuid.New(),
		ArtisanID: uuid.New(),
		Rating:    4,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_reviews").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE artisan_details").
		WithArgs(review.ArtisanID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), review))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_CreateSecondReviewForJob(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReviewRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_reviews").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "job_reviews_job_id_key"})
	mock.ExpectRollback()

	err = repo.Create(context.Background(), &entity.Review{JobID: uuid.New()})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
