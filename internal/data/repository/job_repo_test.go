package repository

import (
	"context"
	"testing"
	"time"

	"jua-kali/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockJobRepo(t *testing.T) (JobRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewJobRepository(mock, zap.NewNop()), mock
}

func testJob() *entity.Job {
	return &entity.Job{
		Base:        entity.Base{ID: uuid.New(), UpdatedAt: time.Now()},
		ClientID:    uuid.New(),
		Title:       "Fix kitchen sink",
		Description: "Leaking pipe",
		Location:    "Mombasa",
		Status:      entity.JobCancelled,
	}
}

func TestJobRepository_UpdateGuardsStatus(t *testing.T) {
	repo, mock := newMockJobRepo(t)
	job := testJob()

	mock.ExpectBegin()
	mock.ExpectExec(`WHERE id = \$1 AND status = \$8`).
		WithArgs(job.ID, job.Title, job.Description, job.Location, job.Budget,
			job.Status, job.UpdatedAt, entity.JobOpen).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM job_required_skills`).
		WithArgs(job.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), job, entity.JobOpen, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_UpdateStale(t *testing.T) {
	repo, mock := newMockJobRepo(t)
	job := testJob()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE jobs`).
		WithArgs(job.ID, job.Title, job.Description, job.Location, job.Budget,
			job.Status, job.UpdatedAt, entity.JobOpen).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), job, entity.JobOpen, nil)
	assert.ErrorIs(t, err, ErrStale)
	assert.NoError(t, mock.ExpectationsWereMet())
}
