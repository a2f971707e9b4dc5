package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSkillRepository_FindByNames(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSkillRepository(mock, zap.NewNop())
	plumbing := uuid.New()

	mock.ExpectQuery(`WHERE LOWER\(name\) = ANY\(\$1\)`).
		WithArgs([]string{"plumbing", "juggling"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(plumbing, "Plumbing"))

	skills, err := repo.FindByNames(context.Background(), []string{" Plumbing", "Juggling"})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, plumbing, skills[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSkillRepository_FindByNamesEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	skills, err := NewSkillRepository(mock, zap.NewNop()).FindByNames(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}
