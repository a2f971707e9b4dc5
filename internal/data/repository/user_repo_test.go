package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"jua-kali/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var userRowColumns = []string{
	"id", "full_name", "email", "phone_number", "password_hash",
	"role", "location", "created_at", "updated_at",
}

func newMockUserRepo(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock, zap.NewNop()), mock
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("amina@example.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(
			id, "Amina Otieno", "amina@example.com", "0712345678", "$2a$10$hash",
			entity.RoleClient, "", now, now,
		))

	user, err := repo.FindByEmail(context.Background(), "amina@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, entity.RoleClient, user.Role)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_FindByEmailOrPhone(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE email = \$1 OR phone_number = \$2`).
		WithArgs("new@example.com", "0712345678").
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(
			uuid.New(), "Existing", "old@example.com", "0712345678", "hash",
			entity.RoleArtisan, "Nairobi", now, now,
		))

	user, err := repo.FindByEmailOrPhone(context.Background(), "new@example.com", "0712345678")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "0712345678", user.PhoneNumber)
	assert.Equal(t, "Nairobi", user.Location)
}

func TestUserRepository_FindByID_DatabaseError(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(errors.New("connection reset"))

	user, err := repo.FindByID(context.Background(), id)
	assert.Nil(t, user)
	assert.ErrorContains(t, err, "connection reset")
}

func TestUserRepository_CreateArtisanAtomically(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	now := time.Now()
	user := &entity.User{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FullName:    "Juma Fundi",
		Email:       "juma@example.com",
		PhoneNumber: "0722000111",
		Role:        entity.RoleArtisan,
		Location:    "Mombasa",
	}
	profile := &entity.ArtisanProfile{UserID: user.ID, Bio: "Welder", IsAvailable: true}
	skills := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO artisan_details").
		WithArgs(user.ID, "Welder", 0, true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM artisan_skills").
		WithArgs(user.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO artisan_skills").
		WithArgs(user.ID, skills).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), user, profile, skills))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateClientSkipsProfile(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "c@example.com", Role: entity.RoleClient}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), user, nil, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "dup@example.com", Role: entity.RoleClient}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), user, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "users_email_key", DuplicateConstraint(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateRollsBackOnProfileFailure(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "a@example.com", Role: entity.RoleArtisan}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO artisan_details").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), user, &entity.ArtisanProfile{UserID: user.ID}, nil)
	assert.ErrorContains(t, err, "insert artisan profile")
	assert.False(t, errors.Is(err, ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfileNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	user := &entity.User{Base: entity.Base{ID: uuid.New()}}

	mock.ExpectExec("UPDATE users").WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateProfile(context.Background(), user)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
