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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User, profile *entity.ArtisanProfile, skillIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, full_name, email, phone_number, password_hash, role,
		       COALESCE(location, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Role,
		&user.Location,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the account and, for artisans, the profile and skill links
// in one transaction.
func (ur *userRepository) Create(ctx context.Context, user *entity.User, profile *entity.ArtisanProfile, skillIDs []uuid.UUID) error {
	err := database.WithTx(ctx, ur.db, func(q database.Querier) error {
		query := `
			INSERT INTO users (id, full_name, email, phone_number, password_hash,
			                   role, location, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
		`
		if _, err := q.Exec(ctx, query,
			user.ID,
			user.FullName,
			user.Email,
			user.PhoneNumber,
			user.PasswordHash,
			user.Role,
			user.Location,
			user.CreatedAt,
			user.UpdatedAt,
		); err != nil {
			return asDuplicate(err)
		}

		if profile == nil {
			return nil
		}

		query = `
			INSERT INTO artisan_details (user_id, bio, years_experience, is_available)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := q.Exec(ctx, query,
			user.ID,
			profile.Bio,
			profile.YearsExperience,
			profile.IsAvailable,
		); err != nil {
			return fmt.Errorf("insert artisan profile: %w", err)
		}

		return replaceArtisanSkills(ctx, q, user.ID, skillIDs)
	})

	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			ur.log.Warn("Duplicate user on create",
				zap.String("constraint", DuplicateConstraint(err)),
				zap.String("user_id", user.ID.String()),
			)
		} else {
			ur.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("user_id", user.ID.String()),
			)
		}
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

// FindByEmailOrPhone returns any account holding either value.
func (ur *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR phone_number = $2 LIMIT 1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email or phone", zap.Error(err))
		return nil, fmt.Errorf("find user by email or phone: %w", err)
	}

	return user, nil
}

// UpdateProfile writes the editable contact fields. Role and password are
// never touched here.
func (ur *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, phone_number = $4,
		    location = NULLIF($5, ''), updated_at = $6
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PhoneNumber,
		user.Location,
		user.UpdatedAt,
	)
	if err != nil {
		err = asDuplicate(err)
		if !errors.Is(err, ErrDuplicate) {
			ur.log.Error("Failed to update user",
				zap.Error(err),
				zap.String("user_id", user.ID.String()),
			)
		}
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID.String(), pgx.ErrNoRows)
	}

	return nil
}

// replaceArtisanSkills sets the artisan's skills to exactly skillIDs.
func replaceArtisanSkills(ctx context.Context, q database.Querier, artisanID uuid.UUID, skillIDs []uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM artisan_skills WHERE artisan_id = $1`, artisanID); err != nil {
		return fmt.Errorf("clear artisan skills: %w", err)
	}
	if len(skillIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO artisan_skills (artisan_id, skill_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	if _, err := q.Exec(ctx, query, artisanID, skillIDs); err != nil {
		return fmt.Errorf("insert artisan skills: %w", err)
	}
	return nil
}
