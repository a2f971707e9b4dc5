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

type ArtisanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Artisan, error)
	List(ctx context.Context, filter entity.ArtisanFilter, limit, offset int) ([]*entity.Artisan, error)
	Count(ctx context.Context, filter entity.ArtisanFilter) (int64, error)
	// UpsertProfile writes the profile and, when skillIDs is non-nil,
	// replaces the artisan's skills in the same transaction.
	UpsertProfile(ctx context.Context, profile *entity.ArtisanProfile, skillIDs []uuid.UUID) error
}

type artisanRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewArtisanRepository(db database.PgxIface, log *zap.Logger) ArtisanRepository {
	return &artisanRepository{
		db:  db,
		log: log.With(zap.String("repository", "artisan")),
	}
}

const artisanSelect = `
	SELECT u.id, u.full_name, u.email, u.phone_number, u.role,
	       COALESCE(u.location, ''), u.created_at, u.updated_at,
	       COALESCE(d.bio, ''), COALESCE(d.years_experience, 0),
	       COALESCE(d.average_rating, 0)::float8, COALESCE(d.total_reviews, 0),
	       COALESCE(d.is_available, TRUE),
	       COALESCE(ARRAY_AGG(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN artisan_details d ON d.user_id = u.id
	LEFT JOIN artisan_skills ak ON ak.artisan_id = u.id
	LEFT JOIN skills s ON s.id = ak.skill_id
`

func scanArtisan(row pgx.Row) (*entity.Artisan, error) {
	var a entity.Artisan
	err := row.Scan(
		&a.ID,
		&a.FullName,
		&a.Email,
		&a.PhoneNumber,
		&a.Role,
		&a.Location,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Profile.Bio,
		&a.Profile.YearsExperience,
		&a.Profile.AverageRating,
		&a.Profile.TotalReviews,
		&a.Profile.IsAvailable,
		&a.Skills,
	)
	if err != nil {
		return nil, err
	}
	a.Profile.UserID = a.ID
	return &a, nil
}

// artisanWhere builds the WHERE clause shared by List and Count.
func artisanWhere(filter entity.ArtisanFilter) (string, []any) {
	conds := []string{"u.role = 'artisan'"}
	var args []any

	if filter.Skill != "" {
		args = append(args, filter.Skill)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM artisan_skills fs
			JOIN skills fsk ON fsk.id = fs.skill_id
			WHERE fs.artisan_id = u.id AND LOWER(fsk.name) = LOWER($%d))`, len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conds = append(conds, fmt.Sprintf(`u.location ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		conds = append(conds, fmt.Sprintf(`COALESCE(d.is_available, TRUE) = $%d`, len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *artisanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Artisan, error) {
	query := artisanSelect + ` WHERE u.id = $1 AND u.role = 'artisan' GROUP BY u.id, d.user_id`

	artisan, err := scanArtisan(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find artisan by ID",
			zap.Error(err),
			zap.String("artisan_id", id.String()),
		)
		return nil, fmt.Errorf("find artisan by ID %s: %w", id.String(), err)
	}

	return artisan, nil
}

func (r *artisanRepository) List(ctx context.Context, filter entity.ArtisanFilter, limit, offset int) ([]*entity.Artisan, error) {
	where, args := artisanWhere(filter)
	args = append(args, limit, offset)
	query := artisanSelect + where + fmt.Sprintf(`
		GROUP BY u.id, d.user_id
		ORDER BY COALESCE(d.average_rating, 0) DESC, u.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list artisans",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list artisans: %w", err)
	}
	defer rows.Close()

	var artisans []*entity.Artisan
	for rows.Next() {
		artisan, err := scanArtisan(rows)
		if err != nil {
			r.log.Error("Failed to scan artisan row", zap.Error(err))
			return nil, fmt.Errorf("scan artisan row: %w", err)
		}
		artisans = append(artisans, artisan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artisan rows: %w", err)
	}

	return artisans, nil
}

func (r *artisanRepository) Count(ctx context.Context, filter entity.ArtisanFilter) (int64, error) {
	where, args := artisanWhere(filter)
	query := `SELECT COUNT(*) FROM users u LEFT JOIN artisan_details d ON d.user_id = u.id` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count artisans", zap.Error(err))
		return 0, fmt.Errorf("count artisans: %w", err)
	}

	return count, nil
}

func (r *artisanRepository) UpsertProfile(ctx context.Context, profile *entity.ArtisanProfile, skillIDs []uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		query := `
			INSERT INTO artisan_details (user_id, bio, years_experience, is_available)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO UPDATE
			SET bio = EXCLUDED.bio,
			    years_experience = EXCLUDED.years_experience,
			    is_available = EXCLUDED.is_available
		`
		if _, err := q.Exec(ctx, query,
			profile.UserID,
			profile.Bio,
			profile.YearsExperience,
			profile.IsAvailable,
		); err != nil {
			return fmt.Errorf("upsert artisan profile: %w", err)
		}

		if skillIDs == nil {
			return nil
		}
		return replaceArtisanSkills(ctx, q, profile.UserID, skillIDs)
	})

	if err != nil {
		r.log.Error("Failed to update artisan profile",
			zap.Error(err),
			zap.String("artisan_id", profile.UserID.String()),
		)
		return fmt.Errorf("update artisan %s: %w", profile.UserID.String(), err)
	}

	return nil
}
