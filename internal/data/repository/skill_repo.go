package repository

import (
	"context"
	"fmt"
	"strings"

	"jua-kali/internal/data/entity"
	"jua-kali/pkg/database"

	"go.uber.org/zap"
)

type SkillRepository interface {
	List(ctx context.Context) ([]entity.Skill, error)
	// FindByNames matches case-insensitively. Names with no match are
	// simply absent from the result.
	FindByNames(ctx context.Context, names []string) ([]entity.Skill, error)
}

type skillRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSkillRepository(db database.PgxIface, log *zap.Logger) SkillRepository {
	return &skillRepository{
		db:  db,
		log: log.With(zap.String("repository", "skill")),
	}
}

func (r *skillRepository) List(ctx context.Context) ([]entity.Skill, error) {
	return r.query(ctx, `SELECT id, name FROM skills ORDER BY name`)
}

func (r *skillRepository) FindByNames(ctx context.Context, names []string) ([]entity.Skill, error) {
	if len(names) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(name))
	}

	return r.query(ctx, `SELECT id, name FROM skills WHERE LOWER(name) = ANY($1) ORDER BY name`, lowered)
}

func (r *skillRepository) query(ctx context.Context, query string, args ...any) ([]entity.Skill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query skills", zap.Error(err))
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	var skills []entity.Skill
	for rows.Next() {
		var skill entity.Skill
		if err := rows.Scan(&skill.ID, &skill.Name); err != nil {
			r.log.Error("Failed to scan skill row", zap.Error(err))
			return nil, fmt.Errorf("scan skill row: %w", err)
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill rows: %w", err)
	}

	return skills, nil
}
