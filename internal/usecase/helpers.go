package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/data/repository"
	"jua-kali/pkg/apperr"
	"jua-kali/pkg/metrics"
	"jua-kali/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func parseID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid "+name, map[string]string{name: "Must be a valid UUID"})
	}
	return id, nil
}

// normalizer is implemented by requests that trim their own fields.
type normalizer interface {
	Normalize()
}

// validate normalizes req when it supports it, then checks its tags.
func validate(req any) error {
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("validation failed", errs)
	}
	return nil
}

// uniqueNames trims names and drops case-insensitive repeats, keeping the
// first spelling.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// resolveSkills maps names to catalogue ids and reports the names that
// matched nothing.
func resolveSkills(ctx context.Context, skills repository.SkillRepository, names []string) ([]uuid.UUID, []string, error) {
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil, nil, nil
	}

	found, err := skills.FindByNames(ctx, names)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve skills: %w", err)
	}

	byName := make(map[string]uuid.UUID, len(found))
	for _, skill := range found {
		byName[strings.ToLower(skill.Name)] = skill.ID
	}

	ids := make([]uuid.UUID, 0, len(names))
	var unknown []string
	for _, name := range names {
		if id, ok := byName[strings.ToLower(name)]; ok {
			ids = append(ids, id)
		} else {
			unknown = append(unknown, name)
		}
	}
	return ids, unknown, nil
}

// notifier stores notifications without ever failing the caller.
type notifier struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func (n notifier) send(ctx context.Context, userID uuid.UUID, kind entity.NotificationType, entityID *uuid.UUID, message string) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:   userID,
		Message:  message,
		Type:     kind,
		EntityID: entityID,
	}

	if err := n.repo.Create(ctx, notification); err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues(string(kind)).Inc()
		n.log.Warn("Failed to store notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("type", string(kind)),
		)
	}
}
