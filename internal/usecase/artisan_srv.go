package usecase

import (
	"context"
	"strings"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/data/repository"
	"jua-kali/internal/dto/request"
	"jua-kali/internal/dto/response"
	"jua-kali/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SkillService interface {
	List(ctx context.Context) ([]response.SkillResponse, error)
}

type skillService struct {
	skillRepo repository.SkillRepository
	log       *zap.Logger
}

func NewSkillService(skillRepo repository.SkillRepository, log *zap.Logger) SkillService {
	return &skillService{
		skillRepo: skillRepo,
		log:       log.With(zap.String("service", "skill")),
	}
}

func (ss *skillService) List(ctx context.Context) ([]response.SkillResponse, error) {
	skills, err := ss.skillRepo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	result := make([]response.SkillResponse, 0, len(skills))
	for _, skill := range skills {
		result = append(result, response.SkillToResponse(skill))
	}
	return result, nil
}

type ArtisanService interface {
	List(ctx context.Context, req *request.ArtisanListRequest) (*response.PaginatedResponse[response.ArtisanResponse], error)
	Get(ctx context.Context, artisanID string) (*response.ArtisanResponse, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateArtisanRequest) (*response.ArtisanResponse, error)
}

type artisanService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewArtisanService(repo *repository.Repository, log *zap.Logger) ArtisanService {
	return &artisanService{
		repo: repo,
		log:  log.With(zap.String("service", "artisan")),
	}
}

func (as *artisanService) List(ctx context.Context, req *request.ArtisanListRequest) (*response.PaginatedResponse[response.ArtisanResponse], error) {
	filter := entity.ArtisanFilter{
		Skill:     strings.TrimSpace(req.Skill),
		Location:  strings.TrimSpace(req.Location),
		Available: req.Available,
	}

	artisans, err := as.repo.Artisan.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := as.repo.Artisan.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.ArtisanResponse, 0, len(artisans))
	for _, a := range artisans {
		data = append(data, response.ArtisanToResponse(a))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (as *artisanService) Get(ctx context.Context, artisanID string) (*response.ArtisanResponse, error) {
	id, err := parseID(artisanID, "artisan_id")
	if err != nil {
		return nil, err
	}

	artisan, err := as.repo.Artisan.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if artisan == nil {
		return nil, apperr.NotFound("artisan not found")
	}

	resp := response.ArtisanToResponse(artisan)
	return &resp, nil
}

// UpdateMe edits the caller's artisan profile. Skills are only replaced when
// the request carries them.
func (as *artisanService) UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateArtisanRequest) (*response.ArtisanResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Load current profile
	current, err := as.repo.Artisan.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if current == nil {
		return nil, apperr.NotFound("artisan profile not found")
	}

	// 3. Resolve skills when given
	var skillIDs []uuid.UUID
	if req.Skills != nil {
		ids, unknown, err := resolveSkills(ctx, as.repo.Skill, *req.Skills)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if len(unknown) > 0 {
			return nil, apperr.Validation("validation failed", map[string]string{
				"skills": "Unknown skills: " + strings.Join(unknown, ", "),
			})
		}
		skillIDs = ids
	}

	// 4. Save
	profile := current.Profile
	profile.UserID = userID
	profile.Bio = strings.TrimSpace(req.Bio)
	profile.YearsExperience = req.YearsExperience
	if req.IsAvailable != nil {
		profile.IsAvailable = *req.IsAvailable
	}

	if err := as.repo.Artisan.UpsertProfile(ctx, &profile, skillIDs); err != nil {
		return nil, apperr.Internal(err)
	}

	as.log.Info("Artisan profile updated", zap.String("user_id", userID.String()))

	updated, err := as.repo.Artisan.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("artisan profile not found")
	}

	resp := response.ArtisanToResponse(updated)
	return &resp, nil
}
