package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/data/repository"
	"jua-kali/internal/dto/request"
	"jua-kali/internal/dto/response"
	"jua-kali/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	Create(ctx context.Context, clientID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListByArtisan(ctx context.Context, artisanID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
}

type reviewService struct {
	repo   *repository.Repository
	notify notifier
	log    *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	log = log.With(zap.String("service", "review"))
	return &reviewService{
		repo:   repo,
		notify: notifier{repo: repo.Notification, log: log},
		log:    log,
	}
}

func (rs *reviewService) Create(ctx context.Context, clientID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	jobID, err := parseID(req.JobID, "job_id")
	if err != nil {
		return nil, err
	}

	// 2. Job must belong to the caller, be completed and have an artisan
	job, err := rs.repo.Job.FindByID(ctx, jobID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if job == nil {
		return nil, apperr.NotFound("job not found")
	}
	if job.ClientID != clientID {
		return nil, apperr.Forbidden("you can only review your own jobs")
	}
	if job.Status != entity.JobCompleted {
		return nil, apperr.Validation("job is not completed", map[string]string{
			"job_id": "Only completed jobs can be reviewed",
		})
	}
	if job.AssignedArtisanID == nil {
		return nil, apperr.Validation("job has no assigned artisan", map[string]string{
			"job_id": "Job has no assigned artisan",
		})
	}

	// 3. One review per job
	existing, err := rs.repo.Review.FindByJobID(ctx, job.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("this job has already been reviewed")
	}

	// 4. Save review, rating is recomputed in the same transaction
	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		JobID:     job.ID,
		ClientID:  clientID,
		ArtisanID: *job.AssignedArtisanID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	if err := rs.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("this job has already been reviewed")
		}
		return nil, apperr.Internal(err)
	}

	rs.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("artisan_id", review.ArtisanID.String()),
		zap.Int("rating", review.Rating),
	)

	// 5. Notify artisan
	rs.notify.send(ctx, review.ArtisanID, entity.NotificationNewReview, &review.ID,
		fmt.Sprintf("You received a new %d-star review for job '%s'.", review.Rating, job.Title))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (rs *reviewService) ListByArtisan(ctx context.Context, artisanID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := parseID(artisanID, "artisan_id")
	if err != nil {
		return nil, err
	}

	artisan, err := rs.repo.Artisan.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if artisan == nil {
		return nil, apperr.NotFound("artisan not found")
	}

	reviews, err := rs.repo.Review.FindByArtisanID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := rs.repo.Review.CountByArtisanID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		data = append(data, response.ReviewToResponse(review))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}
