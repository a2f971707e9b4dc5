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

type JobService interface {
	Create(ctx context.Context, clientID uuid.UUID, req *request.JobRequest) (*response.JobResponse, error)
	Get(ctx context.Context, jobID string) (*response.JobResponse, error)
	List(ctx context.Context, req *request.JobListRequest) (*response.PaginatedResponse[response.JobResponse], error)
	Update(ctx context.Context, clientID uuid.UUID, jobID string, req *request.UpdateJobRequest) (*response.JobResponse, error)
	Delete(ctx context.Context, clientID uuid.UUID, jobID string) error

	Apply(ctx context.Context, artisanID uuid.UUID, jobID string, req *request.ApplyRequest) (*response.ApplicationResponse, error)
	ListApplications(ctx context.Context, clientID uuid.UUID, jobID string) ([]response.ApplicationResponse, error)
	AcceptApplication(ctx context.Context, clientID uuid.UUID, jobID, applicationID string) (*response.JobResponse, error)
	Complete(ctx context.Context, clientID uuid.UUID, jobID string) (*response.JobResponse, error)
	MyApplications(ctx context.Context, artisanID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ApplicationResponse], error)
}

type jobService struct {
	repo   *repository.Repository
	notify notifier
	log    *zap.Logger
}

func NewJobService(repo *repository.Repository, log *zap.Logger) JobService {
	log = log.With(zap.String("service", "job"))
	return &jobService{
		repo:   repo,
		notify: notifier{repo: repo.Notification, log: log},
		log:    log,
	}
}

func (js *jobService) Create(ctx context.Context, clientID uuid.UUID, req *request.JobRequest) (*response.JobResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Resolve required skills
	skillIDs, err := js.requiredSkills(ctx, req.RequiredSkills)
	if err != nil {
		return nil, err
	}

	// 3. Save
	now := time.Now()
	job := &entity.Job{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClientID:    clientID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Budget:      req.Budget,
		Status:      entity.JobOpen,
	}

	if err := js.repo.Job.Create(ctx, job, skillIDs); err != nil {
		return nil, apperr.Internal(err)
	}

	js.log.Info("Job created",
		zap.String("job_id", job.ID.String()),
		zap.String("client_id", clientID.String()),
	)

	return js.reload(ctx, job.ID)
}

func (js *jobService) Get(ctx context.Context, jobID string) (*response.JobResponse, error) {
	id, err := parseID(jobID, "job_id")
	if err != nil {
		return nil, err
	}
	return js.reload(ctx, id)
}

func (js *jobService) List(ctx context.Context, req *request.JobListRequest) (*response.PaginatedResponse[response.JobResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	filter := entity.JobFilter{Status: entity.JobStatus(req.Status)}

	jobs, err := js.repo.Job.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := js.repo.Job.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		data = append(data, response.JobToResponse(job))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// Update rewrites the job's fields. The only status changes a client can
// make here are cancelling an open job and reopening a cancelled one.
func (js *jobService) Update(ctx context.Context, clientID uuid.UUID, jobID string, req *request.UpdateJobRequest) (*response.JobResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Load and check ownership
	job, err := js.ownedJob(ctx, clientID, jobID)
	if err != nil {
		return nil, err
	}

	// 3. Check status change
	current := job.Status
	status := job.Status
	if req.Status != "" && entity.JobStatus(req.Status) != job.Status {
		next := entity.JobStatus(req.Status)
		allowed := (job.Status == entity.JobOpen && next == entity.JobCancelled) ||
			(job.Status == entity.JobCancelled && next == entity.JobOpen)
		if !allowed {
			return nil, apperr.Conflict(fmt.Sprintf("cannot change job status from %s to %s", job.Status, next))
		}
		status = next
	}

	// 4. Resolve required skills
	skillIDs, err := js.requiredSkills(ctx, req.RequiredSkills)
	if err != nil {
		return nil, err
	}

	// 5. Save
	job.Title = strings.TrimSpace(req.Title)
	job.Description = strings.TrimSpace(req.Description)
	job.Location = strings.TrimSpace(req.Location)
	job.Budget = req.Budget
	job.Status = status
	job.UpdatedAt = time.Now()

	if err := js.repo.Job.Update(ctx, job, current, skillIDs); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, apperr.Conflict("job changed while updating, reload and try again")
		}
		return nil, apperr.Internal(err)
	}

	js.log.Info("Job updated", zap.String("job_id", job.ID.String()), zap.String("status", string(status)))

	return js.reload(ctx, job.ID)
}

func (js *jobService) Delete(ctx context.Context, clientID uuid.UUID, jobID string) error {
	job, err := js.ownedJob(ctx, clientID, jobID)
	if err != nil {
		return err
	}

	if err := js.repo.Job.Delete(ctx, job.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (js *jobService) Apply(ctx context.Context, artisanID uuid.UUID, jobID string, req *request.ApplyRequest) (*response.ApplicationResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(jobID, "job_id")
	if err != nil {
		return nil, err
	}

	// 2. Job must be open
	job, err := js.repo.Job.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if job == nil {
		return nil, apperr.NotFound("job not found")
	}
	if job.Status != entity.JobOpen {
		return nil, apperr.Conflict("job is not open for applications")
	}

	// 3. Save application
	now := time.Now()
	application := &entity.JobApplication{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		JobID:     job.ID,
		ArtisanID: artisanID,
		BidAmount: req.BidAmount,
		Message:   strings.TrimSpace(req.Message),
		Status:    entity.ApplicationPending,
	}

	if err := js.repo.Application.Create(ctx, application); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("you have already applied for this job")
		}
		return nil, apperr.Internal(err)
	}

	js.log.Info("Application submitted",
		zap.String("job_id", job.ID.String()),
		zap.String("artisan_id", artisanID.String()),
	)

	// 4. Notify client
	js.notify.send(ctx, job.ClientID, entity.NotificationNewApplication, &application.ID,
		fmt.Sprintf("You have a new application for your job '%s'.", job.Title))

	resp := response.ApplicationToResponse(application)
	return &resp, nil
}

func (js *jobService) ListApplications(ctx context.Context, clientID uuid.UUID, jobID string) ([]response.ApplicationResponse, error) {
	job, err := js.ownedJob(ctx, clientID, jobID)
	if err != nil {
		return nil, err
	}

	applications, err := js.repo.Application.FindByJobID(ctx, job.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	result := make([]response.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		result = append(result, response.ApplicationToResponse(a))
	}
	return result, nil
}

func (js *jobService) AcceptApplication(ctx context.Context, clientID uuid.UUID, jobID, applicationID string) (*response.JobResponse, error) {
	// 1. Load and check ownership
	job, err := js.ownedJob(ctx, clientID, jobID)
	if err != nil {
		return nil, err
	}

	appID, err := parseID(applicationID, "application_id")
	if err != nil {
		return nil, err
	}

	application, err := js.repo.Application.FindByID(ctx, appID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if application == nil || application.JobID != job.ID {
		return nil, apperr.NotFound("application not found")
	}

	// 2. Check states
	if job.Status != entity.JobOpen {
		return nil, apperr.Conflict("job is no longer open")
	}
	if application.Status != entity.ApplicationPending {
		return nil, apperr.Conflict("application is no longer pending")
	}

	// 3. Accept, assign and reject the rest atomically
	rejected, err := js.repo.Application.Accept(ctx, job.ID, application.ID, application.ArtisanID)
	if err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, apperr.Conflict("job or application changed, reload and try again")
		}
		return nil, apperr.Internal(err)
	}

	js.log.Info("Application accepted",
		zap.String("job_id", job.ID.String()),
		zap.String("application_id", application.ID.String()),
		zap.Int("rejected", len(rejected)),
	)

	// 4. Notify artisans
	js.notify.send(ctx, application.ArtisanID, entity.NotificationApplicationAccepted, &job.ID,
		fmt.Sprintf("Your application for '%s' was accepted.", job.Title))
	for _, artisanID := range rejected {
		js.notify.send(ctx, artisanID, entity.NotificationApplicationRejected, &job.ID,
			fmt.Sprintf("Your application for '%s' was not selected.", job.Title))
	}

	return js.reload(ctx, job.ID)
}

func (js *jobService) Complete(ctx context.Context, clientID uuid.UUID, jobID string) (*response.JobResponse, error) {
	job, err := js.ownedJob(ctx, clientID, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != entity.JobAssigned && job.Status != entity.JobInProgress {
		return nil, apperr.Conflict("only assigned or in-progress jobs can be completed")
	}

	if err := js.repo.Job.UpdateStatus(ctx, job.ID, entity.JobCompleted); err != nil {
		return nil, apperr.Internal(err)
	}

	js.log.Info("Job completed", zap.String("job_id", job.ID.String()))

	if job.AssignedArtisanID != nil {
		js.notify.send(ctx, *job.AssignedArtisanID, entity.NotificationJobCompleted, &job.ID,
			fmt.Sprintf("The job '%s' has been marked as completed.", job.Title))
	}

	return js.reload(ctx, job.ID)
}

func (js *jobService) MyApplications(ctx context.Context, artisanID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ApplicationResponse], error) {
	applications, err := js.repo.Application.FindByArtisanID(ctx, artisanID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := js.repo.Application.CountByArtisanID(ctx, artisanID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		data = append(data, response.ApplicationToResponse(a))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (js *jobService) ownedJob(ctx context.Context, clientID uuid.UUID, jobID string) (*entity.Job, error) {
	id, err := parseID(jobID, "job_id")
	if err != nil {
		return nil, err
	}

	job, err := js.repo.Job.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if job == nil {
		return nil, apperr.NotFound("job not found")
	}
	if job.ClientID != clientID {
		return nil, apperr.Forbidden("you do not own this job")
	}
	return job, nil
}

func (js *jobService) requiredSkills(ctx context.Context, names []string) ([]uuid.UUID, error) {
	ids, unknown, err := resolveSkills(ctx, js.repo.Skill, names)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(unknown) > 0 {
		return nil, apperr.Validation("validation failed", map[string]string{
			"required_skills": "Unknown skills: " + strings.Join(unknown, ", "),
		})
	}
	return ids, nil
}

func (js *jobService) reload(ctx context.Context, id uuid.UUID) (*response.JobResponse, error) {
	job, err := js.repo.Job.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if job == nil {
		return nil, apperr.NotFound("job not found")
	}

	resp := response.JobToResponse(job)
	return &resp, nil
}
