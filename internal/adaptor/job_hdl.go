package adaptor

import (
	"net/http"

	"jua-kali/internal/dto/request"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type JobHandler struct {
	service usecase.JobService
	log     *zap.Logger
}

func NewJobHandler(service usecase.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		log:     log.With(zap.String("handler", "job")),
	}
}

// Create handles POST /api/jobs (client only)
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.JobRequest
	if !decode(w, r, &req) {
		return
	}

	job, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "create job")
		return
	}

	utils.ResponseCreated(w, "Job created", job)
}

// List handles GET /api/jobs (public)
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	req := &request.JobListRequest{
		PaginatedRequest: paginated(r),
		Status:           r.URL.Query().Get("status"),
	}

	jobs, err := h.service.List(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "list jobs")
		return
	}

	utils.ResponseSuccess(w, "success", jobs)
}

// Get handles GET /api/jobs/{id} (public)
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get job")
		return
	}

	utils.ResponseSuccess(w, "success", job)
}

// Update handles PUT /api/jobs/{id} (owner only)
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.UpdateJobRequest
	if !decode(w, r, &req) {
		return
	}

	job, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update job")
		return
	}

	utils.ResponseSuccess(w, "Job updated", job)
}

// Delete handles DELETE /api/jobs/{id} (owner only)
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete job")
		return
	}

	utils.ResponseNoContent(w)
}

// Apply handles POST /api/jobs/{id}/apply (artisan only)
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.ApplyRequest
	if !decode(w, r, &req) {
		return
	}

	application, err := h.service.Apply(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "apply for job")
		return
	}

	utils.ResponseCreated(w, "Application submitted", application)
}

// ListApplications handles GET /api/jobs/{id}/applications (owner only)
func (h *JobHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	applications, err := h.service.ListApplications(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "list applications")
		return
	}

	utils.ResponseSuccess(w, "success", applications)
}

// AcceptApplication handles POST /api/jobs/{id}/applications/{applicationID}/accept (owner only)
func (h *JobHandler) AcceptApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	job, err := h.service.AcceptApplication(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, h.log, err, "accept application")
		return
	}

	utils.ResponseSuccess(w, "Application accepted", job)
}

// Complete handles POST /api/jobs/{id}/complete (owner only)
func (h *JobHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	job, err := h.service.Complete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "complete job")
		return
	}

	utils.ResponseSuccess(w, "Job completed", job)
}

// MyApplications handles GET /api/applications/me (artisan only)
func (h *JobHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	req := paginated(r)
	applications, err := h.service.MyApplications(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "list my applications")
		return
	}

	utils.ResponseSuccess(w, "success", applications)
}
