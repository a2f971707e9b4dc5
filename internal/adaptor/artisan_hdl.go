package adaptor

import (
	"net/http"

	"jua-kali/internal/dto/request"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SkillHandler struct {
	service usecase.SkillService
	log     *zap.Logger
}

func NewSkillHandler(service usecase.SkillService, log *zap.Logger) *SkillHandler {
	return &SkillHandler{
		service: service,
		log:     log.With(zap.String("handler", "skill")),
	}
}

// List handles GET /api/skills (public)
func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.log, err, "list skills")
		return
	}

	utils.ResponseSuccess(w, "success", skills)
}

type ArtisanHandler struct {
	service usecase.ArtisanService
	log     *zap.Logger
}

func NewArtisanHandler(service usecase.ArtisanService, log *zap.Logger) *ArtisanHandler {
	return &ArtisanHandler{
		service: service,
		log:     log.With(zap.String("handler", "artisan")),
	}
}

// List handles GET /api/artisans (public)
func (h *ArtisanHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ArtisanListRequest{
		PaginatedRequest: paginated(r),
		Skill:            query.Get("skill"),
		Location:         query.Get("location"),
		Available:        utils.ParseOptionalBool(query.Get("available")),
	}

	artisans, err := h.service.List(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "list artisans")
		return
	}

	utils.ResponseSuccess(w, "success", artisans)
}

// Get handles GET /api/artisans/{id} (public)
func (h *ArtisanHandler) Get(w http.ResponseWriter, r *http.Request) {
	artisan, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get artisan")
		return
	}

	utils.ResponseSuccess(w, "success", artisan)
}

// UpdateMe handles PUT /api/artisans/me (artisan only)
func (h *ArtisanHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.UpdateArtisanRequest
	if !decode(w, r, &req) {
		return
	}

	artisan, err := h.service.UpdateMe(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "update artisan profile")
		return
	}

	utils.ResponseSuccess(w, "Artisan profile updated", artisan)
}
