package adaptor

import (
	"net/http"

	"jua-kali/internal/dto/request"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// Create handles POST /api/reviews (client only)
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.CreateReviewRequest
	if !decode(w, r, &req) {
		return
	}

	review, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted", review)
}

// ListByArtisan handles GET /api/artisans/{id}/reviews (public)
func (h *ReviewHandler) ListByArtisan(w http.ResponseWriter, r *http.Request) {
	req := paginated(r)

	reviews, err := h.service.ListByArtisan(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "list artisan reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}
