package adaptor

import (
	"encoding/json"
	"net/http"

	"jua-kali/internal/dto/request"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/apperr"
	"jua-kali/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Skill        *SkillHandler
	Artisan      *ArtisanHandler
	Job          *JobHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Skill:        NewSkillHandler(service.Skill, log),
		Artisan:      NewArtisanHandler(service.Artisan, log),
		Job:          NewJobHandler(service.Job, log),
		Review:       NewReviewHandler(service.Review, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}

// writeError maps a service error to its status code. Internal causes are
// logged here and never sent to the client.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	status := apperr.HTTPStatus(err)
	message := apperr.PublicMessage(err)

	if status >= http.StatusInternalServerError {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	} else {
		log.Warn(operation+" failed", zap.Int("status", status), zap.String("reason", message))
	}

	var fields any
	if errs := apperr.FieldErrors(err); len(errs) > 0 {
		fields = errs
	}
	utils.ResponseJSON(w, status, false, message, nil, fields)
}

// decode reads a JSON body into dst and writes a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func paginated(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: min(utils.ParseInt(query.Get("per_page"), 10), 100),
	}
}
