package middleware

import (
	"net/http"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/apperr"
	"jua-kali/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer token and puts its claims in the request
// context.
func Authenticate(authService usecase.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authService.AuthenticateRequest(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				status := apperr.HTTPStatus(err)
				if status >= http.StatusInternalServerError {
					logger.Error("Failed to authenticate request", zap.Error(err), zap.String("path", r.URL.Path))
				} else {
					logger.Debug("Request not authenticated", zap.Error(err), zap.String("path", r.URL.Path))
				}
				utils.ResponseJSON(w, status, false, apperr.PublicMessage(err), nil, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetClaimsContext(r.Context(), claims)))
		})
	}
}

// RequireRole rejects authenticated callers whose role is not listed. It
// must run after Authenticate.
func RequireRole(authService usecase.AuthService, logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := utils.GetClaimsFromContext(r.Context())

			if err := authService.AuthorizeRole(claims, roles...); err != nil {
				if claims != nil {
					logger.Warn("Role check: access denied",
						zap.String("user_id", claims.UserID.String()),
						zap.String("role", claims.Role),
						zap.String("path", r.URL.Path),
					)
				}
				utils.ResponseJSON(w, apperr.HTTPStatus(err), false, apperr.PublicMessage(err), nil, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
