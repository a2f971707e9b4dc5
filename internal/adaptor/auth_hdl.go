package adaptor

import (
	"net/http"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/dto/request"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	response, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", response)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), claims); err != nil {
		writeError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Session handles GET /api/auth/session?role=artisan. It always answers 200;
// the state field tells the client what to render.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var required []entity.UserRole
	for _, role := range r.URL.Query()["role"] {
		required = append(required, entity.UserRole(role))
	}

	session := h.service.Session(r.Context(), r.Header.Get("Authorization"), required...)
	utils.ResponseSuccess(w, "success", session)
}
