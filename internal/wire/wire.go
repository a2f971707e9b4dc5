package wire

import (
	"net/http"

	"jua-kali/internal/adaptor"
	"jua-kali/internal/data/entity"
	"jua-kali/internal/data/repository"
	"jua-kali/internal/usecase"
	"jua-kali/pkg/auth"
	"jua-kali/pkg/middleware"
	"jua-kali/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// guards are the auth middlewares shared by every route group
type guards struct {
	authenticate func(http.Handler) http.Handler
	client       func(http.Handler) http.Handler
	artisan      func(http.Handler) http.Handler
}

// Wiring builds services, handlers and routes. probes feed /health/ready.
func Wiring(
	repo *repository.Repository,
	tokens *auth.TokenIssuer,
	config *utils.Config,
	logger *zap.Logger,
	probes map[string]adaptor.Pinger,
) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, tokens, config, logger)
	handler := adaptor.NewHandler(service, logger)

	g := guards{
		authenticate: middleware.Authenticate(service.Auth, logger),
		client:       middleware.RequireRole(service.Auth, logger, entity.RoleClient),
		artisan:      middleware.RequireRole(service.Auth, logger, entity.RoleArtisan),
	}

	router := setupRouter(handler, adaptor.NewHealthHandler(probes), g, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	health *adaptor.HealthHandler,
	g guards,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	// Apply routes
	wireAuth(r, handler.Auth, handler.User, g)
	wireUser(r, handler.User, g)
	wireArtisan(r, handler.Skill, handler.Artisan, handler.Review, g)
	wireJob(r, handler.Job, g)
	wireReview(r, handler.Review, g)
	wireNotification(r, handler.Notification, g)

	// ==================== OPS ROUTES ====================
	r.Get("/health", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
