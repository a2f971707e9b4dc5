package usecase

import (
	"jua-kali/internal/data/repository"
	"jua-kali/pkg/auth"
	"jua-kali/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Skill        SkillService
	Artisan      ArtisanService
	Job          JobService
	Review       ReviewService
	Notification NotificationService
}

func NewService(repo *repository.Repository, tokens *auth.TokenIssuer, config *utils.Config, log *zap.Logger) *Service {
	hasher := auth.NewPasswordHasher(config.Security.BcryptCost)

	return &Service{
		Auth:         NewAuthService(repo, hasher, tokens, config.Registration, log),
		User:         NewUserService(repo.User, log),
		Skill:        NewSkillService(repo.Skill, log),
		Artisan:      NewArtisanService(repo, log),
		Job:          NewJobService(repo, log),
		Review:       NewReviewService(repo, log),
		Notification: NewNotificationService(repo.Notification, log),
	}
}
