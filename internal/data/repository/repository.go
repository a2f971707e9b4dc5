package repository

import (
	"jua-kali/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Skill        SkillRepository
	Artisan      ArtisanRepository
	Job          JobRepository
	Application  ApplicationRepository
	Review       ReviewRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Skill:        NewSkillRepository(db, log),
		Artisan:      NewArtisanRepository(db, log),
		Job:          NewJobRepository(db, log),
		Application:  NewApplicationRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
