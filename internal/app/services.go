package app

import (
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Activity services.ActivityService
	Todo     services.TodoService
	Template services.TemplateService
	Stats    services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:     services.NewAuthService(db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:     services.NewUserService(db, log, reposet.User, reposet.Assignment),
		Activity: services.NewActivityService(db, log, reposet.Activity, reposet.TodoItem, reposet.Template, reposet.Event),
		Todo:     services.NewTodoService(db, log, reposet.TodoItem, reposet.Activity, reposet.Event),
		Template: services.NewTemplateService(db, log, reposet.Template),
		Stats:    services.NewStatsService(db, log, reposet.User, reposet.Activity, reposet.Assignment),
	}
}
