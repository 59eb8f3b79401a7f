package app

import (
	"github.com/prevenio/prevenio-backend/internal/handlers"
	"github.com/prevenio/prevenio-backend/internal/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Activity *handlers.ActivityHandler
	Todo     *handlers.TodoHandler
	Template *handlers.TemplateHandler
	Stats    *handlers.StatsHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(serviceset.Auth),
		User:     handlers.NewUserHandler(serviceset.User),
		Activity: handlers.NewActivityHandler(serviceset.Activity),
		Todo:     handlers.NewTodoHandler(serviceset.Todo),
		Template: handlers.NewTemplateHandler(serviceset.Template),
		Stats:    handlers.NewStatsHandler(serviceset.Stats),
	}
}
