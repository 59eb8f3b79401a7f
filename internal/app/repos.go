package app

import (
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/repos"
)

type Repos struct {
	User       repos.UserRepo
	UserToken  repos.UserTokenRepo
	Assignment repos.AssignmentRepo
	Activity   repos.ActivityRepo
	TodoItem   repos.TodoItemRepo
	Template   repos.TemplateRepo
	Event      repos.EventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		UserToken:  repos.NewUserTokenRepo(db, log),
		Assignment: repos.NewAssignmentRepo(db, log),
		Activity:   repos.NewActivityRepo(db, log),
		TodoItem:   repos.NewTodoItemRepo(db, log),
		Template:   repos.NewTemplateRepo(db, log),
		Event:      repos.NewEventRepo(db, log),
	}
}
