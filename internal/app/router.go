package app

import (
	"github.com/gin-gonic/gin"

	"github.com/prevenio/prevenio-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:     handlerset.Auth,
		AuthMiddleware:  middlewareset.Auth,
		UserHandler:     handlerset.User,
		ActivityHandler: handlerset.Activity,
		TodoHandler:     handlerset.Todo,
		TemplateHandler: handlerset.Template,
		StatsHandler:    handlerset.Stats,
		AllowOrigins:    cfg.AllowOrigins,
	})
}
