package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/prevenio/prevenio-backend/internal/handlers"
	"github.com/prevenio/prevenio-backend/internal/middleware"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	UserHandler     *handlers.UserHandler
	ActivityHandler *handlers.ActivityHandler
	TodoHandler     *handlers.TodoHandler
	TemplateHandler *handlers.TemplateHandler
	StatsHandler    *handlers.StatsHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("prevenio-backend"))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.GET("/supervisors", cfg.UserHandler.ListSupervisors)
	// Activities
	protected.POST("/activities", cfg.ActivityHandler.CreateActivity)
	protected.GET("/activities", cfg.ActivityHandler.ListActivities)
	protected.GET("/activities/:id", cfg.ActivityHandler.GetActivity)
	protected.PATCH("/activities/:id", cfg.ActivityHandler.UpdateActivity)
	protected.DELETE("/activities/:id", cfg.ActivityHandler.DeleteActivity)
	protected.GET("/activities/:id/events", cfg.ActivityHandler.ListEvents)
	protected.GET("/activities/:id/todos", cfg.TodoHandler.ListByActivity)
	// Todos
	protected.POST("/todos", cfg.TodoHandler.CreateTodo)
	protected.PATCH("/todos/:id", cfg.TodoHandler.UpdateTodo)
	protected.DELETE("/todos/:id", cfg.TodoHandler.DeleteTodo)
	// Stats
	protected.GET("/stats/status", cfg.StatsHandler.GetStatusStats)
	protected.GET("/stats/detailed", cfg.StatsHandler.GetDetailedStats)

	// Preventionist surface
	preventionist := protected.Group("/")
	preventionist.Use(cfg.AuthMiddleware.RequireRole(types.RolePreventionist, types.RoleAdmin))
	preventionist.GET("/stats/supervisors", cfg.StatsHandler.GetSupervisorRollup)
	preventionist.GET("/stats/grouped", cfg.StatsHandler.GroupActivities)
	// Templates
	preventionist.POST("/templates", cfg.TemplateHandler.CreateTemplate)
	preventionist.GET("/templates", cfg.TemplateHandler.ListTemplates)
	preventionist.GET("/templates/:id", cfg.TemplateHandler.GetTemplate)
	preventionist.PATCH("/templates/:id", cfg.TemplateHandler.UpdateTemplate)
	preventionist.DELETE("/templates/:id", cfg.TemplateHandler.DeleteTemplate)
	preventionist.POST("/templates/:id/items", cfg.TemplateHandler.AddItem)
	preventionist.GET("/templates/:id/items", cfg.TemplateHandler.ListItems)
	preventionist.POST("/assignments", cfg.UserHandler.AssignSupervisor)

	// Admin surface
	admin := protected.Group("/")
	admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
	admin.POST("/users", cfg.UserHandler.CreateUser)

	return router
}
