package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-web-service/internal/adapter/gin/handler"
	"user-web-service/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	systemHandler *handler.SystemHandler,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))

	// System endpoints
	router.GET("/", systemHandler.Root)
	router.GET("/health", systemHandler.Health)
	router.GET("/db/info", systemHandler.DBInfo)

	// User CRUD endpoints
	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
