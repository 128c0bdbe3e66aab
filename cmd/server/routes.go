package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/config"
	"github.com/sundaypicks/sunday-picks-api/internal/middleware"
	"github.com/sundaypicks/sunday-picks-api/pkg/logger"
)

// registerRoutes mounts all HTTP routes on the engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.CORS())

	// Uploaded team logos are served directly from disk.
	r.Static("/uploads", cfg.Upload.Dir)

	r.GET("/ping", svc.healthHandler.Ping)
	r.GET("/version", svc.healthHandler.Version)

	auth := r.Group("/auth")
	{
		auth.POST("/login", svc.authHandler.Login)
		auth.POST("/refresh", svc.authHandler.Refresh)
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthRequired(svc.authService.Tokens()))
	{
		protected.POST("/auth/logout", svc.authHandler.Logout)
		protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

		users := protected.Group("/users")
		{
			users.POST("/", svc.userHandler.Register)
			users.PUT("/:id", svc.userHandler.Update)
			users.DELETE("/:id", svc.userHandler.Delete)
			users.GET("/", svc.userHandler.List)
			users.GET("/:id", svc.userHandler.Show)
		}

		seasons := protected.Group("/seasons")
		{
			seasons.POST("/", svc.seasonHandler.Create)
			seasons.PUT("/:id", svc.seasonHandler.Update)
			seasons.DELETE("/:id", svc.seasonHandler.Delete)
			seasons.GET("/", svc.seasonHandler.List)
			seasons.GET("/:id", svc.seasonHandler.Show)
		}

		weeks := protected.Group("/weeks")
		{
			weeks.POST("/", svc.weekHandler.Create)
			weeks.PUT("/:id", svc.weekHandler.Update)
			weeks.DELETE("/:id", svc.weekHandler.Delete)
			weeks.GET("/", svc.weekHandler.List)
			weeks.GET("/:id", svc.weekHandler.Show)
		}

		teams := protected.Group("/teams")
		{
			teams.POST("/", svc.teamHandler.Create)
			// Update uses POST because logo replacement arrives as multipart form data.
			teams.POST("/:id", svc.teamHandler.Update)
			teams.DELETE("/:id", svc.teamHandler.Delete)
			teams.GET("/", svc.teamHandler.List)
			teams.GET("/:id", svc.teamHandler.Show)
		}

		games := protected.Group("/games")
		{
			games.POST("/", svc.gameHandler.Create)
			games.PUT("/:id", svc.gameHandler.Update)
			games.GET("/", svc.gameHandler.List)
			games.GET("/:id", svc.gameHandler.Show)
		}

		gameResults := protected.Group("/game-results")
		{
			gameResults.POST("/", svc.gameResultHandler.Create)
			gameResults.PUT("/:id", svc.gameResultHandler.Update)
			gameResults.GET("/", svc.gameResultHandler.List)
			gameResults.GET("/:id", svc.gameResultHandler.Show)
		}

		picks := protected.Group("/picks")
		{
			picks.POST("/", svc.pickHandler.Create)
			picks.PUT("/:id", svc.pickHandler.Update)
		}
	}
}
