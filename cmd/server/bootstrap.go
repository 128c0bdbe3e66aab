package main

import (
	"github.com/sundaypicks/sunday-picks-api/internal/config"
	"github.com/sundaypicks/sunday-picks-api/internal/handlers"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/internal/services"
	"github.com/sundaypicks/sunday-picks-api/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the
// application.
type appServices struct {
	authService       *services.AuthService
	authHandler       *handlers.AuthHandler
	healthHandler     *handlers.HealthHandler
	userHandler       *handlers.UserHandler
	seasonHandler     *handlers.SeasonHandler
	weekHandler       *handlers.WeekHandler
	teamHandler       *handlers.TeamHandler
	gameHandler       *handlers.GameHandler
	gameResultHandler *handlers.GameResultHandler
	pickHandler       *handlers.PickHandler
}

// bootstrap initializes the database and wires up services and handlers.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedAdminUser(&cfg.Admin); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed admin user")
	}

	db := models.GetDB()
	authService := services.NewAuthService(db, &cfg.JWT)

	return &appServices{
		authService:       authService,
		authHandler:       handlers.NewAuthHandler(authService),
		healthHandler:     handlers.NewHealthHandler(db),
		userHandler:       handlers.NewUserHandler(db),
		seasonHandler:     handlers.NewSeasonHandler(db),
		weekHandler:       handlers.NewWeekHandler(db),
		teamHandler:       handlers.NewTeamHandler(db, cfg.Upload.Dir),
		gameHandler:       handlers.NewGameHandler(db),
		gameResultHandler: handlers.NewGameResultHandler(db),
		pickHandler:       handlers.NewPickHandler(db),
	}
}
