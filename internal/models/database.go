package models

import (
	"fmt"

	"github.com/sundaypicks/sunday-picks-api/internal/config"
	"github.com/sundaypicks/sunday-picks-api/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Season{},
		&Week{},
		&Team{},
		&Game{},
		&GameResult{},
		&Pick{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedAdminUser creates the initial administrator account if no user with
// the configured email exists yet.
func SeedAdminUser(cfg *config.AdminConfig) error {
	var count int64
	if err := DB.Model(&User{}).Where("email = ?", cfg.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := User{
		Name:     cfg.Name,
		Phone:    cfg.Phone,
		Email:    cfg.Email,
		Password: hashed,
		IsAdmin:  true,
	}
	return DB.Create(&admin).Error
}
