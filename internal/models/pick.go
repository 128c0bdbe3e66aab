package models

import "time"

// Prediction values accepted for a pick.
const (
	PredictionLocal = "local"
	PredictionVisit = "visit"
	PredictionDraw  = "draw"
)

func ValidPrediction(p string) bool {
	return p == PredictionLocal || p == PredictionVisit || p == PredictionDraw
}

type Pick struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_picks_user_game;not null" json:"user_id"`
	GameID     uint      `gorm:"uniqueIndex:idx_picks_user_game;not null" json:"game_id"`
	Prediction string    `gorm:"size:20;not null" json:"prediction"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Pick) TableName() string { return "picks" }
