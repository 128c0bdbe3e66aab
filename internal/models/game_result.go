package models

import "time"

type GameResult struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"uniqueIndex;not null" json:"game_id"`
	LocalScore int       `gorm:"not null" json:"local_score"`
	VisitScore int       `gorm:"not null" json:"visit_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (GameResult) TableName() string { return "game_results" }
