package models

import "time"

type Game struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GameDatetime time.Time `gorm:"not null" json:"game_datetime"`
	IsPlayed     bool      `gorm:"default:false" json:"is_played"`
	SeasonID     uint      `gorm:"index;not null" json:"season_id"`
	WeekID       uint      `gorm:"index;not null" json:"week_id"`
	LocalTeamID  uint      `gorm:"index;not null" json:"local_team_id"`
	VisitTeamID  uint      `gorm:"index;not null" json:"visit_team_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Game) TableName() string { return "games" }
