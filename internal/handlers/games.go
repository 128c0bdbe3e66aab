package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
	"gorm.io/gorm"
)

type GameHandler struct {
	db *gorm.DB
}

func NewGameHandler(db *gorm.DB) *GameHandler {
	return &GameHandler{db: db}
}

type CreateGameRequest struct {
	GameDatetime *time.Time `json:"game_datetime"`
	SeasonID     uint       `json:"season_id"`
	WeekID       uint       `json:"week_id"`
	LocalTeamID  uint       `json:"local_team_id"`
	VisitTeamID  uint       `json:"visit_team_id"`
}

// Create schedules a new game
// POST /games/
func (h *GameHandler) Create(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.GameDatetime == nil || req.SeasonID == 0 || req.WeekID == 0 ||
		req.LocalTeamID == 0 || req.VisitTeamID == 0 {
		response.BadRequest(c, "All fields are required")
		return
	}

	if req.LocalTeamID == req.VisitTeamID {
		response.BadRequest(c, "A team cannot play against itself")
		return
	}

	if err := h.db.First(&models.Season{}, req.SeasonID).Error; err != nil {
		response.NotFound(c, "Season not found")
		return
	}
	if err := h.db.First(&models.Week{}, req.WeekID).Error; err != nil {
		response.NotFound(c, "Week not found")
		return
	}
	if err := h.db.Where("is_deleted = ?", false).First(&models.Team{}, req.LocalTeamID).Error; err != nil {
		response.NotFound(c, "Local team not found")
		return
	}
	if err := h.db.Where("is_deleted = ?", false).First(&models.Team{}, req.VisitTeamID).Error; err != nil {
		response.NotFound(c, "Visit team not found")
		return
	}

	game := models.Game{
		GameDatetime: *req.GameDatetime,
		SeasonID:     req.SeasonID,
		WeekID:       req.WeekID,
		LocalTeamID:  req.LocalTeamID,
		VisitTeamID:  req.VisitTeamID,
	}
	if err := h.db.Create(&game).Error; err != nil {
		response.ServerError(c, "Unable to create game")
		return
	}

	response.Created(c, gin.H{
		"id":      game.ID,
		"message": "Game created successfully",
	})
}

type UpdateGameRequest struct {
	GameDatetime *time.Time `json:"game_datetime"`
	SeasonID     *uint      `json:"season_id"`
	WeekID       *uint      `json:"week_id"`
	LocalTeamID  *uint      `json:"local_team_id"`
	VisitTeamID  *uint      `json:"visit_team_id"`
	IsPlayed     *bool      `json:"is_played"`
}

// Update applies a partial update; unspecified fields keep their value
// PUT /games/:id
func (h *GameHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Game id is required")
		return
	}

	var game models.Game
	if err := h.db.First(&game, id).Error; err != nil {
		response.NotFound(c, "Game not found")
		return
	}

	var req UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.GameDatetime != nil {
		game.GameDatetime = *req.GameDatetime
	}
	if req.SeasonID != nil {
		game.SeasonID = *req.SeasonID
	}
	if req.WeekID != nil {
		game.WeekID = *req.WeekID
	}
	if req.LocalTeamID != nil {
		game.LocalTeamID = *req.LocalTeamID
	}
	if req.VisitTeamID != nil {
		game.VisitTeamID = *req.VisitTeamID
	}
	if req.IsPlayed != nil {
		game.IsPlayed = *req.IsPlayed
	}

	if game.LocalTeamID == game.VisitTeamID {
		response.BadRequest(c, "A team cannot play against itself")
		return
	}

	if err := h.db.Save(&game).Error; err != nil {
		response.ServerError(c, "Unable to update game")
		return
	}

	response.Message(c, "Game updated successfully")
}

// List returns all games ordered by kickoff time
// GET /games/
func (h *GameHandler) List(c *gin.Context) {
	var games []models.Game
	if err := h.db.Order("game_datetime ASC").Find(&games).Error; err != nil {
		response.ServerError(c, "Unable to list games")
		return
	}

	response.OK(c, gin.H{"data": games})
}

// Show returns one game
// GET /games/:id
func (h *GameHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Game id is required")
		return
	}

	var game models.Game
	findErr := h.db.First(&game, id).Error
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Game not found")
			return
		}
		response.ServerError(c, "Unable to load game")
		return
	}

	response.OK(c, gin.H{"data": game})
}
