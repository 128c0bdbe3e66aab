package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
	"gorm.io/gorm"
)

type GameResultHandler struct {
	db *gorm.DB
}

func NewGameResultHandler(db *gorm.DB) *GameResultHandler {
	return &GameResultHandler{db: db}
}

type CreateGameResultRequest struct {
	GameID     *uint `json:"game_id"`
	LocalScore *int  `json:"local_score"`
	VisitScore *int  `json:"visit_score"`
}

// Create records a final score and marks the game as played, atomically
// POST /game-results/
func (h *GameResultHandler) Create(c *gin.Context) {
	var req CreateGameResultRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.GameID == nil || req.LocalScore == nil || req.VisitScore == nil {
		response.BadRequest(c, "All fields are required")
		return
	}

	if *req.LocalScore < 0 || *req.VisitScore < 0 {
		response.BadRequest(c, "Scores must be non-negative numbers")
		return
	}

	if err := h.db.First(&models.Game{}, *req.GameID).Error; err != nil {
		response.NotFound(c, "Game not found")
		return
	}

	var existing models.GameResult
	if err := h.db.Where("game_id = ?", *req.GameID).First(&existing).Error; err == nil {
		response.Conflict(c, "Game already has a result")
		return
	}

	result := models.GameResult{
		GameID:     *req.GameID,
		LocalScore: *req.LocalScore,
		VisitScore: *req.VisitScore,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&result).Error; err != nil {
			return err
		}
		return tx.Model(&models.Game{}).Where("id = ?", *req.GameID).
			Update("is_played", true).Error
	})
	if err != nil {
		response.ServerError(c, "Unable to create game result")
		return
	}

	response.Created(c, gin.H{
		"id":      result.ID,
		"message": "Game result created successfully",
	})
}

type UpdateGameResultRequest struct {
	LocalScore *int `json:"local_score"`
	VisitScore *int `json:"visit_score"`
}

// Update corrects a recorded score
// PUT /game-results/:id
func (h *GameResultHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Game result id is required")
		return
	}

	var req UpdateGameResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.LocalScore == nil && req.VisitScore == nil {
		response.BadRequest(c, "No fields to update")
		return
	}
	if (req.LocalScore != nil && *req.LocalScore < 0) ||
		(req.VisitScore != nil && *req.VisitScore < 0) {
		response.BadRequest(c, "Scores must be non-negative numbers")
		return
	}

	var result models.GameResult
	if err := h.db.First(&result, id).Error; err != nil {
		response.NotFound(c, "Game result not found")
		return
	}

	if req.LocalScore != nil {
		result.LocalScore = *req.LocalScore
	}
	if req.VisitScore != nil {
		result.VisitScore = *req.VisitScore
	}

	if err := h.db.Save(&result).Error; err != nil {
		response.ServerError(c, "Unable to update game result")
		return
	}

	response.Message(c, "Game result updated successfully")
}

// List returns all results, newest first
// GET /game-results/
func (h *GameResultHandler) List(c *gin.Context) {
	var results []models.GameResult
	if err := h.db.Order("id DESC").Find(&results).Error; err != nil {
		response.ServerError(c, "Unable to list game results")
		return
	}

	response.OK(c, gin.H{"data": results})
}

// Show returns one result
// GET /game-results/:id
func (h *GameResultHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Game result id is required")
		return
	}

	var result models.GameResult
	findErr := h.db.First(&result, id).Error
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Game result not found")
			return
		}
		response.ServerError(c, "Unable to load game result")
		return
	}

	response.OK(c, gin.H{"data": result})
}
