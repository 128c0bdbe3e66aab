package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
	"gorm.io/gorm"
)

type PickHandler struct {
	db *gorm.DB
}

func NewPickHandler(db *gorm.DB) *PickHandler {
	return &PickHandler{db: db}
}

type CreatePickRequest struct {
	UserID     uint   `json:"user_id"`
	GameID     uint   `json:"game_id"`
	Prediction string `json:"prediction"`
}

// Create records a user's prediction for a game that has not started
// POST /picks/
func (h *PickHandler) Create(c *gin.Context) {
	var req CreatePickRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.UserID == 0 || req.GameID == 0 || req.Prediction == "" {
		response.BadRequest(c, "All fields are required")
		return
	}

	if !models.ValidPrediction(req.Prediction) {
		response.BadRequest(c, "Invalid prediction value")
		return
	}

	var game models.Game
	if err := h.db.First(&game, req.GameID).Error; err != nil {
		response.NotFound(c, "Game not found")
		return
	}

	if !time.Now().Before(game.GameDatetime) {
		response.BadRequest(c, "Cannot make a pick after the game has started")
		return
	}

	var result models.GameResult
	if err := h.db.Where("game_id = ?", req.GameID).First(&result).Error; err == nil {
		response.BadRequest(c, "Cannot make a pick for a finished game")
		return
	}

	var existing models.Pick
	if err := h.db.Where("user_id = ? AND game_id = ?", req.UserID, req.GameID).
		First(&existing).Error; err == nil {
		response.BadRequest(c, "User already made a pick for this game")
		return
	}

	pick := models.Pick{
		UserID:     req.UserID,
		GameID:     req.GameID,
		Prediction: req.Prediction,
	}
	if err := h.db.Create(&pick).Error; err != nil {
		response.ServerError(c, "Unable to create pick")
		return
	}

	response.Created(c, gin.H{
		"id":      pick.ID,
		"message": "Pick created successfully",
	})
}

type UpdatePickRequest struct {
	Prediction string `json:"prediction"`
}

// Update changes a prediction while the game is still open
// PUT /picks/:id
func (h *PickHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Pick id is required")
		return
	}

	var req UpdatePickRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prediction == "" {
		response.BadRequest(c, "Prediction is required")
		return
	}

	if !models.ValidPrediction(req.Prediction) {
		response.BadRequest(c, "Invalid prediction value")
		return
	}

	var pick models.Pick
	if err := h.db.First(&pick, id).Error; err != nil {
		response.NotFound(c, "Pick not found")
		return
	}

	var game models.Game
	if err := h.db.First(&game, pick.GameID).Error; err != nil {
		response.NotFound(c, "Game not found")
		return
	}

	if !time.Now().Before(game.GameDatetime) {
		response.BadRequest(c, "Cannot update pick after the game has started")
		return
	}

	var result models.GameResult
	if err := h.db.Where("game_id = ?", pick.GameID).First(&result).Error; err == nil {
		response.BadRequest(c, "Cannot update pick for a finished game")
		return
	}

	if err := h.db.Model(&pick).Update("prediction", req.Prediction).Error; err != nil {
		response.ServerError(c, "Unable to update pick")
		return
	}

	response.Message(c, "Pick updated successfully")
}
