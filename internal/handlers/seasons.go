package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
	"gorm.io/gorm"
)

type SeasonHandler struct {
	db *gorm.DB
}

func NewSeasonHandler(db *gorm.DB) *SeasonHandler {
	return &SeasonHandler{db: db}
}

type SeasonRequest struct {
	Name string `json:"name"`
}

// Create adds a new season
// POST /seasons/
func (h *SeasonHandler) Create(c *gin.Context) {
	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.BadRequest(c, "Season name is required")
		return
	}

	season := models.Season{Name: req.Name}
	if err := h.db.Create(&season).Error; err != nil {
		response.ServerError(c, "Unable to create season")
		return
	}

	response.Created(c, gin.H{"id": season.ID, "name": season.Name})
}

// Update renames a season
// PUT /seasons/:id
func (h *SeasonHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Season id is required")
		return
	}

	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.BadRequest(c, "No fields to update")
		return
	}

	var season models.Season
	if err := h.db.First(&season, id).Error; err != nil {
		response.NotFound(c, "Season not found")
		return
	}

	if err := h.db.Model(&season).Update("name", req.Name).Error; err != nil {
		response.ServerError(c, "Unable to update season")
		return
	}

	response.Message(c, "Season updated successfully")
}

// Delete soft-deletes a season
// DELETE /seasons/:id
func (h *SeasonHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Season id is required")
		return
	}

	var season models.Season
	if err := h.db.Where("is_deleted = ?", false).First(&season, id).Error; err != nil {
		response.NotFound(c, "Season not found")
		return
	}

	if err := h.db.Model(&season).Update("is_deleted", true).Error; err != nil {
		response.ServerError(c, "Unable to delete season")
		return
	}

	response.Message(c, "Season deleted successfully")
}

// List returns all non-deleted seasons
// GET /seasons/
func (h *SeasonHandler) List(c *gin.Context) {
	var seasons []models.Season
	if err := h.db.Where("is_deleted = ?", false).Order("id ASC").Find(&seasons).Error; err != nil {
		response.ServerError(c, "Unable to list seasons")
		return
	}

	response.OK(c, gin.H{"data": seasons})
}

// Show returns one season
// GET /seasons/:id
func (h *SeasonHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Season id is required")
		return
	}

	var season models.Season
	findErr := h.db.Where("is_deleted = ?", false).First(&season, id).Error
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Season not found")
			return
		}
		response.ServerError(c, "Unable to load season")
		return
	}

	response.OK(c, gin.H{"data": season})
}
