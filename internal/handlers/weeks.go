package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
	"gorm.io/gorm"
)

type WeekHandler struct {
	db *gorm.DB
}

func NewWeekHandler(db *gorm.DB) *WeekHandler {
	return &WeekHandler{db: db}
}

type WeekRequest struct {
	Name string `json:"name"`
}

// Create adds a new week
// POST /weeks/
func (h *WeekHandler) Create(c *gin.Context) {
	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.BadRequest(c, "Week name is required")
		return
	}

	week := models.Week{Name: req.Name}
	if err := h.db.Create(&week).Error; err != nil {
		response.ServerError(c, "Unable to create week")
		return
	}

	response.Created(c, gin.H{"id": week.ID, "name": week.Name})
}

// Update renames a week
// PUT /weeks/:id
func (h *WeekHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Week id is required")
		return
	}

	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.BadRequest(c, "No fields to update")
		return
	}

	var week models.Week
	if err := h.db.First(&week, id).Error; err != nil {
		response.NotFound(c, "Week not found")
		return
	}

	if err := h.db.Model(&week).Update("name", req.Name).Error; err != nil {
		response.ServerError(c, "Unable to update week")
		return
	}

	response.Message(c, "Week updated successfully")
}

// Delete soft-deletes a week
// DELETE /weeks/:id
func (h *WeekHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Week id is required")
		return
	}

	var week models.Week
	if err := h.db.Where("is_deleted = ?", false).First(&week, id).Error; err != nil {
		response.NotFound(c, "Week not found")
		return
	}

	if err := h.db.Model(&week).Update("is_deleted", true).Error; err != nil {
		response.ServerError(c, "Unable to delete week")
		return
	}

	response.Message(c, "Week deleted successfully")
}

// List returns all non-deleted weeks
// GET /weeks/
func (h *WeekHandler) List(c *gin.Context) {
	var weeks []models.Week
	if err := h.db.Where("is_deleted = ?", false).Order("id ASC").Find(&weeks).Error; err != nil {
		response.ServerError(c, "Unable to list weeks")
		return
	}

	response.OK(c, gin.H{"data": weeks})
}

// Show returns one week
// GET /weeks/:id
func (h *WeekHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Week id is required")
		return
	}

	var week models.Week
	findErr := h.db.Where("is_deleted = ?", false).First(&week, id).Error
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Week not found")
			return
		}
		response.ServerError(c, "Unable to load week")
		return
	}

	response.OK(c, gin.H{"data": week})
}
