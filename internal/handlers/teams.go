package handlers

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
	"gorm.io/gorm"
)

type TeamHandler struct {
	db        *gorm.DB
	uploadDir string
}

func NewTeamHandler(db *gorm.DB, uploadDir string) *TeamHandler {
	return &TeamHandler{db: db, uploadDir: uploadDir}
}

// Create adds a new team with its logo (multipart form: name + logo file)
// POST /teams/
func (h *TeamHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		response.BadRequest(c, "Team name is required")
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		response.BadRequest(c, "Logo image is required")
		return
	}

	logoURI, err := h.saveLogo(c, file)
	if err != nil {
		response.BadRequest(c, "Error uploading file")
		return
	}

	team := models.Team{Name: name, LogoURI: logoURI}
	if err := h.db.Create(&team).Error; err != nil {
		response.ServerError(c, "Unable to create team")
		return
	}

	response.Created(c, gin.H{
		"id":       team.ID,
		"name":     team.Name,
		"logo_uri": team.LogoURI,
	})
}

// Update changes a team's name and/or logo
// POST /teams/:id
func (h *TeamHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Team id is required")
		return
	}

	var team models.Team
	if err := h.db.First(&team, id).Error; err != nil {
		response.NotFound(c, "Team not found")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = team.Name
	}

	logoURI := team.LogoURI
	if file, err := c.FormFile("logo"); err == nil {
		if uri, err := h.saveLogo(c, file); err == nil {
			logoURI = uri
		}
	}

	updates := map[string]interface{}{"name": name, "logo_uri": logoURI}
	if err := h.db.Model(&team).Updates(updates).Error; err != nil {
		response.ServerError(c, "Unable to update team")
		return
	}

	response.OK(c, gin.H{
		"name":     name,
		"logo_uri": logoURI,
		"message":  "Team updated successfully",
	})
}

// Delete soft-deletes a team
// DELETE /teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Team id is required")
		return
	}

	var team models.Team
	if err := h.db.Where("is_deleted = ?", false).First(&team, id).Error; err != nil {
		response.NotFound(c, "Team not found")
		return
	}

	if err := h.db.Model(&team).Update("is_deleted", true).Error; err != nil {
		response.ServerError(c, "Unable to delete team")
		return
	}

	response.Message(c, "Team deleted successfully")
}

// List returns all non-deleted teams
// GET /teams/
func (h *TeamHandler) List(c *gin.Context) {
	var teams []models.Team
	if err := h.db.Where("is_deleted = ?", false).Order("id ASC").Find(&teams).Error; err != nil {
		response.ServerError(c, "Unable to list teams")
		return
	}

	response.OK(c, gin.H{"data": teams})
}

// Show returns one team
// GET /teams/:id
func (h *TeamHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Team id is required")
		return
	}

	var team models.Team
	findErr := h.db.Where("is_deleted = ?", false).First(&team, id).Error
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Team not found")
			return
		}
		response.ServerError(c, "Unable to load team")
		return
	}

	response.OK(c, gin.H{"data": team})
}

// saveLogo stores an uploaded logo under <uploadDir>/teams and returns the
// URI it will be served from.
func (h *TeamHandler) saveLogo(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(h.uploadDir, "teams")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := "team_" + uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return "/uploads/teams/" + filename, nil
}
