package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/internal/utils"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// Register creates a new user
// POST /users/
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Name == "" || req.Phone == "" || req.Email == "" || req.Password == "" {
		response.BadRequest(c, "Missing required fields")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		response.ServerError(c, "Unable to create user")
		return
	}

	user := models.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: hashed,
		IsAdmin:  req.IsAdmin,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// unique email index
		response.Conflict(c, "Email already exists")
		return
	}

	response.Created(c, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"is_admin":   user.IsAdmin,
		"is_deleted": user.IsDeleted,
	})
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	IsAdmin   *bool   `json:"is_admin"`
	IsDeleted *bool   `json:"is_deleted"`
}

// Update applies a partial update
// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "User id is required")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		response.NotFound(c, "User not found")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}
	if req.IsDeleted != nil {
		updates["is_deleted"] = *req.IsDeleted
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			response.ServerError(c, "Unable to update user")
			return
		}
	}

	response.Message(c, "User updated successfully")
}

// Delete soft-deletes a user
// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "User id is required")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		response.NotFound(c, "User not found")
		return
	}

	if user.IsDeleted {
		response.Message(c, "User already deleted")
		return
	}

	if err := h.db.Model(&user).Update("is_deleted", true).Error; err != nil {
		response.ServerError(c, "Unable to delete user")
		return
	}

	response.Message(c, "User soft deleted successfully")
}

// List returns all non-deleted users
// GET /users/
func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Where("is_deleted = ?", false).Order("id DESC").Find(&users).Error; err != nil {
		response.ServerError(c, "Unable to list users")
		return
	}

	response.OK(c, gin.H{
		"data":  users,
		"count": len(users),
	})
}

// Show returns one user
// GET /users/:id
func (h *UserHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "User id is required")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.ServerError(c, "Unable to load user")
		return
	}

	if user.IsDeleted {
		response.NotFound(c, "User is deleted")
		return
	}

	response.OK(c, gin.H{"data": user})
}
