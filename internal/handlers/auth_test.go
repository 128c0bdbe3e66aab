package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/config"
	"github.com/sundaypicks/sunday-picks-api/internal/middleware"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/internal/services"
	"github.com/sundaypicks/sunday-picks-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	svc    *services.AuthService
}

func setupAuthEnv(t *testing.T) *authTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	svc := services.NewAuthService(db, &config.JWTConfig{
		Secret:           "test-secret",
		Issuer:           "sunday-picks-api",
		ExpiresIn:        900,
		RefreshExpiresIn: 3600,
	})
	handler := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.Refresh)

	protected := r.Group("/auth", middleware.AuthRequired(svc.Tokens()))
	protected.POST("/logout", handler.Logout)
	protected.POST("/change-password", handler.ChangePassword)

	return &authTestEnv{db: db, router: r, svc: svc}
}

func (env *authTestEnv) createUser(t *testing.T, email, password string) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Name:     "Test User",
		Phone:    "5550001234",
		Email:    email,
		Password: hashed,
	}
	if err := env.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func (env *authTestEnv) post(t *testing.T, path, bearer string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	return w, parsed
}

func (env *authTestEnv) refreshTokenCount(t *testing.T, userID uint) int64 {
	t.Helper()

	var count int64
	err := env.db.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count refresh tokens: %v", err)
	}
	return count
}

func TestLoginEndpointSuccess(t *testing.T) {
	env := setupAuthEnv(t)
	env.createUser(t, "alice@example.com", "correct-horse-1")

	w, body := env.post(t, "/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "correct-horse-1",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if body["access_token"] == "" || body["access_token"] == nil {
		t.Error("access_token missing from response")
	}
	if body["refresh_token"] == "" || body["refresh_token"] == nil {
		t.Error("refresh_token missing from response")
	}
	if body["token_type"] != "Bearer" {
		t.Errorf("token_type = %v, want Bearer", body["token_type"])
	}
	if body["expires_in"] != float64(900) {
		t.Errorf("expires_in = %v, want 900", body["expires_in"])
	}

	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatal("user object missing from response")
	}
	if user["email"] != "alice@example.com" {
		t.Errorf("user.email = %v, want alice@example.com", user["email"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password leaked in user object")
	}
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	env := setupAuthEnv(t)
	user := env.createUser(t, "bob@example.com", "correct-horse-2")

	w, body := env.post(t, "/auth/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "wrong-password",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body["error"] != "Invalid credentials" {
		t.Errorf("error = %v, want %q", body["error"], "Invalid credentials")
	}
	if got := env.refreshTokenCount(t, user.ID); got != 0 {
		t.Errorf("refresh token rows after failed login = %d, want 0", got)
	}
}

func TestLoginEndpointMissingFields(t *testing.T) {
	env := setupAuthEnv(t)

	cases := []gin.H{
		{},
		{"email": "alice@example.com"},
		{"password": "correct-horse-1"},
	}
	for i, payload := range cases {
		w, body := env.post(t, "/auth/login", "", payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, w.Code)
		}
		if body["error"] != "Email and password are required" {
			t.Errorf("case %d: error = %v", i, body["error"])
		}
	}
}

func TestRefreshEndpoint(t *testing.T) {
	env := setupAuthEnv(t)
	env.createUser(t, "carol@example.com", "correct-horse-3")

	_, login := env.post(t, "/auth/login", "", gin.H{
		"email":    "carol@example.com",
		"password": "correct-horse-3",
	})
	oldRefresh := login["refresh_token"].(string)

	w, body := env.post(t, "/auth/refresh", "", gin.H{"refresh_token": oldRefresh})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if body["refresh_token"] == oldRefresh {
		t.Error("refresh returned the presented token, want a rotated one")
	}

	// The consumed token is gone for good.
	w, body = env.post(t, "/auth/refresh", "", gin.H{"refresh_token": oldRefresh})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("replay status = %d, want 401", w.Code)
	}
	if body["error"] != "Invalid or expired refresh token" {
		t.Errorf("error = %v, want %q", body["error"], "Invalid or expired refresh token")
	}
}

func TestRefreshEndpointMissingToken(t *testing.T) {
	env := setupAuthEnv(t)

	w, body := env.post(t, "/auth/refresh", "", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["error"] != "refresh_token is required" {
		t.Errorf("error = %v, want %q", body["error"], "refresh_token is required")
	}
}

func TestLogoutEndpoint(t *testing.T) {
	env := setupAuthEnv(t)
	env.createUser(t, "dave@example.com", "correct-horse-4")

	_, login := env.post(t, "/auth/login", "", gin.H{
		"email":    "dave@example.com",
		"password": "correct-horse-4",
	})
	access := login["access_token"].(string)
	refresh := login["refresh_token"].(string)

	w, body := env.post(t, "/auth/logout", access, gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if body["message"] != "Logout successful" {
		t.Errorf("message = %v, want %q", body["message"], "Logout successful")
	}

	// The refresh chain is dead.
	w, _ = env.post(t, "/auth/refresh", "", gin.H{"refresh_token": refresh})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh after logout status = %d, want 401", w.Code)
	}

	// The access token is stateless and keeps working until expiry.
	w, _ = env.post(t, "/auth/logout", access, gin.H{})
	if w.Code != http.StatusOK {
		t.Errorf("second logout with same access token status = %d, want 200", w.Code)
	}
}

func TestLogoutEndpointRequiresToken(t *testing.T) {
	env := setupAuthEnv(t)

	w, body := env.post(t, "/auth/logout", "", gin.H{})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body["code"] != "missing_token" {
		t.Errorf("code = %v, want missing_token", body["code"])
	}
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := setupAuthEnv(t)
	env.createUser(t, "erin@example.com", "old-password-1")

	_, login := env.post(t, "/auth/login", "", gin.H{
		"email":    "erin@example.com",
		"password": "old-password-1",
	})
	access := login["access_token"].(string)
	refresh := login["refresh_token"].(string)

	w, body := env.post(t, "/auth/change-password", access, gin.H{
		"current_password":          "old-password-1",
		"new_password":              "new-password-1",
		"new_password_confirmation": "new-password-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if body["message"] != "Password updated successfully" {
		t.Errorf("message = %v, want %q", body["message"], "Password updated successfully")
	}

	w, _ = env.post(t, "/auth/refresh", "", gin.H{"refresh_token": refresh})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh after password change status = %d, want 401", w.Code)
	}

	w, _ = env.post(t, "/auth/login", "", gin.H{
		"email":    "erin@example.com",
		"password": "new-password-1",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login with new password status = %d, want 200", w.Code)
	}
}

func TestChangePasswordEndpointValidation(t *testing.T) {
	env := setupAuthEnv(t)
	env.createUser(t, "frank@example.com", "old-password-2")

	_, login := env.post(t, "/auth/login", "", gin.H{
		"email":    "frank@example.com",
		"password": "old-password-2",
	})
	access := login["access_token"].(string)

	tests := []struct {
		name       string
		payload    gin.H
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing fields",
			payload:    gin.H{"current_password": "old-password-2"},
			wantStatus: http.StatusBadRequest,
			wantError:  "current_password, new_password and new_password_confirmation are required",
		},
		{
			name: "confirmation mismatch",
			payload: gin.H{
				"current_password":          "old-password-2",
				"new_password":              "new-password-2",
				"new_password_confirmation": "different",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "new_password and new_password_confirmation must match",
		},
		{
			name: "too short",
			payload: gin.H{
				"current_password":          "old-password-2",
				"new_password":              "short",
				"new_password_confirmation": "short",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "new_password must be at least 8 characters",
		},
		{
			name: "wrong current password",
			payload: gin.H{
				"current_password":          "not-the-password",
				"new_password":              "new-password-2",
				"new_password_confirmation": "new-password-2",
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Current password is incorrect",
		},
		{
			name: "same as current",
			payload: gin.H{
				"current_password":          "old-password-2",
				"new_password":              "old-password-2",
				"new_password_confirmation": "old-password-2",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "New password must be different from current password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.post(t, "/auth/change-password", access, tt.payload)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}
