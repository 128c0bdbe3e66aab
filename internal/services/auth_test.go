package services

import (
	"errors"
	"testing"

	"github.com/sundaypicks/sunday-picks-api/internal/config"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{
		Secret:           "test-secret",
		Issuer:           "sunday-picks-api",
		ExpiresIn:        900,
		RefreshExpiresIn: 3600,
	})
	return svc, db
}

func countRefreshTokens(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()

	var count int64
	err := db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count refresh tokens: %v", err)
	}
	return count
}

func TestLoginSuccess(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "alice@example.com", "correct-horse-1")

	session, err := svc.Login("alice@example.com", "correct-horse-1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if session.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want %q", session.TokenType, "Bearer")
	}
	if session.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d, want 900", session.ExpiresIn)
	}
	if session.RefreshExpiresIn != 3600 {
		t.Errorf("RefreshExpiresIn = %d, want 3600", session.RefreshExpiresIn)
	}
	if session.User.Email != user.Email {
		t.Errorf("User.Email = %q, want %q", session.User.Email, user.Email)
	}

	claims, err := svc.Tokens().Validate(session.AccessToken)
	if err != nil {
		t.Fatalf("issued access token did not validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("claims.Email = %q, want %q", claims.Email, user.Email)
	}

	if got := countRefreshTokens(t, db, user.ID); got != 1 {
		t.Errorf("refresh token rows = %d, want 1", got)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "bob@example.com", "correct-horse-2")

	_, err := svc.Login("bob@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}

	// A failed login must leave no session behind.
	if got := countRefreshTokens(t, db, user.ID); got != 0 {
		t.Errorf("refresh token rows = %d, want 0", got)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login("nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDeletedUser(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "carol@example.com", "correct-horse-3")

	err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("is_deleted", true).Error
	if err != nil {
		t.Fatalf("failed to soft-delete user: %v", err)
	}

	_, err = svc.Login("carol@example.com", "correct-horse-3")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "dave@example.com", "correct-horse-4")

	first, err := svc.Login("dave@example.com", "correct-horse-4")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	second, err := svc.Refresh(first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("Refresh returned the same refresh token, want a rotated one")
	}
	if _, err := svc.Tokens().Validate(second.AccessToken); err != nil {
		t.Errorf("refreshed access token did not validate: %v", err)
	}

	// The presented token was consumed; replaying it must fail.
	_, err = svc.Refresh(first.RefreshToken)
	if !errors.Is(err, ErrRefreshTokenNotFound) {
		t.Errorf("replayed refresh err = %v, want ErrRefreshTokenNotFound", err)
	}

	// The rotated token is the only live one.
	third, err := svc.Refresh(second.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh with rotated token failed: %v", err)
	}
	if third.User.ID != user.ID {
		t.Errorf("session user = %d, want %d", third.User.ID, user.ID)
	}
}

func TestLogoutRevokesAllSessions(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "erin@example.com", "correct-horse-5")

	first, err := svc.Login("erin@example.com", "correct-horse-5")
	if err != nil {
		t.Fatalf("first Login failed: %v", err)
	}
	second, err := svc.Login("erin@example.com", "correct-horse-5")
	if err != nil {
		t.Fatalf("second Login failed: %v", err)
	}

	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	for i, raw := range []string{first.RefreshToken, second.RefreshToken} {
		_, err := svc.Refresh(raw)
		if !errors.Is(err, ErrRefreshTokenNotFound) {
			t.Errorf("session %d: refresh err = %v, want ErrRefreshTokenNotFound", i, err)
		}
	}

	// Access tokens are stateless: logout does not invalidate one mid-lifetime.
	if _, err := svc.Tokens().Validate(first.AccessToken); err != nil {
		t.Errorf("access token after logout: err = %v, want nil", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "frank@example.com", "old-password-1")

	session, err := svc.Login("frank@example.com", "old-password-1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	err = svc.ChangePassword(user.ID, "old-password-1", "new-password-1")
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	// Every refresh token dies with the old password.
	_, err = svc.Refresh(session.RefreshToken)
	if !errors.Is(err, ErrRefreshTokenNotFound) {
		t.Errorf("refresh err = %v, want ErrRefreshTokenNotFound", err)
	}

	if _, err := svc.Login("frank@example.com", "old-password-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login with old password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("frank@example.com", "new-password-1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "grace@example.com", "old-password-2")

	err := svc.ChangePassword(user.ID, "not-the-password", "new-password-2")
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("err = %v, want ErrWrongPassword", err)
	}
}

func TestChangePasswordSameAsCurrent(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createTestUser(t, db, "henry@example.com", "old-password-3")

	err := svc.ChangePassword(user.ID, "old-password-3", "old-password-3")
	if !errors.Is(err, ErrSamePassword) {
		t.Errorf("err = %v, want ErrSamePassword", err)
	}
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc, _ := setupAuthService(t)

	err := svc.ChangePassword(9999, "whatever", "new-password-4")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
