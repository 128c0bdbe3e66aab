package services

import (
	"errors"
	"time"

	"github.com/sundaypicks/sunday-picks-api/internal/config"
	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"github.com/sundaypicks/sunday-picks-api/internal/token"
	"github.com/sundaypicks/sunday-picks-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSamePassword       = errors.New("new password must be different from current password")
)

// Session is the payload returned by login and refresh.
type Session struct {
	AccessToken      string            `json:"access_token"`
	RefreshToken     string            `json:"refresh_token"`
	TokenType        string            `json:"token_type"`
	ExpiresIn        int               `json:"expires_in"`
	RefreshExpiresIn int               `json:"refresh_expires_in"`
	User             models.PublicUser `json:"user"`
}

// AuthService orchestrates the session lifecycle: credential verification,
// token issuance, rotation and revocation. It never writes refresh-token
// rows itself; all mutation goes through the RefreshTokenStore.
type AuthService struct {
	db         *gorm.DB
	tokens     *token.Service
	store      *RefreshTokenStore
	refreshTTL time.Duration
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:         db,
		tokens:     token.NewService(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.ExpiresIn),
		store:      NewRefreshTokenStore(db),
		refreshTTL: time.Duration(jwtCfg.RefreshExpiresIn) * time.Second,
	}
}

// Tokens exposes the access-token service for the auth middleware.
func (s *AuthService) Tokens() *token.Service {
	return s.tokens
}

// Login verifies credentials and opens a new session: a stateless access
// token plus a fresh refresh-token chain.
func (s *AuthService) Login(email, password string) (*Session, error) {
	var user models.User
	err := s.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	accessToken, err := s.tokens.IssueAt(user.ID, user.Email, user.IsAdmin, now)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.store.Issue(s.db, user.ID, now, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return s.session(accessToken, refreshToken, &user), nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// one issued atomically. A raced or replayed token loses the guarded revoke
// and fails as invalid, so each raw value is usable exactly once.
func (s *AuthService) Refresh(rawRefreshToken string) (*Session, error) {
	now := time.Now()

	record, user, err := s.store.ResolveActive(rawRefreshToken, now)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAt(user.ID, user.Email, user.IsAdmin, now)
	if err != nil {
		return nil, err
	}

	var newRefreshToken string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		revoked, err := s.store.Revoke(tx, record.ID, now)
		if err != nil {
			return err
		}
		if !revoked {
			return ErrRefreshTokenNotFound
		}

		newRefreshToken, err = s.store.Issue(tx, user.ID, now, s.refreshTTL)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.session(accessToken, newRefreshToken, user), nil
}

// Logout revokes every active refresh token the user holds. The current
// access token stays valid until its expiry; only the refresh chain dies.
func (s *AuthService) Logout(userID uint) error {
	return s.store.RevokeAllForUser(s.db, userID, time.Now())
}

// ChangePassword replaces the stored hash and revokes all refresh tokens,
// forcing re-login everywhere. Field presence and confirmation are checked
// at the HTTP boundary; this enforces the credential rules.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var user models.User
	err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.CheckPassword(currentPassword, user.Password) {
		return ErrWrongPassword
	}
	if utils.CheckPassword(newPassword, user.Password) {
		return ErrSamePassword
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("password", hashed).Error
		if err != nil {
			return err
		}
		return s.store.RevokeAllForUser(tx, user.ID, now)
	})
}

func (s *AuthService) session(accessToken, refreshToken string, user *models.User) *Session {
	return &Session{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        s.tokens.TTLSeconds(),
		RefreshExpiresIn: int(s.refreshTTL / time.Second),
		User:             user.Public(),
	}
}
