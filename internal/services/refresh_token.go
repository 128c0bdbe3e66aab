package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/sundaypicks/sunday-picks-api/internal/models"
	"gorm.io/gorm"
)

// ErrRefreshTokenNotFound covers unknown, revoked and expired refresh tokens
// alike, so the failure mode never reveals which case applied.
var ErrRefreshTokenNotFound = errors.New("invalid or expired refresh token")

// RefreshTokenStore owns every read and write of the refresh_tokens table.
// Rows are append-only: revocation sets revoked_at, nothing is ever deleted.
type RefreshTokenStore struct {
	db *gorm.DB
}

func NewRefreshTokenStore(db *gorm.DB) *RefreshTokenStore {
	return &RefreshTokenStore{db: db}
}

// Issue creates a new refresh-token row and returns the raw token. The raw
// value is handed to the client and never stored; only its SHA-256 hash is.
func (s *RefreshTokenStore) Issue(tx *gorm.DB, userID uint, now time.Time, ttl time.Duration) (string, error) {
	raw, err := generateRefreshToken()
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		UserID:    userID,
		TokenHash: HashRefreshToken(raw),
		ExpiresAt: now.Add(ttl),
	}
	if err := tx.Create(&record).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// ResolveActive looks up the record for a raw token and returns it with its
// owning user. The record must be unrevoked and unexpired and the owner must
// not be soft-deleted; any miss is ErrRefreshTokenNotFound.
func (s *RefreshTokenStore) ResolveActive(raw string, now time.Time) (*models.RefreshToken, *models.User, error) {
	hash := HashRefreshToken(raw)

	var record models.RefreshToken
	err := s.db.Where("token_hash = ?", hash).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRefreshTokenNotFound
		}
		return nil, nil, err
	}

	if record.RevokedAt != nil || !record.ExpiresAt.After(now) {
		return nil, nil, ErrRefreshTokenNotFound
	}

	var user models.User
	err = s.db.Where("id = ? AND is_deleted = ?", record.UserID, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRefreshTokenNotFound
		}
		return nil, nil, err
	}

	return &record, &user, nil
}

// Revoke marks a single record revoked. The guarded WHERE makes it a
// compare-and-swap: of two concurrent callers racing on the same record,
// exactly one observes revoked == true.
func (s *RefreshTokenStore) Revoke(tx *gorm.DB, recordID uint, now time.Time) (bool, error) {
	result := tx.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", recordID).
		Update("revoked_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RevokeAllForUser revokes every outstanding refresh token a user holds.
// Used on logout and password change to invalidate all sessions at once.
func (s *RefreshTokenStore) RevokeAllForUser(tx *gorm.DB, userID uint, now time.Time) error {
	return tx.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

func generateRefreshToken() (string, error) {
	randomBytes := make([]byte, 48)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(randomBytes), nil
}

// HashRefreshToken computes the at-rest form of a raw refresh token.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
