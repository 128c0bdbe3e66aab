package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/token"
)

const (
	ContextUserID  = "user_id"
	ContextEmail   = "email"
	ContextIsAdmin = "is_admin"
)

// AuthRequired gates a route on a valid bearer access token. It is purely a
// check against the token itself: no storage is consulted, so revoking
// refresh tokens never invalidates an access token mid-lifetime.
func AuthRequired(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"code":    "missing_token",
				"message": "Access token is required",
			})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Unauthorized",
					"code":    "token_expired",
					"message": "Access token has expired",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Unauthorized",
					"code":    "invalid_token",
					"message": "Access token is invalid",
				})
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

// extractBearerToken pulls the credential out of "Bearer <token>". The
// scheme is matched case-insensitively and surrounding whitespace ignored.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", false
	}
	return raw, true
}

// GetUserID gets the authenticated user id from context, 0 if absent.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetEmail gets the authenticated user's email from context.
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get(ContextEmail); exists {
		return email.(string)
	}
	return ""
}

// IsAdmin reports whether the authenticated user carries the admin flag.
func IsAdmin(c *gin.Context) bool {
	if isAdmin, exists := c.Get(ContextIsAdmin); exists {
		return isAdmin.(bool)
	}
	return false
}
