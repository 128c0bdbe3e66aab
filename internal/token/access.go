package token

import (
	"crypto/hmac"
	"encoding/base64"
	"errors"
	"time"
)

var (
	// ErrInvalid covers every validation failure except expiry: bad shape,
	// bad signature, wrong algorithm, missing exp, wrong issuer.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned for structurally valid, correctly signed tokens
	// whose exp has passed.
	ErrExpired = errors.New("token expired")
)

// Claims carried by an access token.
type Claims struct {
	UserID    uint
	Email     string
	IsAdmin   bool
	IssuedAt  int64
	ExpiresAt int64
	Issuer    string
}

// Service issues and validates stateless HS256 access tokens. It performs no
// storage I/O; a token, once issued, stays valid until exp regardless of any
// refresh-token revocation.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewService(secret, issuer string, ttlSeconds int) *Service {
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl / time.Second)
}

// Issue creates a signed access token for the given identity.
func (s *Service) Issue(userID uint, email string, isAdmin bool) (string, error) {
	return s.IssueAt(userID, email, isAdmin, time.Now())
}

// IssueAt is Issue with an explicit clock.
func (s *Service) IssueAt(userID uint, email string, isAdmin bool, now time.Time) (string, error) {
	claims := map[string]interface{}{
		"sub":      userID,
		"email":    email,
		"is_admin": isAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
		"iss":      s.issuer,
	}
	return Encode(claims, s.secret)
}

// Validate parses and verifies a token against the current time.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	return s.ValidateAt(tokenString, time.Now())
}

// ValidateAt verifies structure, signature, algorithm, expiry and issuer, in
// that order. Expiry is the only failure reported distinctly.
func (s *Service) ValidateAt(tokenString string, now time.Time) (*Claims, error) {
	parsed, err := Decode(tokenString)
	if err != nil {
		return nil, ErrInvalid
	}

	// The signature comparison must be constant-time.
	signature, err := base64.RawURLEncoding.DecodeString(parsed.Signature)
	if err != nil {
		return nil, ErrInvalid
	}
	expected, err := base64.RawURLEncoding.DecodeString(Sign(parsed.SigningInput, s.secret))
	if err != nil {
		return nil, ErrInvalid
	}
	if !hmac.Equal(signature, expected) {
		return nil, ErrInvalid
	}

	// Pin the algorithm; anything but HS256 is rejected even if the
	// signature above happened to match.
	if alg, ok := parsed.Header["alg"].(string); !ok || alg != "HS256" {
		return nil, ErrInvalid
	}

	exp, ok := numericClaim(parsed.Claims, "exp")
	if !ok {
		return nil, ErrInvalid
	}
	if exp <= now.Unix() {
		return nil, ErrExpired
	}

	if iss, ok := parsed.Claims["iss"].(string); !ok || iss != s.issuer {
		return nil, ErrInvalid
	}

	claims := &Claims{
		ExpiresAt: exp,
		Issuer:    s.issuer,
	}
	if sub, ok := numericClaim(parsed.Claims, "sub"); ok {
		claims.UserID = uint(sub)
	}
	if email, ok := parsed.Claims["email"].(string); ok {
		claims.Email = email
	}
	if isAdmin, ok := parsed.Claims["is_admin"].(bool); ok {
		claims.IsAdmin = isAdmin
	}
	if iat, ok := numericClaim(parsed.Claims, "iat"); ok {
		claims.IssuedAt = iat
	}
	return claims, nil
}

func numericClaim(claims map[string]interface{}, key string) (int64, bool) {
	value, ok := claims[key].(float64)
	if !ok {
		return 0, false
	}
	return int64(value), true
}
