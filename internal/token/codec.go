package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrMalformed reports a token that cannot be parsed into the three-segment
// header.payload.signature form.
var ErrMalformed = errors.New("malformed token")

// Parsed is the result of splitting and decoding a token without verifying
// its signature. Verification is the caller's job.
type Parsed struct {
	Header       map[string]interface{}
	Claims       map[string]interface{}
	SigningInput string // base64url(header) + "." + base64url(payload)
	Signature    string // base64url signature segment, still encoded
}

// Encode serializes claims into a signed HS256 token:
// base64url(header).base64url(payload).base64url(hmac-sha256(secret, input)).
// The header is fixed to {"alg":"HS256","typ":"JWT"}.
func Encode(claims map[string]interface{}, secret []byte) (string, error) {
	headerJSON, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON)

	return signingInput + "." + Sign(signingInput, secret), nil
}

// Decode splits a token and decodes its header and payload segments. It does
// NOT verify the signature.
func Decode(token string) (*Parsed, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrMalformed
	}
	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformed
	}

	var header map[string]interface{}
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, ErrMalformed
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return nil, ErrMalformed
	}

	return &Parsed{
		Header:       header,
		Claims:       claims,
		SigningInput: parts[0] + "." + parts[1],
		Signature:    parts[2],
	}, nil
}

// Sign computes the base64url-encoded HMAC-SHA256 signature of signingInput.
func Sign(signingInput string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
