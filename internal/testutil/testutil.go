package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"catalogapi/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

// Secret is the signing secret shared by handler tests.
const Secret = "test-secret-key"

// GenerateTestToken generates a JWT token for testing
func GenerateTestToken(secret, userID, username string) string {
	token, _ := auth.GenerateToken(secret, userID, username, time.Hour)
	return token
}

// GenerateExpiredToken generates an expired JWT token for testing
func GenerateExpiredToken(secret, userID, username string) string {
	c := auth.Claims{
		Sub:      userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates a new HTTP request with a bearer token
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// DecodeBody decodes a recorded JSON response body into a map
func DecodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	_ = json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&body)
	return body
}
