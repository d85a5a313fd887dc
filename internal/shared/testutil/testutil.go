// Package testutil holds helpers shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"letsparkit/internal/shared/config"
	"letsparkit/internal/shared/middleware"
	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const Secret = "handler-test-secret"

// Config returns a config whose JWT secret matches AccessToken
func Config() *config.Config {
	return &config.Config{
		APIVersion: "v1",
		APIPrefix:  "/api",
		JWT: config.JWTConfig{
			Secret:           Secret,
			Issuer:           "letsparkit",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		Booking: config.BookingConfig{
			TicketSecret:       "ticket-test-secret",
			CompletionSchedule: "@every 1m",
			DefaultVehicle:     "Unknown",
		},
	}
}

// Authenticator accepts tokens minted by AccessToken
func Authenticator() *middleware.Authenticator {
	return middleware.NewAuthenticator(Config(), nil)
}

// Engine returns a gin engine in test mode
func Engine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// AccessToken mints a signed access token for the given identity
func AccessToken(t *testing.T, userID, name, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   userID + "@example.com",
		"name":    name,
		"role":    role,
		"type":    "access",
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

// Do sends a JSON request and decodes the response envelope
func Do(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.StandardApiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env response.StandardApiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// DataMap returns the envelope data as a JSON object
func DataMap(t *testing.T, env response.StandardApiResponse) map[string]interface{} {
	t.Helper()
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object", env.Data)
	}
	return data
}
