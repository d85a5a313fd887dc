package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"letsparkit/internal/shared/middleware"
	"letsparkit/internal/shared/utils/response"
	"letsparkit/internal/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	repo, err := users.NewSeededRepository(bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	revocations := NewMemoryRevocationStore()
	svc := NewService(repo, revocations, cfg)

	engine := gin.New()
	NewRouter(NewController(svc), middleware.NewAuthenticator(cfg, revocations)).SetupRoutes(engine.Group("/api/v1"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.StandardApiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
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

func loginToken(t *testing.T, engine *gin.Engine, email, password string) (string, string) {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body = %s", w.Code, w.Body.String())
	}
	data := env.Data.(map[string]interface{})
	return data["access_token"].(string), data["refresh_token"].(string)
}

func TestLoginHandler(t *testing.T) {
	engine := newTestEngine(t)

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "user@example.com", Password: "wrong-pass"})
	if w.Code != http.StatusUnauthorized || env.Status != response.StatusError {
		t.Errorf("bad password = %d %+v", w.Code, env)
	}
	if env.Data != nil {
		t.Error("failed login must not return a token")
	}

	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email", "password": "password123"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid email status = %d", w.Code)
	}
}

func TestMeAndLogout(t *testing.T) {
	engine := newTestEngine(t)
	access, refresh := loginToken(t, engine, "user@example.com", "password123")

	w, env := doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	if env.Data.(map[string]interface{})["id"] != "user-1" {
		t.Errorf("me = %v", env.Data)
	}

	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", access, LogoutRequest{RefreshToken: refresh})
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", access, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d", w.Code)
	}
	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh", "", RefreshTokenRequest{RefreshToken: refresh})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh after logout status = %d", w.Code)
	}
}

func TestMeRejectsBadTokens(t *testing.T) {
	engine := newTestEngine(t)
	access, refresh := loginToken(t, engine, "admin@letsparkitapp.com", "admin123")

	tests := map[string]string{
		"missing":  "",
		"tampered": tamper(access),
		"refresh":  refresh,
		"garbage":  "not.a.token",
	}
	for name, token := range tests {
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", token, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s token status = %d", name, w.Code)
		}
	}
}

func TestRegisterHandler(t *testing.T) {
	engine := newTestEngine(t)

	body := RegisterRequest{Name: "Neha Jain", Email: "neha@example.com", Password: "secret99", Role: "admin"}
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d %s", w.Code, w.Body.String())
	}
	user := env.Data.(map[string]interface{})["user"].(map[string]interface{})
	if user["role"] != "user" {
		t.Errorf("role = %v", user["role"])
	}

	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", body)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d", w.Code)
	}
}
