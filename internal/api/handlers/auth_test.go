package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
)

// setupTestDB creates a disposable in-memory DB. The shared-cache DSN keeps
// every pooled connection (transactions included) on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.PlayHistory{},
		&models.Playlist{},
		&models.PlaylistTrack{},
		&models.Track{},
		&models.Users{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// doJSON fires one JSON request at a router and returns the recorder.
func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func authRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(db, "test-secret", 1)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	r := authRouter(setupTestDB(t))

	// 1. Register with no role: defaults to listener
	w := doJSON(r, "POST", "/auth/register", `{"username": "momo", "password": "correct-horse"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var created map[string]string
	json.Unmarshal(w.Body.Bytes(), &created)
	if created["role"] != "listener" {
		t.Errorf("default role = %q, want listener", created["role"])
	}

	// 2. Login and check the token carries the right claims
	w = doJSON(r, "POST", "/auth/login", `{"username": "momo", "password": "correct-horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	if resp.Username != "momo" || resp.Role != "listener" {
		t.Errorf("login identity = %s/%s, want momo/listener", resp.Username, resp.Role)
	}

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "momo" || claims["role"] != "listener" {
		t.Errorf("claims = %v, want sub=momo role=listener", claims)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	r := authRouter(setupTestDB(t))
	doJSON(r, "POST", "/auth/register", `{"username": "momo", "password": "correct-horse"}`)

	// Wrong password and unknown user must be indistinguishable
	wrongPass := doJSON(r, "POST", "/auth/login", `{"username": "momo", "password": "wrong"}`)
	unknownUser := doJSON(r, "POST", "/auth/login", `{"username": "ghost", "password": "whatever"}`)

	for name, w := range map[string]*httptest.ResponseRecorder{"wrong password": wrongPass, "unknown user": unknownUser} {
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid credentials") {
			t.Errorf("%s: body = %s, want generic Invalid credentials", name, w.Body.String())
		}
	}
}

func TestRegister_Validation(t *testing.T) {
	r := authRouter(setupTestDB(t))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"Short password", `{"username": "a", "password": "short"}`, http.StatusBadRequest},
		{"Unknown role", `{"username": "b", "password": "longenough", "role": "superuser"}`, http.StatusBadRequest},
		{"Editor role accepted", `{"username": "c", "password": "longenough", "role": "editor"}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, "POST", "/auth/register", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}

	// Duplicate username hits the unique index
	doJSON(r, "POST", "/auth/register", `{"username": "dup", "password": "longenough"}`)
	w := doJSON(r, "POST", "/auth/register", `{"username": "dup", "password": "longenough"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}
}
