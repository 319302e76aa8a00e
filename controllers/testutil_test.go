package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/countryapi"
	"github.com/wander-log/api-go/models"
	"github.com/wander-log/api-go/routes"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", testSecret)
	os.Exit(m.Run())
}

// setupTestDB opens an in-memory sqlite database with the journal schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Reaction{}, &models.Follow{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// stubCountryProxy serves the proxy's envelope for any name lookup, with a
// France-shaped payload. Lookups for names containing "atlantis" get a 404.
func stubCountryProxy(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(strings.ToLower(r.URL.Path), "atlantis") {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "error": "Country Not Found", "message": "Country not found",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []countryapi.Country{{
				Name:       "France",
				Currencies: []countryapi.Currency{{Code: "EUR", Name: "Euro", Symbol: "€"}},
				Capital:    "Paris",
				Languages:  []string{"French"},
				Flag:       countryapi.Flag{PNG: "https://flagcdn.com/w320/fr.png"},
				Cca3:       "FRA",
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	proxy := stubCountryProxy(t)
	country := countryapi.New(proxy.URL, "test-key", nil)
	r := gin.New()
	routes.SetupRoutes(r, db, country)
	return r
}

func createUser(t *testing.T, db *gorm.DB, username, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     "user",
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, title, country string) models.Post {
	t.Helper()
	post := models.Post{
		Title:       title,
		Content:     "content of " + title,
		CountryName: country,
		CountryCca3: "",
		DateOfVisit: "2024-05-01",
		UserID:      userID,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	base := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	token, err := base.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		CurrentPage  int   `json:"currentPage"`
		TotalPages   int   `json:"totalPages"`
		TotalItems   int64 `json:"totalItems"`
		ItemsPerPage int   `json:"itemsPerPage"`
	} `json:"pagination"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return env
}
