package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"valida-backend/internal/middleware"
	"valida-backend/internal/models"
)

type fakeProfileStore struct {
	profiles map[uuid.UUID]*models.Profile
}

func (f *fakeProfileStore) GetProfile(profileID uuid.UUID) (*models.Profile, error) {
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, fmt.Errorf("profile not found")
	}
	return p, nil
}

func gatedRouter(store middleware.ProfileStore, userID string, gate gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})
	router.Use(gate)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRequireActiveProfile_BannedAccount(t *testing.T) {
	userID := uuid.New()
	store := &fakeProfileStore{profiles: map[uuid.UUID]*models.Profile{
		userID: {ID: userID, Email: "banido@example.com", IsBanned: true},
	}}

	router := gatedRouter(store, userID.String(), middleware.RequireActiveProfile(store))

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "conta banida")
}

func TestRequireActiveProfile_ActiveAccount(t *testing.T) {
	userID := uuid.New()
	store := &fakeProfileStore{profiles: map[uuid.UUID]*models.Profile{
		userID: {ID: userID, Email: "ativo@example.com"},
	}}

	router := gatedRouter(store, userID.String(), middleware.RequireActiveProfile(store))

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireActiveProfile_MissingProfilePasses(t *testing.T) {
	store := &fakeProfileStore{profiles: map[uuid.UUID]*models.Profile{}}

	router := gatedRouter(store, uuid.NewString(), middleware.RequireActiveProfile(store))

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	userID := uuid.New()
	store := &fakeProfileStore{profiles: map[uuid.UUID]*models.Profile{
		userID: {ID: userID, Email: "user@example.com"},
	}}

	router := gatedRouter(store, userID.String(), middleware.RequireAdmin(store))

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_Admin(t *testing.T) {
	userID := uuid.New()
	store := &fakeProfileStore{profiles: map[uuid.UUID]*models.Profile{
		userID: {ID: userID, Email: "admin@example.com", IsAdmin: true},
	}}

	router := gatedRouter(store, userID.String(), middleware.RequireAdmin(store))

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
