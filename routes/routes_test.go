package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/mcr-results/handlers"
	"github.com/Dosada05/mcr-results/middleware"
	"github.com/Dosada05/mcr-results/models"
	"github.com/Dosada05/mcr-results/services"
)

// stubService implements only what the routed requests below reach.
type stubService struct {
	services.TournamentService
	refreshed int
}

func (s *stubService) Refresh(context.Context) error {
	s.refreshed++
	return nil
}

func (s *stubService) Status(context.Context) (*services.Status, error) {
	return &services.Status{Banner: models.StatusBanner{Severity: models.SeverityOK}}, nil
}

var secret = []byte("test-secret")

func newRouter(svc services.TournamentService) *chi.Mux {
	r := chi.NewRouter()
	SetupRoutes(r, handlers.NewTournamentHandler(svc), handlers.NewAdminHandler(svc), secret, []string{"https://mcr.example.cz"})
	return r
}

func TestPublicRoutes(t *testing.T) {
	r := newRouter(&stubService{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/standings")
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	viewer, err := middleware.IssueToken(secret, "scorer", "viewer", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := middleware.IssueToken(secret, "ops", middleware.RoleAdmin, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.refreshed)
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(&stubService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/filter", nil)
	req.Header.Set("Origin", "https://mcr.example.cz")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://mcr.example.cz", rec.Header().Get("Access-Control-Allow-Origin"))
}
