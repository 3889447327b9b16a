package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roombook/pkg/client"
	"roombook/pkg/config"
	"roombook/pkg/logger"
	"roombook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusAccepted)
	})
}

func testConfig() *config.Config {
	cfg := config.FromEnv()
	cfg.RoomStore = config.BackendMemory
	cfg.Log = logger.Discard()
	cfg.Client = client.NewClient()
	return cfg
}

func TestApplication_RoutesHealthAndApp(t *testing.T) {
	a := NewApplication(testConfig())
	a.SetApp(pingHandler{})
	defer a.idempotencyStore.Stop()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ping", nil)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestApplication_ShutdownHooksRunInReverse(t *testing.T) {
	a := NewApplication(testConfig())
	a.SetApp(pingHandler{})

	var order []string
	a.OnShutdown("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	a.OnShutdown("second", func(ctx context.Context) error {
		order = append(order, "second")
		return errors.New("ignored")
	})

	a.gracefulShutdown()
	assert.Equal(t, []string{"second", "first"}, order)
}
