package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"product_estimator/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Storage.Primary = config.StorageMemory
	cfg.Storage.Secondary = config.StorageNone
	return cfg
}

func TestNewRouter_EstimateLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := memoryConfig()

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()
	r := NewRouter(cfg, app.UseCase)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(`{"name":"Kitchen Reno"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	req = httptest.NewRequest(http.MethodPost, "/v1/estimates/"+id+"/rooms", bytes.NewBufferString(`{"name":"Kitchen","width":4,"length":3}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates/"+id+"/rooms", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"Kitchen"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/storage", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates/"+id, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := memoryConfig()
	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()
	r := NewRouter(cfg, app.UseCase)

	req := httptest.NewRequest(http.MethodOptions, "/v1/estimates", nil)
	req.Header.Set("Origin", "http://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig_ExplicitOrigins(t *testing.T) {
	c := corsConfig([]string{"http://shop.example.com"})
	require.False(t, c.AllowAllOrigins)
	require.True(t, c.AllowCredentials)
	require.Equal(t, []string{"http://shop.example.com"}, c.AllowOrigins)
}

func TestBuild_UnknownStorage(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Secondary = "floppy"
	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}
