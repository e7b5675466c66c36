package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shoplift/autopilot/internal/channel"
	"github.com/shoplift/autopilot/internal/config"
	"github.com/shoplift/autopilot/internal/logger"
	"github.com/shoplift/autopilot/internal/repository"
	"github.com/shoplift/autopilot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires a full stack against the on-device dry-run
// backend and a throwaway SQLite database, gated behind manual
// confirmation.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := repository.InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "test.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	repo := repository.NewTaskRepository(db)

	ch := channel.NewDeviceChannel("test-device", true)
	executor := service.NewListingTaskExecutor(ch, repo, nil, logger.Default(), &service.ExecutorConfig{
		FinalConfirmRequired: true,
	})
	manager := service.NewProductManager(ch, service.NewContentGenerator(), repo, executor, logger.Default())

	return SetupRouter(manager, service.NewOrderManager(ch), service.NewAnalyticsService(), service.NewInventoryManager(ch), &config.ServerConfig{
		Mode: "test",
		CORS: config.CORSConfig{AllowAllOrigins: true},
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w, out := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", out["status"])
}

func TestGetTask_Unknown(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/tasks/no-such-task", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAutoCreate_InvalidBody(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/products/auto-create", map[string]interface{}{
		"title": "Portable Fan",
		// missing required price and category fields
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w, out := doJSON(t, router, http.MethodPost, "/api/v1/products/auto-create", map[string]interface{}{
		"title":      "Portable Fan",
		"cost_price": 19.9,
		"sale_price": 39.9,
		"category":   "Gadgets",
		"keywords":   []string{"quiet", "battery"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	task, ok := out["task"].(map[string]interface{})
	require.True(t, ok, "response must include the task")
	assert.Equal(t, "wait_manual_confirm", task["status"])
	taskID, _ := task["task_id"].(string)
	require.NotEmpty(t, taskID)

	steps, _ := out["steps"].([]interface{})
	require.Len(t, steps, 1)

	// Confirm the gated task.
	w, out = doJSON(t, router, http.MethodPost, "/api/v1/tasks/"+taskID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	task, _ = out["task"].(map[string]interface{})
	assert.Equal(t, "done", task["status"])
	steps, _ = out["steps"].([]interface{})
	require.Len(t, steps, 2)

	// A second confirmation is rejected as a client error.
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/tasks/"+taskID+"/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The task remains inspectable.
	w, out = doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+taskID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	task, _ = out["task"].(map[string]interface{})
	assert.Equal(t, "done", task["status"])
}

func TestChannelMode(t *testing.T) {
	router := newTestRouter(t)

	w, out := doJSON(t, router, http.MethodGet, "/api/v1/ops/channel", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "auto_device", out["operation_mode"])
}

func TestUpdateStock(t *testing.T) {
	router := newTestRouter(t)

	w, out := doJSON(t, router, http.MethodPost, "/api/v1/items/auto_123/stock", map[string]interface{}{
		"sku_id": "sku-1",
		"qty":    25,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, out["success"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/items/auto_123/stock", map[string]interface{}{
		"qty": 25,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalesLoop(t *testing.T) {
	router := newTestRouter(t)

	w, out := doJSON(t, router, http.MethodGet, "/api/v1/ops/sales-loop?minutes=30", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	// The dry-run device backend returns no orders, so the low-volume
	// decision applies.
	assert.EqualValues(t, 0, out["order_count"])
	assert.NotEmpty(t, out["decision"])
}
