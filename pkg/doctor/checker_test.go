package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotutor/repotutor/pkg/config"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.Server.BaseURL = baseURL
	return cfg
}

func TestCheckAll_HealthyBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "has_repo": false})
	}))
	defer server.Close()

	checker := NewChecker(testConfig(server.URL))
	results, err := checker.CheckAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Found, "check %s should pass: %s", r.Name, r.Error)
	}
}

func TestCheckAll_BackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // reachable URL, nothing listening

	checker := NewChecker(testConfig(server.URL))
	results, err := checker.CheckAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pre-flight checks failed")

	var backend CheckResult
	for _, r := range results {
		if r.Name == "Backend" {
			backend = r
		}
	}
	assert.False(t, backend.Found)
	assert.Contains(t, backend.Error, "not reachable")
}

func TestCheckAll_HealthStatusNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	checker := NewChecker(testConfig(server.URL))
	_, err := checker.CheckAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status 503")
}

func TestCheckAll_HealthShapeMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 but not the shape the client expects
		json.NewEncoder(w).Encode(map[string]any{"alive": true})
	}))
	defer server.Close()

	checker := NewChecker(testConfig(server.URL))
	results, err := checker.CheckAll(context.Background())

	// Schema check is advisory, not required
	require.NoError(t, err)

	var shape CheckResult
	for _, r := range results {
		if r.Name == "Health schema" {
			shape = r
		}
	}
	assert.False(t, shape.Found)
	assert.Contains(t, shape.Error, "schema")
}

func TestCheckAll_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BaseURL = "ftp://tutor.local"

	checker := NewChecker(cfg)
	_, err := checker.CheckAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config")
}
