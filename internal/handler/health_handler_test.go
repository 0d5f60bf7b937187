package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rimaylabs/rimay/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, router http.Handler) (int, healthResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHealth_NotReady(t *testing.T) {
	router, _ := newTestRouter(testConfig(), nil)

	code, resp := getHealth(t, router)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.OK)
	assert.Equal(t, "not_ready", resp.ModelStatus)
	assert.Nil(t, resp.ModelError)
	assert.Nil(t, resp.ModelLoadedAt)
}

func TestHealth_Ready(t *testing.T) {
	router := readyRouter(t, testConfig(), &mockBundle{})

	code, resp := getHealth(t, router)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.OK)
	assert.Equal(t, "ready", resp.ModelStatus)
	assert.Nil(t, resp.ModelError)
	require.NotNil(t, resp.ModelLoadedAt)

	loadedAt, err := time.Parse(time.RFC3339, *resp.ModelLoadedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), loadedAt, 5*time.Second)
}

func TestHealth_Error(t *testing.T) {
	router, guard := newTestRouter(testConfig(), func(ctx context.Context) (model.Bundle, error) {
		return nil, errors.New("no space left on device")
	})

	guard.Trigger()
	require.Eventually(t, func() bool {
		return guard.Status() == model.StateError
	}, 2*time.Second, 10*time.Millisecond)

	code, resp := getHealth(t, router)
	assert.Equal(t, http.StatusOK, code, "health always answers 200")
	assert.False(t, resp.OK)
	assert.Equal(t, "error", resp.ModelStatus)
	require.NotNil(t, resp.ModelError)
	assert.Equal(t, "no space left on device", *resp.ModelError)
	assert.Nil(t, resp.ModelLoadedAt)
}
