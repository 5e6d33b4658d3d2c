package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "SCRATCH_DIR", "SCRATCH_TTL", "MAX_UPLOAD_MB", "SWEEP_SCHEDULE", "CORS_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.ScratchTTL)
	assert.Equal(t, int64(200<<20), cfg.MaxUploadSize)
	assert.Equal(t, "*/15 * * * *", cfg.SweepSchedule)
	assert.Equal(t, filepath.Join(os.TempDir(), "ifcdash"), cfg.ScratchDir)
	assert.NotEmpty(t, cfg.CORSOrigins)
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("SCRATCH_TTL=30m\nMAX_UPLOAD_MB=5\nCORS_ORIGINS=https://a.example, https://b.example\n"), 0644))
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig(env)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.ScratchTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfigInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCRATCH_TTL", "soon")
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "SCRATCH_TTL")

	t.Setenv("SCRATCH_TTL", "")
	t.Setenv("MAX_UPLOAD_MB", "-1")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "MAX_UPLOAD_MB")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Level", "Type"}, SplitList(" Level, ,Type "))
	assert.Nil(t, SplitList(""))
}

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)

	ErrorResponse(c, http.StatusBadRequest, "Invalid file", assert.AnError)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
	assert.True(t, strings.Contains(w.Body.String(), `"error":"Invalid file"`))
	assert.True(t, strings.Contains(w.Body.String(), `"details"`))
}

func TestGetAnalysisContext(t *testing.T) {
	ctx, cancel := GetAnalysisContext(nil, time.Minute)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	parent, stop := context.WithCancel(context.Background())
	child, cancel2 := GetDefaultAnalysisContext(parent)
	defer cancel2()
	stop()
	<-child.Done()
	assert.ErrorIs(t, child.Err(), context.Canceled)
}
