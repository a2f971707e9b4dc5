package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8000", config.App.Port)
	assert.Equal(t, 10*time.Second, config.App.ShutdownTimeout)
	assert.Equal(t, time.Hour, config.JWT.TTL())
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.False(t, config.Registration.StrictSkills)
	assert.False(t, config.Redis.Enabled())
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, config.CORS.AllowedOrigins)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nPORT=9000\nREGISTRATION_STRICT_SKILLS=true\nREDIS_ADDR=localhost:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "9100")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.JWT.Secret)
	assert.Equal(t, "9100", config.App.Port)
	assert.True(t, config.Registration.StrictSkills)
	assert.True(t, config.Redis.Enabled())
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_RejectsNonPositiveExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRY_MINUTES", "0")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "JWT_EXPIRY_MINUTES")
}
