package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnvFile points godotenv at a file that does not exist.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join("data", "stage_inventory.db"), cfg.Path(cfg.DBPath))
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), noEnvFile(t))
	assert.Error(t, err)
}

func TestLoadTOMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stageinv.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":9000"
data_dir = "/srv/stage"
session_expiry = "12h"
log_format = "json"
`), 0o600))

	t.Setenv("STAGEINV_ADDR", ":9100")

	cfg, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr, "environment wins over file")
	assert.Equal(t, "/srv/stage", cfg.DataDir)
	assert.Equal(t, 12*time.Hour, cfg.SessionExpiry.Duration)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "stage_inventory.db", cfg.DBPath, "unset keys keep defaults")
	assert.Equal(t, "/srv/stage/stage_inventory.db", cfg.Path(cfg.DBPath))
}

func TestLoadEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("STAGEINV_JWT_SECRET=from-dotenv\n"), 0o600))

	// godotenv sets process variables; t.Setenv restores the original state.
	t.Setenv("STAGEINV_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("STAGEINV_JWT_SECRET"))

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.JWTSecret)
}

func TestInvalidEnvDurationKeepsValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STAGEINV_SESSION_EXPIRY", "soon")

	cfg, err := Load("", noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionExpiry.Duration)
}

func TestInvalidTOMLDuration(t *testing.T) {
	err := Read(bytes.NewBufferString(`session_expiry = "forever"`), Default())
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Default()))
	assert.Contains(t, buf.String(), `session_expiry = "168h0m0s"`)

	cfg := &Config{}
	require.NoError(t, Read(&buf, cfg))
	assert.Equal(t, Default(), cfg)
}

func TestPathKeepsAbsolute(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/tmp/x.db", cfg.Path("/tmp/x.db"))
	assert.Equal(t, "", cfg.Path(""))
}
