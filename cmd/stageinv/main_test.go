package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecrew/stageinv/internal/model"
)

// run executes one CLI invocation against dataDir and returns its stdout.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedAndExport(t *testing.T) {
	t.Chdir(t.TempDir())
	dataDir := t.TempDir()

	out, err := run(t, dataDir, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Inserted 5 sample items")

	out, err = run(t, dataDir, "export", "--in-use", "true")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "XLR Cable 25ft", rows[1][1])
	assert.Equal(t, "true", rows[1][5])

	path := filepath.Join(t.TempDir(), "items.csv")
	_, err = run(t, dataDir, "export", "--out", path, "--sort", model.SortByLocation)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(string(data), "\n"))

	_, err = run(t, dataDir, "export", "--in-use", "sometimes")
	assert.Error(t, err)
}

func TestLocationsCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	dataDir := t.TempDir()

	_, err := run(t, dataDir, "locations", "add", "Attic")
	require.NoError(t, err)

	out, err := run(t, dataDir, "locations", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(model.DefaultLocations)+1)
	assert.Equal(t, "Attic", lines[0])
}

func TestAnnounceCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	dataDir := t.TempDir()

	out, err := run(t, dataDir, "announce", "add", "Strike is Sunday", "--author", "Joe")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, dataDir, "announce", "list", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Joe: Strike is Sunday")
	assert.Contains(t, out, "System: ")

	_, err = run(t, dataDir, "announce", "delete", id)
	require.NoError(t, err)

	out, err = run(t, dataDir, "announce", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Strike is Sunday")

	_, err = run(t, dataDir, "announce", "add", "   ")
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(dataDir, "announcements.json"))
	assert.NoError(t, err)
}

func TestConfigCommandRedactsSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STAGEINV_JWT_SECRET", "hunter2")

	out, err := run(t, t.TempDir(), "config")
	require.NoError(t, err)
	assert.Contains(t, out, `jwt_secret = "<redacted>"`)
	assert.NotContains(t, out, "hunter2")
}
