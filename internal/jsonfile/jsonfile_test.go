package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyMap() map[string]string { return map[string]string{} }

func TestFileCreatesMissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "map.json")
	doc := NewFile(path, emptyMap)

	v, err := doc.Load()
	require.NoError(t, err)
	assert.Empty(t, v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestFileSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	doc := NewFile(path, emptyMap)

	require.NoError(t, doc.Save(map[string]string{"1": "/tmp/a.png"}))

	v, err := NewFile(path, emptyMap).Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "/tmp/a.png"}, v)
}

func TestFileMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFile(path, emptyMap).Load()
	assert.Error(t, err)
}

func TestMemoryCopySemantics(t *testing.T) {
	doc := NewMemory(emptyMap)

	v, err := doc.Load()
	require.NoError(t, err)
	v["1"] = "unsaved"

	again, err := doc.Load()
	require.NoError(t, err)
	assert.Empty(t, again, "changes are invisible until saved")

	require.NoError(t, doc.Save(v))
	again, err = doc.Load()
	require.NoError(t, err)
	assert.Equal(t, "unsaved", again["1"])
}
