// Package images keeps at most one image file per item, recorded in a
// JSON mapping from item ID to absolute file path.
package images

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/stagecrew/stageinv/internal/jsonfile"
)

// DefaultExt is used when the suggested extension is not recognized.
const DefaultExt = ".png"

// allowedExt lists the accepted image extensions.
var allowedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Mapping is the persisted item ID -> image path map.
type Mapping = map[string]string

// NewMapping returns an empty mapping; used to initialize missing files.
func NewMapping() Mapping { return Mapping{} }

// Store manages item images in a directory.
type Store struct {
	dir     string
	mapping jsonfile.Document[Mapping]
	newName func() string
}

// New returns a Store that writes images under dir and records them in
// mapping. dir is made absolute so recorded paths are stable.
func New(dir string, mapping jsonfile.Document[Mapping]) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving image directory: %w", err)
	}
	return &Store{
		dir:     abs,
		mapping: mapping,
		newName: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}, nil
}

// NormalizeExt maps a suggested extension or filename to one of the
// accepted extensions, defaulting to DefaultExt.
func NormalizeExt(suggested string) string {
	ext := strings.ToLower(strings.TrimSpace(suggested))
	if strings.Contains(ext, ".") {
		ext = filepath.Ext(ext)
	} else if ext != "" {
		ext = "." + ext
	}
	if !allowedExt[ext] {
		return DefaultExt
	}
	return ext
}

// Save writes data as the image for itemID and returns its path. The
// previous image file, if any, is deleted.
func (s *Store) Save(itemID int64, data []byte, suggestedExt string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s%s", itemID, s.newName(), NormalizeExt(suggestedExt))
	dest := filepath.Join(s.dir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}

	m, err := s.mapping.Load()
	if err != nil {
		return "", fmt.Errorf("loading image mapping: %w", err)
	}

	key := mappingKey(itemID)
	if old, ok := m[key]; ok && old != dest {
		removeFile(old)
	}
	m[key] = dest

	if err := s.mapping.Save(m); err != nil {
		return "", fmt.Errorf("saving image mapping: %w", err)
	}
	return dest, nil
}

// Get returns the image path for itemID. It reports false when no image is
// recorded or the recorded file no longer exists; such stale entries are
// left in the mapping.
func (s *Store) Get(itemID int64) (string, bool, error) {
	m, err := s.mapping.Load()
	if err != nil {
		return "", false, fmt.Errorf("loading image mapping: %w", err)
	}

	path, ok := m[mappingKey(itemID)]
	if !ok || path == "" {
		return "", false, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", false, nil
	}
	return path, true, nil
}

// Exists reports whether Get would return a path.
func (s *Store) Exists(itemID int64) (bool, error) {
	_, ok, err := s.Get(itemID)
	return ok, err
}

// Remove forgets the image for itemID and deletes its file. Unknown IDs
// are a no-op.
func (s *Store) Remove(itemID int64) error {
	m, err := s.mapping.Load()
	if err != nil {
		return fmt.Errorf("loading image mapping: %w", err)
	}

	key := mappingKey(itemID)
	old, ok := m[key]
	if !ok {
		return nil
	}
	delete(m, key)
	removeFile(old)

	if err := s.mapping.Save(m); err != nil {
		return fmt.Errorf("saving image mapping: %w", err)
	}
	return nil
}

func mappingKey(itemID int64) string {
	return strconv.FormatInt(itemID, 10)
}

// removeFile deletes an image file, tolerating files that are already gone.
func removeFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove image file", "path", path, "error", err)
	}
}
