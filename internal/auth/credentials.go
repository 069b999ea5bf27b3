package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/stagecrew/stageinv/internal/model"
)

// CredentialStore reads the static credentials file. The file is re-read
// on every call so edits take effect without a restart.
type CredentialStore struct {
	path string
}

// NewCredentialStore returns a store reading from path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

type credentialsFile struct {
	Users []model.Credential `json:"users"`
}

// Load returns all configured credentials. A missing or malformed file
// yields no users.
func (s *CredentialStore) Load() []model.Credential {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		slog.Warn("failed to read credentials file", "path", s.path, "error", err)
		return nil
	}

	var f credentialsFile
	if err := json.Unmarshal(data, &f); err == nil {
		return f.Users
	}

	// A bare array of users is accepted as well.
	var users []model.Credential
	if err := json.Unmarshal(data, &users); err != nil {
		slog.Warn("malformed credentials file", "path", s.path, "error", err)
		return nil
	}
	return users
}

// Authenticate returns a session for the first credential whose username
// and password both match exactly.
func (s *CredentialStore) Authenticate(username, password string) (*model.Session, bool) {
	for _, c := range s.Load() {
		if c.Username != username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1 {
			return model.NewSession(c.Username, c.Role), true
		}
	}
	return nil, false
}
