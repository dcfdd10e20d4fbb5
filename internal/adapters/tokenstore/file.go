// Package tokenstore persists the session token across agent restarts.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore implements ports.TokenStore on a single file under the user's
// config directory.
type FileStore struct {
	path string
}

// New creates a FileStore. An empty path uses
// <user config dir>/sadakreport/token.
func New(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "sadakreport", "token")
	}
	return &FileStore{path: path}, nil
}

// Load returns the persisted token, or "" when none exists.
func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save writes the token with owner-only permissions.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
