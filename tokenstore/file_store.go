package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const defaultCredentialsDir = ".sessionkit"

// credentialsFile is the on-disk shape. Field names mirror the storage
// keys so the file stays portable across tools.
type credentialsFile struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       string `json:"userId,omitempty"`
}

// FileStore keeps the credentials in a single JSON file, the desktop
// analog of the web client's localStorage. Writes go through a temp file
// and rename so a crash never leaves a torn file behind.
type FileStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store at path. An empty path defaults to
// $HOME/.sessionkit/credentials.json. The parent directory is created
// with owner-only permissions.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tokenstore: resolve home directory: %w", err)
		}
		path = filepath.Join(home, defaultCredentialsDir, "credentials.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("tokenstore: create credentials directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// load reads the current file. A missing or corrupt file reads as empty so
// the session degrades to unauthenticated instead of wedging every start.
func (s *FileStore) load() (*credentialsFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &credentialsFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: read credentials file: %w", err)
	}
	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return &credentialsFile{}, nil
	}
	return &creds, nil
}

func (s *FileStore) save(creds *credentialsFile) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("tokenstore: encode credentials: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write credentials file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("tokenstore: replace credentials file: %w", err)
	}
	return nil
}

func (s *FileStore) get(pick func(*credentialsFile) string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	creds, err := s.load()
	if err != nil {
		return "", err
	}
	return pick(creds), nil
}

func (s *FileStore) set(apply func(*credentialsFile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	creds, err := s.load()
	if err != nil {
		return err
	}
	apply(creds)
	return s.save(creds)
}

func (s *FileStore) AccessToken(_ context.Context) (string, error) {
	return s.get(func(c *credentialsFile) string { return c.AccessToken })
}

func (s *FileStore) SetAccessToken(_ context.Context, token string) error {
	return s.set(func(c *credentialsFile) { c.AccessToken = token })
}

func (s *FileStore) RefreshToken(_ context.Context) (string, error) {
	return s.get(func(c *credentialsFile) string { return c.RefreshToken })
}

func (s *FileStore) SetRefreshToken(_ context.Context, token string) error {
	return s.set(func(c *credentialsFile) { c.RefreshToken = token })
}

func (s *FileStore) UserID(_ context.Context) (string, error) {
	return s.get(func(c *credentialsFile) string { return c.UserID })
}

func (s *FileStore) SetUserID(_ context.Context, id string) error {
	return s.set(func(c *credentialsFile) { c.UserID = id })
}

// Clear removes the credentials file. Removing an absent file is not an
// error, which makes Clear idempotent.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove credentials file: %w", err)
	}
	return nil
}

// Close marks the store closed. The file itself is left in place.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
