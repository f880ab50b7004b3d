package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// TokenKey is the key the session token is stored under.
const TokenKey = "jwt-linkedin"

// Session holds the caller's token between requests. The API client reads it
// before every call and updates it on signup, login and logout.
type Session interface {
	Get() string
	Set(token string) error
	Clear() error
}

// MemorySession keeps the token in process memory.
type MemorySession struct {
	mu    sync.RWMutex
	token string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySession) Clear() error {
	return s.Set("")
}

// FileSession persists the token in a small JSON key-value file so it
// survives restarts. Other keys in the file are preserved.
type FileSession struct {
	mu   sync.Mutex
	path string
}

// NewFileSession returns a FileSession backed by path. The file is created on
// the first Set.
func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

// Get returns the stored token, or "" when the file is missing or unreadable.
func (s *FileSession) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return ""
	}
	return values[TokenKey]
}

func (s *FileSession) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[TokenKey] = token
	return s.save(values)
}

func (s *FileSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[TokenKey]; !ok {
		return nil
	}
	delete(values, TokenKey)
	return s.save(values)
}

func (s *FileSession) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return values, nil
}

// save replaces the file atomically through a temp file and rename.
func (s *FileSession) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod session: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}
