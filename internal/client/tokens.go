// internal/client/tokens.go
package client

import (
	"os"
	"strings"
	"sync"
)

// TokenStore giữ bearer token của phiên admin. Được inject vào Client
// thay vì truy cập như global state.
type TokenStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

// MemoryTokenStore giữ token trong bộ nhớ, dùng cho test và phiên ngắn.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.SetToken("")
}

// FileTokenStore lưu token xuống file để CLI giữ phiên giữa các lần chạy.
type FileTokenStore struct {
	Path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{Path: path}
}

func (s *FileTokenStore) Token() string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *FileTokenStore) SetToken(token string) error {
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
