package resolver

import (
	"errors"
	"sync"
	"time"
)

// --- Mocks ---

type mockCache struct {
	mu   sync.Mutex
	data map[string]any
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]any)}
}

func (m *mockCache) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// failingReader は読み込み時に必ず失敗する io.Reader です。
type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("corrupted file")
}
