package storage

import "sync"

// MemoryBackend keeps records in a map. A positive Quota caps the total
// number of stored bytes, which lets tests exercise write failures.
type MemoryBackend struct {
	Quota int

	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory creates an empty, unbounded in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemoryBackend) Set(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	if m.Quota > 0 {
		used := 0
		for k, v := range m.data {
			if k != key {
				used += len(v)
			}
		}
		if used+len(data) > m.Quota {
			return ErrQuotaExceeded
		}
	}
	b := make([]byte, len(data))
	copy(b, data)
	m.data[key] = b
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the number of stored records.
func (m *MemoryBackend) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
