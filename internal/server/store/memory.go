package store

import (
	"context"
	"sync"
)

// Memory holds records in process memory. It satisfies Store for
// tests and for servers run without a database path.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]Record
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{recs: make(map[string]Record)}
}

func (m *Memory) Save(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[r.ID] = r
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recs[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.recs))
	for _, r := range m.recs {
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, id)
	return nil
}

func (m *Memory) Close() error { return nil }
