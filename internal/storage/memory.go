package storage

import (
	"context"
	"sync"
)

// MemoryBackend holds the snapshot in process memory. Used by tests and by
// STORAGE_BACKEND=memory for throwaway runs.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Ping(ctx context.Context) error {
	return ctx.Err()
}
