package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic-data.json")
	backend := NewFileBackend(path)
	ctx := context.Background()

	_, err := backend.Load(ctx)
	require.ErrorIs(t, err, ErrNoSnapshot)

	want := []byte(`{"patients":[]}`)
	require.NoError(t, backend.Save(ctx, want))

	got, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Saves replace the document wholesale.
	next := []byte(`{"patients":[{"patient_id":1}]}`)
	require.NoError(t, backend.Save(ctx, next))

	got, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, got)

	require.NoError(t, backend.Ping(ctx))
}

func TestFileBackendCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snap.json")
	backend := NewFileBackend(path)

	require.NoError(t, backend.Save(context.Background(), []byte("{}")))

	got, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), got)
}

func TestMemoryBackend(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	_, err := backend.Load(ctx)
	require.ErrorIs(t, err, ErrNoSnapshot)

	data := []byte(`{"payments":[]}`)
	require.NoError(t, backend.Save(ctx, data))

	got, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// The backend keeps its own copy; callers mutating theirs see no effect.
	data[0] = 'X'
	got, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), got[0])

	require.NoError(t, backend.Ping(ctx))
}
