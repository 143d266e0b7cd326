// Package storage provides the snapshot port the clinic store persists
// through. A backend holds exactly one opaque snapshot document; every save
// replaces it wholesale (last writer wins, no detection across instances).
package storage

import (
	"context"
	"errors"
)

var ErrNoSnapshot = errors.New("no snapshot stored")

// Backend is the storage port. Load returns ErrNoSnapshot when nothing has
// been saved yet, which callers treat as "keep seed state".
type Backend interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Ping(ctx context.Context) error
}
