package store

import (
	"context"
	"encoding/json"
)

// Cache is the synchronous local read/write path. It never fails the
// caller; absent covers read and parse failures alike.
type Cache interface {
	Get(name string) ([]byte, bool)
	Set(name string, raw []byte)
	Delete(name string)
}

// Remote is the reconciliation client for the store authority. Pull
// returns false on any failure; Push is fire-and-forget.
type Remote interface {
	Pull(ctx context.Context, name string) (json.RawMessage, bool)
	Push(ctx context.Context, name string, raw json.RawMessage)
}
