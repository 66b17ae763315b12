package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Load when nothing has been saved under
// the key. Callers treat absence as an empty collection, not a failure.
var ErrKeyNotFound = errors.New("key not found")

// StorageError wraps a persistence read/write failure so callers can
// distinguish "nothing there" from "the store is broken".
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store persists each domain collection as one serialized document under
// a single named key. Reads and writes cover the whole collection;
// last writer wins.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
