package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "cart:abc", []byte(`[{"productId":"1"}]`)))

	data, err := s.Load(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, `[{"productId":"1"}]`, string(data))
}

func TestMemoryStoreLoadMissingKey(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "wishlist:abc", []byte(`["1"]`)))
	require.NoError(t, s.Delete(ctx, "wishlist:abc"))

	_, err := s.Load(ctx, "wishlist:abc")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, "wishlist:abc"))
}

func TestMemoryStoreCopiesBytes(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	in := []byte(`["1"]`)
	require.NoError(t, s.Save(ctx, "k", in))
	in[0] = 'X'

	out, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `["1"]`, string(out))

	out[0] = 'Y'
	again, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `["1"]`, string(again))
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := &StorageError{Op: "save", Key: "orders", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "orders")
}
