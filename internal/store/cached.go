package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// CachedStore is a read-through decorator. Cache failures are logged
// and swallowed: the cache is an optimization, never a correctness
// dependency, so every error path falls back to the inner store.
type CachedStore struct {
	inner  Store
	cache  Cache
	logger *zap.Logger
}

func NewCachedStore(inner Store, cache Cache, logger *zap.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

func (s *CachedStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.cache.Get(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	data, err = s.inner.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	go func() {
		fillCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(fillCtx, key, data); err != nil {
			s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}()

	return data, nil
}

func (s *CachedStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.inner.Save(ctx, key, data); err != nil {
		return err
	}
	s.invalidate(key)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	if err := s.inner.Delete(ctx, key); err != nil {
		return err
	}
	s.invalidate(key)
	return nil
}

func (s *CachedStore) invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
