package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"go-agrichain/internal/model"
)

type redisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore returns a LedgerStore that keeps the document as one
// string blob under StorageKey.
func NewRedisStore(client *redis.Client) LedgerStore {
	return &redisStore{client: client, ctx: context.Background()}
}

func (s *redisStore) Load() (*model.LedgerState, error) {
	raw, err := s.client.Get(s.ctx, StorageKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewLedgerState(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeState(raw), nil
}

func (s *redisStore) Save(state *model.LedgerState) error {
	raw, err := encodeState(state)
	if err != nil {
		return err
	}
	return s.client.Set(s.ctx, StorageKey, raw, 0).Err()
}
