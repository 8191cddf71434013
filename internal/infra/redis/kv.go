package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/history"
)

// Store keeps profile key-value slots in Redis as plain strings:
//
//	SET quiz:{profile}:{key} {value}
//
// Keys never expire; a score history is meant to outlive any session.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// ForProfile returns a KV view scoped to profile.
func (s *Store) ForProfile(profile string) history.KV {
	return &KV{client: s.client, profile: profile}
}

// KV is one profile's slice of the Redis keyspace.
type KV struct {
	client  *redis.Client
	profile string
}

func (k *KV) Get(ctx context.Context, key string) (string, error) {
	v, err := k.client.Get(ctx, k.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrHistoryNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (k *KV) Put(ctx context.Context, key, value string) error {
	return k.client.Set(ctx, k.redisKey(key), value, 0).Err()
}

func (k *KV) redisKey(key string) string {
	return "quiz:" + k.profile + ":" + key
}
