package redis

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"yesno-quiz/internal/domain"
)

// QuestionLoader fetches a question set from a backing store (e.g., Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// QuestionCache caches question sets in Redis (hash per set) and falls back to a loader on cache miss.
// Questions are stored as: HSET quiz:questions:{setID} {questionID} {text}
type QuestionCache struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
}

func NewQuestionCache(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
	}
}

func (c *QuestionCache) LoadQuestions(ctx context.Context, setID string) (domain.QuestionSet, error) {
	key := c.key(setID)

	if cached, ok := c.fromCache(ctx, key); ok {
		return cached, nil
	}

	result, err, _ := c.sf.Do(setID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if cached, ok := c.fromCache(ctx, key); ok {
			return cached, nil
		}

		qs, err := c.loader.LoadQuestions(ctx, setID)
		if err != nil {
			return domain.QuestionSet(nil), err
		}

		fields := make(map[string]interface{}, len(qs))
		for id, text := range qs {
			fields[strconv.Itoa(id)] = text
		}
		pipe := c.client.Pipeline()
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return qs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.QuestionSet), nil
}

func (c *QuestionCache) fromCache(ctx context.Context, key string) (domain.QuestionSet, bool) {
	raw, err := c.client.HGetAll(ctx, key).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	qs := make(domain.QuestionSet, len(raw))
	for idStr, text := range raw {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			// Foreign field in our hash; treat the entry as a miss and reload.
			return nil, false
		}
		qs[id] = text
	}
	return qs, true
}

func (c *QuestionCache) key(setID string) string {
	return "quiz:questions:" + setID
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
