package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"yesno-quiz/internal/app"
	"yesno-quiz/internal/config"
	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/history"
	"yesno-quiz/internal/infra/memory"
	pgstore "yesno-quiz/internal/infra/postgres"
	redisstore "yesno-quiz/internal/infra/redis"
	"yesno-quiz/internal/infra/sqlite"
)

// kvFactory hands out profile-scoped KV views of one backend.
type kvFactory interface {
	ForProfile(profile string) history.KV
}

// backend bundles the connections a command opened so they can be closed together.
type backend struct {
	kv      kvFactory
	redis   *redis.Client
	pool    *pgxpool.Pool
	closers []func() error
}

func (b *backend) stores() app.StoreFactory {
	return func(profile string) app.HistoryStore {
		return history.NewAdapter(b.kv.ForProfile(profile))
	}
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Printf("close backend: %v", err)
		}
	}
}

// loadConfig reads the YAML file at path, falling back to defaults when it does not exist.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config %s not found, using defaults", path)
		cfg = config.Default()
	} else if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	b := &backend{}

	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, b.redis.Close)
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.pool = pool
		b.closers = append(b.closers, func() error { pool.Close(); return nil })
	}

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		b.kv = redisstore.NewStore(b.redis)
	case config.BackendPostgres:
		b.kv = pgstore.NewStore(b.pool)
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.kv = store
		b.closers = append(b.closers, store.Close)
	default:
		log.Printf("using in-memory storage; score history will not survive a restart")
		b.kv = memory.NewStore()
	}
	return b, nil
}

// loadQuestions resolves the question set once at startup.
func loadQuestions(ctx context.Context, cfg config.Config, b *backend) (domain.QuestionSet, error) {
	var loader memory.QuestionLoader
	switch cfg.Quiz.Source {
	case config.SourcePostgres:
		loader = pgstore.NewQuestionLoader(b.pool)
		if b.redis != nil {
			loader = redisstore.NewQuestionCache(b.redis, loader, config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute))
		}
	default:
		questions := cfg.Questions
		if len(questions) == 0 {
			questions = memory.DefaultQuestions()
		}
		loader = memory.NewStaticQuestionLoader(map[string]domain.QuestionSet{cfg.Quiz.ID: questions})
	}

	qs, err := loader.LoadQuestions(ctx, cfg.Quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions %q: %w", cfg.Quiz.ID, err)
	}
	if err := qs.Validate(); err != nil {
		return nil, fmt.Errorf("questions %q: %w", cfg.Quiz.ID, err)
	}
	return qs, nil
}
