package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/infra/memory"
)

func TestQuestionCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(map[string]domain.QuestionSet{
			"default": {1: "Is the sky blue?", 2: "Is water dry?"},
		}),
	}
	cache := NewQuestionCache(newClient(mr), loader, time.Minute)

	qs, err := cache.LoadQuestions(context.Background(), "default")
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if qs.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", qs.Len())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:questions:default") {
		t.Fatalf("expected redis hash to be set")
	}

	// Second call should hit cache, loader not incremented.
	qs, err = cache.LoadQuestions(context.Background(), "default")
	if err != nil {
		t.Fatalf("load questions again: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if qs[2] != "Is water dry?" {
		t.Fatalf("expected cached text, got %q", qs[2])
	}
}

func TestQuestionCacheMissingSet(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewQuestionCache(newClient(mr), memory.NewStaticQuestionLoader(nil), time.Minute)
	if _, err := cache.LoadQuestions(context.Background(), "nope"); err != domain.ErrQuestionSetNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	memory.QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context, setID string) (domain.QuestionSet, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx, setID)
}
