package history_test

import (
	"context"
	"errors"
	"testing"

	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/history"
	"yesno-quiz/internal/infra/memory"
)

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	adapter := history.NewAdapter(memory.NewStore().ForProfile("alice"))

	got, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", got)
	}
}

func TestSaveOverwritesFullSequence(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	adapter := history.NewAdapter(store.ForProfile("alice"))

	if err := adapter.Save(ctx, []float64{50}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := adapter.Save(ctx, []float64{50, 100, 75}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, ok := store.Raw("alice", history.Key)
	if !ok || raw != "[50,100,75]" {
		t.Fatalf("expected [50,100,75], got %q", raw)
	}

	got, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 || got[0] != 50 || got[1] != 100 || got[2] != 75 {
		t.Fatalf("expected [50 100 75], got %v", got)
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	store := memory.NewStore()
	if err := history.NewAdapter(store.ForProfile("alice")).Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if raw, _ := store.Raw("alice", history.Key); raw != "[]" {
		t.Fatalf("expected [], got %q", raw)
	}
}

func TestLoadMalformed(t *testing.T) {
	for _, raw := range []string{"not json", "{\"a\":1}", "[1, \"two\"]", "[1] [2]", ""} {
		store := memory.NewStore()
		store.Seed("alice", history.Key, raw)

		got, err := history.NewAdapter(store.ForProfile("alice")).Load(context.Background())
		if !errors.Is(err, domain.ErrHistoryDecode) {
			t.Fatalf("%q: expected decode error, got %v", raw, err)
		}
		if len(got) != 0 {
			t.Fatalf("%q: expected empty fallback, got %v", raw, got)
		}
	}
}

func TestDecodeAcceptsFractionsAndNull(t *testing.T) {
	got, err := history.Decode("[33.333333333333336, 100]")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0] != 100.0/3 {
		t.Fatalf("unexpected decode result %v", got)
	}

	got, err = history.Decode("null")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected null to decode as empty, got %v (%v)", got, err)
	}
}

func TestSaveWrapsWriteErrors(t *testing.T) {
	store := memory.NewStore()
	store.FailWrites(errors.New("disk full"))

	err := history.NewAdapter(store.ForProfile("alice")).Save(context.Background(), []float64{1})
	if !errors.Is(err, domain.ErrHistoryWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
}
