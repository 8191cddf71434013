package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/history"
	"yesno-quiz/internal/infra/memory"
)

func TestPrintHistory(t *testing.T) {
	store := memory.NewStore()
	store.Seed("alice", history.Key, "[50,100,75]")

	var out bytes.Buffer
	if err := printHistory(context.Background(), &out, history.NewAdapter(store.ForProfile("alice"))); err != nil {
		t.Fatalf("print: %v", err)
	}
	want := "scores: 50%, 100%, 75%\naverage: 75%\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestPrintHistoryEmptyAndMalformed(t *testing.T) {
	store := memory.NewStore()

	var out bytes.Buffer
	if err := printHistory(context.Background(), &out, history.NewAdapter(store.ForProfile("bob"))); err != nil {
		t.Fatalf("print: %v", err)
	}
	if out.String() != "no scores recorded\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	store.Seed("bob", history.Key, "garbage")
	err := printHistory(context.Background(), &out, history.NewAdapter(store.ForProfile("bob")))
	if !errors.Is(err, domain.ErrHistoryDecode) {
		t.Fatalf("expected decode error to be reported, got %v", err)
	}
}

func TestResolvePort(t *testing.T) {
	cfg, err := loadConfig("does/not/exist.yaml")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if got := resolvePort("", cfg); got != "8080" {
		t.Fatalf("expected default port, got %q", got)
	}
	cfg.Server.Port = "9000"
	if got := resolvePort("", cfg); got != "9000" {
		t.Fatalf("expected config port, got %q", got)
	}
	if got := resolvePort("7000", cfg); got != "7000" {
		t.Fatalf("expected flag port, got %q", got)
	}
}

func TestLoadQuestionsFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig("does/not/exist.yaml")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	b, err := openBackend(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	defer b.Close()

	qs, err := loadQuestions(context.Background(), cfg, b)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if qs.Len() != memory.DefaultQuestions().Len() {
		t.Fatalf("expected default questions, got %d", qs.Len())
	}
}
