package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"yesno-quiz/internal/domain"
)

// Key is the fixed slot the score history lives under.
const Key = "quizScores"

// KV is a profile-scoped string store. Get returns domain.ErrHistoryNotFound for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Adapter persists a score history as a JSON array of numbers under Key.
type Adapter struct {
	kv KV
}

func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// Load returns the stored history. A missing key is an empty history.
// Unparsable content yields an empty history and an error wrapping domain.ErrHistoryDecode.
func (a *Adapter) Load(ctx context.Context) ([]float64, error) {
	raw, err := a.kv.Get(ctx, Key)
	if errors.Is(err, domain.ErrHistoryNotFound) {
		return []float64{}, nil
	}
	if err != nil {
		return []float64{}, fmt.Errorf("read %s: %w", Key, err)
	}
	scores, err := Decode(raw)
	if err != nil {
		return []float64{}, err
	}
	return scores, nil
}

// Save overwrites the stored history with scores.
func (a *Adapter) Save(ctx context.Context, scores []float64) error {
	raw, err := Encode(scores)
	if err != nil {
		return err
	}
	if err := a.kv.Put(ctx, Key, raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrHistoryWrite, err)
	}
	return nil
}

// Encode renders scores as a JSON array; nil encodes as [].
func Encode(scores []float64) (string, error) {
	if scores == nil {
		scores = []float64{}
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array of numbers. JSON null decodes as an empty history.
func Decode(raw string) ([]float64, error) {
	var scores []float64
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&scores); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryDecode, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", domain.ErrHistoryDecode)
	}
	if scores == nil {
		scores = []float64{}
	}
	return scores, nil
}
