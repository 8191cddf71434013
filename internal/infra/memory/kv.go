package memory

import (
	"context"
	"sync"

	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/history"
)

// Store is an in-memory key-value store partitioned by profile (useful for tests/demos).
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]string
	// failWrites and failReads make every Put or Get fail; used to exercise failure paths.
	failWrites error
	failReads  error
}

func NewStore() *Store {
	return &Store{data: make(map[string]map[string]string)}
}

// ForProfile returns a KV view scoped to profile.
func (s *Store) ForProfile(profile string) history.KV {
	return &KV{store: s, profile: profile}
}

// Seed writes raw text directly, bypassing any encoding.
func (s *Store) Seed(profile, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(profile, key, value)
}

// Raw returns the stored text for profile/key.
func (s *Store) Raw(profile, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[profile][key]
	return v, ok
}

// FailWrites makes subsequent writes return err; nil restores normal behavior.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = err
}

// FailReads makes subsequent reads return err; nil restores normal behavior.
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = err
}

func (s *Store) putLocked(profile, key, value string) {
	slots, ok := s.data[profile]
	if !ok {
		slots = make(map[string]string)
		s.data[profile] = slots
	}
	slots[key] = value
}

// KV is one profile's slice of a Store.
type KV struct {
	store   *Store
	profile string
}

func (k *KV) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	k.store.mu.RLock()
	failReads := k.store.failReads
	v, ok := k.store.data[k.profile][key]
	k.store.mu.RUnlock()
	if failReads != nil {
		return "", failReads
	}
	if !ok {
		return "", domain.ErrHistoryNotFound
	}
	return v, nil
}

func (k *KV) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k.store.mu.Lock()
	defer k.store.mu.Unlock()
	if k.store.failWrites != nil {
		return k.store.failWrites
	}
	k.store.putLocked(k.profile, key, value)
	return nil
}
