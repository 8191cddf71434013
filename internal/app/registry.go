package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"yesno-quiz/internal/domain"
)

// StoreFactory returns the history store scoped to one profile.
type StoreFactory func(profile string) HistoryStore

// Registry keeps one controller per connected profile. A controller lives while
// at least one caller holds it, and is dropped once the last holder releases it
// unless its history still has unsaved scores.
type Registry struct {
	questions domain.QuestionSet
	stores    StoreFactory
	sf        singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	controller *Controller
	refs       int
}

func NewRegistry(questions domain.QuestionSet, stores StoreFactory) *Registry {
	return &Registry{
		questions: questions,
		stores:    stores,
		entries:   make(map[string]*entry),
	}
}

// Questions returns the question set shared by every profile.
func (r *Registry) Questions() domain.QuestionSet {
	return r.questions
}

// Acquire returns the controller for profile and a release function the caller
// must invoke when done. The history is loaded once, even when several
// connections for the same profile arrive together, and a failed load is not
// cached so the next Acquire retries it.
func (r *Registry) Acquire(ctx context.Context, profile string) (*Controller, func(), error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return nil, nil, domain.ErrProfileRequired
	}
	// The load is shared by every waiting caller, so one request going away must not cancel it.
	loadCtx := context.WithoutCancel(ctx)

	for {
		r.mu.Lock()
		if e, ok := r.entries[profile]; ok {
			e.refs++
			r.mu.Unlock()
			return e.controller, r.releaser(profile, e), nil
		}
		r.mu.Unlock()

		_, err, _ := r.sf.Do(profile, func() (interface{}, error) {
			r.mu.Lock()
			_, ok := r.entries[profile]
			r.mu.Unlock()
			if ok {
				return nil, nil
			}

			c, err := NewController(loadCtx, profile, r.questions, r.stores(profile))
			if err != nil {
				return nil, err
			}

			r.mu.Lock()
			r.entries[profile] = &entry{controller: c}
			r.mu.Unlock()
			return nil, nil
		})
		if err != nil {
			return nil, nil, err
		}
	}
}

func (r *Registry) releaser(profile string, e *entry) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			e.refs--
			if e.refs > 0 || r.entries[profile] != e {
				return
			}
			if e.controller.Unsaved() {
				return
			}
			delete(r.entries, profile)
		})
	}
}

// History reads a profile's score history without registering a controller.
// A live controller is preferred since it may hold scores the store rejected.
func (r *Registry) History(ctx context.Context, profile string) ([]float64, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return nil, domain.ErrProfileRequired
	}

	r.mu.Lock()
	e, ok := r.entries[profile]
	r.mu.Unlock()
	if ok {
		return e.controller.History(), nil
	}

	scores, err := r.stores(profile).Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrHistoryDecode) {
		return nil, err
	}
	if scores == nil {
		scores = []float64{}
	}
	return scores, nil
}

// Profiles lists the profiles with a live controller.
func (r *Registry) Profiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for p := range r.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
