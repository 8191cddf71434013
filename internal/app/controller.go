package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"yesno-quiz/internal/domain"
)

const (
	incompleteMessage = "Please answer all questions!"
	scorePrefix       = "Score: "
	averagePrefix     = "Average Score: "
)

// HistoryStore abstracts where the score history of one profile is kept (memory, Redis, Postgres, SQLite).
type HistoryStore interface {
	Load(ctx context.Context) ([]float64, error)
	Save(ctx context.Context, scores []float64) error
}

// Controller holds one profile's quiz attempt and its score history.
type Controller struct {
	profile   string
	questions domain.QuestionSet
	store     HistoryStore

	mu      sync.Mutex
	answers map[int]domain.Answer
	score   *float64
	phase   domain.Phase
	history []float64
	// unchanged is set after a successful submit and cleared by Answer/Reset.
	unchanged bool
	// unsaved is set while the in-memory history is ahead of the store.
	unsaved     bool
	subscribers map[chan domain.View]struct{}
}

// NewController builds a controller and loads the stored history.
// A missing or malformed history starts the profile with an empty one. Any other
// load failure is returned: starting empty would let the next save overwrite
// the stored scores.
func NewController(ctx context.Context, profile string, questions domain.QuestionSet, store HistoryStore) (*Controller, error) {
	c := &Controller{
		profile:     profile,
		questions:   questions,
		store:       store,
		answers:     make(map[int]domain.Answer),
		phase:       domain.Idle,
		subscribers: make(map[chan domain.View]struct{}),
	}

	history, err := store.Load(ctx)
	switch {
	case err == nil:
		c.history = history
	case errors.Is(err, domain.ErrHistoryDecode):
		log.Printf("discarding malformed score history for profile %q: %v", profile, err)
	default:
		return nil, fmt.Errorf("load history for profile %q: %w", profile, err)
	}
	if c.history == nil {
		c.history = []float64{}
	}
	return c, nil
}

// Profile returns the profile this controller belongs to.
func (c *Controller) Profile() string {
	return c.profile
}

// Answer records (or overwrites) the answer for a question. The phase is left untouched.
func (c *Controller) Answer(questionID int, value domain.Answer) error {
	if value != domain.Yes && value != domain.No {
		return domain.ErrInvalidAnswer
	}
	if !c.questions.Has(questionID) {
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, questionID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[questionID] = value
	c.unchanged = false
	c.broadcastLocked()
	return nil
}

// Submit scores the attempt when every question is answered and appends the score to history.
// An incomplete attempt moves to the Error phase and returns ErrIncompleteSubmission.
// A failed durable write keeps the in-memory append and returns an error wrapping ErrHistoryWrite.
//
// The lock is held across Save on purpose: append and write form one step for
// every caller, so other operations on this profile wait for the backend.
func (c *Controller) Submit(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.questions.Len()
	if len(c.answers) < total {
		c.phase = domain.Error
		c.broadcastLocked()
		return 0, domain.ErrIncompleteSubmission
	}

	yes := 0
	for _, a := range c.answers {
		if a == domain.Yes {
			yes++
		}
	}
	score := ComputeScore(yes, total)

	if c.unchanged {
		log.Printf("profile %q resubmitted an unchanged attempt, recording duplicate score %s", c.profile, FormatPercent(score))
	}

	c.score = &score
	c.phase = domain.Complete
	c.unchanged = true

	updated := make([]float64, len(c.history), len(c.history)+1)
	copy(updated, c.history)
	updated = append(updated, score)
	c.history = updated
	defer c.broadcastLocked()

	if err := c.store.Save(ctx, updated); err != nil {
		log.Printf("history save failed for profile %q: %v", c.profile, err)
		c.unsaved = true
		if !errors.Is(err, domain.ErrHistoryWrite) {
			err = fmt.Errorf("%w: %v", domain.ErrHistoryWrite, err)
		}
		return score, err
	}
	c.unsaved = false
	return score, nil
}

// Unsaved reports whether the in-memory history holds scores the store rejected.
func (c *Controller) Unsaved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsaved
}

// Reset clears answers, score and flags. History is kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers = make(map[int]domain.Answer)
	c.score = nil
	c.phase = domain.Idle
	c.unchanged = false
	c.broadcastLocked()
}

// AverageScore is the mean of the history, 0 when it is empty.
func (c *Controller) AverageScore() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Average(c.history)
}

// History returns a copy of the score history.
func (c *Controller) History() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64{}, c.history...)
}

// Phase reports the current completion state.
func (c *Controller) Phase() domain.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Score returns the last computed score, if the attempt is complete.
func (c *Controller) Score() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.score == nil {
		return 0, false
	}
	return *c.score, true
}

// View snapshots everything a presentation layer needs to render the quiz.
func (c *Controller) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Subscribe returns a channel that receives a fresh View after every change.
// The caller must invoke the returned cancel function to avoid leaks.
func (c *Controller) Subscribe() (<-chan domain.View, func()) {
	ch := make(chan domain.View, 8)

	// The initial view is queued under the lock so no broadcast can land ahead of it.
	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	ch <- c.viewLocked()
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Controller) broadcastLocked() {
	if len(c.subscribers) == 0 {
		return
	}
	view := c.viewLocked()
	for ch := range c.subscribers {
		select {
		case ch <- view:
		default:
			// Slow subscriber: drop its oldest view so the latest one always lands.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}

func (c *Controller) viewLocked() domain.View {
	ids := c.questions.IDs()
	questions := make([]domain.QuestionView, 0, len(ids))
	for _, id := range ids {
		questions = append(questions, domain.QuestionView{
			ID:     id,
			Text:   c.questions[id],
			Answer: c.answers[id],
		})
	}

	view := domain.View{
		Profile:   c.profile,
		Questions: questions,
		Phase:     c.phase,
		History:   append([]float64{}, c.history...),
		Average:   Average(c.history),
	}
	if c.phase == domain.Error {
		view.ErrorMessage = incompleteMessage
	}
	if c.phase == domain.Complete && c.score != nil {
		score := *c.score
		view.Score = &score
		view.ScoreMessage = scorePrefix + FormatPercent(score)
	}
	if len(c.history) > 0 {
		view.AverageMessage = averagePrefix + FormatPercent(view.Average)
	}
	return view
}
