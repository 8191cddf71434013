package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Answer is the tri-state value recorded for a question.
type Answer int

const (
	Unanswered Answer = iota
	Yes
	No
)

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unanswered"
	}
}

// ParseAnswer maps wire values to an Answer. Only "yes" and "no" are accepted.
func ParseAnswer(raw string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return Yes, nil
	case "no":
		return No, nil
	}
	return Unanswered, fmt.Errorf("%w: %q", ErrInvalidAnswer, raw)
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a == Unanswered {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

// Phase mirrors the completion flags of a quiz attempt.
type Phase int

const (
	Idle Phase = iota
	Error
	Complete
)

func (p Phase) String() string {
	switch p {
	case Error:
		return "error"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// QuestionSet is the fixed, ordered id -> text mapping a quiz is built from.
type QuestionSet map[int]string

// IDs returns question ids in ascending order.
func (qs QuestionSet) IDs() []int {
	ids := make([]int, 0, len(qs))
	for id := range qs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (qs QuestionSet) Len() int { return len(qs) }

func (qs QuestionSet) Has(id int) bool {
	_, ok := qs[id]
	return ok
}

// Validate rejects empty sets, non-positive ids and blank question text.
func (qs QuestionSet) Validate() error {
	if len(qs) == 0 {
		return ErrEmptyQuestionSet
	}
	for _, id := range qs.IDs() {
		if id <= 0 {
			return fmt.Errorf("question %d: id must be positive", id)
		}
		if strings.TrimSpace(qs[id]) == "" {
			return fmt.Errorf("question %d: text is empty", id)
		}
	}
	return nil
}

// Clone returns a copy so callers cannot mutate a loaded set.
func (qs QuestionSet) Clone() QuestionSet {
	out := make(QuestionSet, len(qs))
	for id, text := range qs {
		out[id] = text
	}
	return out
}

// QuestionView is one rendered question with its current answer.
type QuestionView struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Answer Answer `json:"answer"`
}

// View is the snapshot a presentation layer renders.
type View struct {
	Profile        string         `json:"profile"`
	Questions      []QuestionView `json:"questions"`
	Phase          Phase          `json:"phase"`
	Score          *float64       `json:"score,omitempty"`
	History        []float64      `json:"history"`
	Average        float64        `json:"average"`
	ErrorMessage   string         `json:"errorMessage,omitempty"`
	ScoreMessage   string         `json:"scoreMessage,omitempty"`
	AverageMessage string         `json:"averageMessage,omitempty"`
}
