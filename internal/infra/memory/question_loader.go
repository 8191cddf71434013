package memory

import (
	"context"

	"yesno-quiz/internal/domain"
)

// QuestionLoader fetches a question set from a backing store (config file, Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// StaticQuestionLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticQuestionLoader struct {
	sets map[string]domain.QuestionSet
}

func NewStaticQuestionLoader(sets map[string]domain.QuestionSet) *StaticQuestionLoader {
	return &StaticQuestionLoader{sets: sets}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, setID string) (domain.QuestionSet, error) {
	if qs, ok := l.sets[setID]; ok {
		return qs.Clone(), nil
	}
	return nil, domain.ErrQuestionSetNotFound
}

// DefaultQuestions is the built-in set served when nothing else is configured.
func DefaultQuestions() domain.QuestionSet {
	return domain.QuestionSet{
		1: "Can you code in Ruby?",
		2: "Can you code in JavaScript?",
		3: "Can you code in Swift?",
		4: "Can you code in Java?",
		5: "Can you code in C#?",
	}
}
