package domain

import "errors"

var (
	// ErrIncompleteSubmission is returned when submit is attempted before every question is answered.
	ErrIncompleteSubmission = errors.New("please answer all questions")
	// ErrQuestionNotFound indicates an answer was given for an id outside the question set.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidAnswer indicates an answer value other than yes or no.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrEmptyQuestionSet indicates the configured question set has no usable questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")
	// ErrQuestionSetNotFound indicates the question set could not be loaded.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrHistoryNotFound is returned by stores when the history key is absent.
	ErrHistoryNotFound = errors.New("score history not found")
	// ErrHistoryDecode indicates stored history text is not a JSON array of numbers.
	ErrHistoryDecode = errors.New("score history is malformed")
	// ErrHistoryWrite indicates the durable store rejected a history write.
	ErrHistoryWrite = errors.New("score history write failed")
)

// ErrProfileRequired is returned when a caller does not identify its profile.
var ErrProfileRequired = errors.New("profile is required")
