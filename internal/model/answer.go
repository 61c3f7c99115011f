package model

import "time"

// QuestionAnswer is one submitted value for one question. A later
// submission for the same question id supersedes an earlier one.
type QuestionAnswer struct {
	QuestionID string `json:"question_id" yaml:"question_id"`

	// Value is typed per the question's answer type. Malformed values are
	// treated as absent by scoring, never as errors.
	Value any `json:"value" yaml:"value"`

	// Evidence holds references (URLs, document ids) supporting the answer.
	Evidence []string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Note     string   `json:"note,omitempty" yaml:"note,omitempty"`

	SubmittedBy string    `json:"submitted_by,omitempty" yaml:"submitted_by,omitempty"`
	SubmittedAt time.Time `json:"submitted_at,omitempty" yaml:"submitted_at,omitempty"`
}

// HasValue reports whether the answer carries a non-nil, non-empty value.
func (a *QuestionAnswer) HasValue() bool {
	if a == nil {
		return false
	}
	return !IsEmptyValue(a.Value)
}

// AnswerSet maps question id to its current answer.
type AnswerSet map[string]QuestionAnswer

// Get returns the answer for a question id, or nil if none was submitted.
func (s AnswerSet) Get(questionID string) *QuestionAnswer {
	a, ok := s[questionID]
	if !ok {
		return nil
	}
	return &a
}

// Answered reports whether a non-empty value exists for the question id.
func (s AnswerSet) Answered(questionID string) bool {
	a, ok := s[questionID]
	return ok && a.HasValue()
}
