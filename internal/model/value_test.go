package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmptyValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		empty bool
	}{
		{"nil", nil, true},
		{"blank string", "   ", true},
		{"empty list", []any{}, true},
		{"empty string list", []string{}, true},
		{"zero number", float64(0), false},
		{"false", false, false},
		{"text", "yes", false},
		{"list", []any{"a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, IsEmptyValue(tt.value))
		})
	}
}

func TestAsBool(t *testing.T) {
	b, ok := AsBool(true)
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = AsBool("False")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = AsBool("maybe")
	assert.False(t, ok)

	_, ok = AsBool(1.0)
	assert.False(t, ok)
}

func TestAsFloat(t *testing.T) {
	f, ok := AsFloat(42.5)
	assert.True(t, ok)
	assert.Equal(t, 42.5, f)

	f, ok = AsFloat("17")
	assert.True(t, ok)
	assert.Equal(t, 17.0, f)

	f, ok = AsFloat(3)
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = AsFloat("not a number")
	assert.False(t, ok)

	_, ok = AsFloat([]any{1.0})
	assert.False(t, ok)
}

func TestAsStringList(t *testing.T) {
	list, ok := AsStringList([]any{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list)

	list, ok = AsStringList([]any{1.0, true})
	assert.True(t, ok)
	assert.Equal(t, []string{"1", "true"}, list)

	_, ok = AsStringList("scalar")
	assert.False(t, ok)
}

func TestAsTime(t *testing.T) {
	ts, ok := AsTime("2025-06-15")
	assert.True(t, ok)
	assert.Equal(t, 2025, ts.Year())
	assert.Equal(t, time.June, ts.Month())

	ts, ok = AsTime("2025-06-15T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 10, ts.Hour())

	_, ok = AsTime("June 2025")
	assert.False(t, ok)
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  any
		equal bool
	}{
		{"numbers", 5.0, "5", true},
		{"numbers differ", 5.0, 6.0, false},
		{"number vs text", 5.0, "abc", false},
		{"bools", true, "true", true},
		{"bools differ", true, false, false},
		{"strings", "audit", "audit", true},
		{"strings differ", "audit", "risk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, ValuesEqual(tt.a, tt.b))
		})
	}
}

func TestAnswerSet(t *testing.T) {
	set := AnswerSet{
		"q1": {QuestionID: "q1", Value: true},
		"q2": {QuestionID: "q2", Value: "  "},
	}

	assert.True(t, set.Answered("q1"))
	assert.False(t, set.Answered("q2"), "blank value is not an answer")
	assert.False(t, set.Answered("q3"))
	assert.Nil(t, set.Get("q3"))
	assert.NotNil(t, set.Get("q1"))
}
