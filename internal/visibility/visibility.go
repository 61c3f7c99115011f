// Package visibility implements the conditional visibility evaluator.
// Visibility must be recomputed before scoring or gap detection runs
// against an answer set: answers to hidden questions are excluded from
// both pathways.
package visibility

import (
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// IsVisible reports whether a question is currently visible given the
// submitted answers. A question with no rules is always visible; otherwise
// every rule must hold independently (pure AND, no grouping).
func IsVisible(q *model.Question, answers model.AnswerSet) bool {
	for i := range q.Rules {
		if !evalRule(&q.Rules[i], answers) {
			return false
		}
	}
	return true
}

// VisibleQuestions filters a template's questions to those visible under
// the answer set, preserving template order.
func VisibleQuestions(t *model.Template, answers model.AnswerSet) []model.Question {
	var out []model.Question
	for _, s := range t.Sections {
		for i := range s.Questions {
			if IsVisible(&s.Questions[i], answers) {
				out = append(out, s.Questions[i])
			}
		}
	}
	return out
}

// evalRule evaluates one rule against the dependency's current answer and
// applies the ShowWhen polarity.
func evalRule(r *model.ConditionalRule, answers model.AnswerSet) bool {
	result := evalCondition(r, answers)
	if !r.ShowWhen {
		result = !result
	}
	return result
}

// evalCondition computes the raw positive condition, before polarity.
func evalCondition(r *model.ConditionalRule, answers model.AnswerSet) bool {
	answered := answers.Answered(r.DependsOn)

	switch r.Operator {
	case model.OpIsAnswered:
		return answered
	case model.OpIsNotAnswered:
		return !answered
	}

	// Every other operator requires a present answer.
	if !answered {
		return false
	}
	value := answers[r.DependsOn].Value

	switch r.Operator {
	case model.OpEquals:
		return model.ValuesEqual(value, r.Value)
	case model.OpNotEquals:
		return !model.ValuesEqual(value, r.Value)
	case model.OpContains:
		return contains(value, r.Value)
	case model.OpNotContains:
		return !contains(value, r.Value)
	case model.OpGreaterThan:
		av, aok := model.AsFloat(value)
		rv, rok := model.AsFloat(r.Value)
		return aok && rok && av > rv
	case model.OpLessThan:
		av, aok := model.AsFloat(value)
		rv, rok := model.AsFloat(r.Value)
		return aok && rok && av < rv
	}

	// Unknown operator: never satisfiable.
	return false
}

// contains resolves the three supported shape combinations in priority
// order: answer-list contains scalar, scalar is member of rule-list, and
// list intersects list. Any other combination is false.
func contains(answer, operand any) bool {
	answerList, answerIsList := model.AsStringList(answer)
	operandList, operandIsList := model.AsStringList(operand)

	switch {
	case answerIsList && !operandIsList:
		s, ok := model.AsString(operand)
		if !ok {
			return false
		}
		return memberOf(answerList, s)
	case !answerIsList && operandIsList:
		s, ok := model.AsString(answer)
		if !ok {
			return false
		}
		return memberOf(operandList, s)
	case answerIsList && operandIsList:
		for _, e := range answerList {
			if memberOf(operandList, e) {
				return true
			}
		}
		return false
	}
	return false
}

func memberOf(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
