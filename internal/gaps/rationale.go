package gaps

import (
	"fmt"
	"strings"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// Rationale produces the human-readable explanation attached to a gap.
// It is a pure function of (question, answer, score): regenerating from
// the same triple yields byte-identical text.
func Rationale(q *model.Question, ans *model.QuestionAnswer, score int) string {
	if !ans.HasValue() {
		return fmt.Sprintf("Question not answered: %s", q.Prompt)
	}

	switch q.Type {
	case model.AnswerBoolean:
		if b, ok := model.AsBool(ans.Value); ok && !b {
			return fmt.Sprintf("Organization reported non-compliance for %q.", q.Prompt)
		}
		return fmt.Sprintf("Response to %q does not meet the compliance target (score %d of %d).", q.Prompt, score, model.TargetScore)

	case model.AnswerPercentage:
		if f, ok := model.AsFloat(ans.Value); ok {
			if f < 30 {
				return fmt.Sprintf("Reported coverage of %s%% for %q is well below the expected level.", trimFloat(f), q.Prompt)
			}
			return fmt.Sprintf("Reported coverage of %s%% for %q falls short of the compliance target.", trimFloat(f), q.Prompt)
		}

	case model.AnswerNumber:
		if score == 0 {
			return fmt.Sprintf("Reported value for %q is below the minimum acceptable level.", q.Prompt)
		}
		return fmt.Sprintf("Reported value for %q reaches only %d%% of the target level.", q.Prompt, score)

	case model.AnswerDate:
		return fmt.Sprintf("The most recent date reported for %q is too old to demonstrate current compliance.", q.Prompt)

	case model.AnswerSingleChoice, model.AnswerMultipleChoice:
		return fmt.Sprintf("The selected response to %q indicates partial compliance (score %d of %d).", q.Prompt, score, model.TargetScore)
	}

	// Text and anything else: generic low-score framing.
	return fmt.Sprintf("Response to %q scores %d, below the target of %d.", q.Prompt, score, model.TargetScore)
}

// RequiredAction produces the imperative remediation instruction for a
// gap, referencing the question's short code.
func RequiredAction(q *model.Question, ans *model.QuestionAnswer) string {
	if !ans.HasValue() {
		switch q.Type {
		case model.AnswerBoolean:
			return fmt.Sprintf("Confirm the compliance status requested by %s and submit a response.", q.Code)
		case model.AnswerDate:
			return fmt.Sprintf("Provide the most recent completion date for %s.", q.Code)
		case model.AnswerPercentage, model.AnswerNumber:
			return fmt.Sprintf("Measure and report the value requested by %s.", q.Code)
		}
		return fmt.Sprintf("Provide a response to %s.", q.Code)
	}

	switch q.Type {
	case model.AnswerBoolean:
		return fmt.Sprintf("Implement the control addressed by %s and update the response once in place.", q.Code)
	case model.AnswerPercentage:
		return fmt.Sprintf("Raise the coverage reported under %s toward full compliance and attach supporting evidence.", q.Code)
	case model.AnswerNumber:
		return fmt.Sprintf("Improve the metric reported under %s until it meets the target level.", q.Code)
	case model.AnswerDate:
		return fmt.Sprintf("Repeat the activity tracked by %s and record the new date.", q.Code)
	case model.AnswerSingleChoice, model.AnswerMultipleChoice:
		return fmt.Sprintf("Strengthen the practices covered by %s to qualify for a higher response option.", q.Code)
	}
	return fmt.Sprintf("Review and strengthen the response to %s.", q.Code)
}

// trimFloat formats a float without trailing zeros, so 20.0 renders "20".
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
