// Package gaps classifies sub-standard questions into severity tiers and
// attaches auditable rationale and remediation text. Gaps are a pure
// snapshot of (template, answers) at assessment time.
package gaps

import (
	"sort"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/visibility"
)

// Thresholds is the single source of truth for the severity ladder.
// Fixed constants rather than per-catalog configuration, so severity is
// comparable across the whole catalog.
type Thresholds struct {
	// Target is the acceptance score; at or above it no gap exists.
	Target int

	// CriticalScore escalates flagged-critical questions scoring below it.
	CriticalScore int

	// CriticalWeight escalates zero-scored questions at or above this weight.
	CriticalWeight int

	// HighWeight and HighScore bound the high tier.
	HighWeight int
	HighScore  int

	// MediumWeight and MediumScore bound the medium tier.
	MediumWeight int
	MediumScore  int
}

// DefaultThresholds returns the fixed severity ladder.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Target:         model.TargetScore,
		CriticalScore:  50,
		CriticalWeight: 8,
		HighWeight:     6,
		HighScore:      30,
		MediumWeight:   4,
		MediumScore:    50,
	}
}

// DetermineSeverity classifies one scored question. Returns SeverityNone
// at or above the target score; otherwise the ladder applies in priority
// order.
func (t Thresholds) DetermineSeverity(q *model.Question, score int) model.Severity {
	if score >= t.Target {
		return model.SeverityNone
	}
	switch {
	case q.Critical && score < t.CriticalScore:
		return model.SeverityCritical
	case q.Weight >= t.CriticalWeight && score == 0:
		return model.SeverityCritical
	case q.Weight >= t.HighWeight && score < t.HighScore:
		return model.SeverityHigh
	case q.Weight >= t.MediumWeight && score < t.MediumScore:
		return model.SeverityMedium
	}
	return model.SeverityLow
}

// classifyReason picks the gap reason code in priority order: missing
// answer, then zero-scored response, then missing evidence, else low score.
func classifyReason(ans *model.QuestionAnswer, score int) model.GapReason {
	switch {
	case !ans.HasValue():
		return model.ReasonMissingAnswer
	case score == 0:
		return model.ReasonInadequateResponse
	case len(ans.Evidence) == 0:
		return model.ReasonMissingEvidence
	}
	return model.ReasonLowScore
}

// Detect runs gap detection over a template, answer set, and the
// per-question scores produced by the scoring engine. Only visible
// questions participate. The returned list is sorted worst-first:
// by severity rank, then ascending score within the same severity.
func Detect(t *model.Template, answers model.AnswerSet, perQuestion map[string]int) []model.Gap {
	thresholds := DefaultThresholds()

	var out []model.Gap
	questions := t.Questions()
	for i := range questions {
		q := &questions[i]
		if !visibility.IsVisible(q, answers) {
			continue
		}
		score, scored := perQuestion[q.ID]
		if !scored {
			continue
		}

		severity := thresholds.DetermineSeverity(q, score)
		if severity == model.SeverityNone {
			continue
		}

		ans := answers.Get(q.ID)
		out = append(out, model.Gap{
			QuestionID:     q.ID,
			QuestionCode:   q.Code,
			Pillar:         q.Pillar,
			Severity:       severity,
			Reason:         classifyReason(ans, score),
			CurrentScore:   score,
			TargetScore:    thresholds.Target,
			Rationale:      Rationale(q, ans, score),
			RequiredAction: RequiredAction(q, ans),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity.Rank() != out[j].Severity.Rank() {
			return out[i].Severity.Rank() < out[j].Severity.Rank()
		}
		return out[i].CurrentScore < out[j].CurrentScore
	})
	return out
}
