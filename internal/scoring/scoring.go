// Package scoring converts answers into per-question sub-scores and
// aggregates them into pillar and overall scores. All scoring is
// deterministic: identical inputs always yield identical outputs.
package scoring

import (
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/visibility"
)

// DefaultMaxAgeMonths is the full-credit age for date answers when the
// question configures none.
const DefaultMaxAgeMonths = 12

// avgDaysPerMonth converts calendar age to fractional months.
const avgDaysPerMonth = 30.44

// ScoreQuestion scores one question's answer on the 0-100 scale. An
// unanswered question scores 0. Malformed values and unknown answer types
// score 0 with a warning; scoring never fails.
func ScoreQuestion(q *model.Question, ans *model.QuestionAnswer, now time.Time) int {
	if !ans.HasValue() {
		return 0
	}

	switch q.Type {
	case model.AnswerBoolean:
		return scoreBoolean(ans.Value)
	case model.AnswerSingleChoice:
		return scoreSingleChoice(q, ans.Value)
	case model.AnswerMultipleChoice:
		return scoreMultipleChoice(q, ans.Value)
	case model.AnswerNumber:
		return scoreNumber(q, ans.Value)
	case model.AnswerPercentage:
		return scorePercentage(ans.Value)
	case model.AnswerText:
		return scoreText(ans.Value)
	case model.AnswerDate:
		return scoreDate(q, ans.Value, now)
	}

	zap.L().Warn("scoring: unknown answer type",
		zap.String("question_id", q.ID),
		zap.String("type", string(q.Type)),
	)
	return 0
}

func scoreBoolean(v any) int {
	b, ok := model.AsBool(v)
	if !ok {
		return 0
	}
	if b {
		return 100
	}
	return 0
}

// scoreSingleChoice looks up an explicit option score table when present,
// otherwise interpolates linearly across option order: first option 100,
// last option 0.
func scoreSingleChoice(q *model.Question, v any) int {
	selected, ok := model.AsString(v)
	if !ok {
		return 0
	}

	if q.Scoring != nil && len(q.Scoring.OptionScores) > 0 {
		s, found := q.Scoring.OptionScores[selected]
		if !found {
			return 0
		}
		return clamp(roundHalfUp(s))
	}

	n := len(q.Options)
	if n == 0 {
		return 0
	}
	if n == 1 {
		if q.Options[0] == selected {
			return 100
		}
		return 0
	}
	for i, opt := range q.Options {
		if opt == selected {
			return clamp(roundHalfUp(100 * float64(n-1-i) / float64(n-1)))
		}
	}
	return 0
}

// scoreMultipleChoice scores selected options against the full option set:
// by score-table mass when a table exists, by count otherwise.
func scoreMultipleChoice(q *model.Question, v any) int {
	selected, ok := model.AsStringList(v)
	if !ok {
		// A single scalar selection still counts as a one-element list.
		s, sok := model.AsString(v)
		if !sok {
			return 0
		}
		selected = []string{s}
	}
	if len(q.Options) == 0 {
		return 0
	}

	if q.Scoring != nil && len(q.Scoring.OptionScores) > 0 {
		var total, got float64
		for _, opt := range q.Options {
			total += q.Scoring.OptionScores[opt]
		}
		if total <= 0 {
			return 0
		}
		seen := map[string]bool{}
		for _, sel := range selected {
			if seen[sel] {
				continue
			}
			seen[sel] = true
			got += q.Scoring.OptionScores[sel]
		}
		return clamp(roundHalfUp(got / total * 100))
	}

	valid := 0
	seen := map[string]bool{}
	for _, sel := range selected {
		if seen[sel] {
			continue
		}
		seen[sel] = true
		for _, opt := range q.Options {
			if opt == sel {
				valid++
				break
			}
		}
	}
	return clamp(roundHalfUp(float64(valid) / float64(len(q.Options)) * 100))
}

// scoreNumber interpolates between min (0) and target (100). Without
// configured bounds any numeric answer earns flat presence credit of 50.
func scoreNumber(q *model.Question, v any) int {
	f, ok := model.AsFloat(v)
	if !ok {
		return 0
	}

	if q.Scoring == nil || q.Scoring.Min == nil || q.Scoring.Target == nil {
		return 50
	}
	min, target := *q.Scoring.Min, *q.Scoring.Target

	if f >= target {
		return 100
	}
	if f <= min || target <= min {
		return 0
	}
	return clamp(roundHalfUp((f - min) / (target - min) * 100))
}

func scorePercentage(v any) int {
	f, ok := model.AsFloat(v)
	if !ok {
		return 0
	}
	return clamp(roundHalfUp(f))
}

func scoreText(v any) int {
	s, ok := model.AsString(v)
	if !ok || strings.TrimSpace(s) == "" {
		return 0
	}
	return 100
}

// scoreDate applies recency decay: full credit within maxAgeMonths, zero
// at twice that age, linear in between. Future dates earn full credit.
func scoreDate(q *model.Question, v any, now time.Time) int {
	t, ok := model.AsTime(v)
	if !ok {
		return 0
	}

	maxAge := DefaultMaxAgeMonths
	if q.Scoring != nil && q.Scoring.MaxAgeMonths > 0 {
		maxAge = q.Scoring.MaxAgeMonths
	}

	ageMonths := now.Sub(t).Hours() / 24 / avgDaysPerMonth
	if ageMonths <= float64(maxAge) {
		return 100
	}
	if ageMonths >= float64(2*maxAge) {
		return 0
	}
	return clamp(roundHalfUp((float64(2*maxAge) - ageMonths) / float64(maxAge) * 100))
}

// ComputePillarScore aggregates the visible questions of one pillar into a
// weighted 0-100 score with answered/total counts. No visible questions
// yields score 0 and counts 0/0.
func ComputePillarScore(pillar model.Pillar, questions []model.Question, answers model.AnswerSet, now time.Time) model.PillarScore {
	ps := model.PillarScore{
		Pillar: pillar,
		Weight: model.PillarWeights[pillar],
	}

	var weightedSum, weightTotal float64
	for i := range questions {
		q := &questions[i]
		if q.Pillar != pillar || !visibility.IsVisible(q, answers) {
			continue
		}
		ps.Total++
		ans := answers.Get(q.ID)
		if ans.HasValue() {
			ps.Answered++
		}
		sub := ScoreQuestion(q, ans, now)
		weightedSum += float64(sub) * float64(q.Weight)
		weightTotal += float64(q.Weight)
	}

	if weightTotal > 0 {
		ps.Score = clamp(roundHalfUp(weightedSum / weightTotal))
	}
	return ps
}

// ComputeOverallScore combines pillar scores using the fixed pillar
// weights. A zero total weight (impossible with the fixed table, guarded
// anyway) yields 0.
func ComputeOverallScore(pillars []model.PillarScore) int {
	var weightedSum, weightTotal float64
	for _, p := range pillars {
		weightedSum += float64(p.Score) * float64(p.Weight)
		weightTotal += float64(p.Weight)
	}
	if weightTotal <= 0 {
		return 0
	}
	return clamp(roundHalfUp(weightedSum / weightTotal))
}

// ComputeScores runs the full scoring pass for a template and answer set:
// per-question sub-scores for visible questions, all four pillar scores in
// canonical order, the overall score, and the completion fraction.
func ComputeScores(t *model.Template, answers model.AnswerSet, now time.Time) model.ScoreSet {
	set := model.ScoreSet{PerQuestion: map[string]int{}}

	questions := t.Questions()
	answered, visible := 0, 0
	for i := range questions {
		q := &questions[i]
		if !visibility.IsVisible(q, answers) {
			continue
		}
		visible++
		if answers.Answered(q.ID) {
			answered++
		}
		set.PerQuestion[q.ID] = ScoreQuestion(q, answers.Get(q.ID), now)
	}

	for _, pillar := range model.PillarOrder {
		set.Pillars = append(set.Pillars, ComputePillarScore(pillar, questions, answers, now))
	}
	set.Overall = ComputeOverallScore(set.Pillars)

	if visible > 0 {
		set.Completion = float64(answered) / float64(visible)
	}
	return set
}

// roundHalfUp rounds to the nearest integer with ties away from zero.
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}

// clamp bounds a score to [0, 100].
func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
