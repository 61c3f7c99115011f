package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func floatPtr(f float64) *float64 { return &f }

func answer(v any) *model.QuestionAnswer {
	return &model.QuestionAnswer{QuestionID: "q", Value: v}
}

func TestScoreQuestion_Unanswered(t *testing.T) {
	q := &model.Question{ID: "q", Type: model.AnswerBoolean}
	assert.Equal(t, 0, ScoreQuestion(q, nil, testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer(nil), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer("  "), testNow))
}

func TestScoreQuestion_Boolean(t *testing.T) {
	q := &model.Question{ID: "q", Type: model.AnswerBoolean}
	assert.Equal(t, 100, ScoreQuestion(q, answer(true), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer(false), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer("not a bool"), testNow), "malformed value scores 0")
}

func TestScoreQuestion_SingleChoice_Table(t *testing.T) {
	q := &model.Question{
		ID:      "q",
		Type:    model.AnswerSingleChoice,
		Options: []string{"gri", "local_only", "none"},
		Scoring: &model.ScoringParams{OptionScores: map[string]float64{
			"gri": 100, "local_only": 60, "none": 0,
		}},
	}

	assert.Equal(t, 100, ScoreQuestion(q, answer("gri"), testNow))
	assert.Equal(t, 60, ScoreQuestion(q, answer("local_only"), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer("none"), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer("unlisted"), testNow), "missing lookup scores 0")
}

func TestScoreQuestion_SingleChoice_Interpolated(t *testing.T) {
	q := &model.Question{
		ID:      "q",
		Type:    model.AnswerSingleChoice,
		Options: []string{"annually", "biennially", "on_request", "never"},
	}

	assert.Equal(t, 100, ScoreQuestion(q, answer("annually"), testNow))
	assert.Equal(t, 67, ScoreQuestion(q, answer("biennially"), testNow))
	assert.Equal(t, 33, ScoreQuestion(q, answer("on_request"), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer("never"), testNow))

	single := &model.Question{ID: "q", Type: model.AnswerSingleChoice, Options: []string{"only"}}
	assert.Equal(t, 100, ScoreQuestion(single, answer("only"), testNow), "single-option list always scores 100")
}

func TestScoreQuestion_MultipleChoice(t *testing.T) {
	withTable := &model.Question{
		ID:      "q",
		Type:    model.AnswerMultipleChoice,
		Options: []string{"audit", "remuneration", "risk"},
		Scoring: &model.ScoringParams{OptionScores: map[string]float64{
			"audit": 50, "remuneration": 20, "risk": 30,
		}},
	}
	assert.Equal(t, 100, ScoreQuestion(withTable, answer([]any{"audit", "remuneration", "risk"}), testNow))
	assert.Equal(t, 80, ScoreQuestion(withTable, answer([]any{"audit", "risk"}), testNow))
	assert.Equal(t, 50, ScoreQuestion(withTable, answer([]any{"audit", "audit"}), testNow), "duplicates count once")
	assert.Equal(t, 0, ScoreQuestion(withTable, answer([]any{"unlisted"}), testNow))

	byCount := &model.Question{
		ID:      "q",
		Type:    model.AnswerMultipleChoice,
		Options: []string{"a", "b", "c", "d"},
	}
	assert.Equal(t, 50, ScoreQuestion(byCount, answer([]any{"a", "b"}), testNow))
	assert.Equal(t, 25, ScoreQuestion(byCount, answer([]any{"a", "bogus"}), testNow), "invalid selections ignored")
	assert.Equal(t, 25, ScoreQuestion(byCount, answer("a"), testNow), "scalar treated as one-element list")
}

func TestScoreQuestion_Number(t *testing.T) {
	q := &model.Question{
		ID:      "q",
		Type:    model.AnswerNumber,
		Scoring: &model.ScoringParams{Min: floatPtr(0), Target: floatPtr(3)},
	}

	assert.Equal(t, 50, ScoreQuestion(q, answer(1.5), testNow), "midpoint scores 50")
	assert.Equal(t, 100, ScoreQuestion(q, answer(3.0), testNow))
	assert.Equal(t, 100, ScoreQuestion(q, answer(99.0), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer(-1.0), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer(0.0), testNow))

	noParams := &model.Question{ID: "q", Type: model.AnswerNumber}
	assert.Equal(t, 50, ScoreQuestion(noParams, answer(7.0), testNow), "presence credit without params")
	assert.Equal(t, 0, ScoreQuestion(noParams, answer("seven"), testNow))
}

func TestScoreQuestion_Percentage(t *testing.T) {
	q := &model.Question{ID: "q", Type: model.AnswerPercentage}

	assert.Equal(t, 20, ScoreQuestion(q, answer(20.0), testNow))
	assert.Equal(t, 100, ScoreQuestion(q, answer(250.0), testNow), "clamped above")
	assert.Equal(t, 0, ScoreQuestion(q, answer(-5.0), testNow), "clamped below")
	assert.Equal(t, 73, ScoreQuestion(q, answer(72.5), testNow), "round half up")
}

func TestScoreQuestion_Text(t *testing.T) {
	q := &model.Question{ID: "q", Type: model.AnswerText}
	assert.Equal(t, 100, ScoreQuestion(q, answer("documented procedure"), testNow))
	assert.Equal(t, 0, ScoreQuestion(q, answer([]any{"list"}), testNow))
}

func TestScoreQuestion_Date(t *testing.T) {
	q := &model.Question{ID: "q", Type: model.AnswerDate}

	recent := testNow.AddDate(0, -6, 0).Format("2006-01-02")
	assert.Equal(t, 100, ScoreQuestion(q, answer(recent), testNow))

	ancient := testNow.AddDate(-3, 0, 0).Format("2006-01-02")
	assert.Equal(t, 0, ScoreQuestion(q, answer(ancient), testNow))

	// Midway between maxAge (12) and 2x maxAge (24) decays to ~50.
	mid := testNow.AddDate(0, -18, 0).Format("2006-01-02")
	midScore := ScoreQuestion(q, answer(mid), testNow)
	assert.InDelta(t, 50, midScore, 3)

	future := testNow.AddDate(0, 1, 0).Format("2006-01-02")
	assert.Equal(t, 100, ScoreQuestion(q, answer(future), testNow))

	assert.Equal(t, 0, ScoreQuestion(q, answer("last spring"), testNow))
}

func TestScoreQuestion_DateCustomMaxAge(t *testing.T) {
	q := &model.Question{
		ID:      "q",
		Type:    model.AnswerDate,
		Scoring: &model.ScoringParams{MaxAgeMonths: 24},
	}

	within := testNow.AddDate(0, -20, 0).Format("2006-01-02")
	assert.Equal(t, 100, ScoreQuestion(q, answer(within), testNow))

	beyond := testNow.AddDate(-4, 0, 0).Format("2006-01-02")
	assert.Equal(t, 0, ScoreQuestion(q, answer(beyond), testNow))
}

func TestScoreQuestion_UnknownType(t *testing.T) {
	q := &model.Question{ID: "q", Type: "matrix"}
	assert.Equal(t, 0, ScoreQuestion(q, answer("anything"), testNow))
}

// Sub-scores stay within [0,100] for adversarial values.
func TestScoreQuestion_Bounds(t *testing.T) {
	questions := []*model.Question{
		{ID: "q", Type: model.AnswerPercentage},
		{ID: "q", Type: model.AnswerNumber, Scoring: &model.ScoringParams{Min: floatPtr(0), Target: floatPtr(1)}},
	}
	values := []any{-1e12, 1e12, "999999", 0.0001}

	for _, q := range questions {
		for _, v := range values {
			s := ScoreQuestion(q, answer(v), testNow)
			require.GreaterOrEqual(t, s, 0)
			require.LessOrEqual(t, s, 100)
		}
	}
}

func TestComputePillarScore(t *testing.T) {
	questions := []model.Question{
		{ID: "q1", Pillar: model.PillarGovernance, Type: model.AnswerBoolean, Weight: 10},
		{ID: "q2", Pillar: model.PillarGovernance, Type: model.AnswerBoolean, Weight: 5},
	}
	answers := model.AnswerSet{
		"q1": {QuestionID: "q1", Value: true},
		"q2": {QuestionID: "q2", Value: false},
	}

	ps := ComputePillarScore(model.PillarGovernance, questions, answers, testNow)
	assert.Equal(t, 67, ps.Score, "round((100*10 + 0*5)/15)")
	assert.Equal(t, 2, ps.Total)
	assert.Equal(t, 2, ps.Answered)
	assert.Equal(t, 30, ps.Weight)
}

func TestComputePillarScore_Empty(t *testing.T) {
	ps := ComputePillarScore(model.PillarTransparency, nil, model.AnswerSet{}, testNow)
	assert.Equal(t, 0, ps.Score)
	assert.Equal(t, 0, ps.Total)
	assert.Equal(t, 0, ps.Answered)
}

func TestComputePillarScore_HiddenExcluded(t *testing.T) {
	questions := []model.Question{
		{ID: "q1", Pillar: model.PillarGovernance, Type: model.AnswerBoolean, Weight: 5},
		{ID: "q2", Pillar: model.PillarGovernance, Type: model.AnswerBoolean, Weight: 5,
			Rules: []model.ConditionalRule{
				{DependsOn: "q1", Operator: model.OpEquals, Value: true, ShowWhen: true},
			}},
	}
	// q2 answered false but hidden: must not drag the pillar down.
	answers := model.AnswerSet{
		"q1": {QuestionID: "q1", Value: false},
		"q2": {QuestionID: "q2", Value: false},
	}

	ps := ComputePillarScore(model.PillarGovernance, questions, answers, testNow)
	assert.Equal(t, 1, ps.Total)
	assert.Equal(t, 0, ps.Score)
}

func TestComputeOverallScore(t *testing.T) {
	pillars := []model.PillarScore{
		{Pillar: model.PillarGovernance, Score: 80, Weight: 30},
		{Pillar: model.PillarEnvironmentalSocial, Score: 60, Weight: 25},
		{Pillar: model.PillarRiskControls, Score: 70, Weight: 25},
		{Pillar: model.PillarTransparency, Score: 50, Weight: 20},
	}
	assert.Equal(t, 67, ComputeOverallScore(pillars), "round((80*30+60*25+70*25+50*20)/100)")

	assert.Equal(t, 0, ComputeOverallScore(nil))
	assert.Equal(t, 0, ComputeOverallScore([]model.PillarScore{{Score: 50, Weight: 0}}))
}

func TestComputeScores(t *testing.T) {
	tpl := &model.Template{
		Sections: []model.Section{
			{
				Pillar: model.PillarGovernance,
				Questions: []model.Question{
					{ID: "q1", Pillar: model.PillarGovernance, Type: model.AnswerBoolean, Weight: 5},
					{ID: "q2", Pillar: model.PillarGovernance, Type: model.AnswerPercentage, Weight: 5,
						Rules: []model.ConditionalRule{
							{DependsOn: "q1", Operator: model.OpEquals, Value: true, ShowWhen: true},
						}},
				},
			},
		},
	}

	answers := model.AnswerSet{
		"q1": {QuestionID: "q1", Value: false},
		"q2": {QuestionID: "q2", Value: 90.0},
	}

	set := ComputeScores(tpl, answers, testNow)
	assert.Contains(t, set.PerQuestion, "q1")
	assert.NotContains(t, set.PerQuestion, "q2", "hidden question excluded from per-question scores")
	assert.Len(t, set.Pillars, 4, "all four pillars always reported")
	assert.Equal(t, 1.0, set.Completion)

	// Determinism: identical inputs, identical outputs.
	again := ComputeScores(tpl, answers, testNow)
	assert.Equal(t, set, again)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 68, roundHalfUp(67.5))
	assert.Equal(t, 67, roundHalfUp(67.49))
	assert.Equal(t, 67, roundHalfUp(66.5))
}
