// Package assessment wires the full compliance pipeline: template build,
// visibility-gated scoring, gap detection, and recommendation matching.
// The engine holds only the static catalog and remediation library, so
// concurrent runs for different organizations need no coordination.
package assessment

import (
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/catalog"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/gaps"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/recommend"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/scoring"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/template"
)

// Report is the complete assessment output for one organization.
type Report struct {
	ID              string                 `json:"id"`
	GeneratedAt     time.Time              `json:"generated_at"`
	Profile         model.OrgProfile       `json:"profile"`
	TemplateVersion string                 `json:"template_version"`
	Scores          model.ScoreSet         `json:"scores"`
	Gaps            []model.Gap            `json:"gaps"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

// Engine runs assessments against a fixed catalog and remediation
// library. Safe for concurrent use; it retains no cross-call state.
type Engine struct {
	catalog *catalog.Catalog
	library []model.RecommendationTemplate
}

// New creates an Engine. The catalog is required; the library may be
// empty, in which case no recommendations are matched.
func New(cat *catalog.Catalog, library []model.RecommendationTemplate) (*Engine, error) {
	if cat == nil || len(cat.Questions) == 0 {
		return nil, eris.New("assessment: catalog is required")
	}
	return &Engine{catalog: cat, library: library}, nil
}

// Catalog exposes the engine's catalog for validation commands.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// BuildTemplate builds the questionnaire template for a profile.
func (e *Engine) BuildTemplate(profile *model.OrgProfile) *model.Template {
	return template.Build(e.catalog, profile)
}

// Run executes the full pipeline for one organization at the current time.
func (e *Engine) Run(profile *model.OrgProfile, answers model.AnswerSet) (*Report, error) {
	return e.RunAt(profile, answers, time.Now().UTC())
}

// RunAt executes the full pipeline with an explicit reference time, which
// date scoring and the report stamp use. Given equal inputs and time the
// result is identical across invocations.
func (e *Engine) RunAt(profile *model.OrgProfile, answers model.AnswerSet, now time.Time) (*Report, error) {
	if profile == nil {
		return nil, eris.New("assessment: profile is required")
	}

	t := template.BuildAt(e.catalog, profile, now)
	scores := scoring.ComputeScores(t, answers, now)
	detected := gaps.Detect(t, answers, scores.PerQuestion)
	recs := recommend.Match(e.library, detected, profile.Jurisdiction)

	return &Report{
		ID:              uuid.NewString(),
		GeneratedAt:     now,
		Profile:         *profile,
		TemplateVersion: t.Version,
		Scores:          scores,
		Gaps:            detected,
		Recommendations: recs,
	}, nil
}
