// Package catalog loads and validates the static question catalog and the
// remediation recommendation library. Both are read once at process start
// and treated as immutable for the life of the process.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// Catalog is the versioned question set. Immutable after load.
type Catalog struct {
	Version   string           `json:"version" yaml:"version"`
	Questions []model.Question `json:"questions" yaml:"questions"`
}

// Question finds a catalog entry by id, or nil.
func (c *Catalog) Question(id string) *model.Question {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i]
		}
	}
	return nil
}

// LoadCatalog reads a catalog from a YAML or JSON file. YAML is the
// canonical fixture format; JSON parses as a YAML subset.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read catalog file")
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, eris.Wrapf(err, "catalog: unmarshal %s", filepath.Base(path))
	}
	if len(cat.Questions) == 0 {
		return nil, eris.Errorf("catalog: %s contains no questions", filepath.Base(path))
	}
	return &cat, nil
}

// LoadRecommendations reads the remediation library from a YAML or JSON
// file.
func LoadRecommendations(path string) ([]model.RecommendationTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read recommendations file")
	}

	var doc struct {
		Recommendations []model.RecommendationTemplate `json:"recommendations" yaml:"recommendations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "catalog: unmarshal %s", filepath.Base(path))
	}
	return doc.Recommendations, nil
}

// Finding is one validation issue discovered in a catalog.
type Finding struct {
	QuestionID string `json:"question_id,omitempty"`
	Problem    string `json:"problem"`
}

func (f Finding) String() string {
	if f.QuestionID == "" {
		return f.Problem
	}
	return f.QuestionID + ": " + f.Problem
}

// Validate checks catalog integrity: unique ids and codes, known pillars
// and answer types, positive weights, sane scoring params, and resolvable
// rule dependencies. Findings are advisory; a catalog with findings still
// builds templates (dangling rules degrade to never-satisfiable).
func (c *Catalog) Validate() []Finding {
	var findings []Finding

	ids := map[string]bool{}
	codes := map[string]bool{}
	for i := range c.Questions {
		q := &c.Questions[i]

		if q.ID == "" {
			findings = append(findings, Finding{Problem: "question with empty id"})
			continue
		}
		if ids[q.ID] {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "duplicate question id"})
		}
		ids[q.ID] = true

		if q.Code == "" {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "empty question code"})
		} else if codes[q.Code] {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "duplicate question code " + q.Code})
		}
		codes[q.Code] = true

		if !q.Pillar.Valid() {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "unknown pillar " + string(q.Pillar)})
		}
		if !q.Type.Valid() {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "unknown answer type " + string(q.Type)})
		}
		if q.Weight <= 0 {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "weight must be positive"})
		}
		if strings.TrimSpace(q.Prompt) == "" {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "empty prompt"})
		}
		if len(q.Jurisdictions) == 0 {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "empty jurisdiction set"})
		}
		if len(q.ListingStatuses) == 0 {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "empty listing status set"})
		}

		findings = append(findings, validateScoring(q)...)
		findings = append(findings, validateRules(c, q)...)
	}

	return findings
}

func validateScoring(q *model.Question) []Finding {
	var findings []Finding

	switch q.Type {
	case model.AnswerSingleChoice, model.AnswerMultipleChoice:
		if len(q.Options) == 0 {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "choice question with no options"})
		}
		if q.Scoring != nil {
			for opt := range q.Scoring.OptionScores {
				if !containsOption(q.Options, opt) {
					findings = append(findings, Finding{QuestionID: q.ID, Problem: "option score for unknown option " + opt})
				}
			}
		}
	case model.AnswerNumber:
		if q.Scoring != nil && q.Scoring.Min != nil && q.Scoring.Target != nil &&
			*q.Scoring.Target <= *q.Scoring.Min {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "scoring target must exceed min"})
		}
	case model.AnswerDate:
		if q.Scoring != nil && q.Scoring.MaxAgeMonths < 0 {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "negative max_age_months"})
		}
	}
	return findings
}

func validateRules(c *Catalog, q *model.Question) []Finding {
	var findings []Finding
	for _, r := range q.Rules {
		if r.DependsOn == "" {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "rule with empty dependency"})
			continue
		}
		if r.DependsOn == q.ID {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "rule depends on its own question"})
		}
		if c.Question(r.DependsOn) == nil {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "rule depends on unknown question " + r.DependsOn})
		}
		if !r.Operator.Valid() {
			findings = append(findings, Finding{QuestionID: q.ID, Problem: "unknown operator " + string(r.Operator)})
		}
	}
	return findings
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
