// Package model defines the data model for the compliance assessment engine:
// catalog questions, questionnaire templates, submitted answers, and the
// derived scores, gaps, and recommendations.
package model

// Pillar is one of the four fixed compliance dimensions.
type Pillar string

// The four assessment pillars.
const (
	PillarGovernance          Pillar = "governance"
	PillarEnvironmentalSocial Pillar = "environmental_social"
	PillarRiskControls        Pillar = "risk_controls"
	PillarTransparency        Pillar = "transparency"
)

// PillarOrder is the canonical section order for templates and reports.
var PillarOrder = []Pillar{
	PillarGovernance,
	PillarEnvironmentalSocial,
	PillarRiskControls,
	PillarTransparency,
}

// PillarWeights maps each pillar to its fixed weight in the overall score.
// Weights sum to 100.
var PillarWeights = map[Pillar]int{
	PillarGovernance:          30,
	PillarEnvironmentalSocial: 25,
	PillarRiskControls:        25,
	PillarTransparency:        20,
}

// Valid reports whether p is one of the four known pillars.
func (p Pillar) Valid() bool {
	_, ok := PillarWeights[p]
	return ok
}

// AnswerType is the closed set of supported answer kinds. Scoring switches
// exhaustively over this type; an unrecognized value scores zero.
type AnswerType string

// Supported answer types.
const (
	AnswerBoolean        AnswerType = "boolean"
	AnswerSingleChoice   AnswerType = "single_choice"
	AnswerMultipleChoice AnswerType = "multiple_choice"
	AnswerText           AnswerType = "text"
	AnswerNumber         AnswerType = "number"
	AnswerDate           AnswerType = "date"
	AnswerPercentage     AnswerType = "percentage"
)

// knownAnswerTypes is the membership set for AnswerType.Valid.
var knownAnswerTypes = map[AnswerType]struct{}{
	AnswerBoolean:        {},
	AnswerSingleChoice:   {},
	AnswerMultipleChoice: {},
	AnswerText:           {},
	AnswerNumber:         {},
	AnswerDate:           {},
	AnswerPercentage:     {},
}

// Valid reports whether t is a recognized answer type.
func (t AnswerType) Valid() bool {
	_, ok := knownAnswerTypes[t]
	return ok
}

// ScoringParams holds optional type-specific scoring configuration.
type ScoringParams struct {
	// OptionScores maps a choice option to its score contribution (0-100)
	// for single_choice and multiple_choice questions.
	OptionScores map[string]float64 `json:"option_scores,omitempty" yaml:"option_scores,omitempty"`

	// Min and Target bound linear interpolation for number questions.
	// Values at or below Min score 0; values at or above Target score 100.
	Min    *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Target *float64 `json:"target,omitempty" yaml:"target,omitempty"`
	Max    *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// MaxAgeMonths caps the full-credit age for date questions.
	// Zero means the default of 12 months.
	MaxAgeMonths int `json:"max_age_months,omitempty" yaml:"max_age_months,omitempty"`
}

// Question is one immutable catalog entry. Questions are owned by the
// catalog and never mutated at runtime.
type Question struct {
	ID           string            `json:"id" yaml:"id"`
	Pillar       Pillar            `json:"pillar" yaml:"pillar"`
	Code         string            `json:"code" yaml:"code"`
	Prompt       string            `json:"prompt" yaml:"prompt"`
	Translations map[string]string `json:"translations,omitempty" yaml:"translations,omitempty"`
	Type         AnswerType        `json:"type" yaml:"type"`

	// Weight is the importance weight; higher means more influential.
	Weight int `json:"weight" yaml:"weight"`

	// Critical marks questions whose failure escalates gap severity.
	Critical bool `json:"critical,omitempty" yaml:"critical,omitempty"`

	// Applicability sets. A question applies to a profile only when both
	// sets contain the profile's values.
	Jurisdictions   []string `json:"jurisdictions" yaml:"jurisdictions"`
	ListingStatuses []string `json:"listing_statuses" yaml:"listing_statuses"`

	// Options lists the selectable choices in catalog order for
	// single_choice and multiple_choice questions.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	Rules   []ConditionalRule `json:"rules,omitempty" yaml:"rules,omitempty"`
	Scoring *ScoringParams    `json:"scoring,omitempty" yaml:"scoring,omitempty"`
}

// AppliesTo reports whether the question's applicability sets contain the
// given jurisdiction and listing status.
func (q *Question) AppliesTo(jurisdiction, listingStatus string) bool {
	return containsString(q.Jurisdictions, jurisdiction) &&
		containsString(q.ListingStatuses, listingStatus)
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
