package model

// TargetScore is the acceptance threshold: a visible question scoring
// below it produces a gap.
const TargetScore = 70

// PillarScore is the derived score for one pillar. Recomputed on demand,
// never stored authoritatively.
type PillarScore struct {
	Pillar   Pillar `json:"pillar"`
	Score    int    `json:"score"`
	Weight   int    `json:"weight"`
	Answered int    `json:"answered"`
	Total    int    `json:"total"`
}

// ScoreSet bundles the full scoring output for one answer set.
type ScoreSet struct {
	PerQuestion map[string]int `json:"per_question"`
	Pillars     []PillarScore  `json:"pillars"`
	Overall     int            `json:"overall"`

	// Completion is the fraction of visible questions answered, 0-1.
	Completion float64 `json:"completion"`
}

// Severity is a gap's classification tier.
type Severity string

// Gap severities, worst first.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityNone     Severity = "none"
)

// severityRank maps severities to numeric ranks for sorting.
// Lower rank means more severe.
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityNone:     4,
}

// Rank returns the sort rank for the severity; unknown severities sort last.
func (s Severity) Rank() int {
	r, ok := severityRank[s]
	if !ok {
		return len(severityRank)
	}
	return r
}

// GapReason classifies why a question gapped.
type GapReason string

// Gap reason codes, in classification priority order.
const (
	ReasonMissingAnswer      GapReason = "missing_answer"
	ReasonInadequateResponse GapReason = "inadequate_response"
	ReasonMissingEvidence    GapReason = "missing_evidence"
	ReasonLowScore           GapReason = "low_score"
)

// Gap is a pure snapshot of one sub-standard question at assessment time.
type Gap struct {
	QuestionID   string    `json:"question_id"`
	QuestionCode string    `json:"question_code"`
	Pillar       Pillar    `json:"pillar"`
	Severity     Severity  `json:"severity"`
	Reason       GapReason `json:"reason"`
	CurrentScore int       `json:"current_score"`
	TargetScore  int       `json:"target_score"`

	// Rationale is the machine-generated explanation; regenerable
	// byte-for-byte from the same (question, answer, score) triple.
	Rationale string `json:"rationale"`

	// RequiredAction is the imperative remediation instruction.
	RequiredAction string `json:"required_action"`
}

// RecommendationTemplate is one entry of the curated remediation library.
// Empty criteria fields are wildcards.
type RecommendationTemplate struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`

	// Priority ranks matched recommendations; 1 is highest.
	Priority int `json:"priority" yaml:"priority"`

	// Match criteria.
	QuestionCodes []string   `json:"question_codes,omitempty" yaml:"question_codes,omitempty"`
	Pillar        Pillar     `json:"pillar,omitempty" yaml:"pillar,omitempty"`
	Severities    []Severity `json:"severities,omitempty" yaml:"severities,omitempty"`
	Jurisdictions []string   `json:"jurisdictions,omitempty" yaml:"jurisdictions,omitempty"`
}

// Recommendation is a matched remediation template enriched with the gaps
// it addresses.
type Recommendation struct {
	RecommendationTemplate

	// Addresses lists the question ids of the gaps this recommendation
	// covers, in gap order.
	Addresses []string `json:"addresses"`
}
