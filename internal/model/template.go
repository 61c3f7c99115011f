package model

import "time"

// Section groups one pillar's applicable questions in catalog order.
type Section struct {
	Pillar    Pillar     `json:"pillar" yaml:"pillar"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Template is the questionnaire produced for one (jurisdiction,
// listing status) combination. Effectively immutable: rebuilding from an
// unchanged catalog yields identical structure modulo CreatedAt.
type Template struct {
	Version        string    `json:"version" yaml:"version"`
	CatalogVersion string    `json:"catalog_version" yaml:"catalog_version"`
	Jurisdiction   string    `json:"jurisdiction" yaml:"jurisdiction"`
	ListingStatus  string    `json:"listing_status" yaml:"listing_status"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	Sections       []Section `json:"sections" yaml:"sections"`
}

// Questions flattens all sections into a single slice in template order.
func (t *Template) Questions() []Question {
	var out []Question
	for _, s := range t.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// Question finds a question by id, or nil if the template does not
// contain it.
func (t *Template) Question(id string) *Question {
	for si := range t.Sections {
		for qi := range t.Sections[si].Questions {
			if t.Sections[si].Questions[qi].ID == id {
				return &t.Sections[si].Questions[qi]
			}
		}
	}
	return nil
}

// QuestionCount returns the total number of questions across sections.
func (t *Template) QuestionCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Questions)
	}
	return n
}

// OrgProfile describes the organization under assessment. Only
// Jurisdiction and ListingStatus participate in template building and
// recommendation matching; the rest is descriptive.
type OrgProfile struct {
	Name          string `json:"name" yaml:"name"`
	Jurisdiction  string `json:"jurisdiction" yaml:"jurisdiction"`
	ListingStatus string `json:"listing_status" yaml:"listing_status"`
	Sector        string `json:"sector,omitempty" yaml:"sector,omitempty"`
	EmployeeCount int    `json:"employee_count,omitempty" yaml:"employee_count,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
}
