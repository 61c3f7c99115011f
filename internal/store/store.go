// Package store persists submitted answers and assessment snapshots.
// The engine itself is pure; persistence is a caller concern layered on
// top of its outputs.
package store

import (
	"context"
	"time"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/assessment"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// AssessmentSummary is the listing row for a stored assessment.
type AssessmentSummary struct {
	ID           string    `json:"id"`
	OrgName      string    `json:"org_name"`
	Jurisdiction string    `json:"jurisdiction"`
	Overall      int       `json:"overall"`
	GapCount     int       `json:"gap_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListFilter specifies criteria for listing assessments.
type ListFilter struct {
	OrgName string `json:"org_name,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Store defines the persistence interface for the assessment service.
type Store interface {
	// Answers. Saving an answer for an existing (org, question) pair
	// supersedes the earlier submission.
	SaveAnswers(ctx context.Context, orgName string, answers model.AnswerSet) error
	GetAnswers(ctx context.Context, orgName string) (model.AnswerSet, error)

	// Assessments are immutable snapshots.
	SaveAssessment(ctx context.Context, report *assessment.Report) error
	GetAssessment(ctx context.Context, id string) (*assessment.Report, error)
	ListAssessments(ctx context.Context, filter ListFilter) ([]AssessmentSummary, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
