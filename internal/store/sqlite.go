package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/assessment"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS answers (
	org_name     TEXT NOT NULL,
	question_id  TEXT NOT NULL,
	value        TEXT,
	evidence     TEXT,
	note         TEXT,
	submitted_by TEXT,
	submitted_at DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (org_name, question_id)
);

CREATE TABLE IF NOT EXISTS assessments (
	id           TEXT PRIMARY KEY,
	org_name     TEXT NOT NULL,
	jurisdiction TEXT NOT NULL,
	overall      INTEGER NOT NULL,
	gap_count    INTEGER NOT NULL,
	report       TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_answers_org ON answers(org_name);
CREATE INDEX IF NOT EXISTS idx_assessments_org ON assessments(org_name);
CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAnswers upserts each answer, superseding earlier submissions for
// the same (org, question) pair.
func (s *SQLiteStore) SaveAnswers(ctx context.Context, orgName string, answers model.AnswerSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin save answers")
	}
	defer tx.Rollback() //nolint:errcheck

	for id, a := range answers {
		value, err := json.Marshal(a.Value)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal answer value %s", id)
		}
		evidence, err := json.Marshal(a.Evidence)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal evidence %s", id)
		}
		submittedAt := a.SubmittedAt
		if submittedAt.IsZero() {
			submittedAt = time.Now().UTC()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO answers (org_name, question_id, value, evidence, note, submitted_by, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (org_name, question_id) DO UPDATE SET
				value = excluded.value,
				evidence = excluded.evidence,
				note = excluded.note,
				submitted_by = excluded.submitted_by,
				submitted_at = excluded.submitted_at`,
			orgName, id, string(value), string(evidence), a.Note, a.SubmittedBy, submittedAt,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert answer %s", id)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit save answers")
}

// GetAnswers returns the current answer set for an organization.
func (s *SQLiteStore) GetAnswers(ctx context.Context, orgName string) (model.AnswerSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, value, evidence, note, submitted_by, submitted_at
		FROM answers WHERE org_name = ?`, orgName)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get answers")
	}
	defer rows.Close() //nolint:errcheck

	answers := model.AnswerSet{}
	for rows.Next() {
		var (
			a           model.QuestionAnswer
			value       string
			evidence    string
			submittedAt time.Time
		)
		if err := rows.Scan(&a.QuestionID, &value, &evidence, &a.Note, &a.SubmittedBy, &submittedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan answer")
		}
		if value != "" {
			if err := json.Unmarshal([]byte(value), &a.Value); err != nil {
				return nil, eris.Wrapf(err, "sqlite: unmarshal answer value %s", a.QuestionID)
			}
		}
		if evidence != "" {
			if err := json.Unmarshal([]byte(evidence), &a.Evidence); err != nil {
				return nil, eris.Wrapf(err, "sqlite: unmarshal evidence %s", a.QuestionID)
			}
		}
		a.SubmittedAt = submittedAt
		answers[a.QuestionID] = a
	}
	return answers, eris.Wrap(rows.Err(), "sqlite: iterate answers")
}

// SaveAssessment stores one immutable assessment snapshot.
func (s *SQLiteStore) SaveAssessment(ctx context.Context, report *assessment.Report) error {
	doc, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, org_name, jurisdiction, overall, gap_count, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Profile.Name, report.Profile.Jurisdiction,
		report.Scores.Overall, len(report.Gaps), string(doc), report.GeneratedAt,
	)
	return eris.Wrap(err, "sqlite: insert assessment")
}

// GetAssessment loads one stored assessment by id. Returns nil when absent.
func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*assessment.Report, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM assessments WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get assessment")
	}

	var report assessment.Report
	if err := json.Unmarshal([]byte(doc), &report); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal report")
	}
	return &report, nil
}

// ListAssessments returns assessment summaries, newest first.
func (s *SQLiteStore) ListAssessments(ctx context.Context, filter ListFilter) ([]AssessmentSummary, error) {
	query := `SELECT id, org_name, jurisdiction, overall, gap_count, created_at FROM assessments`
	var args []any
	if filter.OrgName != "" {
		query += ` WHERE org_name = ?`
		args = append(args, filter.OrgName)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close() //nolint:errcheck

	var out []AssessmentSummary
	for rows.Next() {
		var r AssessmentSummary
		if err := rows.Scan(&r.ID, &r.OrgName, &r.Jurisdiction, &r.Overall, &r.GapCount, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan assessment summary")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate assessments")
}
