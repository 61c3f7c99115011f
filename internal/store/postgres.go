package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/assessment"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// Pool abstracts *pgxpool.Pool for unit testing with pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS answers (
	org_name     TEXT NOT NULL,
	question_id  TEXT NOT NULL,
	value        JSONB,
	evidence     JSONB,
	note         TEXT,
	submitted_by TEXT,
	submitted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (org_name, question_id)
);

CREATE TABLE IF NOT EXISTS assessments (
	id           TEXT PRIMARY KEY,
	org_name     TEXT NOT NULL,
	jurisdiction TEXT NOT NULL,
	overall      INTEGER NOT NULL,
	gap_count    INTEGER NOT NULL,
	report       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_answers_org ON answers(org_name);
CREATE INDEX IF NOT EXISTS idx_assessments_org ON assessments(org_name);
CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// SaveAnswers upserts each answer inside one transaction.
func (s *PostgresStore) SaveAnswers(ctx context.Context, orgName string, answers model.AnswerSet) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin save answers")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for id, a := range answers {
		value, err := json.Marshal(a.Value)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal answer value %s", id)
		}
		evidence, err := json.Marshal(a.Evidence)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal evidence %s", id)
		}
		submittedAt := a.SubmittedAt
		if submittedAt.IsZero() {
			submittedAt = time.Now().UTC()
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO answers (org_name, question_id, value, evidence, note, submitted_by, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (org_name, question_id) DO UPDATE SET
				value = EXCLUDED.value,
				evidence = EXCLUDED.evidence,
				note = EXCLUDED.note,
				submitted_by = EXCLUDED.submitted_by,
				submitted_at = EXCLUDED.submitted_at`,
			orgName, id, value, evidence, a.Note, a.SubmittedBy, submittedAt,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: upsert answer %s", id)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit save answers")
}

// GetAnswers returns the current answer set for an organization.
func (s *PostgresStore) GetAnswers(ctx context.Context, orgName string) (model.AnswerSet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT question_id, value, evidence, note, submitted_by, submitted_at
		FROM answers WHERE org_name = $1`, orgName)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get answers")
	}
	defer rows.Close()

	answers := model.AnswerSet{}
	for rows.Next() {
		var (
			a        model.QuestionAnswer
			value    []byte
			evidence []byte
		)
		if err := rows.Scan(&a.QuestionID, &value, &evidence, &a.Note, &a.SubmittedBy, &a.SubmittedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan answer")
		}
		if len(value) > 0 {
			if err := json.Unmarshal(value, &a.Value); err != nil {
				return nil, eris.Wrapf(err, "postgres: unmarshal answer value %s", a.QuestionID)
			}
		}
		if len(evidence) > 0 {
			if err := json.Unmarshal(evidence, &a.Evidence); err != nil {
				return nil, eris.Wrapf(err, "postgres: unmarshal evidence %s", a.QuestionID)
			}
		}
		answers[a.QuestionID] = a
	}
	return answers, eris.Wrap(rows.Err(), "postgres: iterate answers")
}

// SaveAssessment stores one immutable assessment snapshot.
func (s *PostgresStore) SaveAssessment(ctx context.Context, report *assessment.Report) error {
	doc, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal report")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO assessments (id, org_name, jurisdiction, overall, gap_count, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.Profile.Name, report.Profile.Jurisdiction,
		report.Scores.Overall, len(report.Gaps), doc, report.GeneratedAt,
	)
	return eris.Wrap(err, "postgres: insert assessment")
}

// GetAssessment loads one stored assessment by id. Returns nil when absent.
func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*assessment.Report, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT report FROM assessments WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get assessment")
	}

	var report assessment.Report
	if err := json.Unmarshal(doc, &report); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal report")
	}
	return &report, nil
}

// ListAssessments returns assessment summaries, newest first.
func (s *PostgresStore) ListAssessments(ctx context.Context, filter ListFilter) ([]AssessmentSummary, error) {
	query := `SELECT id, org_name, jurisdiction, overall, gap_count, created_at FROM assessments`
	var args []any
	if filter.OrgName != "" {
		query += ` WHERE org_name = $1`
		args = append(args, filter.OrgName)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		if filter.OrgName != "" {
			query += ` LIMIT $2`
		} else {
			query += ` LIMIT $1`
		}
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []AssessmentSummary
	for rows.Next() {
		var r AssessmentSummary
		if err := rows.Scan(&r.ID, &r.OrgName, &r.Jurisdiction, &r.Overall, &r.GapCount, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan assessment summary")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate assessments")
}
