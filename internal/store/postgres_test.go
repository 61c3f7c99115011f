package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS answers`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAnswers_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	submitted := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`ON CONFLICT \(org_name, question_id\)`).
		WithArgs("Acme", "q-gov-1", []byte(`true`), []byte(`["doc://charter.pdf"]`), "", "analyst", submitted).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := s.SaveAnswers(context.Background(), "Acme", model.AnswerSet{
		"q-gov-1": {QuestionID: "q-gov-1", Value: true,
			Evidence: []string{"doc://charter.pdf"}, SubmittedBy: "analyst", SubmittedAt: submitted},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAnswers(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	submitted := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"question_id", "value", "evidence", "note", "submitted_by", "submitted_at"}).
		AddRow("q-gov-1", []byte(`true`), []byte(`["doc://charter.pdf"]`), "", "analyst", submitted).
		AddRow("q-env-1", []byte(`42.5`), []byte(`null`), "estimate", "", submitted)

	mock.ExpectQuery(`SELECT question_id, value, evidence, note, submitted_by, submitted_at`).
		WithArgs("Acme").
		WillReturnRows(rows)

	got, err := s.GetAnswers(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, true, got["q-gov-1"].Value)
	assert.Equal(t, []string{"doc://charter.pdf"}, got["q-gov-1"].Evidence)
	assert.Equal(t, 42.5, got["q-env-1"].Value)
	assert.Equal(t, "estimate", got["q-env-1"].Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	report := sampleReport("a1", "Acme", 55)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs("a1", "Acme", "SA", 55, 1, pgxmock.AnyArg(), report.GeneratedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveAssessment(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	report := sampleReport("a1", "Acme", 55)
	doc, err := json.Marshal(report)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT report FROM assessments WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"report"}).AddRow(doc))

	got, err := s.GetAssessment(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, report.Scores.Overall, got.Scores.Overall)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT report FROM assessments WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.GetAssessment(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAssessments(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "org_name", "jurisdiction", "overall", "gap_count", "created_at"}).
		AddRow("a2", "Acme", "SA", 62, 1, created.Add(time.Hour)).
		AddRow("a1", "Acme", "SA", 55, 3, created)

	mock.ExpectQuery(`SELECT id, org_name, jurisdiction, overall, gap_count, created_at FROM assessments WHERE org_name = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("Acme", 2).
		WillReturnRows(rows)

	got, err := s.ListAssessments(context.Background(), ListFilter{OrgName: "Acme", Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID)
	assert.Equal(t, 3, got[1].GapCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
