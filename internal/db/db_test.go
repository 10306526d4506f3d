package db

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/campaign-scheduler/internal/config"
	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/model"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
)

func TestSchemaStatements(t *testing.T) {
	for _, d := range []repository.Dialect{repository.DialectPostgres, repository.DialectSQLite} {
		stmts, err := schemaStatements(d)
		require.NoError(t, err)
		require.Len(t, stmts, 6, d)
		for _, stmt := range stmts {
			assert.NotContains(t, stmt, "--")
			assert.Regexp(t, `^CREATE (TABLE|INDEX) IF NOT EXISTS`, stmt)
		}
	}
}

func TestSplitStatementsStripsCommentsFirst(t *testing.T) {
	raw := `-- lookup tables; created first
CREATE TABLE a (id INT); -- trailing; note
-- b references a by value; no foreign keys
CREATE TABLE b (
    id INT -- key
);
`
	stmts := splitStatements(raw)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id INT)", stmts[0])
	assert.Equal(t, "CREATE TABLE b (\n    id INT \n)", stmts[1])
}

func TestMigrateExecutesEveryStatement(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	for _, table := range []string{"recipient_lists", "recipients", "email_templates", "campaigns"} {
		mock.ExpectExec("^" + regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + table + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("^" + regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_recipients_category")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("^" + regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_campaigns_status")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), conn, repository.DialectPostgres))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenRejectsMemoryDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.DB{Driver: "memory"})
	assert.ErrorContains(t, err, "not a SQL backend")
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, dialect, err := Open(ctx, config.DB{
		Driver: "sqlite",
		URL:    "file:" + filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, Migrate(ctx, conn, dialect))
	// second run is a no-op
	require.NoError(t, Migrate(ctx, conn, dialect))

	store := repository.NewSQLStore(conn, dialect)
	empty, err := store.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	category := "admin"
	c := &model.Campaign{
		Name:              "Launch",
		SendTime:          now.Add(time.Hour),
		CampaignTemplate:  "Hello",
		RecipientCategory: &category,
		Status:            model.StatusScheduled,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.InsertCampaign(ctx, c)
	}))
	assert.NotZero(t, c.ID)

	err = store.WithTx(ctx, func(tx repository.Tx) error {
		dup := *c
		return tx.InsertCampaign(ctx, &dup)
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	require.NoError(t, store.WithTx(ctx, func(tx repository.Tx) error {
		got, err := tx.Campaign(ctx, "Launch")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.SendTime.Equal(c.SendTime))
		assert.Equal(t, model.StatusScheduled, got.Status)
		assert.Nil(t, got.TemplateName)
		return nil
	}))
}
