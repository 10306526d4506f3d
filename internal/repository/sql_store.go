// internal/repository/sql_store.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
)

// Dialect selects placeholder syntax and error decoding for a SQL backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// rebind rewrites ? placeholders into $1, $2, ... for PostgreSQL.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var catalogTables = []string{"campaigns", "email_templates", "recipients", "recipient_lists"}

type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{DB: db, Dialect: dialect}
}

func (s *SQLStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlTx{tx: tx, dialect: s.Dialect}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return translateErr(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func (s *SQLStore) Empty(ctx context.Context) (bool, error) {
	for _, table := range catalogTables {
		var count int
		if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			return false, fmt.Errorf("count %s: %w", table, err)
		}
		if count > 0 {
			return false, nil
		}
	}
	return true, nil
}

func (s *SQLStore) Wipe(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range catalogTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("wipe %s: %w", table, err)
		}
	}
	return tx.Commit()
}

type sqlTx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *sqlTx) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.rebind(query), args...)
}

func (t *sqlTx) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.rebind(query), args...)
}

func (t *sqlTx) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.rebind(query), args...)
}

// translateErr maps driver unique-constraint violations to ErrDuplicate.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pqErr.Constraint)
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, sqliteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT:
			// extended codes disabled: fall back to the message
			if strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed") {
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, sqliteErr.Error())
			}
		}
	}
	return err
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
