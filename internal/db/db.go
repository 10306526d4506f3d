// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/unclebandit/campaign-scheduler/internal/config"
	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Open connects to the SQL backend named by cfg.Driver and pings it.
func Open(ctx context.Context, cfg config.DB) (*sql.DB, repository.Dialect, error) {
	var dialect repository.Dialect
	switch cfg.Driver {
	case "postgres":
		dialect = repository.DialectPostgres
	case "sqlite":
		dialect = repository.DialectSQLite
	default:
		return nil, "", fmt.Errorf("driver %q is not a SQL backend", cfg.Driver)
	}

	conn, err := sql.Open(string(dialect), cfg.URL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == repository.DialectSQLite {
		// one writer at a time avoids SQLITE_BUSY between transactions
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	logx.L().Infow("db_connected", "driver", cfg.Driver)
	return conn, dialect, nil
}

// Migrate applies the embedded schema for dialect. Every statement is
// idempotent, so it runs on each start.
func Migrate(ctx context.Context, conn *sql.DB, dialect repository.Dialect) error {
	stmts, err := schemaStatements(dialect)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	logx.L().Infow("db_migrated", "dialect", dialect, "statements", len(stmts))
	return nil
}

func schemaStatements(dialect repository.Dialect) ([]string, error) {
	raw, err := schemaFS.ReadFile("schema/" + string(dialect) + ".sql")
	if err != nil {
		return nil, fmt.Errorf("read schema for %s: %w", dialect, err)
	}

	return splitStatements(string(raw)), nil
}

// splitStatements drops -- comments and then splits on ";". The schema
// files keep no "--" or ";" inside string literals.
func splitStatements(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, chunk := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt := strings.TrimSpace(chunk); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
