package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/unclebandit/campaign-scheduler/internal/model"
)

func scanEmailTemplate(row rowScanner) (*model.EmailTemplate, error) {
	var tmpl model.EmailTemplate
	if err := row.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Content, &tmpl.CreatedAt, &tmpl.UpdatedAt); err != nil {
		return nil, err
	}
	tmpl.CreatedAt = tmpl.CreatedAt.UTC()
	tmpl.UpdatedAt = tmpl.UpdatedAt.UTC()
	return &tmpl, nil
}

func (t *sqlTx) EmailTemplate(ctx context.Context, name string) (*model.EmailTemplate, error) {
	tmpl, err := scanEmailTemplate(t.queryRow(ctx,
		`SELECT id, name, content, created_at, updated_at FROM email_templates WHERE name = ?`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get email template %q: %w", name, err)
	}
	return tmpl, nil
}

func (t *sqlTx) InsertEmailTemplate(ctx context.Context, tmpl *model.EmailTemplate) error {
	err := t.queryRow(ctx,
		`INSERT INTO email_templates (name, content, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`,
		tmpl.Name, tmpl.Content, tmpl.CreatedAt, tmpl.UpdatedAt,
	).Scan(&tmpl.ID)
	if err != nil {
		return fmt.Errorf("insert email template: %w", translateErr(err))
	}
	return nil
}

func (t *sqlTx) ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error) {
	rows, err := t.query(ctx, `SELECT id, name, content, created_at, updated_at FROM email_templates ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	defer rows.Close()

	templates := []model.EmailTemplate{}
	for rows.Next() {
		tmpl, err := scanEmailTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email template: %w", err)
		}
		templates = append(templates, *tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	return templates, nil
}
