package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/unclebandit/campaign-scheduler/internal/model"
)

func scanRecipient(row rowScanner) (*model.Recipient, error) {
	var (
		r        model.Recipient
		name     sql.NullString
		category sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Email, &name, &category); err != nil {
		return nil, err
	}
	r.Name = fromNull(name)
	r.RecipientCategory = fromNull(category)
	return &r, nil
}

func (t *sqlTx) RecipientByEmail(ctx context.Context, email string) (*model.Recipient, error) {
	r, err := scanRecipient(t.queryRow(ctx, `SELECT id, email, name, recipient_category FROM recipients WHERE email = ?`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipient %q: %w", email, err)
	}
	return r, nil
}

func (t *sqlTx) InsertRecipient(ctx context.Context, r *model.Recipient) error {
	err := t.queryRow(ctx,
		`INSERT INTO recipients (email, name, recipient_category) VALUES (?, ?, ?) RETURNING id`,
		r.Email, nullable(r.Name), nullable(r.RecipientCategory),
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("insert recipient: %w", translateErr(err))
	}
	return nil
}

func (t *sqlTx) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	return t.listRecipients(ctx, `SELECT id, email, name, recipient_category FROM recipients ORDER BY id ASC`)
}

func (t *sqlTx) RecipientsByCategory(ctx context.Context, category string) ([]model.Recipient, error) {
	return t.listRecipients(ctx, `SELECT id, email, name, recipient_category FROM recipients WHERE recipient_category = ? ORDER BY id ASC`, category)
}

func (t *sqlTx) listRecipients(ctx context.Context, query string, args ...any) ([]model.Recipient, error) {
	rows, err := t.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		r, err := scanRecipient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		recipients = append(recipients, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	return recipients, nil
}

// ====================== Recipient lists ======================

func scanRecipientList(row rowScanner) (*model.RecipientList, error) {
	var (
		l           model.RecipientList
		description sql.NullString
	)
	if err := row.Scan(&l.ID, &l.RecipientCategory, &description, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Description = fromNull(description)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return &l, nil
}

func (t *sqlTx) RecipientList(ctx context.Context, category string) (*model.RecipientList, error) {
	l, err := scanRecipientList(t.queryRow(ctx,
		`SELECT id, recipient_category, description, created_at, updated_at FROM recipient_lists WHERE recipient_category = ?`,
		category,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipient list %q: %w", category, err)
	}
	return l, nil
}

func (t *sqlTx) InsertRecipientList(ctx context.Context, l *model.RecipientList) error {
	err := t.queryRow(ctx,
		`INSERT INTO recipient_lists (recipient_category, description, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`,
		l.RecipientCategory, nullable(l.Description), l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert recipient list: %w", translateErr(err))
	}
	return nil
}

func (t *sqlTx) ListRecipientLists(ctx context.Context) ([]model.RecipientList, error) {
	rows, err := t.query(ctx, `SELECT id, recipient_category, description, created_at, updated_at FROM recipient_lists ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recipient lists: %w", err)
	}
	defer rows.Close()

	lists := []model.RecipientList{}
	for rows.Next() {
		l, err := scanRecipientList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipient list: %w", err)
		}
		lists = append(lists, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipient lists: %w", err)
	}
	return lists, nil
}
