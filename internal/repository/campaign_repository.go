package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/model"
)

type rowScanner interface {
	Scan(dest ...any) error
}

const campaignColumns = `id, name, send_time, campaign_template, recipient_category, template_name, status, created_at, updated_at`

func scanCampaign(row rowScanner) (*model.Campaign, error) {
	var (
		c        model.Campaign
		category sql.NullString
		template sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &c.SendTime, &c.CampaignTemplate, &category, &template, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.RecipientCategory = fromNull(category)
	c.TemplateName = fromNull(template)
	c.SendTime = c.SendTime.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (t *sqlTx) Campaign(ctx context.Context, name string) (*model.Campaign, error) {
	c, err := scanCampaign(t.queryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE name = ?`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign %q: %w", name, err)
	}
	return c, nil
}

func (t *sqlTx) InsertCampaign(ctx context.Context, c *model.Campaign) error {
	query := `
        INSERT INTO campaigns (name, send_time, campaign_template, recipient_category, template_name, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `
	err := t.queryRow(ctx, query,
		c.Name, c.SendTime, c.CampaignTemplate, nullable(c.RecipientCategory), nullable(c.TemplateName),
		string(c.Status), c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", translateErr(err))
	}
	return nil
}

func (t *sqlTx) UpdateCampaign(ctx context.Context, c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET name = ?, send_time = ?, campaign_template = ?, recipient_category = ?, template_name = ?, status = ?, updated_at = ?
        WHERE id = ?
    `
	res, err := t.exec(ctx, query,
		c.Name, c.SendTime, c.CampaignTemplate, nullable(c.RecipientCategory), nullable(c.TemplateName),
		string(c.Status), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", translateErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	if n == 0 {
		return apperrors.NewCampaignNotFound(c.ID)
	}
	return nil
}

func (t *sqlTx) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	return t.listCampaigns(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id ASC`)
}

func (t *sqlTx) CampaignsByStatus(ctx context.Context, status model.CampaignStatus) ([]model.Campaign, error) {
	return t.listCampaigns(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE status = ? ORDER BY id ASC`, string(status))
}

func (t *sqlTx) listCampaigns(ctx context.Context, query string, args ...any) ([]model.Campaign, error) {
	rows, err := t.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}
