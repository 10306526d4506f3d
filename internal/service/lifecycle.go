// internal/service/lifecycle.go
package service

import (
	"context"
	"time"

	"github.com/unclebandit/campaign-scheduler/internal/model"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
	"github.com/unclebandit/campaign-scheduler/internal/validation"
)

// Lifecycle persists accepted campaign mutations. It owns the status field
// and the created_at/updated_at stamps and never re-validates.
//
// Status moves Scheduled -> Cancelled only; cancelling a cancelled campaign
// just refreshes updated_at.
type Lifecycle struct{}

func (Lifecycle) CommitCreate(ctx context.Context, tx repository.Tx, c *model.Campaign, now time.Time) error {
	c.Status = model.StatusScheduled
	c.CreatedAt = now
	c.UpdatedAt = now
	return tx.InsertCampaign(ctx, c)
}

func (Lifecycle) CommitUpdate(ctx context.Context, tx repository.Tx, u *validation.CampaignUpdate, now time.Time) (*model.Campaign, error) {
	c := *u.Current
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.SendTime != nil {
		c.SendTime = *u.SendTime
	}
	if u.CampaignTemplate != nil {
		c.CampaignTemplate = *u.CampaignTemplate
	}
	if u.RecipientCategory != nil {
		c.RecipientCategory = u.RecipientCategory
	}
	if u.TemplateName != nil {
		c.TemplateName = u.TemplateName
	}
	c.UpdatedAt = now

	if err := tx.UpdateCampaign(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (Lifecycle) CommitCancel(ctx context.Context, tx repository.Tx, current *model.Campaign, now time.Time) (*model.Campaign, error) {
	c := *current
	c.Status = model.StatusCancelled
	c.UpdatedAt = now

	if err := tx.UpdateCampaign(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
