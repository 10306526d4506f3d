// internal/service/campaign_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/metrics"
	"github.com/unclebandit/campaign-scheduler/internal/model"
	"github.com/unclebandit/campaign-scheduler/internal/queue"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
	"github.com/unclebandit/campaign-scheduler/internal/validation"
)

const (
	opCreateRecipient     = "create_recipient"
	opCreateRecipientList = "create_recipient_list"
	opCreateEmailTemplate = "create_email_template"
	opCreateCampaign      = "create_campaign"
	opUpdateCampaign      = "update_campaign"
	opPatchCampaign       = "patch_campaign"
	opCancelCampaign      = "cancel_campaign"
)

// conflictMessages answers a unique violation raised by the store after
// validation passed, i.e. a concurrent writer won the race.
var conflictMessages = map[string]string{
	opCreateRecipient:     "A recipient with this email already exists.",
	opCreateRecipientList: "A recipient list with this category already exists.",
	opCreateEmailTemplate: "A template with this name already exists.",
	opCreateCampaign:      "Campaign name already exists",
	opUpdateCampaign:      "Campaign name already exists",
	opPatchCampaign:       "Campaign name already exists",
}

// CatalogService runs every mutation as read, validate, write inside one
// store transaction.
type CatalogService struct {
	Store     repository.CatalogRepositoryInterface
	Validator *validation.Engine
	Lifecycle Lifecycle
	// Queue receives lifecycle events after commit. Nil disables publishing.
	Queue queue.Queue
	Topic string
	Now   func() time.Time
}

func (s *CatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *CatalogService) validator() *validation.Engine {
	if s.Validator == nil {
		return validation.NewEngine()
	}
	return s.Validator
}

// ====================== Recipients ======================

func (s *CatalogService) CreateRecipient(ctx context.Context, in model.RecipientInput) (*model.Recipient, error) {
	var out *model.Recipient
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		r, err := s.validator().CreateRecipient(ctx, tx, in)
		if err != nil {
			return err
		}
		if err := tx.InsertRecipient(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, s.fail(opCreateRecipient, err)
	}
	s.committed(opCreateRecipient, "email", out.Email)
	return out, nil
}

func (s *CatalogService) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	var out []model.Recipient
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListRecipients(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	return out, nil
}

// RecipientsByCategory answers NotFound when no recipient carries category.
func (s *CatalogService) RecipientsByCategory(ctx context.Context, category string) ([]model.Recipient, error) {
	var out []model.Recipient
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.RecipientsByCategory(ctx, category)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list recipients by category: %w", err)
	}
	if len(out) == 0 {
		return nil, apperrors.NotFound(fmt.Sprintf("No recipients found for category: %s", category))
	}
	return out, nil
}

// ====================== Recipient lists ======================

func (s *CatalogService) CreateRecipientList(ctx context.Context, in model.RecipientListInput) (*model.RecipientList, error) {
	now := s.now()
	var out *model.RecipientList
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		l, err := s.validator().CreateRecipientList(ctx, tx, in)
		if err != nil {
			return err
		}
		l.CreatedAt, l.UpdatedAt = now, now
		if err := tx.InsertRecipientList(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, s.fail(opCreateRecipientList, err)
	}
	s.committed(opCreateRecipientList, "recipient_category", out.RecipientCategory)
	return out, nil
}

func (s *CatalogService) ListRecipientLists(ctx context.Context) ([]model.RecipientList, error) {
	var out []model.RecipientList
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListRecipientLists(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list recipient lists: %w", err)
	}
	return out, nil
}

// ====================== Email templates ======================

func (s *CatalogService) CreateEmailTemplate(ctx context.Context, in model.EmailTemplateInput) (*model.EmailTemplate, error) {
	now := s.now()
	var out *model.EmailTemplate
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		tmpl, err := s.validator().CreateEmailTemplate(ctx, tx, in)
		if err != nil {
			return err
		}
		tmpl.CreatedAt, tmpl.UpdatedAt = now, now
		if err := tx.InsertEmailTemplate(ctx, tmpl); err != nil {
			return err
		}
		out = tmpl
		return nil
	})
	if err != nil {
		return nil, s.fail(opCreateEmailTemplate, err)
	}
	s.committed(opCreateEmailTemplate, "name", out.Name)
	return out, nil
}

func (s *CatalogService) ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error) {
	var out []model.EmailTemplate
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListEmailTemplates(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	return out, nil
}

// ====================== Campaigns ======================

func (s *CatalogService) CreateCampaign(ctx context.Context, in model.CampaignInput) (*model.Campaign, error) {
	now := s.now()
	var out *model.Campaign
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		c, err := s.validator().CreateCampaign(ctx, tx, in, now)
		if err != nil {
			return err
		}
		if err := s.Lifecycle.CommitCreate(ctx, tx, c, now); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, s.fail(opCreateCampaign, err)
	}
	s.committed(opCreateCampaign, "name", out.Name)
	s.publish(model.EventCampaignCreated, out, now)
	return out, nil
}

// UpdateCampaign is PUT: present fields replace stored ones.
func (s *CatalogService) UpdateCampaign(ctx context.Context, name string, in model.CampaignInput) (*model.Campaign, error) {
	return s.updateCampaign(ctx, name, in, validation.FullUpdate, opUpdateCampaign)
}

// PatchCampaign is PATCH. It differs from UpdateCampaign only in how an
// empty campaign_template is rejected.
func (s *CatalogService) PatchCampaign(ctx context.Context, name string, in model.CampaignInput) (*model.Campaign, error) {
	return s.updateCampaign(ctx, name, in, validation.PartialUpdate, opPatchCampaign)
}

func (s *CatalogService) updateCampaign(ctx context.Context, name string, in model.CampaignInput, mode validation.UpdateMode, op string) (*model.Campaign, error) {
	now := s.now()
	var out *model.Campaign
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		u, err := s.validator().UpdateCampaign(ctx, tx, name, in, mode, now)
		if err != nil {
			return err
		}
		out, err = s.Lifecycle.CommitUpdate(ctx, tx, u, now)
		return err
	})
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.committed(op, "name", out.Name, "previous_name", name)
	s.publish(model.EventCampaignUpdated, out, now)
	return out, nil
}

// CancelCampaign marks the campaign Cancelled. Repeating it succeeds.
func (s *CatalogService) CancelCampaign(ctx context.Context, name string) (*model.Campaign, error) {
	now := s.now()
	var out *model.Campaign
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		current, err := s.validator().CancelCampaign(ctx, tx, name)
		if err != nil {
			return err
		}
		out, err = s.Lifecycle.CommitCancel(ctx, tx, current, now)
		return err
	})
	if err != nil {
		return nil, s.fail(opCancelCampaign, err)
	}
	s.committed(opCancelCampaign, "name", out.Name)
	s.publish(model.EventCampaignCancelled, out, now)
	return out, nil
}

func (s *CatalogService) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	var out []model.Campaign
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListCampaigns(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return out, nil
}

func (s *CatalogService) CampaignsByStatus(ctx context.Context, status model.CampaignStatus) ([]model.Campaign, error) {
	var out []model.Campaign
	err := s.Store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		out, err = tx.CampaignsByStatus(ctx, status)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list campaigns by status: %w", err)
	}
	return out, nil
}

// ====================== helpers ======================

// fail turns err into what callers see: rejections pass through, store
// unique violations become Conflict, anything else is wrapped.
func (s *CatalogService) fail(op string, err error) error {
	var nf *apperrors.ErrCampaignNotFound
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		err = apperrors.Conflict(conflictMessages[op])
	case errors.As(err, &nf):
		err = apperrors.NotFound("Campaign not found")
	}

	if rej, ok := apperrors.AsRejection(err); ok {
		metrics.CatalogRejections.WithLabelValues(op, string(rej.Reason)).Inc()
		logx.L().Debugw("mutation_rejected", "op", op, "reason", rej.Reason, "message", rej.Message)
		return rej
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *CatalogService) committed(op string, kv ...any) {
	metrics.CatalogMutations.WithLabelValues(op).Inc()
	logx.L().Infow(op, kv...)
}

// publish is single-attempt; a failure is logged and counted only.
func (s *CatalogService) publish(event string, c *model.Campaign, now time.Time) {
	if s.Queue == nil {
		return
	}
	topic := s.Topic
	if topic == "" {
		topic = queue.CampaignEventsTopic
	}
	err := s.Queue.Publish(topic, model.CampaignEvent{Event: event, Campaign: *c, OccurredAt: now})
	if err != nil {
		metrics.LifecycleEventsFailed.Inc()
		logx.L().Warnw("lifecycle_event_publish_failed", "event", event, "name", c.Name, "err", err)
		return
	}
	metrics.LifecycleEventsPublished.Inc()
}
