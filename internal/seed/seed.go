// Package seed loads the demo catalog into an empty store. Rows go straight
// through the store; nothing here is validated.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/model"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
)

type listRow struct{ category, description string }

type recipientRow struct{ email, name, category string }

type templateRow struct{ name, content string }

type campaignRow struct {
	name     string
	in       time.Duration
	category string
	template string
	body     string
	status   model.CampaignStatus
}

var (
	lists = []listRow{
		{"admin", "Send Email Campaign to Admin Level Users"},
		{"vendors", "Send Email Campaign to Vendor Level Users"},
		{"customer", "Send Email Campaign to Customer Level Users"},
	}
	recipients = []recipientRow{
		{"admin_1@example.com", "Recipient 1", "admin"},
		{"vendor_1@example.com", "Recipient 2", "vendors"},
		{"customer_1@example.com", "Recipient 3", "customer"},
		{"admin_2@example.com", "Recipient 4", "admin"},
		{"vendor_2@example.com", "Recipient 5", "vendors"},
		{"customer_2@example.com", "Recipient 6", "customer"},
		{"vendor_3@example.com", "Recipient 7", "vendors"},
	}
	templates = []templateRow{
		{"Admin_Template", "Email intended for Admins"},
		{"Vendor_Template", "Email intended for Vendors"},
		{"Customer_Template", "Email intended for Consumers"},
	}
	campaigns = []campaignRow{
		{"Admin_camp", 5 * time.Hour, "admin", "Admin_Template", "Hello Admins How are You", model.StatusScheduled},
		{"Vendor_camp", 10 * time.Hour, "vendors", "Vendor_Template", "Hello Vendors How are You", model.StatusScheduled},
		{"Consumer_camp", 24 * time.Hour, "customer", "Customer_Template", "Hello Customer How are You", model.StatusScheduled},
		{"Regular_camp", 14 * time.Hour, "admin", "Admin_Template", "Hello Regulars How are You", model.StatusCancelled},
	}
)

// Seed inserts the demo rows when the store is empty. It reports whether
// anything was written.
func Seed(ctx context.Context, store repository.CatalogRepositoryInterface, now time.Time) (bool, error) {
	empty, err := store.Empty(ctx)
	if err != nil {
		return false, fmt.Errorf("check empty store: %w", err)
	}
	if !empty {
		logx.L().Infow("seed_skipped", "reason", "store not empty")
		return false, nil
	}

	now = now.UTC()
	err = store.WithTx(ctx, func(tx repository.Tx) error {
		for _, row := range lists {
			description := row.description
			l := &model.RecipientList{RecipientCategory: row.category, Description: &description, CreatedAt: now, UpdatedAt: now}
			if err := tx.InsertRecipientList(ctx, l); err != nil {
				return err
			}
		}
		for _, row := range recipients {
			name, category := row.name, row.category
			if err := tx.InsertRecipient(ctx, &model.Recipient{Email: row.email, Name: &name, RecipientCategory: &category}); err != nil {
				return err
			}
		}
		for _, row := range templates {
			t := &model.EmailTemplate{Name: row.name, Content: row.content, CreatedAt: now, UpdatedAt: now}
			if err := tx.InsertEmailTemplate(ctx, t); err != nil {
				return err
			}
		}
		for _, row := range campaigns {
			category, template := row.category, row.template
			c := &model.Campaign{
				Name:              row.name,
				SendTime:          now.Add(row.in),
				CampaignTemplate:  row.body,
				RecipientCategory: &category,
				TemplateName:      &template,
				Status:            row.status,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := tx.InsertCampaign(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}

	logx.L().Infow("seed_completed",
		"recipient_lists", len(lists),
		"recipients", len(recipients),
		"email_templates", len(templates),
		"campaigns", len(campaigns),
	)
	return true, nil
}
