// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/unclebandit/campaign-scheduler/internal/model"
)

// Tx is a unit of work over the catalog. Finders return nil, nil when no
// row matches. Inserts assign the ID on the passed entity.
type Tx interface {
	RecipientByEmail(ctx context.Context, email string) (*model.Recipient, error)
	RecipientList(ctx context.Context, category string) (*model.RecipientList, error)
	EmailTemplate(ctx context.Context, name string) (*model.EmailTemplate, error)
	Campaign(ctx context.Context, name string) (*model.Campaign, error)

	InsertRecipient(ctx context.Context, r *model.Recipient) error
	InsertRecipientList(ctx context.Context, l *model.RecipientList) error
	InsertEmailTemplate(ctx context.Context, t *model.EmailTemplate) error
	InsertCampaign(ctx context.Context, c *model.Campaign) error
	UpdateCampaign(ctx context.Context, c *model.Campaign) error

	// Lists are ordered by id ascending.
	ListRecipients(ctx context.Context) ([]model.Recipient, error)
	ListRecipientLists(ctx context.Context) ([]model.RecipientList, error)
	ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error)
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	RecipientsByCategory(ctx context.Context, category string) ([]model.Recipient, error)
	CampaignsByStatus(ctx context.Context, status model.CampaignStatus) ([]model.Campaign, error)
}

type CatalogRepositoryInterface interface {
	// WithTx runs fn atomically. Writes made through tx are discarded when
	// fn returns an error.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	// Empty reports whether all four collections hold no rows.
	Empty(ctx context.Context) (bool, error)
	// Wipe deletes every row. Used by the seeder before a reset.
	Wipe(ctx context.Context) error
}

var (
	_ CatalogRepositoryInterface = (*SQLStore)(nil)
	_ CatalogRepositoryInterface = (*MemoryStore)(nil)
)
