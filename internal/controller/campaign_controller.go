// internal/controller/campaign_controller.go
package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/campaign-scheduler/internal/model"
)

// CatalogAPI is what the HTTP layer needs from the service.
type CatalogAPI interface {
	CreateRecipientList(ctx context.Context, in model.RecipientListInput) (*model.RecipientList, error)
	ListRecipientLists(ctx context.Context) ([]model.RecipientList, error)

	CreateRecipient(ctx context.Context, in model.RecipientInput) (*model.Recipient, error)
	ListRecipients(ctx context.Context) ([]model.Recipient, error)
	RecipientsByCategory(ctx context.Context, category string) ([]model.Recipient, error)

	CreateEmailTemplate(ctx context.Context, in model.EmailTemplateInput) (*model.EmailTemplate, error)
	ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error)

	CreateCampaign(ctx context.Context, in model.CampaignInput) (*model.Campaign, error)
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	CampaignsByStatus(ctx context.Context, status model.CampaignStatus) ([]model.Campaign, error)
	UpdateCampaign(ctx context.Context, name string, in model.CampaignInput) (*model.Campaign, error)
	PatchCampaign(ctx context.Context, name string, in model.CampaignInput) (*model.Campaign, error)
	CancelCampaign(ctx context.Context, name string) (*model.Campaign, error)
}

type CatalogController struct {
	CatalogService CatalogAPI
}

func (c *CatalogController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body model.CampaignInput
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	campaign, err := c.CatalogService.CreateCampaign(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

func (c *CatalogController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.CatalogService.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (c *CatalogController) CampaignsByStatus(w http.ResponseWriter, r *http.Request) {
	status := model.CampaignStatus(chi.URLParam(r, "status"))

	campaigns, err := c.CatalogService.CampaignsByStatus(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// UpdateCampaign handles PUT /api/campaigns/{name}.
func (c *CatalogController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, c.CatalogService.UpdateCampaign)
}

// PatchCampaign handles PATCH /api/campaigns/{name}.
func (c *CatalogController) PatchCampaign(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, c.CatalogService.PatchCampaign)
}

func (c *CatalogController) update(w http.ResponseWriter, r *http.Request, apply func(context.Context, string, model.CampaignInput) (*model.Campaign, error)) {
	name := chi.URLParam(r, "name")

	var body model.CampaignInput
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	campaign, err := apply(r.Context(), name, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// CancelCampaign handles DELETE /api/campaigns/delete?name=. The row stays;
// only its status changes.
func (c *CatalogController) CancelCampaign(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	campaign, err := c.CatalogService.CancelCampaign(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf(`Campaign "%s" has been cancelled`, campaign.Name),
		"campaign": campaign,
	})
}
