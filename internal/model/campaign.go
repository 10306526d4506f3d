// internal/model/campaign.go
package model

import "time"

type CampaignStatus string

const (
	StatusScheduled CampaignStatus = "Scheduled"
	StatusCancelled CampaignStatus = "Cancelled"
)

type Campaign struct {
	ID                int            `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	SendTime          time.Time      `db:"send_time" json:"send_time"`
	CampaignTemplate  string         `db:"campaign_template" json:"campaign_template"`
	RecipientCategory *string        `db:"recipient_category" json:"recipient_category"`
	TemplateName      *string        `db:"template_name" json:"template_name"`
	Status            CampaignStatus `db:"status" json:"status"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// CampaignInput is the request payload for create, update and patch.
// Each field records whether it was present in the JSON body.
type CampaignInput struct {
	Name              OptionalString `json:"name"`
	SendTime          OptionalString `json:"send_time"`
	CampaignTemplate  OptionalString `json:"campaign_template"`
	RecipientCategory OptionalString `json:"recipient_category"`
	TemplateName      OptionalString `json:"template_name"`
}
