// internal/model/event.go
package model

import "time"

const (
	EventCampaignCreated   = "campaign.created"
	EventCampaignUpdated   = "campaign.updated"
	EventCampaignCancelled = "campaign.cancelled"
)

// CampaignEvent is published after a campaign mutation commits.
type CampaignEvent struct {
	Event      string    `json:"event"`
	Campaign   Campaign  `json:"campaign"`
	OccurredAt time.Time `json:"occurred_at"`
}
