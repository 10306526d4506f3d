package queue

import (
	"encoding/json"
	"fmt"

	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/metrics"
	"github.com/unclebandit/campaign-scheduler/internal/model"
)

// DecodeEvent accepts an event value from the in-memory queue or a JSON
// body from RabbitMQ.
func DecodeEvent(payload any) (model.CampaignEvent, error) {
	switch p := payload.(type) {
	case model.CampaignEvent:
		return p, nil
	case *model.CampaignEvent:
		if p == nil {
			return model.CampaignEvent{}, fmt.Errorf("nil campaign event")
		}
		return *p, nil
	case []byte:
		var evt model.CampaignEvent
		if err := json.Unmarshal(p, &evt); err != nil {
			return model.CampaignEvent{}, fmt.Errorf("decode campaign event: %w", err)
		}
		if evt.Event == "" {
			return model.CampaignEvent{}, fmt.Errorf("campaign event without type")
		}
		return evt, nil
	default:
		return model.CampaignEvent{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}

// AuditEvent writes one structured log line for a lifecycle event.
func AuditEvent(payload any) error {
	evt, err := DecodeEvent(payload)
	if err != nil {
		return err
	}
	metrics.WorkerEventsConsumed.Inc()
	logx.L().Infow("campaign_event",
		"event", evt.Event,
		"campaign_id", evt.Campaign.ID,
		"name", evt.Campaign.Name,
		"status", evt.Campaign.Status,
		"send_time", evt.Campaign.SendTime,
		"occurred_at", evt.OccurredAt,
	)
	return nil
}

// StartEventAuditor subscribes AuditEvent to topic.
func StartEventAuditor(q Queue, topic string) error {
	if err := q.Subscribe(topic, AuditEvent); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}
