// Package validation holds the decision rules for catalog mutations. Every
// function reads a Snapshot of the store and returns either the accepted,
// normalized values or a *apperrors.Rejection naming the first rule broken.
//
// Rules run in a fixed order: field presence, then format/length/temporal
// checks, then cross-entity existence, then uniqueness.
package validation

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/model"
)

const (
	MaxRecipientNameLen = 32
	MaxTemplateNameLen  = 20
	MaxCampaignNameLen  = 60
)

// Snapshot is the read-only view of the catalog the rules consult.
// Lookups return nil when nothing matches.
type Snapshot interface {
	RecipientByEmail(ctx context.Context, email string) (*model.Recipient, error)
	RecipientList(ctx context.Context, category string) (*model.RecipientList, error)
	EmailTemplate(ctx context.Context, name string) (*model.EmailTemplate, error)
	Campaign(ctx context.Context, name string) (*model.Campaign, error)
}

type UpdateMode int

const (
	// FullUpdate is PUT: present fields replace stored ones.
	FullUpdate UpdateMode = iota
	// PartialUpdate is PATCH: same rules, but an empty campaign_template
	// answers NotFound (see Engine.PatchEmptyTemplateNotFound).
	PartialUpdate
)

func (m UpdateMode) String() string {
	if m == PartialUpdate {
		return "patch"
	}
	return "update"
}

type Engine struct {
	// PatchEmptyTemplateNotFound keeps the legacy PATCH behaviour where an
	// empty campaign_template is rejected as NotFound instead of MissingField.
	PatchEmptyTemplateNotFound bool
}

func NewEngine() *Engine {
	return &Engine{PatchEmptyTemplateNotFound: true}
}

// CampaignUpdate is an accepted update. Nil fields keep their stored value.
type CampaignUpdate struct {
	Current           *model.Campaign
	Name              *string
	SendTime          *time.Time
	CampaignTemplate  *string
	RecipientCategory *string
	TemplateName      *string
}

func (e *Engine) CreateRecipient(ctx context.Context, snap Snapshot, in model.RecipientInput) (*model.Recipient, error) {
	if in.Email.Blank() {
		return nil, apperrors.MissingField("email is required and cannot be null.")
	}
	if in.RecipientCategory.Blank() {
		return nil, apperrors.MissingField("recipient_category is required and cannot be null.")
	}
	var name *string
	if in.Name.Set && in.Name.Valid {
		if utf8.RuneCountInString(in.Name.Value) > MaxRecipientNameLen {
			return nil, apperrors.InvalidInput(fmt.Sprintf("name cannot be more than %d characters.", MaxRecipientNameLen))
		}
		v := in.Name.Value
		name = &v
	}

	existing, err := snap.RecipientByEmail(ctx, in.Email.Value)
	if err != nil {
		return nil, fmt.Errorf("lookup recipient: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("A recipient with this email already exists.")
	}

	return &model.Recipient{
		Email:             in.Email.Value,
		Name:              name,
		RecipientCategory: in.RecipientCategory.Ptr(),
	}, nil
}

func (e *Engine) CreateRecipientList(ctx context.Context, snap Snapshot, in model.RecipientListInput) (*model.RecipientList, error) {
	if in.RecipientCategory.Blank() {
		return nil, apperrors.MissingField("recipient_category is required and cannot be null.")
	}

	existing, err := snap.RecipientList(ctx, in.RecipientCategory.Value)
	if err != nil {
		return nil, fmt.Errorf("lookup recipient list: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("A recipient list with this category already exists.")
	}

	var description *string
	if in.Description.Set && in.Description.Valid {
		v := in.Description.Value
		description = &v
	}
	return &model.RecipientList{
		RecipientCategory: in.RecipientCategory.Value,
		Description:       description,
	}, nil
}

func (e *Engine) CreateEmailTemplate(ctx context.Context, snap Snapshot, in model.EmailTemplateInput) (*model.EmailTemplate, error) {
	if in.Name.Blank() {
		return nil, apperrors.MissingField("Template name is required and cannot be null.")
	}
	if in.Content.Blank() {
		return nil, apperrors.MissingField("Template content is required and cannot be null.")
	}
	if utf8.RuneCountInString(in.Name.Value) > MaxTemplateNameLen {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Template name cannot be more than %d characters.", MaxTemplateNameLen))
	}

	existing, err := snap.EmailTemplate(ctx, in.Name.Value)
	if err != nil {
		return nil, fmt.Errorf("lookup email template: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("A template with this name already exists.")
	}

	return &model.EmailTemplate{Name: in.Name.Value, Content: in.Content.Value}, nil
}

func (e *Engine) CreateCampaign(ctx context.Context, snap Snapshot, in model.CampaignInput, now time.Time) (*model.Campaign, error) {
	if in.Name.Blank() {
		return nil, apperrors.MissingField("Campaign name is required")
	}
	if in.SendTime.Blank() {
		return nil, apperrors.MissingField("Send time is required")
	}
	if in.CampaignTemplate.Blank() {
		return nil, apperrors.MissingField("Campaign Template cannot be Null")
	}

	if rej := checkCampaignName(in.Name.Value); rej != nil {
		return nil, rej
	}
	sendTime, rej := checkSendTime(in.SendTime.Value, now)
	if rej != nil {
		return nil, rej
	}

	category := in.RecipientCategory.Ptr()
	if category != nil {
		if err := requireRecipientList(ctx, snap, *category); err != nil {
			return nil, err
		}
	}
	templateName := in.TemplateName.Ptr()
	if templateName != nil {
		if err := requireEmailTemplate(ctx, snap, *templateName); err != nil {
			return nil, err
		}
	}

	existing, err := snap.Campaign(ctx, in.Name.Value)
	if err != nil {
		return nil, fmt.Errorf("lookup campaign: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("Campaign name already exists")
	}

	return &model.Campaign{
		Name:              in.Name.Value,
		SendTime:          sendTime,
		CampaignTemplate:  in.CampaignTemplate.Value,
		RecipientCategory: category,
		TemplateName:      templateName,
	}, nil
}

// UpdateCampaign validates a PUT or PATCH against the campaign stored under
// name. Only fields present in the payload are checked and changed.
func (e *Engine) UpdateCampaign(ctx context.Context, snap Snapshot, name string, in model.CampaignInput, mode UpdateMode, now time.Time) (*CampaignUpdate, error) {
	current, err := snap.Campaign(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup campaign: %w", err)
	}
	if current == nil {
		return nil, apperrors.NotFound("Campaign not found")
	}

	if in.Name.Set && in.Name.Blank() {
		return nil, apperrors.MissingField("Campaign name is required")
	}
	if in.SendTime.Set && in.SendTime.Blank() {
		return nil, apperrors.MissingField("Send time is required")
	}
	if in.CampaignTemplate.Set && in.CampaignTemplate.Blank() {
		if mode == PartialUpdate && e.PatchEmptyTemplateNotFound {
			return nil, apperrors.NotFound("Campaign Template cannot be Null")
		}
		return nil, apperrors.MissingField("Campaign Template cannot be Null")
	}

	u := &CampaignUpdate{Current: current}

	if in.Name.Set {
		if rej := checkCampaignName(in.Name.Value); rej != nil {
			return nil, rej
		}
		v := in.Name.Value
		u.Name = &v
	}
	if in.SendTime.Set {
		sendTime, rej := checkSendTime(in.SendTime.Value, now)
		if rej != nil {
			return nil, rej
		}
		u.SendTime = &sendTime
	}
	if in.CampaignTemplate.Set {
		v := in.CampaignTemplate.Value
		u.CampaignTemplate = &v
	}

	// A present reference must resolve; null or empty never does.
	if in.RecipientCategory.Set {
		if err := requireRecipientList(ctx, snap, in.RecipientCategory.Value); err != nil {
			return nil, err
		}
		v := in.RecipientCategory.Value
		u.RecipientCategory = &v
	}
	if in.TemplateName.Set {
		if err := requireEmailTemplate(ctx, snap, in.TemplateName.Value); err != nil {
			return nil, err
		}
		v := in.TemplateName.Value
		u.TemplateName = &v
	}

	if u.Name != nil && *u.Name != current.Name {
		other, err := snap.Campaign(ctx, *u.Name)
		if err != nil {
			return nil, fmt.Errorf("lookup campaign: %w", err)
		}
		if other != nil && other.ID != current.ID {
			return nil, apperrors.Conflict("Campaign name already exists")
		}
	}

	return u, nil
}

// CancelCampaign accepts a cancel for any existing campaign, whatever its status.
func (e *Engine) CancelCampaign(ctx context.Context, snap Snapshot, name string) (*model.Campaign, error) {
	if name == "" {
		return nil, apperrors.MissingField("Name parameter is required for deletion")
	}
	current, err := snap.Campaign(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup campaign: %w", err)
	}
	if current == nil {
		return nil, apperrors.NotFound("Campaign not found")
	}
	return current, nil
}

func checkCampaignName(name string) *apperrors.Rejection {
	if utf8.RuneCountInString(name) > MaxCampaignNameLen {
		return apperrors.InvalidInput(fmt.Sprintf("Campaign name exceeds maximum length of %d characters", MaxCampaignNameLen))
	}
	return nil
}

func checkSendTime(raw string, now time.Time) (time.Time, *apperrors.Rejection) {
	sendTime, rej := ParseTimestamp(raw)
	if rej != nil {
		return time.Time{}, rej
	}
	if !sendTime.After(now) {
		return time.Time{}, apperrors.InvalidInput("Send time must be in the future")
	}
	return sendTime, nil
}

func requireRecipientList(ctx context.Context, snap Snapshot, category string) error {
	if category == "" {
		return apperrors.NotFound("Recipient category not found")
	}
	list, err := snap.RecipientList(ctx, category)
	if err != nil {
		return fmt.Errorf("lookup recipient list: %w", err)
	}
	if list == nil {
		return apperrors.NotFound("Recipient category not found")
	}
	return nil
}

func requireEmailTemplate(ctx context.Context, snap Snapshot, name string) error {
	if name == "" {
		return apperrors.NotFound("Email template not found")
	}
	tmpl, err := snap.EmailTemplate(ctx, name)
	if err != nil {
		return fmt.Errorf("lookup email template: %w", err)
	}
	if tmpl == nil {
		return apperrors.NotFound("Email template not found")
	}
	return nil
}
