package validation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/model"
)

// --- Fake snapshot ---

type fakeSnapshot struct {
	recipients map[string]*model.Recipient
	lists      map[string]*model.RecipientList
	templates  map[string]*model.EmailTemplate
	campaigns  map[string]*model.Campaign
	err        error
}

func newFakeSnapshot() *fakeSnapshot {
	return &fakeSnapshot{
		recipients: map[string]*model.Recipient{},
		lists:      map[string]*model.RecipientList{"admin": {ID: 1, RecipientCategory: "admin"}},
		templates:  map[string]*model.EmailTemplate{"Admin_Template": {ID: 2, Name: "Admin_Template", Content: "hi"}},
		campaigns:  map[string]*model.Campaign{},
	}
}

func (f *fakeSnapshot) RecipientByEmail(_ context.Context, email string) (*model.Recipient, error) {
	return f.recipients[email], f.err
}

func (f *fakeSnapshot) RecipientList(_ context.Context, category string) (*model.RecipientList, error) {
	return f.lists[category], f.err
}

func (f *fakeSnapshot) EmailTemplate(_ context.Context, name string) (*model.EmailTemplate, error) {
	return f.templates[name], f.err
}

func (f *fakeSnapshot) Campaign(_ context.Context, name string) (*model.Campaign, error) {
	return f.campaigns[name], f.err
}

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func requireReason(t *testing.T, err error, want apperrors.Reason) *apperrors.Rejection {
	t.Helper()
	rej, ok := apperrors.AsRejection(err)
	require.True(t, ok, "expected rejection, got %v", err)
	assert.Equal(t, want, rej.Reason, rej.Message)
	return rej
}

func validCampaign() model.CampaignInput {
	return model.CampaignInput{
		Name:              model.Some("Launch"),
		SendTime:          model.Some(now.Add(time.Hour).Format(time.RFC3339)),
		CampaignTemplate:  model.Some("Hello admins"),
		RecipientCategory: model.Some("admin"),
		TemplateName:      model.Some("Admin_Template"),
	}
}

// --- Recipients, lists, templates ---

func TestCreateRecipient(t *testing.T) {
	e := NewEngine()
	snap := newFakeSnapshot()
	ctx := context.Background()

	_, err := e.CreateRecipient(ctx, snap, model.RecipientInput{RecipientCategory: model.Some("admin")})
	requireReason(t, err, apperrors.ReasonMissingField)

	_, err = e.CreateRecipient(ctx, snap, model.RecipientInput{Email: model.Some("a@example.com"), RecipientCategory: model.Null()})
	requireReason(t, err, apperrors.ReasonMissingField)

	_, err = e.CreateRecipient(ctx, snap, model.RecipientInput{
		Email:             model.Some("a@example.com"),
		Name:              model.Some(strings.Repeat("n", MaxRecipientNameLen+1)),
		RecipientCategory: model.Some("admin"),
	})
	requireReason(t, err, apperrors.ReasonInvalidInput)

	r, err := e.CreateRecipient(ctx, snap, model.RecipientInput{
		Email:             model.Some("a@example.com"),
		Name:              model.Some(strings.Repeat("é", MaxRecipientNameLen)),
		RecipientCategory: model.Some("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", r.Email)
	require.NotNil(t, r.RecipientCategory)
	assert.Equal(t, "admin", *r.RecipientCategory)

	snap.recipients["a@example.com"] = r
	_, err = e.CreateRecipient(ctx, snap, model.RecipientInput{Email: model.Some("a@example.com"), RecipientCategory: model.Some("vendors")})
	requireReason(t, err, apperrors.ReasonConflict)
}

func TestCreateRecipientList(t *testing.T) {
	e := NewEngine()
	snap := newFakeSnapshot()
	ctx := context.Background()

	_, err := e.CreateRecipientList(ctx, snap, model.RecipientListInput{})
	requireReason(t, err, apperrors.ReasonMissingField)

	_, err = e.CreateRecipientList(ctx, snap, model.RecipientListInput{RecipientCategory: model.Some("admin")})
	requireReason(t, err, apperrors.ReasonConflict)

	l, err := e.CreateRecipientList(ctx, snap, model.RecipientListInput{RecipientCategory: model.Some("vendors"), Description: model.Null()})
	require.NoError(t, err)
	assert.Equal(t, "vendors", l.RecipientCategory)
	assert.Nil(t, l.Description)
}

func TestCreateEmailTemplate(t *testing.T) {
	e := NewEngine()
	snap := newFakeSnapshot()
	ctx := context.Background()

	_, err := e.CreateEmailTemplate(ctx, snap, model.EmailTemplateInput{Content: model.Some("x")})
	requireReason(t, err, apperrors.ReasonMissingField)

	_, err = e.CreateEmailTemplate(ctx, snap, model.EmailTemplateInput{Name: model.Some("T")})
	requireReason(t, err, apperrors.ReasonMissingField)

	_, err = e.CreateEmailTemplate(ctx, snap, model.EmailTemplateInput{Name: model.Some(strings.Repeat("t", 21)), Content: model.Some("x")})
	requireReason(t, err, apperrors.ReasonInvalidInput)

	_, err = e.CreateEmailTemplate(ctx, snap, model.EmailTemplateInput{Name: model.Some("Admin_Template"), Content: model.Some("x")})
	requireReason(t, err, apperrors.ReasonConflict)

	tmpl, err := e.CreateEmailTemplate(ctx, snap, model.EmailTemplateInput{Name: model.Some(strings.Repeat("t", 20)), Content: model.Some("x")})
	require.NoError(t, err)
	assert.Equal(t, "x", tmpl.Content)
}

// --- Campaign create ---

func TestCreateCampaignAccepted(t *testing.T) {
	c, err := NewEngine().CreateCampaign(context.Background(), newFakeSnapshot(), validCampaign(), now)
	require.NoError(t, err)
	assert.Equal(t, "Launch", c.Name)
	assert.True(t, c.SendTime.Equal(now.Add(time.Hour)))
	require.NotNil(t, c.TemplateName)
	assert.Equal(t, "Admin_Template", *c.TemplateName)
}

func TestCreateCampaignOptionalReferencesMayBeOmitted(t *testing.T) {
	in := validCampaign()
	in.RecipientCategory = model.OptionalString{}
	in.TemplateName = model.Null()

	c, err := NewEngine().CreateCampaign(context.Background(), newFakeSnapshot(), in, now)
	require.NoError(t, err)
	assert.Nil(t, c.RecipientCategory)
	assert.Nil(t, c.TemplateName)
}

func TestCreateCampaignRejections(t *testing.T) {
	snap := newFakeSnapshot()
	snap.campaigns["Launch"] = &model.Campaign{ID: 9, Name: "Launch"}

	cases := []struct {
		name   string
		mutate func(in *model.CampaignInput)
		want   apperrors.Reason
	}{
		{"missing name", func(in *model.CampaignInput) { in.Name = model.OptionalString{} }, apperrors.ReasonMissingField},
		{"empty name", func(in *model.CampaignInput) { in.Name = model.Some("") }, apperrors.ReasonMissingField},
		{"missing send time", func(in *model.CampaignInput) { in.SendTime = model.Null() }, apperrors.ReasonMissingField},
		{"missing template", func(in *model.CampaignInput) { in.CampaignTemplate = model.Some("") }, apperrors.ReasonMissingField},
		{"name too long", func(in *model.CampaignInput) { in.Name = model.Some(strings.Repeat("c", 61)) }, apperrors.ReasonInvalidInput},
		{"bad send time", func(in *model.CampaignInput) { in.SendTime = model.Some("next week") }, apperrors.ReasonInvalidInput},
		{"send time now", func(in *model.CampaignInput) { in.SendTime = model.Some(now.Format(time.RFC3339)) }, apperrors.ReasonInvalidInput},
		{"send time past", func(in *model.CampaignInput) { in.SendTime = model.Some("2020-01-01T00:00:00") }, apperrors.ReasonInvalidInput},
		{"ghost category", func(in *model.CampaignInput) { in.RecipientCategory = model.Some("ghost") }, apperrors.ReasonNotFound},
		{"ghost template", func(in *model.CampaignInput) { in.TemplateName = model.Some("ghost") }, apperrors.ReasonNotFound},
		{"duplicate name", func(in *model.CampaignInput) {}, apperrors.ReasonConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCampaign()
			tc.mutate(&in)
			_, err := NewEngine().CreateCampaign(context.Background(), snap, in, now)
			requireReason(t, err, tc.want)
		})
	}
}

func TestCreateCampaignFirstFailureWins(t *testing.T) {
	// too long and in the past: length is checked first
	in := validCampaign()
	in.Name = model.Some(strings.Repeat("c", 61))
	in.SendTime = model.Some("2020-01-01")
	in.RecipientCategory = model.Some("ghost")

	_, err := NewEngine().CreateCampaign(context.Background(), newFakeSnapshot(), in, now)
	rej := requireReason(t, err, apperrors.ReasonInvalidInput)
	assert.Contains(t, rej.Message, "maximum length")

	// existence before uniqueness
	snap := newFakeSnapshot()
	snap.campaigns["Launch"] = &model.Campaign{ID: 1, Name: "Launch"}
	in = validCampaign()
	in.TemplateName = model.Some("ghost")
	_, err = NewEngine().CreateCampaign(context.Background(), snap, in, now)
	requireReason(t, err, apperrors.ReasonNotFound)
}

func TestCreateCampaignStoreFailure(t *testing.T) {
	snap := newFakeSnapshot()
	snap.err = errors.New("db down")

	_, err := NewEngine().CreateCampaign(context.Background(), snap, validCampaign(), now)
	require.Error(t, err)
	_, isRejection := apperrors.AsRejection(err)
	assert.False(t, isRejection)
}

// --- Campaign update ---

func storedCampaign() *model.Campaign {
	category := "admin"
	return &model.Campaign{
		ID:                5,
		Name:              "Admin_camp",
		SendTime:          now.Add(5 * time.Hour),
		CampaignTemplate:  "Hello Admins",
		RecipientCategory: &category,
		Status:            model.StatusScheduled,
	}
}

func TestUpdateCampaignUnknownName(t *testing.T) {
	_, err := NewEngine().UpdateCampaign(context.Background(), newFakeSnapshot(), "nope", model.CampaignInput{}, FullUpdate, now)
	requireReason(t, err, apperrors.ReasonNotFound)
}

func TestUpdateCampaignOnlyPresentFields(t *testing.T) {
	snap := newFakeSnapshot()
	snap.campaigns["Admin_camp"] = storedCampaign()

	u, err := NewEngine().UpdateCampaign(context.Background(), snap, "Admin_camp", model.CampaignInput{Name: model.Some("Renamed")}, PartialUpdate, now)
	require.NoError(t, err)
	require.NotNil(t, u.Name)
	assert.Equal(t, "Renamed", *u.Name)
	assert.Nil(t, u.SendTime)
	assert.Nil(t, u.CampaignTemplate)
	assert.Nil(t, u.RecipientCategory)
	assert.Nil(t, u.TemplateName)
	assert.Equal(t, 5, u.Current.ID)
}

func TestUpdateCampaignRenameToSelf(t *testing.T) {
	snap := newFakeSnapshot()
	snap.campaigns["Admin_camp"] = storedCampaign()

	_, err := NewEngine().UpdateCampaign(context.Background(), snap, "Admin_camp", model.CampaignInput{Name: model.Some("Admin_camp")}, FullUpdate, now)
	assert.NoError(t, err)
}

func TestUpdateCampaignRenameCollision(t *testing.T) {
	snap := newFakeSnapshot()
	snap.campaigns["Admin_camp"] = storedCampaign()
	snap.campaigns["Vendor_camp"] = &model.Campaign{ID: 6, Name: "Vendor_camp"}

	_, err := NewEngine().UpdateCampaign(context.Background(), snap, "Admin_camp", model.CampaignInput{Name: model.Some("Vendor_camp")}, FullUpdate, now)
	requireReason(t, err, apperrors.ReasonConflict)
}

func TestUpdateCampaignPresentEmptyFields(t *testing.T) {
	cases := []struct {
		name string
		in   model.CampaignInput
		mode UpdateMode
		want apperrors.Reason
	}{
		{"null name", model.CampaignInput{Name: model.Null()}, FullUpdate, apperrors.ReasonMissingField},
		{"empty send time", model.CampaignInput{SendTime: model.Some("")}, FullUpdate, apperrors.ReasonMissingField},
		{"empty template put", model.CampaignInput{CampaignTemplate: model.Some("")}, FullUpdate, apperrors.ReasonMissingField},
		{"empty template patch", model.CampaignInput{CampaignTemplate: model.Some("")}, PartialUpdate, apperrors.ReasonNotFound},
		{"null template patch", model.CampaignInput{CampaignTemplate: model.Null()}, PartialUpdate, apperrors.ReasonNotFound},
		{"null category", model.CampaignInput{RecipientCategory: model.Null()}, FullUpdate, apperrors.ReasonNotFound},
		{"empty template name", model.CampaignInput{TemplateName: model.Some("")}, PartialUpdate, apperrors.ReasonNotFound},
		{"past send time", model.CampaignInput{SendTime: model.Some("2020-01-01T00:00:00Z")}, PartialUpdate, apperrors.ReasonInvalidInput},
		{"name too long", model.CampaignInput{Name: model.Some(strings.Repeat("x", 61))}, FullUpdate, apperrors.ReasonInvalidInput},
		{"ghost category", model.CampaignInput{RecipientCategory: model.Some("ghost")}, FullUpdate, apperrors.ReasonNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := newFakeSnapshot()
			snap.campaigns["Admin_camp"] = storedCampaign()
			_, err := NewEngine().UpdateCampaign(context.Background(), snap, "Admin_camp", tc.in, tc.mode, now)
			requireReason(t, err, tc.want)
		})
	}
}

func TestPatchEmptyTemplateFollowsPutWhenDisabled(t *testing.T) {
	snap := newFakeSnapshot()
	snap.campaigns["Admin_camp"] = storedCampaign()
	e := &Engine{PatchEmptyTemplateNotFound: false}

	_, err := e.UpdateCampaign(context.Background(), snap, "Admin_camp", model.CampaignInput{CampaignTemplate: model.Some("")}, PartialUpdate, now)
	requireReason(t, err, apperrors.ReasonMissingField)
}

// --- Campaign cancel ---

func TestCancelCampaign(t *testing.T) {
	e := NewEngine()
	snap := newFakeSnapshot()
	ctx := context.Background()

	_, err := e.CancelCampaign(ctx, snap, "")
	requireReason(t, err, apperrors.ReasonMissingField)

	_, err = e.CancelCampaign(ctx, snap, "ghost")
	requireReason(t, err, apperrors.ReasonNotFound)

	cancelled := storedCampaign()
	cancelled.Status = model.StatusCancelled
	snap.campaigns["Admin_camp"] = cancelled
	c, err := e.CancelCampaign(ctx, snap, "Admin_camp")
	require.NoError(t, err)
	assert.Equal(t, 5, c.ID)
}
