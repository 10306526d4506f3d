// internal/repository/memory_store.go
package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/model"
)

// memoryState keeps rows in insertion order, which is also id order.
// Each collection numbers its own rows, like a table sequence.
type memoryState struct {
	recipients []model.Recipient
	lists      []model.RecipientList
	templates  []model.EmailTemplate
	campaigns  []model.Campaign
	seq        sequences
}

type sequences struct {
	recipients, lists, templates, campaigns int
}

func (s memoryState) clone() memoryState {
	return memoryState{
		recipients: slices.Clone(s.recipients),
		lists:      slices.Clone(s.lists),
		templates:  slices.Clone(s.templates),
		campaigns:  slices.Clone(s.campaigns),
		seq:        s.seq,
	}
}

// MemoryStore is the catalog kept in process memory. One transaction runs
// at a time; its writes land on a copy that replaces the state on success.
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := &memoryTx{state: s.state.clone()}
	if err := fn(work); err != nil {
		return err
	}
	s.state = work.state
	return nil
}

func (s *MemoryStore) Empty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	return len(st.recipients) == 0 && len(st.lists) == 0 && len(st.templates) == 0 && len(st.campaigns) == 0, nil
}

func (s *MemoryStore) Wipe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// sequences survive a wipe, as they do in SQL
	s.state = memoryState{seq: s.state.seq}
	return nil
}

type memoryTx struct {
	state memoryState
}

func next(seq *int) int {
	*seq++
	return *seq
}

func (t *memoryTx) RecipientByEmail(_ context.Context, email string) (*model.Recipient, error) {
	for _, r := range t.state.recipients {
		if r.Email == email {
			return &r, nil
		}
	}
	return nil, nil
}

func (t *memoryTx) RecipientList(_ context.Context, category string) (*model.RecipientList, error) {
	for _, l := range t.state.lists {
		if l.RecipientCategory == category {
			return &l, nil
		}
	}
	return nil, nil
}

func (t *memoryTx) EmailTemplate(_ context.Context, name string) (*model.EmailTemplate, error) {
	for _, tmpl := range t.state.templates {
		if tmpl.Name == name {
			return &tmpl, nil
		}
	}
	return nil, nil
}

func (t *memoryTx) Campaign(_ context.Context, name string) (*model.Campaign, error) {
	for _, c := range t.state.campaigns {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (t *memoryTx) InsertRecipient(ctx context.Context, r *model.Recipient) error {
	if existing, _ := t.RecipientByEmail(ctx, r.Email); existing != nil {
		return fmt.Errorf("insert recipient: %w: email %q", apperrors.ErrDuplicate, r.Email)
	}
	r.ID = next(&t.state.seq.recipients)
	t.state.recipients = append(t.state.recipients, *r)
	return nil
}

func (t *memoryTx) InsertRecipientList(ctx context.Context, l *model.RecipientList) error {
	if existing, _ := t.RecipientList(ctx, l.RecipientCategory); existing != nil {
		return fmt.Errorf("insert recipient list: %w: category %q", apperrors.ErrDuplicate, l.RecipientCategory)
	}
	l.ID = next(&t.state.seq.lists)
	t.state.lists = append(t.state.lists, *l)
	return nil
}

func (t *memoryTx) InsertEmailTemplate(ctx context.Context, tmpl *model.EmailTemplate) error {
	if existing, _ := t.EmailTemplate(ctx, tmpl.Name); existing != nil {
		return fmt.Errorf("insert email template: %w: name %q", apperrors.ErrDuplicate, tmpl.Name)
	}
	tmpl.ID = next(&t.state.seq.templates)
	t.state.templates = append(t.state.templates, *tmpl)
	return nil
}

func (t *memoryTx) InsertCampaign(ctx context.Context, c *model.Campaign) error {
	if existing, _ := t.Campaign(ctx, c.Name); existing != nil {
		return fmt.Errorf("insert campaign: %w: name %q", apperrors.ErrDuplicate, c.Name)
	}
	c.ID = next(&t.state.seq.campaigns)
	t.state.campaigns = append(t.state.campaigns, *c)
	return nil
}

func (t *memoryTx) UpdateCampaign(_ context.Context, c *model.Campaign) error {
	idx := -1
	for i, existing := range t.state.campaigns {
		if existing.ID == c.ID {
			idx = i
			continue
		}
		if existing.Name == c.Name {
			return fmt.Errorf("update campaign: %w: name %q", apperrors.ErrDuplicate, c.Name)
		}
	}
	if idx < 0 {
		return apperrors.NewCampaignNotFound(c.ID)
	}
	t.state.campaigns[idx] = *c
	return nil
}

func (t *memoryTx) ListRecipients(context.Context) ([]model.Recipient, error) {
	return append([]model.Recipient{}, t.state.recipients...), nil
}

func (t *memoryTx) ListRecipientLists(context.Context) ([]model.RecipientList, error) {
	return append([]model.RecipientList{}, t.state.lists...), nil
}

func (t *memoryTx) ListEmailTemplates(context.Context) ([]model.EmailTemplate, error) {
	return append([]model.EmailTemplate{}, t.state.templates...), nil
}

func (t *memoryTx) ListCampaigns(context.Context) ([]model.Campaign, error) {
	return append([]model.Campaign{}, t.state.campaigns...), nil
}

func (t *memoryTx) RecipientsByCategory(_ context.Context, category string) ([]model.Recipient, error) {
	out := []model.Recipient{}
	for _, r := range t.state.recipients {
		if r.RecipientCategory != nil && *r.RecipientCategory == category {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *memoryTx) CampaignsByStatus(_ context.Context, status model.CampaignStatus) ([]model.Campaign, error) {
	out := []model.Campaign{}
	for _, c := range t.state.campaigns {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}
