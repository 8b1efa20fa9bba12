package models

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/shopspring/decimal"
)

var (
	SeedReminderAcmeId = uuid.MustParse("5b0c7a3e-1f2d-4e6a-9b8c-0d1e2f3a4b01")
	SeedReminderBetaId = uuid.MustParse("5b0c7a3e-1f2d-4e6a-9b8c-0d1e2f3a4b02")
)

// MockReminderStore keeps reminders in process memory for local development.
// Two read-only fixtures are always listed ahead of created rows.
type MockReminderStore struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]ReminderView
	order []uuid.UUID
	seeds []ReminderView
	now   func() time.Time
}

func NewMockReminderStore() *MockReminderStore {
	return &MockReminderStore{
		rows:  make(map[uuid.UUID]ReminderView),
		seeds: seedReminders(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func seedReminders() []ReminderView {
	created := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	acmeAmount := decimal.NewFromFloat(1500)
	betaAmount := decimal.RequireFromString("750.5")
	acmeClient := uuid.MustParse("0c1d2e3f-4a5b-4c6d-8e7f-9a0b1c2d3e01")
	betaClient := uuid.MustParse("0c1d2e3f-4a5b-4c6d-8e7f-9a0b1c2d3e02")

	return []ReminderView{
		{
			Reminder: Reminder{
				ReminderId:   SeedReminderAcmeId,
				InvoiceId:    UUIDRef(uuid.MustParse("9e8d7c6b-5a49-4838-a726-150403020101")),
				ClientName:   "Acme Corp",
				Email:        "accounts@acme.example",
				ReminderDate: time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC),
				Type:         ReminderTypePolite,
				Status:       ReminderStatusPending,
				CreatedAt:    created,
				UpdatedAt:    created,
			},
			Amount:             &acmeAmount,
			InvoiceStatus:      utils.NilIfEmpty("unpaid"),
			InvoiceDescription: utils.NilIfEmpty("Website design - final payment"),
			ClientId:           &acmeClient,
			ClientEmail:        utils.NilIfEmpty("accounts@acme.example"),
			CompanyName:        utils.NilIfEmpty("Acme Corporation"),
			Phone:              utils.NilIfEmpty("+1-555-0100"),
		},
		{
			Reminder: Reminder{
				ReminderId:   SeedReminderBetaId,
				InvoiceId:    UUIDRef(uuid.MustParse("9e8d7c6b-5a49-4838-a726-150403020102")),
				ClientName:   "Beta LLC",
				Email:        "billing@beta.example",
				ReminderDate: time.Date(2025, 10, 25, 10, 0, 0, 0, time.UTC),
				Type:         ReminderTypeFirm,
				Status:       ReminderStatusSent,
				CreatedAt:    created,
				UpdatedAt:    created,
			},
			Amount:             &betaAmount,
			InvoiceStatus:      utils.NilIfEmpty("partial"),
			InvoiceDescription: utils.NilIfEmpty("Monthly retainer"),
			ClientId:           &betaClient,
			ClientEmail:        utils.NilIfEmpty("billing@beta.example"),
			CompanyName:        utils.NilIfEmpty("Beta LLC"),
			Phone:              utils.NilIfEmpty("+1-555-0200"),
		},
	}
}

func (s *MockReminderStore) seed(id uuid.UUID) (ReminderView, bool) {
	for _, v := range s.seeds {
		if v.ReminderId == id {
			return v.clone(), true
		}
	}
	return ReminderView{}, false
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// clone copies v with fresh pointer fields so callers cannot write through
// to stored rows.
func (v ReminderView) clone() ReminderView {
	out := v
	out.Message = clonePtr(v.Message)
	out.Amount = clonePtr(v.Amount)
	out.InvoiceStatus = clonePtr(v.InvoiceStatus)
	out.InvoiceDescription = clonePtr(v.InvoiceDescription)
	out.ClientId = clonePtr(v.ClientId)
	out.ClientEmail = clonePtr(v.ClientEmail)
	out.CompanyName = clonePtr(v.CompanyName)
	out.Phone = clonePtr(v.Phone)
	return out
}

// Insert stores r under its own id. Created rows have no invoice or client
// to join, so only client_email is filled, from the reminder's email.
func (s *MockReminderStore) Insert(ctx context.Context, r Reminder) (*ReminderView, error) {
	now := s.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	view := ReminderView{Reminder: r, ClientEmail: utils.NilIfEmpty(r.Email)}.clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[r.ReminderId]; !exists {
		s.order = append(s.order, r.ReminderId)
	}
	s.rows[r.ReminderId] = view
	out := view.clone()
	return &out, nil
}

func (s *MockReminderStore) Get(ctx context.Context, id uuid.UUID) (*ReminderView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.rows[id]; ok {
		v = v.clone()
		return &v, nil
	}
	if v, ok := s.seed(id); ok {
		return &v, nil
	}
	return nil, utils.ErrorRecordNotFound
}

// Update merges patch into a created row. Fixtures cannot be updated.
func (s *MockReminderStore) Update(ctx context.Context, id uuid.UUID, patch ReminderPatch) (*ReminderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rows[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	patch.apply(&v.Reminder)
	v.ClientEmail = utils.NilIfEmpty(v.Email)
	v.UpdatedAt = s.now()
	s.rows[id] = v
	out := v.clone()
	return &out, nil
}

// Delete removes a created row. Deleting a fixture succeeds without effect.
func (s *MockReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; ok {
		delete(s.rows, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return nil
	}
	if _, ok := s.seed(id); ok {
		return nil
	}
	return utils.ErrorRecordNotFound
}

// List returns fixtures then created rows in insertion order, filtered the
// same way as the SQL store, then sliced by offset and limit.
func (s *MockReminderStore) List(ctx context.Context, filter ReminderFilter) ([]ReminderView, error) {
	s.mu.RLock()
	combined := make([]ReminderView, 0, len(s.seeds)+len(s.order))
	for _, v := range s.seeds {
		combined = append(combined, v.clone())
	}
	for _, id := range s.order {
		combined = append(combined, s.rows[id].clone())
	}
	s.mu.RUnlock()

	matched := combined[:0]
	for _, v := range combined {
		if filter.matches(v) {
			matched = append(matched, v)
		}
	}

	offset := 0
	if filter.Offset != nil && *filter.Offset > 0 {
		offset = *filter.Offset
	}
	if offset >= len(matched) {
		return []ReminderView{}, nil
	}
	matched = matched[offset:]
	if filter.Limit != nil {
		if limit := clampLimit(*filter.Limit); limit < len(matched) {
			matched = matched[:limit]
		}
	}
	return matched, nil
}

func (f ReminderFilter) matches(v ReminderView) bool {
	if f.Status != nil && (v.InvoiceStatus == nil || *v.InvoiceStatus != *f.Status) {
		return false
	}
	if f.From != nil && v.ReminderDate.Before(*f.From) {
		return false
	}
	if f.To != nil && v.ReminderDate.After(*f.To) {
		return false
	}
	return true
}
