package models

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/utils"
)

func newTestMockStore() (*MockReminderStore, *time.Time) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMockReminderStore()
	s.now = func() time.Time { return clock }
	return s, &clock
}

func testReminder(name string, date time.Time) Reminder {
	return Reminder{
		ReminderId:   uuid.New(),
		InvoiceId:    IntegerRef(1),
		ClientName:   name,
		Email:        "billing@" + name + ".test",
		ReminderDate: date,
		Type:         ReminderTypePolite,
		Status:       ReminderStatusPending,
	}
}

func TestMockReminderStore_ListsSeedsFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMockStore()

	views, err := s.List(ctx, ReminderFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 || views[0].ReminderId != SeedReminderAcmeId || views[1].ReminderId != SeedReminderBetaId {
		t.Fatalf("expected the two fixtures, got %+v", views)
	}

	first, _ := s.Insert(ctx, testReminder("first", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	// an earlier date still lists after: created rows keep insertion order
	second, _ := s.Insert(ctx, testReminder("second", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	views, _ = s.List(ctx, ReminderFilter{})
	if len(views) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(views))
	}
	if views[2].ReminderId != first.ReminderId || views[3].ReminderId != second.ReminderId {
		t.Fatalf("created rows out of insertion order: %v, %v", views[2].ReminderId, views[3].ReminderId)
	}
}

func TestMockReminderStore_InsertGet(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMockStore()

	r := testReminder("acme", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	created, err := s.Insert(ctx, r)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !created.CreatedAt.Equal(*clock) || !created.UpdatedAt.Equal(*clock) {
		t.Fatalf("timestamps not set from clock: %v %v", created.CreatedAt, created.UpdatedAt)
	}
	if created.ClientEmail == nil || *created.ClientEmail != r.Email {
		t.Fatalf("client_email should mirror email, got %v", created.ClientEmail)
	}
	if created.Amount != nil || created.ClientId != nil || created.CompanyName != nil {
		t.Fatalf("created rows carry no invoice or client enrichment: %+v", created)
	}

	got, err := s.Get(ctx, r.ReminderId)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ClientName != r.ClientName || got.InvoiceId != r.InvoiceId || !got.ReminderDate.Equal(r.ReminderDate) {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	seed, err := s.Get(ctx, SeedReminderBetaId)
	if err != nil || seed.ClientName != "Beta LLC" {
		t.Fatalf("expected Beta fixture, got %+v (%v)", seed, err)
	}

	if _, err := s.Get(ctx, uuid.New()); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMockReminderStore_UpdateMerges(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMockStore()
	r := testReminder("acme", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	s.Insert(ctx, r)

	*clock = clock.Add(time.Hour)
	sent := ReminderStatusSent
	email := "new@acme.test"
	updated, err := s.Update(ctx, r.ReminderId, ReminderPatch{Status: &sent, Email: &email})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != ReminderStatusSent || updated.Email != email {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.ClientName != r.ClientName || updated.Type != r.Type || updated.InvoiceId != r.InvoiceId {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.Equal(*clock) || updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Fatalf("updated_at not refreshed: %v", updated.UpdatedAt)
	}
	if *updated.ClientEmail != email {
		t.Fatalf("client_email should follow email, got %v", *updated.ClientEmail)
	}
}

func TestMockReminderStore_UpdateSeedNotFound(t *testing.T) {
	sent := ReminderStatusSent
	s, _ := newTestMockStore()
	if _, err := s.Update(context.Background(), SeedReminderAcmeId, ReminderPatch{Status: &sent}); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("fixtures are read-only, expected not found, got %v", err)
	}
	if _, err := s.Update(context.Background(), uuid.New(), ReminderPatch{Status: &sent}); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMockReminderStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMockStore()
	r := testReminder("acme", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	s.Insert(ctx, r)

	if err := s.Delete(ctx, r.ReminderId); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, r.ReminderId); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("deleted row still readable: %v", err)
	}
	if err := s.Delete(ctx, r.ReminderId); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("second delete expected not found, got %v", err)
	}

	if err := s.Delete(ctx, SeedReminderAcmeId); err != nil {
		t.Fatalf("deleting a fixture should succeed silently, got %v", err)
	}
	views, _ := s.List(ctx, ReminderFilter{})
	if len(views) != 2 {
		t.Fatalf("fixtures must survive delete, got %d rows", len(views))
	}
}

func TestMockReminderStore_ListPagingAndFilters(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMockStore()
	s.Insert(ctx, testReminder("later", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	one := 1
	page, _ := s.List(ctx, ReminderFilter{Limit: &one, Offset: &one})
	if len(page) != 1 || page[0].ReminderId != SeedReminderBetaId {
		t.Fatalf("limit=1&offset=1 expected Beta fixture, got %+v", page)
	}

	big := 50
	if page, _ := s.List(ctx, ReminderFilter{Offset: &big}); len(page) != 0 {
		t.Fatalf("offset past the end expected empty, got %d", len(page))
	}

	partial := "partial"
	if page, _ := s.List(ctx, ReminderFilter{Status: &partial}); len(page) != 1 || page[0].ReminderId != SeedReminderBetaId {
		t.Fatalf("status filter expected Beta only, got %+v", page)
	}

	from := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if page, _ := s.List(ctx, ReminderFilter{From: &from, To: &to}); len(page) != 1 || page[0].ReminderId != SeedReminderBetaId {
		t.Fatalf("date window expected Beta only, got %+v", page)
	}
}

func TestMockReminderStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMockStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Insert(ctx, testReminder("c", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
			s.List(ctx, ReminderFilter{})
		}()
	}
	wg.Wait()

	views, _ := s.List(ctx, ReminderFilter{})
	if len(views) != 52 {
		t.Fatalf("expected 52 rows, got %d", len(views))
	}
}

func TestMockReminderStore_ReturnedViewsDoNotAliasStoredRows(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMockStore()

	seed, err := s.Get(ctx, SeedReminderAcmeId)
	if err != nil {
		t.Fatalf("Get seed: %v", err)
	}
	*seed.InvoiceStatus = "paid"
	*seed.CompanyName = "Mutated"
	*seed.ClientEmail = "x@y.z"

	listed, _ := s.List(ctx, ReminderFilter{})
	*listed[0].Amount = listed[0].Amount.Neg()
	*listed[0].Phone = "0"

	again, _ := s.Get(ctx, SeedReminderAcmeId)
	if *again.InvoiceStatus != "unpaid" || *again.CompanyName != "Acme Corporation" || *again.Phone != "+1-555-0100" {
		t.Fatalf("fixture changed through a returned view: %+v", again)
	}
	if again.Amount.IsNegative() || *again.ClientEmail == "x@y.z" {
		t.Fatalf("fixture amount or email changed through a returned view: %+v", again)
	}

	msg := "first"
	r := testReminder("alias", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	r.Message = &msg
	created, _ := s.Insert(ctx, r)
	msg = "caller edit"
	*created.Message = "returned edit"

	stored, _ := s.Get(ctx, r.ReminderId)
	if *stored.Message != "first" {
		t.Fatalf("stored message changed through an alias, got %q", *stored.Message)
	}
}
