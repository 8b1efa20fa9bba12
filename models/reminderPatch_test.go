package models_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mmdatafocus/cashflow_guard/models"
	"github.com/mmdatafocus/cashflow_guard/utils"
)

func body(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad test body %s: %v", raw, err)
	}
	return m
}

func TestParseReminderPatch_IgnoresUnknownKeys(t *testing.T) {
	patch, err := models.ParseReminderPatch(body(t, `{"status":"sent","reminder_id":"x","Status":"failed","amount":10}`))
	if err != nil {
		t.Fatalf("ParseReminderPatch: %v", err)
	}
	if patch.Status == nil || *patch.Status != models.ReminderStatusSent {
		t.Fatalf("expected status sent, got %v", patch.Status)
	}
	if patch.ClientName != nil || patch.Email != nil || patch.InvoiceId != nil || patch.Type != nil {
		t.Fatalf("only status should be set: %+v", patch)
	}
}

func TestParseReminderPatch_Aliases(t *testing.T) {
	patch, err := models.ParseReminderPatch(body(t, `{"message_status":"failed","due_date":"2025-12-01"}`))
	if err != nil {
		t.Fatalf("ParseReminderPatch: %v", err)
	}
	if patch.Status == nil || *patch.Status != models.ReminderStatusFailed {
		t.Fatalf("message_status should set status, got %v", patch.Status)
	}
	want := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	if patch.ReminderDate == nil || !patch.ReminderDate.Equal(want) {
		t.Fatalf("due_date should set reminder_date, got %v", patch.ReminderDate)
	}

	// the canonical key wins over its alias
	patch, err = models.ParseReminderPatch(body(t, `{"due_date":"2025-01-01","reminder_date":"2025-02-01","message_status":"failed","status":"partial"}`))
	if err != nil {
		t.Fatalf("ParseReminderPatch: %v", err)
	}
	if !patch.ReminderDate.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected reminder_date to win, got %v", patch.ReminderDate)
	}
	if *patch.Status != models.ReminderStatusPartial {
		t.Fatalf("expected status to win, got %v", *patch.Status)
	}
}

func TestParseReminderPatch_NullIsAbsent(t *testing.T) {
	patch, err := models.ParseReminderPatch(body(t, `{"message":null,"status":null}`))
	if err != nil {
		t.Fatalf("ParseReminderPatch: %v", err)
	}
	if !patch.IsEmpty() {
		t.Fatalf("null values should leave the patch empty: %+v", patch)
	}
}

func TestParseReminderPatch_NormalizesValues(t *testing.T) {
	patch, err := models.ParseReminderPatch(body(t, `{"email":"  Jane@Example.COM ","client_name":"  Jane  ","invoice_id":"77"}`))
	if err != nil {
		t.Fatalf("ParseReminderPatch: %v", err)
	}
	if *patch.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", *patch.Email)
	}
	if *patch.ClientName != "Jane" {
		t.Fatalf("client_name not trimmed: %q", *patch.ClientName)
	}
	if n, ok := patch.InvoiceId.Int(); !ok || n != 77 {
		t.Fatalf("invoice_id expected integer 77, got %v", patch.InvoiceId)
	}
}

func TestParseReminderPatch_CollectsViolations(t *testing.T) {
	_, err := models.ParseReminderPatch(body(t, `{"email":"bad","status":"SENT","type":"rude","invoice_id":-3,"reminder_date":"soon"}`))
	var verrs utils.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	fields := map[string]bool{}
	for _, fe := range verrs {
		fields[fe.Field] = true
	}
	for _, f := range []string{"invoice_id", "email", "reminder_date", "status", "type"} {
		if !fields[f] {
			t.Fatalf("expected violation for %s, got %v", f, verrs)
		}
	}
}
