package models_test

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/models"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestBuildReminderUpdate_OnlyPresentFields(t *testing.T) {
	id := uuid.New()
	status := models.ReminderStatusSent

	stmt, err := models.BuildReminderUpdate(id, models.ReminderPatch{Status: &status})
	if err != nil {
		t.Fatalf("BuildReminderUpdate: %v", err)
	}
	wantSQL := "UPDATE reminders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE reminder_id = ?"
	if stmt.SQL != wantSQL {
		t.Fatalf("expected %q, got %q", wantSQL, stmt.SQL)
	}
	wantArgs := []interface{}{"sent", id.String()}
	if !reflect.DeepEqual(stmt.Args, wantArgs) {
		t.Fatalf("expected args %v, got %v", wantArgs, stmt.Args)
	}
}

func TestBuildReminderUpdate_AllowListOrder(t *testing.T) {
	id := uuid.New()
	kind := models.ReminderTypeFirm
	ref := models.IntegerRef(5)
	when := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	// fields set out of order still render in allow-list order
	stmt, err := models.BuildReminderUpdate(id, models.ReminderPatch{
		Type:         &kind,
		ReminderDate: &when,
		ClientName:   strPtr("Acme"),
		InvoiceId:    &ref,
	})
	if err != nil {
		t.Fatalf("BuildReminderUpdate: %v", err)
	}
	wantSQL := "UPDATE reminders SET invoice_id = ?, client_name = ?, reminder_date = ?, type = ?, updated_at = CURRENT_TIMESTAMP WHERE reminder_id = ?"
	if stmt.SQL != wantSQL {
		t.Fatalf("expected %q, got %q", wantSQL, stmt.SQL)
	}
	if len(stmt.Args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(stmt.Args))
	}
	if stmt.Args[0] != ref || stmt.Args[1] != "Acme" || stmt.Args[2] != when || stmt.Args[3] != "Firm" {
		t.Fatalf("unexpected args %v", stmt.Args)
	}
	if stmt.Args[len(stmt.Args)-1] != id.String() {
		t.Fatalf("target id must be the last argument, got %v", stmt.Args)
	}
}

func TestBuildReminderUpdate_NoFields(t *testing.T) {
	if _, err := models.BuildReminderUpdate(uuid.New(), models.ReminderPatch{}); err != models.ErrNoFieldsToUpdate {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestBuildReminderSelect_NoFilter(t *testing.T) {
	stmt := models.BuildReminderSelect(models.ReminderFilter{})
	if strings.Contains(stmt.SQL, "WHERE") || strings.Contains(stmt.SQL, "LIMIT") || strings.Contains(stmt.SQL, "OFFSET") {
		t.Fatalf("unfiltered select should not constrain rows: %s", stmt.SQL)
	}
	if !strings.HasSuffix(stmt.SQL, "ORDER BY r.reminder_date ASC") {
		t.Fatalf("select must order by reminder_date: %s", stmt.SQL)
	}
	if !strings.Contains(stmt.SQL, "LEFT JOIN invoices i") || !strings.Contains(stmt.SQL, "LEFT JOIN clients c") {
		t.Fatalf("select must join invoices and clients: %s", stmt.SQL)
	}
	if len(stmt.Args) != 0 {
		t.Fatalf("expected no args, got %v", stmt.Args)
	}
}

func TestBuildReminderSelect_Filters(t *testing.T) {
	from := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	stmt := models.BuildReminderSelect(models.ReminderFilter{
		Status: strPtr("Pending"),
		From:   &from,
		To:     &to,
		Limit:  intPtr(10),
		Offset: intPtr(20),
	})
	if !strings.Contains(stmt.SQL, "WHERE i.status = ? AND r.reminder_date >= ? AND r.reminder_date <= ?") {
		t.Fatalf("unexpected predicates: %s", stmt.SQL)
	}
	if !strings.HasSuffix(stmt.SQL, "ORDER BY r.reminder_date ASC\nLIMIT ? OFFSET ?") {
		t.Fatalf("unexpected tail: %s", stmt.SQL)
	}
	wantArgs := []interface{}{"Pending", from, to, 10, 20}
	if !reflect.DeepEqual(stmt.Args, wantArgs) {
		t.Fatalf("expected args %v, got %v", wantArgs, stmt.Args)
	}
}

func TestBuildReminderSelect_ClampsPaging(t *testing.T) {
	cases := []struct {
		name     string
		filter   models.ReminderFilter
		wantTail string
		wantArgs []interface{}
	}{
		{"limit above max", models.ReminderFilter{Limit: intPtr(500)}, "\nLIMIT ?", []interface{}{100}},
		{"limit below min", models.ReminderFilter{Limit: intPtr(0)}, "\nLIMIT ?", []interface{}{1}},
		{"negative offset dropped", models.ReminderFilter{Offset: intPtr(-5)}, "ORDER BY r.reminder_date ASC", nil},
		{"offset without limit", models.ReminderFilter{Offset: intPtr(10)}, "\nLIMIT ? OFFSET ?", []interface{}{math.MaxInt32, 10}},
	}
	for _, tc := range cases {
		stmt := models.BuildReminderSelect(tc.filter)
		if !strings.HasSuffix(stmt.SQL, tc.wantTail) {
			t.Fatalf("%s: expected suffix %q, got %q", tc.name, tc.wantTail, stmt.SQL)
		}
		if !reflect.DeepEqual(stmt.Args, tc.wantArgs) {
			t.Fatalf("%s: expected args %v, got %v", tc.name, tc.wantArgs, stmt.Args)
		}
	}
}

func TestBuildReminderGet(t *testing.T) {
	id := uuid.New()
	stmt := models.BuildReminderGet(id)
	if !strings.HasSuffix(stmt.SQL, "WHERE r.reminder_id = ?") {
		t.Fatalf("unexpected get statement: %s", stmt.SQL)
	}
	if len(stmt.Args) != 1 || stmt.Args[0] != id.String() {
		t.Fatalf("unexpected args %v", stmt.Args)
	}
}
