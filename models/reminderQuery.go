package models

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	MinListLimit = 1
	MaxListLimit = 100
)

var ErrNoFieldsToUpdate = errors.New("no fields provided for update")

// Statement is SQL text with `?` placeholders and its bound arguments.
// gorm rewrites the placeholders for dialects that number them.
type Statement struct {
	SQL  string
	Args []interface{}
}

type reminderColumn struct {
	name  string
	value func(p ReminderPatch) (interface{}, bool)
}

// reminderUpdateColumns is the update allow-list, in statement order.
var reminderUpdateColumns = []reminderColumn{
	{"invoice_id", func(p ReminderPatch) (interface{}, bool) {
		if p.InvoiceId == nil {
			return nil, false
		}
		return *p.InvoiceId, true
	}},
	{"client_name", func(p ReminderPatch) (interface{}, bool) {
		if p.ClientName == nil {
			return nil, false
		}
		return *p.ClientName, true
	}},
	{"email", func(p ReminderPatch) (interface{}, bool) {
		if p.Email == nil {
			return nil, false
		}
		return *p.Email, true
	}},
	{"reminder_date", func(p ReminderPatch) (interface{}, bool) {
		if p.ReminderDate == nil {
			return nil, false
		}
		return *p.ReminderDate, true
	}},
	{"message", func(p ReminderPatch) (interface{}, bool) {
		if p.Message == nil {
			return nil, false
		}
		return *p.Message, true
	}},
	{"status", func(p ReminderPatch) (interface{}, bool) {
		if p.Status == nil {
			return nil, false
		}
		return string(*p.Status), true
	}},
	{"type", func(p ReminderPatch) (interface{}, bool) {
		if p.Type == nil {
			return nil, false
		}
		return string(*p.Type), true
	}},
}

// BuildReminderUpdate renders an UPDATE touching only the patch's fields,
// plus updated_at. The id is always the last argument.
func BuildReminderUpdate(id uuid.UUID, patch ReminderPatch) (Statement, error) {
	sets := make([]string, 0, len(reminderUpdateColumns)+1)
	args := make([]interface{}, 0, len(reminderUpdateColumns)+1)
	for _, col := range reminderUpdateColumns {
		v, ok := col.value(patch)
		if !ok {
			continue
		}
		sets = append(sets, col.name+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return Statement{}, ErrNoFieldsToUpdate
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id.String())

	return Statement{
		SQL:  "UPDATE reminders SET " + strings.Join(sets, ", ") + " WHERE reminder_id = ?",
		Args: args,
	}, nil
}

const reminderViewSelect = `SELECT
	r.reminder_id, r.invoice_id, r.client_name, r.email, r.reminder_date,
	r.message, r.type, r.status, r.created_at, r.updated_at,
	i.amount, i.status AS invoice_status, i.description AS invoice_description,
	c.client_id, COALESCE(c.email, r.email) AS client_email, c.company_name, c.phone
FROM reminders r
LEFT JOIN invoices i ON r.invoice_id = i.invoice_id
LEFT JOIN clients c ON i.client_id = c.client_id`

// BuildReminderSelect renders the enriched list query for a filter.
func BuildReminderSelect(filter ReminderFilter) Statement {
	var sb strings.Builder
	sb.WriteString(reminderViewSelect)

	var preds []string
	var args []interface{}
	if filter.Status != nil {
		preds = append(preds, "i.status = ?")
		args = append(args, *filter.Status)
	}
	if filter.From != nil {
		preds = append(preds, "r.reminder_date >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		preds = append(preds, "r.reminder_date <= ?")
		args = append(args, *filter.To)
	}
	if len(preds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(preds, " AND "))
	}

	sb.WriteString("\nORDER BY r.reminder_date ASC")

	offset := 0
	if filter.Offset != nil && *filter.Offset > 0 {
		offset = *filter.Offset
	}
	switch {
	case filter.Limit != nil:
		sb.WriteString("\nLIMIT ?")
		args = append(args, clampLimit(*filter.Limit))
	case offset > 0:
		// MySQL has no OFFSET without LIMIT.
		sb.WriteString("\nLIMIT ?")
		args = append(args, math.MaxInt32)
	}
	if offset > 0 {
		sb.WriteString(" OFFSET ?")
		args = append(args, offset)
	}

	return Statement{SQL: sb.String(), Args: args}
}

// BuildReminderGet renders the enriched single-row query.
func BuildReminderGet(id uuid.UUID) Statement {
	return Statement{
		SQL:  reminderViewSelect + "\nWHERE r.reminder_id = ?",
		Args: []interface{}{id.String()},
	}
}

func clampLimit(n int) int {
	if n < MinListLimit {
		return MinListLimit
	}
	if n > MaxListLimit {
		return MaxListLimit
	}
	return n
}
