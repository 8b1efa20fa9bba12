package models

import (
	"encoding/json"
	"strings"

	"github.com/mmdatafocus/cashflow_guard/utils"
)

type patchSetter func(p *ReminderPatch, raw json.RawMessage) string

// reminderPatchFields lists every body key an update honours. Aliases come
// first so the canonical key wins when a body carries both.
var reminderPatchFields = []struct {
	key string
	set patchSetter
}{
	{"invoice_id", setPatchInvoiceId},
	{"client_name", setPatchClientName},
	{"email", setPatchEmail},
	{"due_date", setPatchReminderDate},
	{"reminder_date", setPatchReminderDate},
	{"message", setPatchMessage},
	{"message_status", setPatchStatus},
	{"status", setPatchStatus},
	{"type", setPatchType},
}

// ParseReminderPatch reads the allow-listed keys from an update body. Keys
// outside the list are ignored; null values count as absent.
func ParseReminderPatch(body map[string]json.RawMessage) (ReminderPatch, error) {
	var patch ReminderPatch
	var errs utils.ValidationErrors
	for _, f := range reminderPatchFields {
		raw, ok := body[f.key]
		if !ok || isJSONNull(raw) {
			continue
		}
		if msg := f.set(&patch, raw); msg != "" {
			errs.Add(f.key, msg)
		}
	}
	return patch, errs.OrNil()
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func setPatchInvoiceId(p *ReminderPatch, raw json.RawMessage) string {
	ref, err := ParseInvoiceRefJSON(raw)
	if err != nil {
		return err.Error()
	}
	p.InvoiceId = &ref
	return ""
}

func setPatchClientName(p *ReminderPatch, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	if !ok {
		return "must be a string"
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "client_name is required"
	}
	if len(s) > 100 {
		return "must be at most 100 characters"
	}
	p.ClientName = &s
	return ""
}

func setPatchEmail(p *ReminderPatch, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	if !ok {
		return "A valid email is required"
	}
	s = utils.NormalizeEmail(s)
	if !utils.IsValidEmail(s) || len(s) > 100 {
		return "A valid email is required"
	}
	p.Email = &s
	return ""
}

func setPatchReminderDate(p *ReminderPatch, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	if !ok {
		return "must be an ISO 8601 date"
	}
	t, err := utils.ParseISODate(s)
	if err != nil {
		return err.Error()
	}
	p.ReminderDate = &t
	return ""
}

func setPatchMessage(p *ReminderPatch, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	if !ok {
		return "must be a string"
	}
	p.Message = &s
	return ""
}

func setPatchStatus(p *ReminderPatch, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	status := ReminderStatus(s)
	if !ok || !status.IsValid() {
		return "must be one of: pending, sent, failed, partial"
	}
	p.Status = &status
	return ""
}

func setPatchType(p *ReminderPatch, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	t := ReminderType(s)
	if !ok || !t.IsValid() {
		return "must be one of: Polite, Firm, Final"
	}
	p.Type = &t
	return ""
}
