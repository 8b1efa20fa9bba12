package models

import (
	"encoding/json"

	"github.com/mmdatafocus/cashflow_guard/utils"
)

type inputSetter func(in *NewReminder, raw json.RawMessage) string

// newReminderFields lists every body key a create honours. As with updates,
// aliases come first so the canonical key wins.
var newReminderFields = []struct {
	key string
	set inputSetter
}{
	{"invoice_id", func(in *NewReminder, raw json.RawMessage) string {
		in.InvoiceId = raw
		return ""
	}},
	{"client_name", func(in *NewReminder, raw json.RawMessage) string {
		s, ok := decodeString(raw)
		if !ok {
			return "must be a string"
		}
		in.ClientName = s
		return ""
	}},
	{"email", func(in *NewReminder, raw json.RawMessage) string {
		s, ok := decodeString(raw)
		if !ok {
			return "A valid email is required"
		}
		in.Email = s
		return ""
	}},
	{"due_date", setInputDueDate},
	{"reminder_date", setInputDueDate},
	{"message", func(in *NewReminder, raw json.RawMessage) string {
		s, ok := decodeString(raw)
		if !ok {
			return "must be a string"
		}
		in.Message = &s
		return ""
	}},
	{"message_status", setInputStatus},
	{"status", setInputStatus},
	{"type", func(in *NewReminder, raw json.RawMessage) string {
		s, ok := decodeString(raw)
		if !ok {
			in.Type = nil
			return "must be one of: Polite, Firm, Final"
		}
		t := ReminderType(s)
		in.Type = &t
		return ""
	}},
}

func setInputDueDate(in *NewReminder, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	if !ok {
		in.DueDate = nil
		return "must be an ISO 8601 date"
	}
	in.DueDate = &s
	return ""
}

func setInputStatus(in *NewReminder, raw json.RawMessage) string {
	s, ok := decodeString(raw)
	if !ok {
		in.Status = nil
		return "must be one of: pending, sent, failed, partial"
	}
	status := ReminderStatus(s)
	in.Status = &status
	return ""
}

// DecodeNewReminder reads a create body key by key. A value of the wrong JSON
// type is recorded and reported by validation together with every other
// violation. Unknown keys are ignored; null values count as absent.
func DecodeNewReminder(body map[string]json.RawMessage) NewReminder {
	var in NewReminder
	for _, f := range newReminderFields {
		raw, ok := body[f.key]
		if !ok || isJSONNull(raw) {
			continue
		}
		if msg := f.set(&in, raw); msg != "" {
			in.decodeErrs.Add(f.key, msg)
		}
	}
	return in
}

// withoutFields drops violations for fields already reported in skip.
func withoutFields(errs, skip utils.ValidationErrors) utils.ValidationErrors {
	if len(skip) == 0 {
		return errs
	}
	seen := make(map[string]bool, len(skip))
	for _, fe := range skip {
		seen[fe.Field] = true
	}
	out := errs[:0]
	for _, fe := range errs {
		if !seen[fe.Field] {
			out = append(out, fe)
		}
	}
	return out
}
