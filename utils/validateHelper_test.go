package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseISODate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-10-20", time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)},
		{"2025-10-20T09:30", time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)},
		{"2025-10-20T09:30:15", time.Date(2025, 10, 20, 9, 30, 15, 0, time.UTC)},
		{"2025-10-20T09:00:00.000Z", time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)},
		{"2025-10-20T11:00:00+02:00", time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseISODate(tc.in)
		if err != nil {
			t.Fatalf("ParseISODate(%q) error: %v", tc.in, err)
		}
		if !got.Equal(tc.want) || got.Location() != time.UTC {
			t.Fatalf("ParseISODate(%q) expected %v, got %v", tc.in, tc.want, got)
		}
	}
	for _, bad := range []string{"", "tomorrow", "20/10/2025", "2025-02-30"} {
		if _, err := ParseISODate(bad); err == nil {
			t.Fatalf("ParseISODate(%q) should fail", bad)
		}
	}
}

func TestIsUUID(t *testing.T) {
	if !IsUUID("3f2b8c1e-9d4a-4e7b-8c6d-5a4b3c2d1e0f") {
		t.Fatalf("canonical uuid rejected")
	}
	for _, bad := range []string{"", "123", "3f2b8c1e9d4a4e7b8c6d5a4b3c2d1e0f", "urn:uuid:3f2b8c1e-9d4a-4e7b-8c6d-5a4b3c2d1e0f", "zzzzzzzz-9d4a-4e7b-8c6d-5a4b3c2d1e0f"} {
		if IsUUID(bad) {
			t.Fatalf("IsUUID(%q) should be false", bad)
		}
	}
}

func TestEmailHelpers(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Fatalf("unexpected normalized email %q", got)
	}
	if !IsValidEmail("jane@example.com") || IsValidEmail("jane@") || IsValidEmail("") {
		t.Fatalf("email validation mismatch")
	}
}

func TestPhoneHelpers(t *testing.T) {
	if err := ValidatePhoneNumber("+1 201-555-0123", "US"); err != nil {
		t.Fatalf("expected valid phone, got %v", err)
	}
	if err := ValidatePhoneNumber("12345", "US"); err == nil {
		t.Fatalf("short number should be invalid")
	}
	got, err := FormatPhoneNumber("(201) 555-0123", "US")
	if err != nil || got != "+12015550123" {
		t.Fatalf("expected +12015550123, got %q (%v)", got, err)
	}
}

func TestProcessValidationErrors(t *testing.T) {
	type payload struct {
		Name  string `json:"client_name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Kind  string `json:"type" validate:"omitempty,oneof=Polite Firm Final"`
	}
	err := Validator().Struct(payload{Email: "nope", Kind: "Rude"})
	errs := ProcessValidationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", errs)
	}
	want := []FieldError{
		{Field: "client_name", Message: "client_name is required"},
		{Field: "email", Message: "A valid email is required"},
		{Field: "type", Message: "must be one of: Polite, Firm, Final"},
	}
	for i, fe := range want {
		if errs[i] != fe {
			t.Fatalf("error %d expected %+v, got %+v", i, fe, errs[i])
		}
	}

	other := ProcessValidationErrors(errors.New("boom"))
	if len(other) != 1 || other[0].Field != "body" {
		t.Fatalf("non-validator errors should map to body, got %v", other)
	}
}

func TestValidationErrorsHelpers(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Fatalf("empty list should be nil error")
	}
	errs.Add("email", "bad")
	err := errs.OrNil()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 1 {
		t.Fatalf("expected one violation, got %v", err)
	}

	cause := errors.New("dial tcp: refused")
	storage := NewStorageError("Get", cause)
	if !errors.Is(storage, cause) {
		t.Fatalf("StorageError should unwrap to its cause")
	}
	if NewStorageError("Get", nil) != nil {
		t.Fatalf("nil cause should give nil error")
	}
}
