package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/utils"
)

var ErrInvalidInvoiceRef = errors.New("invoice_id is required and must be an integer or UUID")

type InvoiceRefKind uint8

const (
	InvoiceRefNone InvoiceRefKind = iota
	InvoiceRefInteger
	InvoiceRefUUID
)

// InvoiceRef is the reference a reminder holds to its invoice: either an
// integer id or a UUID. The zero value is "no reference".
type InvoiceRef struct {
	kind InvoiceRefKind
	num  uint64
	id   uuid.UUID
}

func IntegerRef(n uint64) InvoiceRef {
	return InvoiceRef{kind: InvoiceRefInteger, num: n}
}

func UUIDRef(id uuid.UUID) InvoiceRef {
	return InvoiceRef{kind: InvoiceRefUUID, id: id}
}

func (r InvoiceRef) Kind() InvoiceRefKind { return r.kind }

func (r InvoiceRef) IsZero() bool { return r.kind == InvoiceRefNone }

func (r InvoiceRef) Int() (uint64, bool) {
	return r.num, r.kind == InvoiceRefInteger
}

func (r InvoiceRef) UUID() (uuid.UUID, bool) {
	return r.id, r.kind == InvoiceRefUUID
}

func (r InvoiceRef) String() string {
	switch r.kind {
	case InvoiceRefInteger:
		return strconv.FormatUint(r.num, 10)
	case InvoiceRefUUID:
		return r.id.String()
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseInvoiceRef accepts a positive digit-only string or a UUID string, the
// shapes an invoice reference can take in a path, a query string or a
// database column.
func ParseInvoiceRef(s string) (InvoiceRef, error) {
	if isDigits(s) {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 {
			return InvoiceRef{}, ErrInvalidInvoiceRef
		}
		return IntegerRef(n), nil
	}
	if utils.IsUUID(s) {
		return UUIDRef(uuid.MustParse(s)), nil
	}
	return InvoiceRef{}, ErrInvalidInvoiceRef
}

// ParseInvoiceRefJSON accepts a JSON number holding a positive integer, or a
// JSON string accepted by ParseInvoiceRef. Floats, negatives, zero and null are
// rejected.
func ParseInvoiceRefJSON(raw json.RawMessage) (InvoiceRef, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return InvoiceRef{}, ErrInvalidInvoiceRef
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return InvoiceRef{}, ErrInvalidInvoiceRef
		}
		return ParseInvoiceRef(s)
	}
	lit := string(raw)
	if !isDigits(lit) {
		return InvoiceRef{}, ErrInvalidInvoiceRef
	}
	n, err := strconv.ParseUint(lit, 10, 64)
	if err != nil || n == 0 {
		return InvoiceRef{}, ErrInvalidInvoiceRef
	}
	return IntegerRef(n), nil
}

// IsValidInvoiceRef reports whether v is an accepted invoice reference shape.
func IsValidInvoiceRef(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case InvoiceRef:
		return !x.IsZero()
	case string:
		_, err := ParseInvoiceRef(x)
		return err == nil
	case json.Number:
		_, err := ParseInvoiceRefJSON(json.RawMessage(x))
		return err == nil
	case json.RawMessage:
		_, err := ParseInvoiceRefJSON(x)
		return err == nil
	case int:
		return x > 0
	case int32:
		return x > 0
	case int64:
		return x > 0
	case uint:
		return x > 0
	case uint32:
		return x > 0
	case uint64:
		return x > 0
	case float64:
		return x > 0 && x == math.Trunc(x) && !math.IsInf(x, 0)
	case float32:
		f := float64(x)
		return f > 0 && f == math.Trunc(f) && !math.IsInf(f, 0)
	}
	return false
}

func (r InvoiceRef) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case InvoiceRefInteger:
		return []byte(strconv.FormatUint(r.num, 10)), nil
	case InvoiceRefUUID:
		return json.Marshal(r.id.String())
	}
	return []byte("null"), nil
}

func (r *InvoiceRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = InvoiceRef{}
		return nil
	}
	ref, err := ParseInvoiceRefJSON(data)
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// Value stores the reference as text so one column holds both shapes.
func (r InvoiceRef) Value() (driver.Value, error) {
	if r.IsZero() {
		return nil, nil
	}
	return r.String(), nil
}

func (r *InvoiceRef) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = InvoiceRef{}
		return nil
	case string:
		return r.scanString(v)
	case []byte:
		return r.scanString(string(v))
	case int64:
		if v <= 0 {
			return fmt.Errorf("invalid invoice reference %d", v)
		}
		*r = IntegerRef(uint64(v))
		return nil
	}
	return fmt.Errorf("cannot scan %T into InvoiceRef", src)
}

func (r *InvoiceRef) scanString(s string) error {
	ref, err := ParseInvoiceRef(s)
	if err != nil {
		return fmt.Errorf("invalid invoice reference %q", s)
	}
	*r = ref
	return nil
}

// GormDataType keeps the column wide enough for a UUID.
func (InvoiceRef) GormDataType() string {
	return "varchar(36)"
}
