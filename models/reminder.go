package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/shopspring/decimal"
)

type ReminderType string

const (
	ReminderTypePolite ReminderType = "Polite"
	ReminderTypeFirm   ReminderType = "Firm"
	ReminderTypeFinal  ReminderType = "Final"
)

func (t ReminderType) IsValid() bool {
	switch t {
	case ReminderTypePolite, ReminderTypeFirm, ReminderTypeFinal:
		return true
	}
	return false
}

type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "pending"
	ReminderStatusSent    ReminderStatus = "sent"
	ReminderStatusFailed  ReminderStatus = "failed"
	ReminderStatusPartial ReminderStatus = "partial"
)

func (s ReminderStatus) IsValid() bool {
	switch s {
	case ReminderStatusPending, ReminderStatusSent, ReminderStatusFailed, ReminderStatusPartial:
		return true
	}
	return false
}

// Reminder is the persisted row. Client and invoice details beyond the
// denormalized name/email live on the joined tables.
type Reminder struct {
	ReminderId   uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"reminder_id"`
	InvoiceId    InvoiceRef     `gorm:"index;not null" json:"invoice_id"`
	ClientName   string         `gorm:"size:100;not null" json:"client_name"`
	Email        string         `gorm:"size:100;not null" json:"email"`
	ReminderDate time.Time      `gorm:"index;not null" json:"reminder_date"`
	Message      *string        `gorm:"type:text" json:"message"`
	Type         ReminderType   `gorm:"size:10;not null;default:'Polite'" json:"type"`
	Status       ReminderStatus `gorm:"size:10;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Reminder) TableName() string { return "reminders" }

// ReminderView is a reminder enriched with read-only invoice and client
// attributes. Both stores return this shape.
type ReminderView struct {
	Reminder
	Amount             *decimal.Decimal `json:"amount"`
	InvoiceStatus      *string          `json:"invoice_status"`
	InvoiceDescription *string          `json:"description"`
	ClientId           *uuid.UUID       `json:"client_id"`
	ClientEmail        *string          `json:"client_email"`
	CompanyName        *string          `json:"company_name"`
	Phone              *string          `json:"phone"`
}

// NewReminder is the create payload. InvoiceId stays raw so a malformed value
// is reported next to the other violations instead of aborting the decode.
type NewReminder struct {
	InvoiceId  json.RawMessage `json:"invoice_id"`
	ClientName string          `json:"client_name" validate:"required,max=100"`
	Email      string          `json:"email" validate:"required,email,max=100"`
	DueDate    *string         `json:"due_date"`
	Message    *string         `json:"message"`
	Status     *ReminderStatus `json:"status" validate:"omitempty,oneof=pending sent failed partial"`
	Type       *ReminderType   `json:"type" validate:"omitempty,oneof=Polite Firm Final"`

	// decodeErrs holds fields whose JSON had the wrong type.
	decodeErrs utils.ValidationErrors
}

// ReminderPatch holds the allow-listed fields of a partial update; nil means
// "leave unchanged".
type ReminderPatch struct {
	InvoiceId    *InvoiceRef
	ClientName   *string
	Email        *string
	ReminderDate *time.Time
	Message      *string
	Status       *ReminderStatus
	Type         *ReminderType
}

func (p ReminderPatch) IsEmpty() bool {
	return p.InvoiceId == nil && p.ClientName == nil && p.Email == nil &&
		p.ReminderDate == nil && p.Message == nil && p.Status == nil && p.Type == nil
}

// apply merges the patch over r without touching absent fields.
func (p ReminderPatch) apply(r *Reminder) {
	if p.InvoiceId != nil {
		r.InvoiceId = *p.InvoiceId
	}
	if p.ClientName != nil {
		r.ClientName = *p.ClientName
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.ReminderDate != nil {
		r.ReminderDate = *p.ReminderDate
	}
	if p.Message != nil {
		msg := *p.Message
		r.Message = &msg
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
}

// ReminderFilter carries the list query. Nil fields are not applied.
type ReminderFilter struct {
	Limit  *int
	Offset *int
	Status *string
	From   *time.Time
	To     *time.Time
}
