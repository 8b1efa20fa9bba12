package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	InvoiceId   uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"invoice_id"`
	ClientId    uuid.UUID       `gorm:"type:varchar(36);index;not null" json:"client_id"`
	IssueDate   time.Time       `gorm:"not null" json:"issue_date"`
	DueDate     time.Time       `gorm:"index;not null" json:"due_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"amount"`
	Status      InvoiceStatus   `gorm:"size:10;not null;default:'Pending'" json:"status"`
	Description *string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// InvoiceWithClient is an invoice joined with its client's contact fields.
type InvoiceWithClient struct {
	Invoice
	ClientName  *string `json:"client_name"`
	Email       *string `json:"email"`
	CompanyName *string `json:"company_name"`
}

type NewInvoice struct {
	ClientId    string           `json:"client_id" binding:"required"`
	IssueDate   string           `json:"issue_date" binding:"required"`
	DueDate     string           `json:"due_date" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Status      *InvoiceStatus   `json:"status" binding:"omitempty,oneof=Pending Paid Overdue"`
	Description *string          `json:"description"`
}

type UpdateInvoice struct {
	IssueDate   *string          `json:"issue_date"`
	DueDate     *string          `json:"due_date"`
	Amount      *decimal.Decimal `json:"amount"`
	Status      *InvoiceStatus   `json:"status" binding:"omitempty,oneof=Pending Paid Overdue"`
	Description *string          `json:"description"`
}

// CreateInvoice(input) (Invoice,error)  client must exist
// UpdateInvoiceById(id, input) (Invoice,error)
// DeleteInvoice(id) error
// GetInvoice(id) (InvoiceWithClient,error)
// ListInvoices() ([]InvoiceWithClient,error)

const invoiceWithClientSelect = `SELECT i.*, c.client_name, c.email, c.company_name
FROM invoices i
LEFT JOIN clients c ON i.client_id = c.client_id`

func parseInvoiceDate(errs *utils.ValidationErrors, field string, value string) time.Time {
	t, err := utils.ParseISODate(value)
	if err != nil {
		errs.Add(field, "Valid "+field+" is required")
	}
	return t
}

func (input *NewInvoice) validate(ctx context.Context) (*Invoice, error) {
	var errs utils.ValidationErrors

	clientId, err := uuid.Parse(input.ClientId)
	if err != nil || !utils.IsUUID(input.ClientId) {
		errs.Add("client_id", "client_id must be a valid UUID")
	}
	issueDate := parseInvoiceDate(&errs, "issue_date", input.IssueDate)
	dueDate := parseInvoiceDate(&errs, "due_date", input.DueDate)
	if input.Amount != nil && input.Amount.IsNegative() {
		errs.Add("amount", "Amount must not be negative")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// validate client exists
	if err := utils.ValidateResourceId[Client](ctx, "client_id", clientId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			errs.Add("client_id", fmt.Sprintf("Client with ID %s does not exist. Please create the client first.", clientId))
			return nil, errs
		}
		return nil, err
	}

	return &Invoice{
		InvoiceId:   uuid.New(),
		ClientId:    clientId,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		Amount:      *input.Amount,
		Status:      utils.DereferencePtr(input.Status, InvoiceStatusPending),
		Description: utils.TrimPtr(input.Description),
	}, nil
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	invoice, err := input.validate(ctx)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func UpdateInvoiceById(ctx context.Context, id uuid.UUID, input *UpdateInvoice) (*Invoice, error) {
	var errs utils.ValidationErrors
	updates := map[string]interface{}{}
	if v := utils.TrimPtr(input.IssueDate); v != nil {
		updates["issue_date"] = parseInvoiceDate(&errs, "issue_date", *v)
	}
	if v := utils.TrimPtr(input.DueDate); v != nil {
		updates["due_date"] = parseInvoiceDate(&errs, "due_date", *v)
	}
	if input.Amount != nil {
		if input.Amount.IsNegative() {
			errs.Add("amount", "Amount must not be negative")
		}
		updates["amount"] = *input.Amount
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if v := utils.TrimPtr(input.Description); v != nil {
		updates["description"] = *v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	invoice, err := utils.FetchModel[Invoice](ctx, "invoice_id", id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(invoice).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Invoice](ctx, "invoice_id", id)
}

func DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return utils.DeleteModel[Invoice](ctx, "invoice_id", id)
}

func GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceWithClient, error) {
	db := config.GetDB()
	var results []InvoiceWithClient
	err := db.WithContext(ctx).Raw(invoiceWithClientSelect+"\nWHERE i.invoice_id = ?", id.String()).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, utils.ErrorRecordNotFound
	}
	return &results[0], nil
}

func ListInvoices(ctx context.Context) ([]InvoiceWithClient, error) {
	db := config.GetDB()
	results := make([]InvoiceWithClient, 0)
	err := db.WithContext(ctx).Raw(invoiceWithClientSelect + "\nORDER BY i.issue_date DESC").Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
