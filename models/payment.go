package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/shopspring/decimal"
)

type Payment struct {
	PaymentId   uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"payment_id"`
	InvoiceId   uuid.UUID       `gorm:"type:varchar(36);index;not null" json:"invoice_id"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"amount_paid"`
	Method      string          `gorm:"size:50;not null" json:"method"`
	Status      PaymentStatus   `gorm:"size:10;not null;default:'Completed'" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayment struct {
	InvoiceId   string           `json:"invoice_id" binding:"required"`
	PaymentDate *string          `json:"payment_date"`
	AmountPaid  *decimal.Decimal `json:"amount_paid" binding:"required"`
	Method      string           `json:"method" binding:"required,max=50"`
	Status      *PaymentStatus   `json:"status" binding:"omitempty,oneof=Completed Pending Failed"`
}

type UpdatePayment struct {
	PaymentDate *string          `json:"payment_date"`
	AmountPaid  *decimal.Decimal `json:"amount_paid"`
	Method      *string          `json:"method" binding:"omitempty,max=50"`
	Status      *PaymentStatus   `json:"status" binding:"omitempty,oneof=Completed Pending Failed"`
}

// CreatePayment(input) (Payment,error)  invoice must exist
// UpdatePaymentById(id, input) (Payment,error)
// DeletePayment(id) error
// GetPayment(id) (Payment,error)
// ListPayments() ([]Payment,error)
// ListPaymentsByInvoice(invoiceId) ([]Payment,error)

func (input *NewPayment) validate(ctx context.Context) (*Payment, error) {
	var errs utils.ValidationErrors

	invoiceId, err := uuid.Parse(input.InvoiceId)
	if err != nil || !utils.IsUUID(input.InvoiceId) {
		errs.Add("invoice_id", "invoice_id must be a valid UUID")
	}
	paymentDate := time.Now().UTC()
	if v := utils.TrimPtr(input.PaymentDate); v != nil {
		paymentDate = parseInvoiceDate(&errs, "payment_date", *v)
	}
	if input.AmountPaid != nil && !input.AmountPaid.IsPositive() {
		errs.Add("amount_paid", "Amount paid must be greater than 0")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// validate invoice exists
	if err := utils.ValidateResourceId[Invoice](ctx, "invoice_id", invoiceId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			errs.Add("invoice_id", "Invoice does not exist")
			return nil, errs
		}
		return nil, err
	}

	return &Payment{
		PaymentId:   uuid.New(),
		InvoiceId:   invoiceId,
		PaymentDate: paymentDate,
		AmountPaid:  *input.AmountPaid,
		Method:      input.Method,
		Status:      utils.DereferencePtr(input.Status, PaymentStatusCompleted),
	}, nil
}

func CreatePayment(ctx context.Context, input *NewPayment) (*Payment, error) {
	payment, err := input.validate(ctx)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func UpdatePaymentById(ctx context.Context, id uuid.UUID, input *UpdatePayment) (*Payment, error) {
	var errs utils.ValidationErrors
	updates := map[string]interface{}{}
	if v := utils.TrimPtr(input.PaymentDate); v != nil {
		updates["payment_date"] = parseInvoiceDate(&errs, "payment_date", *v)
	}
	if input.AmountPaid != nil {
		if !input.AmountPaid.IsPositive() {
			errs.Add("amount_paid", "Amount paid must be greater than 0")
		}
		updates["amount_paid"] = *input.AmountPaid
	}
	if v := utils.TrimPtr(input.Method); v != nil {
		updates["method"] = *v
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	payment, err := utils.FetchModel[Payment](ctx, "payment_id", id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(payment).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Payment](ctx, "payment_id", id)
}

func DeletePayment(ctx context.Context, id uuid.UUID) error {
	return utils.DeleteModel[Payment](ctx, "payment_id", id)
}

func GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return utils.FetchModel[Payment](ctx, "payment_id", id)
}

func ListPayments(ctx context.Context) ([]*Payment, error) {
	return utils.FetchAllModels[Payment](ctx, "payment_date DESC")
}

func ListPaymentsByInvoice(ctx context.Context, invoiceId uuid.UUID) ([]*Payment, error) {
	db := config.GetDB()
	results := make([]*Payment, 0)
	err := db.WithContext(ctx).Where("invoice_id = ?", invoiceId).Order("payment_date DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
