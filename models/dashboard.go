package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/shopspring/decimal"
)

type DashboardSummary struct {
	TotalInvoices int64           `json:"total_invoices"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	OverdueCount  int64           `json:"overdue_count"`
}

type ActivityItem struct {
	Type   string    `gorm:"column:activity_type" json:"type"`
	Entity string    `gorm:"column:entity" json:"entity"`
	Date   time.Time `gorm:"column:occurred_at" json:"date"`
}

const activityFeedLimit = 10

func GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	db := config.GetDB().WithContext(ctx)
	var summary DashboardSummary

	if err := db.Model(&Invoice{}).Count(&summary.TotalInvoices).Error; err != nil {
		return nil, err
	}

	var amount struct{ Total decimal.Decimal }
	if err := db.Raw("SELECT COALESCE(SUM(amount), 0) AS total FROM invoices").Scan(&amount).Error; err != nil {
		return nil, err
	}
	summary.TotalAmount = amount.Total

	var paid struct{ Total decimal.Decimal }
	err := db.Raw("SELECT COALESCE(SUM(amount_paid), 0) AS total FROM payments WHERE status = ?", string(PaymentStatusCompleted)).
		Scan(&paid).Error
	if err != nil {
		return nil, err
	}
	summary.TotalPaid = paid.Total
	summary.TotalPending = summary.TotalAmount.Sub(summary.TotalPaid)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	err = db.Model(&Invoice{}).
		Where("due_date < ? AND status <> ?", today, string(InvoiceStatusPaid)).
		Count(&summary.OverdueCount).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetRecentActivity returns the latest invoice and payment events, newest first.
func GetRecentActivity(ctx context.Context) ([]ActivityItem, error) {
	db := config.GetDB()
	sql := `
SELECT activity_type, entity, occurred_at FROM (
	SELECT 'Invoice Created' AS activity_type, invoice_id AS entity, issue_date AS occurred_at FROM invoices
	UNION ALL
	SELECT 'Payment Received' AS activity_type, invoice_id AS entity, payment_date AS occurred_at FROM payments
) AS activity
ORDER BY occurred_at DESC
LIMIT ?`
	results := make([]ActivityItem, 0, activityFeedLimit)
	if err := db.WithContext(ctx).Raw(sql, activityFeedLimit).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
