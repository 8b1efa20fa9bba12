// seed-dev inserts a demo client, invoice, payment and reminder so the
// persistent reminders API has joined data to show. Rerunning it reuses the
// client when its email already exists.
//
// Usage (from backend directory):
//   DB_DRIVER=mysql DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-dev
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/models"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

const (
	demoClientEmail = "billing@acme.example"
	demoClientName  = "Acme Corp"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	defer config.CloseDatabase()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	var client models.Client
	err := db.WithContext(ctx).Where("email = ?", demoClientEmail).First(&client).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Fprintf(os.Stderr, "failed to lookup client: %v\n", err)
			os.Exit(1)
		}
		company := "Acme Corporation"
		created, err := models.CreateClient(ctx, &models.NewClient{
			ClientName:  demoClientName,
			Email:       demoClientEmail,
			CompanyName: &company,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create client: %v\n", err)
			os.Exit(1)
		}
		client = *created
		fmt.Printf("Created client %s (%s)\n", client.ClientId, client.Email)
	} else {
		fmt.Printf("Reusing client %s (%s)\n", client.ClientId, client.Email)
	}

	amount := decimal.NewFromInt(1500)
	description := "Website design - final payment"
	invoice, err := models.CreateInvoice(ctx, &models.NewInvoice{
		ClientId:    client.ClientId.String(),
		IssueDate:   "2025-10-01",
		DueDate:     "2025-10-15",
		Amount:      &amount,
		Description: &description,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create invoice: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created invoice %s amount=%s\n", invoice.InvoiceId, invoice.Amount.StringFixed(2))

	paid := decimal.NewFromInt(500)
	payment, err := models.CreatePayment(ctx, &models.NewPayment{
		InvoiceId:  invoice.InvoiceId.String(),
		AmountPaid: &paid,
		Method:     "Bank Transfer",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create payment: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created payment %s amount=%s\n", payment.PaymentId, payment.AmountPaid.StringFixed(2))

	reminders := models.NewReminderService(
		models.NewMockReminderStore(),
		models.NewGormReminderStore(config.GetDB),
		func() bool { return false },
		config.GetLogger(),
		otel.Tracer("seed-dev"),
	)
	dueDate := "2025-10-20T09:00:00Z"
	firm := models.ReminderTypeFirm
	reminder, err := reminders.Create(ctx, models.NewReminder{
		InvoiceId:  json.RawMessage(`"` + invoice.InvoiceId.String() + `"`),
		ClientName: client.ClientName,
		Email:      client.Email,
		DueDate:    &dueDate,
		Type:       &firm,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create reminder: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created reminder %s for invoice %s\n", reminder.ReminderId, reminder.InvoiceId)
}
