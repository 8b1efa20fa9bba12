package models_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/models"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

func TestPersistentReminderStoreJoinsInvoiceAndClient(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "cashflow_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry(5)
	t.Cleanup(config.CloseRedis)
	t.Cleanup(config.CloseDatabase)
	models.MigrateTable()

	company := "Acme Corporation"
	client, err := models.CreateClient(ctx, &models.NewClient{
		ClientName:  "Acme Corp",
		Email:       "Billing@Acme.Example",
		CompanyName: &company,
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if client.Email != "billing@acme.example" {
		t.Fatalf("client email should be normalized, got %q", client.Email)
	}

	amount := decimal.RequireFromString("1500.00")
	description := "Website design - final payment"
	invoice, err := models.CreateInvoice(ctx, &models.NewInvoice{
		ClientId:    client.ClientId.String(),
		IssueDate:   "2025-10-01",
		DueDate:     "2025-10-15",
		Amount:      &amount,
		Description: &description,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	svc := models.NewReminderService(
		models.NewMockReminderStore(),
		models.NewCachedReminderStore(models.NewGormReminderStore(config.GetDB)),
		func() bool { return false },
		quietLogger(),
		otel.Tracer("test"),
	)

	dueDate := "2025-10-20T09:00:00Z"
	created, err := svc.Create(ctx, models.NewReminder{
		InvoiceId:  json.RawMessage(`"` + invoice.InvoiceId.String() + `"`),
		ClientName: "Acme Corp",
		Email:      "ap@acme.example",
		DueDate:    &dueDate,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Amount == nil || !created.Amount.Equal(amount) {
		t.Fatalf("expected joined amount 1500, got %v", created.Amount)
	}
	if created.InvoiceStatus == nil || *created.InvoiceStatus != string(models.InvoiceStatusPending) {
		t.Fatalf("expected invoice status Pending, got %v", created.InvoiceStatus)
	}
	if created.ClientEmail == nil || *created.ClientEmail != "billing@acme.example" {
		t.Fatalf("client_email should come from the client row, got %v", created.ClientEmail)
	}
	if created.CompanyName == nil || *created.CompanyName != company {
		t.Fatalf("expected company name %q, got %v", company, created.CompanyName)
	}

	// A reminder for an unknown numeric invoice still lists, with no join data.
	orphan, err := svc.Create(ctx, models.NewReminder{
		InvoiceId:  json.RawMessage(`4242`),
		ClientName: "Beta LLC",
		Email:      "ap@beta.example",
	})
	if err != nil {
		t.Fatalf("Create(orphan): %v", err)
	}
	if orphan.Amount != nil || orphan.ClientEmail == nil || *orphan.ClientEmail != "ap@beta.example" {
		t.Fatalf("orphan reminder should fall back to its own email, got %+v", orphan)
	}

	pending := "Pending"
	list, err := svc.List(ctx, models.ReminderListParams{Status: &pending})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ReminderId != created.ReminderId {
		t.Fatalf("status filter should match the invoice status, got %d rows", len(list))
	}

	// Warm the cache, then update and make sure the read is fresh.
	if _, err := svc.Get(ctx, created.ReminderId.String()); err != nil {
		t.Fatalf("Get: %v", err)
	}
	updated, err := svc.Update(ctx, created.ReminderId.String(), map[string]json.RawMessage{
		"message_status": json.RawMessage(`"sent"`),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.ReminderStatusSent || updated.ClientName != "Acme Corp" {
		t.Fatalf("unexpected updated row %+v", updated)
	}
	got, err := svc.Get(ctx, created.ReminderId.String())
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Status != models.ReminderStatusSent {
		t.Fatalf("Get after update returned stale status %s", got.Status)
	}

	if err := svc.Delete(ctx, created.ReminderId.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ReminderId.String()); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("Get after delete should be not found, got %v", err)
	}
	if err := svc.Delete(ctx, created.ReminderId.String()); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("second Delete should be not found, got %v", err)
	}

	summary, err := models.GetDashboardSummary(ctx)
	if err != nil {
		t.Fatalf("GetDashboardSummary: %v", err)
	}
	if summary.TotalInvoices != 1 || !summary.TotalPending.Equal(amount) {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("cashflow-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := dockerRun("exec", name, "redis-cli", "ping"); err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("cashflow-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=cashflow_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent"); err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// "127.0.0.1:49154\n"
	m := regexp.MustCompile(`:(\d+)`).FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	b, err := exec.Command("docker", args...).CombinedOutput()
	return string(b), err
}
