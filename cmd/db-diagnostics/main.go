// db-diagnostics prints the columns and indexes of the reminders schema and
// a count per table, which helps when a migration ran against the wrong
// database or an older column layout.
//
// Usage (from backend directory):
//   DB_DRIVER=postgres DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/db-diagnostics
package main

import (
	"fmt"
	"os"

	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/models"
)

func main() {
	config.ConnectDatabaseWithRetry()
	defer config.CloseDatabase()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	fmt.Printf("driver: %s\n", config.DatabaseDriver())
	migrator := db.Migrator()
	tables := []struct {
		name  string
		model interface{}
	}{
		{"clients", &models.Client{}},
		{"invoices", &models.Invoice{}},
		{"payments", &models.Payment{}},
		{"reminders", &models.Reminder{}},
	}

	failed := false
	for _, tbl := range tables {
		if !migrator.HasTable(tbl.model) {
			fmt.Printf("\n%s: MISSING\n", tbl.name)
			failed = true
			continue
		}
		var count int64
		if err := db.Model(tbl.model).Count(&count).Error; err != nil {
			fmt.Fprintf(os.Stderr, "%s: count failed: %v\n", tbl.name, err)
			failed = true
			continue
		}
		fmt.Printf("\n%s: %d rows\n", tbl.name, count)

		columns, err := migrator.ColumnTypes(tbl.model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: column types failed: %v\n", tbl.name, err)
			failed = true
			continue
		}
		for _, col := range columns {
			nullable, _ := col.Nullable()
			pk, _ := col.PrimaryKey()
			fmt.Printf("  %-20s %-16s nullable=%-5v primary=%v\n", col.Name(), col.DatabaseTypeName(), nullable, pk)
		}

		indexes, err := migrator.GetIndexes(tbl.model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: indexes failed: %v\n", tbl.name, err)
			continue
		}
		for _, idx := range indexes {
			unique, _ := idx.Unique()
			fmt.Printf("  index %-26s columns=%v unique=%v\n", idx.Name(), idx.Columns(), unique)
		}
	}
	if failed {
		os.Exit(1)
	}
}
