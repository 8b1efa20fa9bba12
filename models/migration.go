package models

import (
	"log"

	"github.com/mmdatafocus/cashflow_guard/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Client{}, &Invoice{}, &Payment{}, &Reminder{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
