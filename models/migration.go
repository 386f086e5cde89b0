package models

import (
	"log"

	"github.com/mmdatafocus/statement_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Company{}, &Account{}, &CostCenter{},
		&Customer{}, &Supplier{}, &Employee{},
		&Address{}, &DynamicLink{},
		&GlEntry{}, &PurchaseInvoice{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
