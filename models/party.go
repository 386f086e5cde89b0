package models

import (
	"errors"

	"gorm.io/gorm"
)

// Party is the common view over customers, suppliers and employees.
type Party struct {
	PartyType       PartyType `json:"party_type"`
	Name            string    `json:"name"`
	DisplayName     string    `json:"display_name"`
	DefaultCurrency string    `json:"default_currency"`
}

// PartyQuery selects Party columns from the table backing partyType.
func PartyQuery(db *gorm.DB, partyType PartyType) (*gorm.DB, error) {
	switch partyType {
	case PartyTypeCustomer:
		return db.Model(&Customer{}).Select("name, customer_name AS display_name, default_currency"), nil
	case PartyTypeSupplier:
		return db.Model(&Supplier{}).Select("name, supplier_name AS display_name, default_currency"), nil
	case PartyTypeEmployee:
		return db.Model(&Employee{}).Select("name, employee_name AS display_name, '' AS default_currency"), nil
	}
	return nil, errors.New("invalid party type")
}
