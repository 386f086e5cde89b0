package models

import (
	"time"
)

type Customer struct {
	ID              int       `gorm:"primary_key" json:"id"`
	Company         string    `gorm:"size:140;index;uniqueIndex:idx_customer_company_name,priority:1;not null" json:"company"`
	Name            string    `gorm:"size:140;uniqueIndex:idx_customer_company_name,priority:2;not null" json:"name"`
	CustomerName    string    `gorm:"size:140" json:"customer_name"`
	CustomerGroup   string    `gorm:"size:140" json:"customer_group"`
	DefaultCurrency string    `gorm:"size:10" json:"default_currency"`
	Disabled        bool      `gorm:"not null;default:false" json:"disabled"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
