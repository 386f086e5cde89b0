package models

import "time"

type Employee struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Company      string    `gorm:"size:140;index;uniqueIndex:idx_employee_company_name,priority:1;not null" json:"company"`
	Name         string    `gorm:"size:140;uniqueIndex:idx_employee_company_name,priority:2;not null" json:"name"`
	EmployeeName string    `gorm:"size:140" json:"employee_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
