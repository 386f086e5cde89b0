package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
)

type PurchaseInvoice struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Company     string    `gorm:"size:140;index;not null" json:"company"`
	Name        string    `gorm:"size:140;uniqueIndex;not null" json:"name"`
	Supplier    string    `gorm:"size:140;index" json:"supplier"`
	BillNo      string    `gorm:"size:140" json:"bill_no"`
	PostingDate time.Time `gorm:"type:date" json:"posting_date"`
	Docstatus   DocStatus `gorm:"not null;default:0;index" json:"docstatus"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetSupplierInvoiceBillNumbers maps submitted purchase invoice names to the
// supplier's bill number.
func GetSupplierInvoiceBillNumbers(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		Name   string
		BillNo string
	}
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}
	err := db.WithContext(ctx).Model(&PurchaseInvoice{}).
		Select("name, bill_no").
		Where("docstatus = ? AND bill_no IS NOT NULL AND bill_no != ''", DocStatusSubmitted).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(rows))
	for _, row := range rows {
		result[row.Name] = row.BillNo
	}
	return result, nil
}
