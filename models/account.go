package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
	"gorm.io/gorm"
)

// Account is a node of the chart of accounts. Lft/Rgt are nested-set bounds,
// so a subtree is every account with lft >= parent.lft and rgt <= parent.rgt.
type Account struct {
	ID              int       `gorm:"primary_key" json:"id"`
	Company         string    `gorm:"size:140;index;uniqueIndex:idx_account_company_name,priority:1;not null" json:"company"`
	Name            string    `gorm:"size:140;uniqueIndex:idx_account_company_name,priority:2;not null" json:"name"`
	ParentAccount   string    `gorm:"size:140;index" json:"parent_account"`
	Lft             int       `gorm:"index;not null;default:0" json:"lft"`
	Rgt             int       `gorm:"index;not null;default:0" json:"rgt"`
	IsGroup         *bool     `gorm:"not null;default:false" json:"is_group"`
	AccountCurrency string    `gorm:"size:10" json:"account_currency"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetAccount(ctx context.Context, company string, name string) (*Account, error) {
	var result Account
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}
	err := db.WithContext(ctx).Where("company = ? AND name = ?", company, name).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}
