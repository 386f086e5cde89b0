package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
	"gorm.io/gorm"
)

type Company struct {
	ID                 int       `gorm:"primary_key" json:"id"`
	Name               string    `gorm:"size:140;uniqueIndex;not null" json:"name"`
	DefaultCurrency    string    `gorm:"size:10;not null" json:"default_currency"`
	DefaultFinanceBook string    `gorm:"size:140" json:"default_finance_book"`
	Timezone           string    `gorm:"size:64;default:'Asia/Yangon'" json:"timezone"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetCompany(ctx context.Context, name string) (*Company, error) {
	if name == "" {
		return nil, utils.ErrorCompanyRequired
	}
	cacheKey := "Company:" + name
	var result Company
	exists, err := config.GetRedisObject(cacheKey, &result)
	if err != nil {
		config.LogError(config.GetLogger(), "Company.go", "GetCompany", "read company cache", name, err)
	}
	if exists {
		return &result, nil
	}

	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}
	if err := db.WithContext(ctx).Where("name = ?", name).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	if err := config.SetRedisObject(cacheKey, &result, 0); err != nil {
		config.LogError(config.GetLogger(), "Company.go", "GetCompany", "write company cache", name, err)
	}
	return &result, nil
}
