package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
)

type CostCenter struct {
	ID               int       `gorm:"primary_key" json:"id"`
	Company          string    `gorm:"size:140;index;uniqueIndex:idx_cost_center_company_name,priority:1;not null" json:"company"`
	Name             string    `gorm:"size:140;uniqueIndex:idx_cost_center_company_name,priority:2;not null" json:"name"`
	ParentCostCenter string    `gorm:"size:140;index" json:"parent_cost_center"`
	Lft              int       `gorm:"index;not null;default:0" json:"lft"`
	Rgt              int       `gorm:"index;not null;default:0" json:"rgt"`
	IsGroup          *bool     `gorm:"not null;default:false" json:"is_group"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetCostCentersWithChildren expands names to themselves plus every cost
// center under them. Unknown names are dropped.
func GetCostCentersWithChildren(ctx context.Context, company string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}

	var parents []CostCenter
	if err := db.WithContext(ctx).
		Where("company = ? AND name IN ?", company, utils.UniqueSlice(names)).
		Find(&parents).Error; err != nil {
		return nil, err
	}

	var result []string
	for _, parent := range parents {
		var children []string
		if err := db.WithContext(ctx).Model(&CostCenter{}).
			Where("company = ? AND lft >= ? AND rgt <= ?", company, parent.Lft, parent.Rgt).
			Order("lft").
			Pluck("name", &children).Error; err != nil {
			return nil, err
		}
		result = append(result, children...)
	}
	return utils.UniqueSlice(result), nil
}
