package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
)

type Address struct {
	ID                int       `gorm:"primary_key" json:"-"`
	Company           string    `gorm:"size:140;index" json:"-"`
	Name              string    `gorm:"size:140;uniqueIndex;not null" json:"name"`
	AddressLine1      string    `gorm:"size:240" json:"address_line1"`
	AddressLine2      string    `gorm:"size:240" json:"address_line2,omitempty"`
	City              string    `gorm:"size:140" json:"city"`
	State             string    `gorm:"size:140" json:"state,omitempty"`
	Pincode           string    `gorm:"size:20" json:"pincode,omitempty"`
	EmailId           string    `gorm:"size:140" json:"email_id,omitempty"`
	Phone             string    `gorm:"size:40" json:"phone,omitempty"`
	Fax               string    `gorm:"size:40" json:"fax,omitempty"`
	IsShippingAddress bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"-"`
}

// DynamicLink attaches a child document (an address) to any linked record.
type DynamicLink struct {
	ID          int    `gorm:"primary_key" json:"id"`
	Parent      string `gorm:"size:140;index;not null" json:"parent"`
	ParentType  string `gorm:"size:140;not null" json:"parent_type"`
	LinkDoctype string `gorm:"size:140;index:idx_dynamic_link,priority:1;not null" json:"link_doctype"`
	LinkName    string `gorm:"size:140;index:idx_dynamic_link,priority:2;not null" json:"link_name"`
}

const (
	linkParentTypeAddress = "Address"
)

// CustomerDetails is the billing address block printed on a statement.
type CustomerDetails = Address

// GetCustomerDetails returns the first non-shipping address linked to the
// customer, or nil when there is none.
func GetCustomerDetails(ctx context.Context, party string) (*CustomerDetails, error) {
	if party == "" {
		return nil, nil
	}

	var results []*Address
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}
	err := db.WithContext(ctx).
		Where("is_shipping_address = ?", false).
		Where("name IN (?)", db.Model(&DynamicLink{}).
			Select("parent").
			Where("link_doctype = ? AND link_name = ? AND parent_type = ?", string(PartyTypeCustomer), party, linkParentTypeAddress)).
		Order("id").
		Limit(1).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	address := results[0]
	address.Phone = utils.FormatPhoneNumber(address.Phone, utils.CountryCode)
	address.Fax = utils.FormatPhoneNumber(address.Fax, utils.CountryCode)
	return address, nil
}
