package models

import (
	"errors"
	"strings"
)

type IsOpening string

const (
	IsOpeningYes    IsOpening = "Yes"
	IsOpeningNo     IsOpening = "No"
	IsOpeningAbsent IsOpening = ""
)

func (o IsOpening) IsYes() bool {
	return o == IsOpeningYes
}

// StatementGroupBy decides how postings are partitioned in the statement.
type StatementGroupBy string

const (
	StatementGroupByNone                StatementGroupBy = ""
	StatementGroupByVoucher             StatementGroupBy = "Group by Voucher"
	StatementGroupByParty               StatementGroupBy = "Group by Party"
	StatementGroupByAccount             StatementGroupBy = "Group by Account"
	StatementGroupByVoucherConsolidated StatementGroupBy = "Group by Voucher (Consolidated)"
)

// ParseStatementGroupBy accepts the display labels and the short forms used by
// the query string and CLI (voucher, party, account, consolidated).
func ParseStatementGroupBy(s string) (StatementGroupBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return StatementGroupByNone, nil
	case "voucher", "group by voucher":
		return StatementGroupByVoucher, nil
	case "party", "group by party":
		return StatementGroupByParty, nil
	case "account", "group by account":
		return StatementGroupByAccount, nil
	case "consolidated", "voucher_consolidated", "group by voucher (consolidated)":
		return StatementGroupByVoucherConsolidated, nil
	}
	return StatementGroupByNone, errors.New("invalid group by")
}

// Normalize folds None into ByVoucher for keying groups; both partition rows
// by voucher number. Layout and ordering still tell the two apart.
func (g StatementGroupBy) Normalize() StatementGroupBy {
	if g == StatementGroupByNone {
		return StatementGroupByVoucher
	}
	return g
}

func (g StatementGroupBy) IsConsolidated() bool {
	return g == StatementGroupByVoucherConsolidated
}

// HasGroupOpeningRows is false only for explicit per-voucher grouping, whose
// sections carry just members and a total.
func (g StatementGroupBy) HasGroupOpeningRows() bool {
	return g != StatementGroupByVoucher
}

func (g StatementGroupBy) GroupKey(e *GlEntry) string {
	switch g.Normalize() {
	case StatementGroupByParty:
		return e.Party
	case StatementGroupByAccount, StatementGroupByVoucherConsolidated:
		return e.Account
	default:
		return e.VoucherNo
	}
}

type PartyType string

const (
	PartyTypeCustomer PartyType = "Customer"
	PartyTypeSupplier PartyType = "Supplier"
	PartyTypeEmployee PartyType = "Employee"
)

func ParsePartyType(s string) (PartyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "customer":
		return PartyTypeCustomer, nil
	case "supplier":
		return PartyTypeSupplier, nil
	case "employee":
		return PartyTypeEmployee, nil
	}
	return "", errors.New("invalid party type")
}

// HasDefaultCurrency is false for party types that are not billed in their own currency.
func (p PartyType) HasDefaultCurrency() bool {
	return p == PartyTypeCustomer || p == PartyTypeSupplier
}

type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)
