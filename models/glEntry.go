package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
	"github.com/shopspring/decimal"
)

// GlEntry is one posting in the general ledger. A zero PostingDate is
// treated as "no date".
type GlEntry struct {
	ID                      int             `gorm:"primary_key" json:"-"`
	Name                    string          `gorm:"size:140;uniqueIndex" json:"name,omitempty"`
	Company                 string          `gorm:"size:140;index;not null" json:"-"`
	PostingDate             time.Time       `gorm:"type:date;index;not null" json:"posting_date"`
	Account                 string          `gorm:"size:140;index" json:"account"`
	PartyType               PartyType       `gorm:"size:40;index:idx_gl_party,priority:1" json:"party_type,omitempty"`
	Party                   string          `gorm:"size:140;index:idx_gl_party,priority:2" json:"party,omitempty"`
	VoucherType             string          `gorm:"size:140;index:idx_gl_voucher,priority:1" json:"voucher_type"`
	VoucherNo               string          `gorm:"size:140;index:idx_gl_voucher,priority:2" json:"voucher_no"`
	CostCenter              string          `gorm:"size:140;index" json:"cost_center,omitempty"`
	Project                 string          `gorm:"size:140" json:"project,omitempty"`
	AgainstVoucherType      string          `gorm:"size:140" json:"against_voucher_type,omitempty"`
	AgainstVoucher          string          `gorm:"size:140;index" json:"against_voucher,omitempty"`
	AccountCurrency         string          `gorm:"size:10" json:"account_currency,omitempty"`
	Remarks                 string          `gorm:"type:text" json:"remarks,omitempty"`
	Against                 string          `gorm:"type:text" json:"against,omitempty"`
	IsOpening               IsOpening       `gorm:"size:3;default:'No'" json:"is_opening,omitempty"`
	Debit                   decimal.Decimal `gorm:"type:decimal(21,9);not null;default:0" json:"debit"`
	Credit                  decimal.Decimal `gorm:"type:decimal(21,9);not null;default:0" json:"credit"`
	DebitInAccountCurrency  decimal.Decimal `gorm:"type:decimal(21,9);not null;default:0" json:"debit_in_account_currency"`
	CreditInAccountCurrency decimal.Decimal `gorm:"type:decimal(21,9);not null;default:0" json:"credit_in_account_currency"`
	FinanceBook             string          `gorm:"size:140" json:"-"`
	IsCancelled             bool            `gorm:"not null;default:false;index" json:"-"`
	CreatedAt               time.Time       `gorm:"autoCreateTime" json:"-"`
	UpdatedAt               time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (e *GlEntry) HasPostingDate() bool {
	return e != nil && !e.PostingDate.IsZero()
}

const glEntrySelectTemplate = `
SELECT
	posting_date, account, party_type, party,
	voucher_type, voucher_no, cost_center, project,
	against_voucher_type, against_voucher, account_currency,
	remarks, against, is_opening,
	debit, credit, debit_in_account_currency, credit_in_account_currency
FROM gl_entries
WHERE company = @company AND is_cancelled = 0
{{- if .account }}
	AND account IN (SELECT name FROM accounts WHERE company = @company AND lft >= @lft AND rgt <= @rgt)
{{- end }}
{{- if .costCenter }} AND cost_center IN @costCenter {{- end }}
{{- if .voucherNo }} AND voucher_no = @voucherNo {{- end }}
{{- if .partyType }} AND party_type = @partyType {{- end }}
{{- if .party }} AND party IN @party {{- end }}
{{- if .fromDate }} AND posting_date >= @fromDate {{- end }}
	AND (posting_date <= @toDate OR is_opening = 'Yes')
{{- range .dimensions }} AND {{ . }} IN @dim_{{ . }} {{- end }}
{{- if .financeBook }}
	AND (finance_book IN @financeBooks OR finance_book = '' OR finance_book IS NULL)
{{- end }}
ORDER BY {{ .orderBy }}
`

// glEntryQuery renders the statement query and its named arguments.
// The from-date bound is left off when opening rows are needed for an account,
// a party or an account/party grouping.
func glEntryQuery(filters *StatementFilters, lft, rgt int, costCenters []string, financeBooks []string) (string, map[string]interface{}, error) {
	groupBy := filters.GroupBy.Normalize()
	withFromDate := !(filters.Account != "" || len(filters.Party) > 0 ||
		groupBy == StatementGroupByAccount || groupBy == StatementGroupByParty)

	orderBy := "posting_date, account"
	if filters.GroupBy == StatementGroupByVoucher {
		orderBy = "posting_date, voucher_type, voucher_no"
	}

	args := map[string]interface{}{
		"company":   filters.Company,
		"lft":       lft,
		"rgt":       rgt,
		"voucherNo": filters.VoucherNo,
		"partyType": string(filters.PartyType),
		"party":     filters.Party,
		"fromDate":  filters.FromDate,
		"toDate":    filters.ToDate,
	}
	if len(costCenters) > 0 {
		args["costCenter"] = costCenters
	}
	if len(financeBooks) > 0 {
		args["financeBooks"] = financeBooks
	}

	var dimensions []string
	for _, dim := range config.AccountingDimensions() {
		values := filters.AccountingDimensions[dim]
		if len(values) == 0 {
			continue
		}
		dimensions = append(dimensions, dim)
		args["dim_"+dim] = values
	}

	sql, err := utils.ExecTemplate(glEntrySelectTemplate, map[string]interface{}{
		"account":     filters.Account != "",
		"costCenter":  len(costCenters) > 0,
		"voucherNo":   filters.VoucherNo != "",
		"partyType":   filters.PartyType != "",
		"party":       len(filters.Party) > 0,
		"fromDate":    withFromDate,
		"dimensions":  dimensions,
		"financeBook": len(financeBooks) > 0,
		"orderBy":     orderBy,
	})
	if err != nil {
		return "", nil, err
	}
	return sql, args, nil
}

// GetGlEntries returns the postings matching filters ordered by posting date.
func GetGlEntries(ctx context.Context, filters *StatementFilters) ([]*GlEntry, error) {
	if filters == nil || filters.Company == "" {
		return nil, utils.ErrorCompanyRequired
	}

	var lft, rgt int
	if filters.Account != "" {
		account, err := GetAccount(ctx, filters.Company, filters.Account)
		if err != nil {
			return nil, err
		}
		lft, rgt = account.Lft, account.Rgt
	}

	var costCenters []string
	if len(filters.CostCenter) > 0 {
		var err error
		costCenters, err = GetCostCentersWithChildren(ctx, filters.Company, filters.CostCenter)
		if err != nil {
			return nil, err
		}
		// no matching cost center means no postings can match
		if len(costCenters) == 0 {
			return []*GlEntry{}, nil
		}
	}

	var financeBooks []string
	if filters.IncludeDefaultBookEntries {
		company, err := GetCompany(ctx, filters.Company)
		if err != nil {
			return nil, err
		}
		financeBooks = utils.UniqueSlice([]string{filters.FinanceBook, company.DefaultFinanceBook})
	}

	sql, args, err := glEntryQuery(filters, lft, rgt, costCenters, financeBooks)
	if err != nil {
		return nil, err
	}

	var results []*GlEntry
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}
	if err := db.WithContext(ctx).Raw(sql, args).Scan(&results).Error; err != nil {
		config.LogError(config.GetLogger(), "GlEntry.go", "GetGlEntries", "query gl entries", filters, err)
		return nil, err
	}
	return results, nil
}

// GetFirstPartyCurrency returns the account currency of the party's earliest
// gl entry, or "" when the party has none.
func GetFirstPartyCurrency(ctx context.Context, company string, partyType PartyType, party string) (string, error) {
	var currencies []string
	db := config.GetDB()
	if db == nil {
		return "", utils.ErrorDatabaseNotReady
	}
	err := db.WithContext(ctx).Model(&GlEntry{}).
		Where("company = ? AND party_type = ? AND party = ?", company, partyType, party).
		Order("posting_date, id").
		Limit(1).
		Pluck("account_currency", &currencies).Error
	if err != nil {
		return "", err
	}
	if len(currencies) == 0 {
		return "", nil
	}
	return currencies[0], nil
}
