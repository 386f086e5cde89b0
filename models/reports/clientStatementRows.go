package reports

import (
	"time"

	"github.com/mmdatafocus/statement_backend/models"
	"github.com/shopspring/decimal"
)

type StatementRowKind string

const (
	StatementRowEntry   StatementRowKind = "entry"
	StatementRowOpening StatementRowKind = "opening"
	StatementRowTotal   StatementRowKind = "total"
	StatementRowClosing StatementRowKind = "closing"
	StatementRowBlank   StatementRowKind = "blank"
)

// StatementRow is one line of the statement. Only entry rows have a posting date.
type StatementRow struct {
	Kind                     StatementRowKind `json:"kind"`
	Label                    string           `json:"label,omitempty"`
	PostingDate              *time.Time       `json:"posting_date"`
	Account                  string           `json:"account,omitempty"`
	PartyType                models.PartyType `json:"party_type,omitempty"`
	Party                    string           `json:"party,omitempty"`
	VoucherType              string           `json:"voucher_type,omitempty"`
	VoucherNo                string           `json:"voucher_no,omitempty"`
	CostCenter               string           `json:"cost_center,omitempty"`
	Project                  string           `json:"project,omitempty"`
	AgainstVoucherType       string           `json:"against_voucher_type,omitempty"`
	AgainstVoucher           string           `json:"against_voucher,omitempty"`
	Remarks                  string           `json:"remarks,omitempty"`
	Against                  string           `json:"against,omitempty"`
	IsOpening                models.IsOpening `json:"is_opening,omitempty"`
	Debit                    decimal.Decimal  `json:"debit"`
	Credit                   decimal.Decimal  `json:"credit"`
	DebitInAccountCurrency   decimal.Decimal  `json:"debit_in_account_currency"`
	CreditInAccountCurrency  decimal.Decimal  `json:"credit_in_account_currency"`
	Balance                  decimal.Decimal  `json:"balance"`
	BalanceInAccountCurrency decimal.Decimal  `json:"balance_in_account_currency"`
	AccountCurrency          string           `json:"account_currency"`
	BillNo                   string           `json:"bill_no"`
}

func (r *StatementRow) HasPostingDate() bool {
	return r.PostingDate != nil
}

func (r *StatementRow) amounts() Amounts {
	return Amounts{
		Debit:                   r.Debit,
		Credit:                  r.Credit,
		DebitInAccountCurrency:  r.DebitInAccountCurrency,
		CreditInAccountCurrency: r.CreditInAccountCurrency,
	}
}

func entryRow(e *models.GlEntry) *StatementRow {
	row := &StatementRow{
		Kind:                    StatementRowEntry,
		Account:                 e.Account,
		PartyType:               e.PartyType,
		Party:                   e.Party,
		VoucherType:             e.VoucherType,
		VoucherNo:               e.VoucherNo,
		CostCenter:              e.CostCenter,
		Project:                 e.Project,
		AgainstVoucherType:      e.AgainstVoucherType,
		AgainstVoucher:          e.AgainstVoucher,
		Remarks:                 e.Remarks,
		Against:                 e.Against,
		IsOpening:               e.IsOpening,
		Debit:                   e.Debit,
		Credit:                  e.Credit,
		DebitInAccountCurrency:  e.DebitInAccountCurrency,
		CreditInAccountCurrency: e.CreditInAccountCurrency,
	}
	if e.HasPostingDate() {
		date := e.PostingDate
		row.PostingDate = &date
	}
	return row
}

func markerRow(kind StatementRowKind, label string, a Amounts) *StatementRow {
	return &StatementRow{
		Kind:                    kind,
		Label:                   label,
		Debit:                   a.Debit,
		Credit:                  a.Credit,
		DebitInAccountCurrency:  a.DebitInAccountCurrency,
		CreditInAccountCurrency: a.CreditInAccountCurrency,
	}
}

func blankRow() *StatementRow {
	return &StatementRow{Kind: StatementRowBlank}
}

// AssembleRows lays out the statement: grand opening, then for each group
// with members a blank row, the group opening, the members, the group total
// and the group closing, then one blank row, the grand total and the grand
// closing. Explicit per-voucher grouping leaves out group opening and closing.
// Consolidated rows go straight between grand opening and grand total.
func AssembleRows(filters *models.StatementFilters, grand Totals, groups *GroupMap, consolidated []*models.GlEntry) []*StatementRow {
	rows := []*StatementRow{markerRow(StatementRowOpening, labelOpening, grand.Opening)}

	if filters.GroupBy.IsConsolidated() {
		for _, e := range consolidated {
			rows = append(rows, entryRow(e))
		}
	} else {
		withGroupMarkers := filters.GroupBy.HasGroupOpeningRows()
		for _, g := range groups.Groups() {
			if len(g.Entries) == 0 {
				continue
			}
			rows = append(rows, blankRow())
			if withGroupMarkers {
				rows = append(rows, markerRow(StatementRowOpening, labelOpening, g.Totals.Opening))
			}
			for _, e := range g.Entries {
				rows = append(rows, entryRow(e))
			}
			rows = append(rows, markerRow(StatementRowTotal, labelTotal, g.Totals.Total))
			if withGroupMarkers {
				rows = append(rows, markerRow(StatementRowClosing, labelClosing, g.Totals.Closing()))
			}
		}
		rows = append(rows, blankRow())
	}

	rows = append(rows,
		markerRow(StatementRowTotal, labelTotal, grand.Total),
		markerRow(StatementRowClosing, labelClosing, grand.Closing()),
	)
	return rows
}

// AnnotateRows sets the running balance, currency and bill number of every
// row. The balance restarts at each row without a posting date.
func AnnotateRows(rows []*StatementRow, accountCurrency string, billNos map[string]string) {
	var balance, balanceInAccountCurrency decimal.Decimal
	for _, row := range rows {
		if !row.HasPostingDate() {
			balance = decimal.Zero
			balanceInAccountCurrency = decimal.Zero
		}
		amounts := row.amounts()
		balance = balance.Add(amounts.Net())
		balanceInAccountCurrency = balanceInAccountCurrency.Add(amounts.NetInAccountCurrency())

		row.Balance = balance
		row.BalanceInAccountCurrency = balanceInAccountCurrency
		row.AccountCurrency = accountCurrency
		row.BillNo = ""
		if row.AgainstVoucher != "" {
			row.BillNo = billNos[row.AgainstVoucher]
		}
	}
}
