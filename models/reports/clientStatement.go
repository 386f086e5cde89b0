package reports

import (
	"time"

	"github.com/mmdatafocus/statement_backend/models"
	"github.com/shopspring/decimal"
)

const (
	labelOpening = "Opening"
	labelTotal   = "Total"
	labelClosing = "Closing (Opening + Total)"
)

// Amounts is a debit/credit pair in company and account currency. Values are
// never mutated; Add returns a new one.
type Amounts struct {
	Debit                   decimal.Decimal `json:"debit"`
	Credit                  decimal.Decimal `json:"credit"`
	DebitInAccountCurrency  decimal.Decimal `json:"debit_in_account_currency"`
	CreditInAccountCurrency decimal.Decimal `json:"credit_in_account_currency"`
}

func AmountsOf(e *models.GlEntry) Amounts {
	return Amounts{
		Debit:                   e.Debit,
		Credit:                  e.Credit,
		DebitInAccountCurrency:  e.DebitInAccountCurrency,
		CreditInAccountCurrency: e.CreditInAccountCurrency,
	}
}

func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		Debit:                   a.Debit.Add(b.Debit),
		Credit:                  a.Credit.Add(b.Credit),
		DebitInAccountCurrency:  a.DebitInAccountCurrency.Add(b.DebitInAccountCurrency),
		CreditInAccountCurrency: a.CreditInAccountCurrency.Add(b.CreditInAccountCurrency),
	}
}

// Net is debit minus credit.
func (a Amounts) Net() decimal.Decimal {
	return a.Debit.Sub(a.Credit)
}

func (a Amounts) NetInAccountCurrency() decimal.Decimal {
	return a.DebitInAccountCurrency.Sub(a.CreditInAccountCurrency)
}

// Totals holds the opening and in-window sums. Closing is derived, so
// opening + total == closing always holds.
type Totals struct {
	Opening Amounts `json:"opening"`
	Total   Amounts `json:"total"`
}

func (t Totals) Closing() Amounts {
	return t.Opening.Add(t.Total)
}

func (t Totals) addOpening(a Amounts) Totals {
	t.Opening = t.Opening.Add(a)
	return t
}

func (t Totals) addTotal(a Amounts) Totals {
	t.Total = t.Total.Add(a)
	return t
}

type StatementGroup struct {
	Key     string            `json:"key"`
	Totals  Totals            `json:"totals"`
	Entries []*models.GlEntry `json:"entries"`
}

// GroupMap keeps groups in the order their keys were first seen.
type GroupMap struct {
	keys   []string
	groups map[string]*StatementGroup
}

func newGroupMap() *GroupMap {
	return &GroupMap{groups: make(map[string]*StatementGroup)}
}

func (m *GroupMap) getOrCreate(key string) *StatementGroup {
	if g, ok := m.groups[key]; ok {
		return g
	}
	g := &StatementGroup{Key: key}
	m.groups[key] = g
	m.keys = append(m.keys, key)
	return g
}

func (m *GroupMap) Get(key string) (*StatementGroup, bool) {
	g, ok := m.groups[key]
	return g, ok
}

func (m *GroupMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *GroupMap) Len() int {
	return len(m.keys)
}

// Groups returns the groups in first-seen order.
func (m *GroupMap) Groups() []*StatementGroup {
	result := make([]*StatementGroup, 0, len(m.keys))
	for _, key := range m.keys {
		result = append(result, m.groups[key])
	}
	return result
}

// GroupPostings creates one empty group per distinct key in postings.
func GroupPostings(postings []*models.GlEntry, groupBy models.StatementGroupBy) *GroupMap {
	groups := newGroupMap()
	for _, e := range postings {
		groups.getOrCreate(groupBy.GroupKey(e))
	}
	return groups
}

type postingBucket int

const (
	bucketDropped postingBucket = iota
	bucketOpening
	bucketTotal
)

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// classifyPosting puts a posting before the window, or an opening entry that
// is not shown, into the opening bucket. Postings after the window are dropped.
func classifyPosting(filters *models.StatementFilters, e *models.GlEntry) postingBucket {
	date := calendarDate(e.PostingDate)
	if date.Before(calendarDate(filters.FromDate)) || (e.IsOpening.IsYes() && !filters.ShowOpeningEntries) {
		return bucketOpening
	}
	if !date.After(calendarDate(filters.ToDate)) {
		return bucketTotal
	}
	return bucketDropped
}

type consolidationKey struct {
	voucherType string
	voucherNo   string
	account     string
	costCenter  string
}

// AggregatePostings sums every posting into its group's totals and the grand
// totals. In-window postings become group members, or merged rows keyed by
// voucher, account and cost center when consolidating.
func AggregatePostings(filters *models.StatementFilters, postings []*models.GlEntry, groups *GroupMap) (Totals, []*models.GlEntry) {
	var grand Totals
	groupBy := filters.GroupBy
	consolidate := groupBy.IsConsolidated()

	var consolidatedKeys []consolidationKey
	consolidated := make(map[consolidationKey]*models.GlEntry)

	for _, e := range postings {
		bucket := classifyPosting(filters, e)
		if bucket == bucketDropped {
			continue
		}
		amounts := AmountsOf(e)
		group := groups.getOrCreate(groupBy.GroupKey(e))

		if bucket == bucketOpening {
			group.Totals = group.Totals.addOpening(amounts)
			grand = grand.addOpening(amounts)
			continue
		}

		group.Totals = group.Totals.addTotal(amounts)
		grand = grand.addTotal(amounts)

		if !consolidate {
			group.Entries = append(group.Entries, e)
			continue
		}

		key := consolidationKey{
			voucherType: e.VoucherType,
			voucherNo:   e.VoucherNo,
			account:     e.Account,
			costCenter:  e.CostCenter,
		}
		if merged, ok := consolidated[key]; ok {
			sum := AmountsOf(merged).Add(amounts)
			merged.Debit = sum.Debit
			merged.Credit = sum.Credit
			merged.DebitInAccountCurrency = sum.DebitInAccountCurrency
			merged.CreditInAccountCurrency = sum.CreditInAccountCurrency
			continue
		}
		merged := *e
		consolidated[key] = &merged
		consolidatedKeys = append(consolidatedKeys, key)
	}

	entries := make([]*models.GlEntry, 0, len(consolidatedKeys))
	for _, key := range consolidatedKeys {
		entries = append(entries, consolidated[key])
	}
	return grand, entries
}
