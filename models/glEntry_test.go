package models

import (
	"strings"
	"testing"
	"time"
)

func baseFilters() *StatementFilters {
	return &StatementFilters{
		Company:  "Acme",
		FromDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestGlEntryQuery_FromDateCondition(t *testing.T) {
	cases := []struct {
		name         string
		mutate       func(f *StatementFilters)
		withFromDate bool
	}{
		{"plain", func(f *StatementFilters) {}, true},
		{"account", func(f *StatementFilters) { f.Account = "Debtors" }, false},
		{"party", func(f *StatementFilters) { f.PartyType = PartyTypeCustomer; f.Party = []string{"Smile"} }, false},
		{"group by account", func(f *StatementFilters) { f.GroupBy = StatementGroupByAccount }, false},
		{"group by party", func(f *StatementFilters) { f.GroupBy = StatementGroupByParty }, false},
		{"group by voucher", func(f *StatementFilters) { f.GroupBy = StatementGroupByVoucher }, true},
	}
	for _, tc := range cases {
		f := baseFilters()
		tc.mutate(f)
		sql, _, err := glEntryQuery(f, 1, 10, nil, nil)
		if err != nil {
			t.Fatalf("%s: glEntryQuery error: %v", tc.name, err)
		}
		if got := strings.Contains(sql, "posting_date >= @fromDate"); got != tc.withFromDate {
			t.Fatalf("%s: from date condition expected %v, got %v\n%s", tc.name, tc.withFromDate, got, sql)
		}
		if !strings.Contains(sql, "(posting_date <= @toDate OR is_opening = 'Yes')") {
			t.Fatalf("%s: missing to date condition\n%s", tc.name, sql)
		}
	}
}

func TestGlEntryQuery_OrderAndFilters(t *testing.T) {
	f := baseFilters()
	f.Account = "Debtors"
	f.VoucherNo = "SINV-1"
	f.PartyType = PartyTypeCustomer
	f.Party = []string{"Smile", "Lotus"}

	sql, args, err := glEntryQuery(f, 4, 9, []string{"Main", "Main - Sub"}, []string{"Book A", ""})
	if err != nil {
		t.Fatalf("glEntryQuery error: %v", err)
	}
	for _, want := range []string{
		"lft >= @lft AND rgt <= @rgt",
		"cost_center IN @costCenter",
		"voucher_no = @voucherNo",
		"party_type = @partyType",
		"party IN @party",
		"finance_book IN @financeBooks",
		"ORDER BY posting_date, account",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("glEntryQuery expected %q in\n%s", want, sql)
		}
	}
	if args["lft"] != 4 || args["rgt"] != 9 {
		t.Fatalf("glEntryQuery unexpected lft/rgt args %v/%v", args["lft"], args["rgt"])
	}

	f.GroupBy = StatementGroupByVoucher
	sql, _, _ = glEntryQuery(f, 4, 9, nil, nil)
	if !strings.Contains(sql, "ORDER BY posting_date, voucher_type, voucher_no") {
		t.Fatalf("group by voucher expected voucher ordering\n%s", sql)
	}
	if strings.Contains(sql, "cost_center IN") || strings.Contains(sql, "finance_book") {
		t.Fatalf("unexpected optional conditions\n%s", sql)
	}
}

func TestGlEntryQuery_UngroupedOrdersByAccount(t *testing.T) {
	cases := []struct {
		groupBy StatementGroupBy
		want    string
	}{
		{StatementGroupByNone, "ORDER BY posting_date, account"},
		{StatementGroupByVoucher, "ORDER BY posting_date, voucher_type, voucher_no"},
		{StatementGroupByVoucherConsolidated, "ORDER BY posting_date, account"},
	}
	for _, c := range cases {
		f := baseFilters()
		f.GroupBy = c.groupBy
		sql, _, err := glEntryQuery(f, 0, 0, nil, nil)
		if err != nil {
			t.Fatalf("glEntryQuery(%q) error: %v", c.groupBy, err)
		}
		if !strings.Contains(sql, c.want) {
			t.Fatalf("glEntryQuery(%q) expected %q in\n%s", c.groupBy, c.want, sql)
		}
	}
}

func TestGlEntryQuery_AccountingDimensions(t *testing.T) {
	t.Setenv("ACCOUNTING_DIMENSIONS", "Department, branch;drop")
	f := baseFilters()
	f.AccountingDimensions = map[string][]string{
		"department": {"Sales"},
		"branch":     nil,
	}
	sql, args, err := glEntryQuery(f, 0, 0, nil, nil)
	if err != nil {
		t.Fatalf("glEntryQuery error: %v", err)
	}
	if !strings.Contains(sql, "department IN @dim_department") {
		t.Fatalf("expected department dimension condition\n%s", sql)
	}
	if strings.Contains(sql, "branch IN") || strings.Contains(sql, "drop") {
		t.Fatalf("unexpected dimension condition\n%s", sql)
	}
	if _, ok := args["dim_department"]; !ok {
		t.Fatalf("expected dim_department argument")
	}
}
