package models

import "testing"

func TestParseStatementGroupBy(t *testing.T) {
	cases := []struct {
		in       string
		expected StatementGroupBy
		wantErr  bool
	}{
		{"", StatementGroupByNone, false},
		{"none", StatementGroupByNone, false},
		{"voucher", StatementGroupByVoucher, false},
		{"Group by Party", StatementGroupByParty, false},
		{" account ", StatementGroupByAccount, false},
		{"Group by Voucher (Consolidated)", StatementGroupByVoucherConsolidated, false},
		{"consolidated", StatementGroupByVoucherConsolidated, false},
		{"by month", StatementGroupByNone, true},
	}
	for _, tc := range cases {
		got, err := ParseStatementGroupBy(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseStatementGroupBy(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseStatementGroupBy(%q) error: %v", tc.in, err)
		}
		if got != tc.expected {
			t.Fatalf("ParseStatementGroupBy(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestStatementGroupBy_GroupKey(t *testing.T) {
	e := &GlEntry{Party: "Smile", Account: "Debtors", VoucherNo: "SINV-1"}
	cases := []struct {
		groupBy  StatementGroupBy
		expected string
	}{
		{StatementGroupByNone, "SINV-1"},
		{StatementGroupByVoucher, "SINV-1"},
		{StatementGroupByParty, "Smile"},
		{StatementGroupByAccount, "Debtors"},
		{StatementGroupByVoucherConsolidated, "Debtors"},
	}
	for _, tc := range cases {
		if got := tc.groupBy.GroupKey(e); got != tc.expected {
			t.Fatalf("GroupKey(%q) expected %s, got %s", tc.groupBy, tc.expected, got)
		}
	}
}

func TestStatementGroupBy_HasGroupOpeningRows(t *testing.T) {
	if StatementGroupByVoucher.HasGroupOpeningRows() {
		t.Fatalf("group by voucher must not have group opening rows")
	}
	for _, g := range []StatementGroupBy{StatementGroupByNone, StatementGroupByParty, StatementGroupByAccount} {
		if !g.HasGroupOpeningRows() {
			t.Fatalf("%q expected group opening rows", g)
		}
	}
	if StatementGroupByNone.GroupKey(&GlEntry{VoucherNo: "SINV-1", Account: "Debtors"}) != "SINV-1" {
		t.Fatalf("ungrouped statement expected voucher number group key")
	}
}

func TestParsePartyType(t *testing.T) {
	got, err := ParsePartyType("customer")
	if err != nil || got != PartyTypeCustomer {
		t.Fatalf("ParsePartyType(customer) expected Customer, got %q (%v)", got, err)
	}
	if _, err := ParsePartyType("Planet"); err == nil {
		t.Fatalf("ParsePartyType(Planet) expected error")
	}
	if PartyTypeEmployee.HasDefaultCurrency() {
		t.Fatalf("employees have no default currency")
	}
}
