package reports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmdatafocus/statement_backend/models"
	"github.com/xuri/excelize/v2"
)

func TestExportClientStatementExcel(t *testing.T) {
	filters := statementFilters(models.StatementGroupByAccount)
	postings := []*models.GlEntry{
		posting(daysAgo(5), "SINV-1", "Debtors", 100, 0),
		posting(daysAgo(2), "PE-1", "Debtors", 0, 40),
	}
	rows, ageing := ComputeStatement(filters, postings, nil, "MMK")
	report := &ClientStatementReport{
		Header: ClientStatementHeader{
			CustomerName: "Smile",
			Current:      ageing.Current,
		},
		Columns:  clientStatementColumns("MMK"),
		Rows:     rows,
		Currency: "MMK",
		FromDate: filters.FromDate,
		ToDate:   filters.ToDate,
	}

	var buf bytes.Buffer
	if err := ExportClientStatementExcel(report, &buf); err != nil {
		t.Fatalf("ExportClientStatementExcel error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(statementSheet, "B1")
	if err != nil {
		t.Fatalf("GetCellValue error: %v", err)
	}
	if got != "Smile" {
		t.Fatalf("customer cell expected Smile, got %q", got)
	}

	sheetRows, err := f.GetRows(statementSheet)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	var headingFound, voucherFound bool
	for _, r := range sheetRows {
		joined := strings.Join(r, "|")
		if strings.Contains(joined, "Balance (MMK)") {
			headingFound = true
		}
		if strings.Contains(joined, "SINV-1") {
			voucherFound = true
		}
	}
	if !headingFound || !voucherFound {
		t.Fatalf("expected heading and voucher rows, got %v", sheetRows)
	}
}

func TestReportCacheKey_StableForSameInput(t *testing.T) {
	a := statementFilters(models.StatementGroupByAccount)
	b := statementFilters(models.StatementGroupByAccount)
	keyA, err := reportCacheKey(clientStatementReportName, a)
	if err != nil {
		t.Fatalf("reportCacheKey error: %v", err)
	}
	keyB, _ := reportCacheKey(clientStatementReportName, b)
	if keyA != keyB {
		t.Fatalf("reportCacheKey expected equal keys, got %s and %s", keyA, keyB)
	}
	b.Party = []string{"Other"}
	keyC, _ := reportCacheKey(clientStatementReportName, b)
	if keyA == keyC {
		t.Fatalf("reportCacheKey expected different keys for different filters")
	}
	if !strings.HasPrefix(keyA, "report:client_statement:") {
		t.Fatalf("reportCacheKey unexpected prefix %s", keyA)
	}
}
