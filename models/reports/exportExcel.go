package reports

import (
	"io"

	"github.com/mmdatafocus/statement_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const statementSheet = "Statement"

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func decimalCell(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// rowDescription shows the marker label for opening/total/closing rows.
func rowDescription(r *StatementRow) string {
	if r.Kind == StatementRowEntry {
		return r.VoucherType
	}
	return r.Label
}

// ExportClientStatementExcel writes the statement as an xlsx workbook: the
// customer and ageing block, the column headings, then one line per row.
func ExportClientStatementExcel(report *ClientStatementReport, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := report.Header
	line := 1
	f.SetCellValue(statementSheet, cellName(1, line), "Customer")
	f.SetCellValue(statementSheet, cellName(2, line), header.CustomerName)
	f.SetCellStyle(statementSheet, cellName(1, line), cellName(1, line), bold)
	line++
	if d := header.CustomerDetails; d != nil {
		for _, v := range []string{d.AddressLine1, d.AddressLine2, d.City, d.State, d.Pincode, d.Phone, d.EmailId} {
			if v == "" {
				continue
			}
			f.SetCellValue(statementSheet, cellName(2, line), v)
			line++
		}
	}
	f.SetCellValue(statementSheet, cellName(1, line), "Period")
	f.SetCellValue(statementSheet, cellName(2, line), report.FromDate.Format(utils.DateLayout)+" - "+report.ToDate.Format(utils.DateLayout))
	f.SetCellStyle(statementSheet, cellName(1, line), cellName(1, line), bold)
	line += 2

	ageingLabels := []string{"Current", "31-60 Days", "61-90 Days", "Over 90 Days"}
	ageingValues := []decimal.Decimal{header.Current, header.Days30, header.Days60, header.Days90}
	for i := range ageingLabels {
		f.SetCellValue(statementSheet, cellName(i+1, line), ageingLabels[i])
		f.SetCellValue(statementSheet, cellName(i+1, line+1), decimalCell(ageingValues[i]))
	}
	f.SetCellStyle(statementSheet, cellName(1, line), cellName(len(ageingLabels), line), bold)
	line += 3

	for i, col := range report.Columns {
		f.SetCellValue(statementSheet, cellName(i+1, line), col.Label)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(statementSheet, colName, colName, float64(col.Width)/7)
	}
	f.SetCellStyle(statementSheet, cellName(1, line), cellName(len(report.Columns), line), bold)
	line++

	for _, r := range report.Rows {
		if r.Kind == StatementRowBlank {
			line++
			continue
		}
		if r.PostingDate != nil {
			f.SetCellValue(statementSheet, cellName(1, line), r.PostingDate.Format(utils.DateLayout))
		}
		f.SetCellValue(statementSheet, cellName(2, line), rowDescription(r))
		f.SetCellValue(statementSheet, cellName(3, line), r.VoucherNo)
		f.SetCellValue(statementSheet, cellName(4, line), decimalCell(r.Debit))
		f.SetCellValue(statementSheet, cellName(5, line), decimalCell(r.Credit))
		f.SetCellValue(statementSheet, cellName(6, line), decimalCell(r.Balance))
		if r.Kind != StatementRowEntry {
			f.SetCellStyle(statementSheet, cellName(1, line), cellName(6, line), bold)
		}
		line++
	}

	return f.Write(w)
}
