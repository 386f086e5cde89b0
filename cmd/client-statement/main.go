// client-statement prints a client statement of account or writes it as xlsx.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//	  go run ./cmd/client-statement -company Acme -party-type customer -party "Smile" \
//	  -from 2024-01-01 -to 2024-03-31 -group-by party -out statement.xlsx
//
// Redis is only used when REDIS_ADDRESS is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/middlewares"
	"github.com/mmdatafocus/statement_backend/models"
	"github.com/mmdatafocus/statement_backend/models/reports"
	"github.com/mmdatafocus/statement_backend/utils"
)

func main() {
	company := flag.String("company", "", "Company name (required)")
	partyType := flag.String("party-type", "", "customer, supplier or employee")
	party := flag.String("party", "", "Comma-separated party names")
	account := flag.String("account", "", "Optional: account (includes child accounts)")
	from := flag.String("from", "", "Start date (YYYY-MM-DD)")
	to := flag.String("to", "", "End date (YYYY-MM-DD)")
	groupBy := flag.String("group-by", "", "none, voucher, party, account or consolidated")
	showOpening := flag.Bool("show-opening", false, "Show opening entries as their own section")
	ageingDate := flag.String("ageing-date", "", "Optional: date ageing is computed at (defaults to today)")
	out := flag.String("out", "", "Optional: write xlsx to this file instead of printing")
	flag.Parse()

	if strings.TrimSpace(*company) == "" {
		fmt.Fprintln(os.Stderr, "-company is required")
		os.Exit(2)
	}

	query := url.Values{}
	setIfNotEmpty(query, "party_type", *partyType)
	setIfNotEmpty(query, "party", *party)
	setIfNotEmpty(query, "account", *account)
	setIfNotEmpty(query, "from_date", *from)
	setIfNotEmpty(query, "to_date", *to)
	setIfNotEmpty(query, "group_by", *groupBy)
	setIfNotEmpty(query, "ageing_date", *ageingDate)
	query.Set("show_opening_entries", strconv.FormatBool(*showOpening))

	filters, err := models.ParseStatementQuery(strings.TrimSpace(*company), query)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedisWithRetry()
	}

	ctx := utils.SetCompanyInContext(context.Background(), filters.Company)
	ctx = middlewares.WithLoaders(ctx, middlewares.NewLoaders(config.GetDB()))

	report, err := reports.GetClientStatementReport(ctx, filters, middlewares.StatementLookups())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build statement: %v\n", err)
		if utils.IsValidationError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", *out, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := reports.ExportClientStatementExcel(report, f); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write xlsx: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(report.Rows), *out)
		return
	}

	printStatement(os.Stdout, report)
}

func setIfNotEmpty(query url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		query.Set(key, v)
	}
}

func printStatement(w io.Writer, report *reports.ClientStatementReport) {
	h := report.Header
	fmt.Fprintf(w, "Statement for %s (%s to %s, %s)\n", h.CustomerName,
		report.FromDate.Format(utils.DateLayout), report.ToDate.Format(utils.DateLayout), report.Currency)
	fmt.Fprintf(w, "Current: %s  30 Days: %s  60 Days: %s  90 Days: %s\n\n",
		h.Current.StringFixed(2), h.Days30.StringFixed(2), h.Days60.StringFixed(2), h.Days90.StringFixed(2))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tVoucher\tReference\tDebit\tCredit\tBalance\t")
	for _, row := range report.Rows {
		if row.Kind == reports.StatementRowBlank {
			fmt.Fprintln(tw, "\t\t\t\t\t\t")
			continue
		}
		date := ""
		if row.PostingDate != nil {
			date = row.PostingDate.Format(utils.DateLayout)
		}
		voucher := row.VoucherNo
		if row.Kind != reports.StatementRowEntry {
			voucher = row.Label
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", date, voucher, row.BillNo,
			row.Debit.StringFixed(2), row.Credit.StringFixed(2), row.Balance.StringFixed(2))
	}
	tw.Flush()
}
