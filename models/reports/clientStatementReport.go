package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/models"
	"github.com/mmdatafocus/statement_backend/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const clientStatementReportName = "client_statement"

var tracer = otel.Tracer("statement_backend/reports")

type StatementColumn struct {
	Label     string `json:"label"`
	Fieldname string `json:"fieldname"`
	Fieldtype string `json:"fieldtype,omitempty"`
	Options   string `json:"options,omitempty"`
	Width     int    `json:"width"`
}

type ClientStatementHeader struct {
	CustomerName    string                  `json:"customer_name"`
	CustomerDetails *models.CustomerDetails `json:"customer_details"`
	Current         decimal.Decimal         `json:"current"`
	Days30          decimal.Decimal         `json:"days30"`
	Days60          decimal.Decimal         `json:"days60"`
	Days90          decimal.Decimal         `json:"days90"`
}

type ClientStatementReport struct {
	Header          ClientStatementHeader `json:"header"`
	Columns         []StatementColumn     `json:"columns"`
	Rows            []*StatementRow       `json:"rows"`
	Currency        string                `json:"currency"`
	AccountCurrency string                `json:"account_currency"`
	FromDate        time.Time             `json:"from_date"`
	ToDate          time.Time             `json:"to_date"`
}

func ageingToday(filters *models.StatementFilters) time.Time {
	if filters != nil && !filters.AgeingDate.IsZero() {
		return filters.AgeingDate
	}
	return time.Now().UTC()
}

// companyToday is the current date in the company's timezone, falling back
// to the UTC date.
func companyToday(ctx context.Context, companyName string, lookups models.StatementLookups) time.Time {
	now := time.Now().UTC()
	company, err := lookups.GetCompany(ctx, companyName)
	if err != nil {
		return calendarDate(now)
	}
	today, err := utils.ConvertToDate(now, company.Timezone)
	if err != nil {
		config.LogError(config.GetLogger(), "clientStatementReport.go", "companyToday", "ConvertToDate", company.Timezone, err)
		return calendarDate(now)
	}
	return today
}

// inReportCurrency returns postings with Debit and Credit taken from the
// account-currency amounts when the statement is presented in a currency other
// than the company's and the posting's account is kept in it. Other postings
// keep their company-currency amounts. The input postings are not modified.
func inReportCurrency(filters *models.StatementFilters, postings []*models.GlEntry) []*models.GlEntry {
	currency := filters.ReportCurrency()
	if currency == "" || currency == filters.CompanyCurrency {
		return postings
	}
	converted := make([]*models.GlEntry, len(postings))
	for i, e := range postings {
		entryCurrency := e.AccountCurrency
		if entryCurrency == "" {
			entryCurrency = filters.AccountCurrency
		}
		if entryCurrency != currency {
			converted[i] = e
			continue
		}
		c := *e
		c.Debit = e.DebitInAccountCurrency
		c.Credit = e.CreditInAccountCurrency
		converted[i] = &c
	}
	return converted
}

// ComputeStatement builds the statement rows and ageing totals from postings
// already fetched for filters. Amounts are in filters.ReportCurrency().
func ComputeStatement(filters *models.StatementFilters, postings []*models.GlEntry, billNos map[string]string, accountCurrency string) ([]*StatementRow, AgeingTotals) {
	postings = inReportCurrency(filters, postings)
	groups := GroupPostings(postings, filters.GroupBy)
	grand, consolidated := AggregatePostings(filters, postings, groups)
	rows := AssembleRows(filters, grand, groups, consolidated)
	AnnotateRows(rows, accountCurrency, billNos)
	return rows, AgeingBucketTotals(postings, ageingToday(filters))
}

func clientStatementColumns(currency string) []StatementColumn {
	return []StatementColumn{
		{Label: "Date", Fieldname: "posting_date", Fieldtype: "Date", Width: 90},
		{Label: "Description", Fieldname: "voucher_type", Width: 120},
		{Label: "Reference", Fieldname: "voucher_no", Fieldtype: "Dynamic Link", Options: "voucher_type", Width: 180},
		{Label: fmt.Sprintf("Debit (%s)", currency), Fieldname: "debit", Fieldtype: "Float", Width: 100},
		{Label: fmt.Sprintf("Credit (%s)", currency), Fieldname: "credit", Fieldtype: "Float", Width: 100},
		{Label: fmt.Sprintf("Balance (%s)", currency), Fieldname: "balance", Fieldtype: "Float", Width: 130},
	}
}

// header party is the first selected party; statements are usually for one customer
func headerParty(filters *models.StatementFilters) string {
	if len(filters.Party) == 0 {
		return ""
	}
	return filters.Party[0]
}

// GetClientStatementReport validates filters, loads the postings and builds
// the statement with its customer header and ageing.
func GetClientStatementReport(ctx context.Context, filters *models.StatementFilters, lookups models.StatementLookups) (*ClientStatementReport, error) {
	if filters == nil {
		return nil, utils.NewValidationError("filters are required")
	}
	ctx, span := tracer.Start(ctx, "GetClientStatementReport")
	defer span.End()
	span.SetAttributes(
		attribute.String("company", filters.Company),
		attribute.String("group_by", string(filters.GroupBy)),
		attribute.Int("party_count", len(filters.Party)),
	)

	if err := models.ValidateStatementFilters(ctx, filters, lookups); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if _, err := models.ResolveAccountCurrency(ctx, filters, lookups); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// pinning the ageing date also keys the cache by day
	if filters.AgeingDate.IsZero() {
		filters.AgeingDate = companyToday(ctx, filters.Company, lookups)
	}

	started := time.Now()
	result, err := cachedReport(ctx, clientStatementReportName, filters, func(ctx context.Context) (*ClientStatementReport, error) {
		return buildClientStatementReport(ctx, filters)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	logSlowReport(ctx, clientStatementReportName, started, map[string]any{
		"rows":     len(result.Rows),
		"group_by": filters.GroupBy,
	})
	span.SetAttributes(attribute.Int("rows", len(result.Rows)))
	return result, nil
}

func buildClientStatementReport(ctx context.Context, filters *models.StatementFilters) (*ClientStatementReport, error) {
	logger := config.GetLogger()

	party := headerParty(filters)
	details, err := models.GetCustomerDetails(ctx, party)
	if err != nil {
		config.LogError(logger, "clientStatementReport.go", "buildClientStatementReport", "GetCustomerDetails", party, err)
		return nil, err
	}

	postings, err := models.GetGlEntries(ctx, filters)
	if err != nil {
		return nil, err
	}

	billNos, err := models.GetSupplierInvoiceBillNumbers(ctx)
	if err != nil {
		config.LogError(logger, "clientStatementReport.go", "buildClientStatementReport", "GetSupplierInvoiceBillNumbers", nil, err)
		return nil, err
	}

	rows, ageing := ComputeStatement(filters, postings, billNos, filters.AccountCurrency)

	currency := filters.ReportCurrency()
	return &ClientStatementReport{
		Header: ClientStatementHeader{
			CustomerName:    party,
			CustomerDetails: details,
			Current:         ageing.Current,
			Days30:          ageing.Days30,
			Days60:          ageing.Days60,
			Days90:          ageing.Days90,
		},
		Columns:         clientStatementColumns(currency),
		Rows:            rows,
		Currency:        currency,
		AccountCurrency: filters.AccountCurrency,
		FromDate:        filters.FromDate,
		ToDate:          filters.ToDate,
	}, nil
}
