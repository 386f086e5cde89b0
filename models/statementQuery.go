package models

import (
	"net/url"
	"strings"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
)

// ParseStatementQuery reads statement filters from query parameters. List
// parameters may be repeated or comma separated; each configured accounting
// dimension is read from the parameter of the same name.
func ParseStatementQuery(company string, query url.Values) (*StatementFilters, error) {
	filters := &StatementFilters{
		Company:                   company,
		Account:                   strings.TrimSpace(query.Get("account")),
		CostCenter:                queryList(query, "cost_center"),
		VoucherNo:                 strings.TrimSpace(query.Get("voucher_no")),
		Party:                     queryList(query, "party"),
		ShowOpeningEntries:        queryBool(query, "show_opening_entries"),
		FinanceBook:               strings.TrimSpace(query.Get("finance_book")),
		IncludeDefaultBookEntries: queryBool(query, "include_default_book_entries"),
		PrintInAccountCurrency:    queryBool(query, "print_in_account_currency"),
		PresentationCurrency:      strings.TrimSpace(query.Get("presentation_currency")),
	}

	var err error
	if v := query.Get("from_date"); v != "" {
		if filters.FromDate, err = utils.ParseDate(v); err != nil {
			return nil, utils.NewValidationError("invalid from_date: %s", v)
		}
	}
	if v := query.Get("to_date"); v != "" {
		if filters.ToDate, err = utils.ParseDate(v); err != nil {
			return nil, utils.NewValidationError("invalid to_date: %s", v)
		}
	}
	if v := query.Get("ageing_date"); v != "" {
		if filters.AgeingDate, err = utils.ParseDate(v); err != nil {
			return nil, utils.NewValidationError("invalid ageing_date: %s", v)
		}
	}
	if filters.PartyType, err = ParsePartyType(query.Get("party_type")); err != nil {
		return nil, utils.NewValidationError("invalid party_type: %s", query.Get("party_type"))
	}
	if filters.GroupBy, err = ParseStatementGroupBy(query.Get("group_by")); err != nil {
		return nil, utils.NewValidationError("invalid group_by: %s", query.Get("group_by"))
	}

	for _, dim := range config.AccountingDimensions() {
		if values := queryList(query, dim); len(values) > 0 {
			if filters.AccountingDimensions == nil {
				filters.AccountingDimensions = make(map[string][]string)
			}
			filters.AccountingDimensions[dim] = values
		}
	}
	return filters, nil
}

func queryList(query url.Values, key string) []string {
	var out []string
	for _, raw := range query[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return utils.UniqueSlice(out)
}

func queryBool(query url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(query.Get(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
