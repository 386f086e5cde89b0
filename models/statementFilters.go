package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/statement_backend/utils"
)

// StatementFilters selects the postings of a client statement and how they
// are laid out.
type StatementFilters struct {
	Company                   string              `json:"company" validate:"required"`
	FromDate                  time.Time           `json:"from_date" validate:"required"`
	ToDate                    time.Time           `json:"to_date" validate:"required"`
	Account                   string              `json:"account,omitempty"`
	CostCenter                []string            `json:"cost_center,omitempty"`
	VoucherNo                 string              `json:"voucher_no,omitempty"`
	PartyType                 PartyType           `json:"party_type,omitempty"`
	Party                     []string            `json:"party,omitempty" validate:"dive,required"`
	GroupBy                   StatementGroupBy    `json:"group_by,omitempty"`
	ShowOpeningEntries        bool                `json:"show_opening_entries,omitempty"`
	FinanceBook               string              `json:"finance_book,omitempty"`
	IncludeDefaultBookEntries bool                `json:"include_default_book_entries,omitempty"`
	PrintInAccountCurrency    bool                `json:"print_in_account_currency,omitempty"`
	PresentationCurrency      string              `json:"presentation_currency,omitempty"`
	AccountingDimensions      map[string][]string `json:"accounting_dimensions,omitempty"`
	// AgeingDate is "today" for ageing; zero means the current UTC date.
	AgeingDate time.Time `json:"ageing_date,omitempty"`

	// set by ResolveAccountCurrency
	AccountCurrency string `json:"account_currency,omitempty"`
	CompanyCurrency string `json:"company_currency,omitempty"`
}

// StatementLookups resolves the master records a statement refers to.
// GetAccount and GetParty return nil without error when the record is missing.
type StatementLookups interface {
	GetAccount(ctx context.Context, company string, name string) (*Account, error)
	GetParty(ctx context.Context, company string, partyType PartyType, name string) (*Party, error)
	GetCompany(ctx context.Context, name string) (*Company, error)
	GetFirstPartyCurrency(ctx context.Context, company string, partyType PartyType, party string) (string, error)
}

// ValidateStatementFilters rejects filters the statement cannot be built
// from. Failures are *utils.ValidationError.
func ValidateStatementFilters(ctx context.Context, filters *StatementFilters, lookups StatementLookups) error {
	if filters == nil {
		return utils.NewValidationError("filters are required")
	}
	if err := utils.ValidateStruct(filters); err != nil {
		return err
	}

	if filters.PrintInAccountCurrency && filters.Account == "" {
		return utils.NewValidationError("Select an account to print in account currency")
	}

	if filters.FromDate.After(filters.ToDate) {
		return utils.NewValidationError("From Date must be before To Date")
	}

	if _, err := lookups.GetCompany(ctx, filters.Company); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return utils.NewValidationError("Invalid Company: %s", filters.Company)
		}
		return err
	}

	if filters.Account != "" {
		account, err := lookups.GetAccount(ctx, filters.Company, filters.Account)
		if err != nil {
			return err
		}
		if account == nil {
			return utils.NewValidationError("Invalid Account: %s", filters.Account)
		}
	}

	if len(filters.Party) > 0 {
		if filters.PartyType == "" {
			return utils.NewValidationError("To filter based on Party, select Party Type first")
		}
		for _, name := range filters.Party {
			party, err := lookups.GetParty(ctx, filters.Company, filters.PartyType, name)
			if err != nil {
				return err
			}
			if party == nil {
				return utils.NewValidationError("Invalid %s: %s", filters.PartyType, name)
			}
		}
	}

	return nil
}

// ResolveAccountCurrency stamps the currency rows are reported in onto filters
// and returns it. An account filter uses the account's currency; a single
// party uses the currency it was first posted in, then its default currency.
// Anything else falls back to the company currency.
func ResolveAccountCurrency(ctx context.Context, filters *StatementFilters, lookups StatementLookups) (string, error) {
	if filters == nil {
		return "", errors.New("filters are required")
	}
	company, err := lookups.GetCompany(ctx, filters.Company)
	if err != nil {
		return "", err
	}
	filters.CompanyCurrency = company.DefaultCurrency

	var accountCurrency string
	switch {
	case filters.Account != "":
		account, err := lookups.GetAccount(ctx, filters.Company, filters.Account)
		if err != nil {
			return "", err
		}
		if account != nil {
			accountCurrency = account.AccountCurrency
		}
	case len(filters.Party) == 1:
		accountCurrency, err = lookups.GetFirstPartyCurrency(ctx, filters.Company, filters.PartyType, filters.Party[0])
		if err != nil {
			return "", err
		}
		if accountCurrency == "" && filters.PartyType.HasDefaultCurrency() {
			party, err := lookups.GetParty(ctx, filters.Company, filters.PartyType, filters.Party[0])
			if err != nil {
				return "", err
			}
			if party != nil {
				accountCurrency = party.DefaultCurrency
			}
		}
	}

	if accountCurrency == "" {
		accountCurrency = filters.CompanyCurrency
	}
	filters.AccountCurrency = accountCurrency
	if filters.AccountCurrency != filters.CompanyCurrency && filters.PresentationCurrency == "" {
		filters.PresentationCurrency = filters.AccountCurrency
	}
	return accountCurrency, nil
}

// ReportCurrency is the currency shown in the statement's column headings.
func (f *StatementFilters) ReportCurrency() string {
	if f.PresentationCurrency != "" {
		return f.PresentationCurrency
	}
	return f.CompanyCurrency
}
