package middlewares

import (
	"context"

	"github.com/mmdatafocus/statement_backend/models"
)

// statementLookups serves statement master data through the request loaders.
type statementLookups struct{}

func StatementLookups() models.StatementLookups {
	return statementLookups{}
}

func (statementLookups) GetAccount(ctx context.Context, company string, name string) (*models.Account, error) {
	return GetAccount(ctx, company, name)
}

func (statementLookups) GetParty(ctx context.Context, company string, partyType models.PartyType, name string) (*models.Party, error) {
	return GetParty(ctx, company, partyType, name)
}

func (statementLookups) GetCompany(ctx context.Context, name string) (*models.Company, error) {
	return models.GetCompany(ctx, name)
}

func (statementLookups) GetFirstPartyCurrency(ctx context.Context, company string, partyType models.PartyType, party string) (string, error) {
	return models.GetFirstPartyCurrency(ctx, company, partyType, party)
}
