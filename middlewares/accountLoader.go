package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/statement_backend/models"
	"gorm.io/gorm"
)

type AccountKey struct {
	Company string
	Name    string
}

type accountReader struct {
	db *gorm.DB
}

func (r *accountReader) getAccounts(ctx context.Context, keys []AccountKey) []*dataloader.Result[*models.Account] {
	byCompany := make(map[string][]string)
	for _, key := range keys {
		byCompany[key.Company] = append(byCompany[key.Company], key.Name)
	}

	resultMap := make(map[AccountKey]*models.Account, len(keys))
	for company, names := range byCompany {
		var results []*models.Account
		err := r.db.WithContext(ctx).Where("company = ? AND name IN ?", company, names).Find(&results).Error
		if err != nil {
			return handleError[*models.Account](len(keys), err)
		}
		for _, a := range results {
			resultMap[AccountKey{Company: company, Name: a.Name}] = a
		}
	}
	return generateLoaderResults(resultMap, keys)
}

// GetAccount returns nil without error when the account does not exist.
func GetAccount(ctx context.Context, company string, name string) (*models.Account, error) {
	loaders := For(ctx)
	return loaders.accountLoader.Load(ctx, AccountKey{Company: company, Name: name})()
}
