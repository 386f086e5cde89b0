package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/statement_backend/models"
	"gorm.io/gorm"
)

type PartyKey struct {
	Company   string
	PartyType models.PartyType
	Name      string
}

type partyReader struct {
	db *gorm.DB
}

type partyBatch struct {
	company   string
	partyType models.PartyType
}

// getParties issues one query per (company, party type) in the batch.
func (r *partyReader) getParties(ctx context.Context, keys []PartyKey) []*dataloader.Result[*models.Party] {
	batches := make(map[partyBatch][]string)
	var order []partyBatch
	for _, key := range keys {
		b := partyBatch{company: key.Company, partyType: key.PartyType}
		if _, ok := batches[b]; !ok {
			order = append(order, b)
		}
		batches[b] = append(batches[b], key.Name)
	}

	resultMap := make(map[PartyKey]*models.Party, len(keys))
	for _, b := range order {
		query, err := models.PartyQuery(r.db.WithContext(ctx), b.partyType)
		if err != nil {
			return handleError[*models.Party](len(keys), err)
		}
		var results []*models.Party
		if err := query.Where("company = ? AND name IN ?", b.company, batches[b]).Scan(&results).Error; err != nil {
			return handleError[*models.Party](len(keys), err)
		}
		for _, p := range results {
			p.PartyType = b.partyType
			resultMap[PartyKey{Company: b.company, PartyType: b.partyType, Name: p.Name}] = p
		}
	}
	return generateLoaderResults(resultMap, keys)
}

// GetParty returns nil without error when the party does not exist.
func GetParty(ctx context.Context, company string, partyType models.PartyType, name string) (*models.Party, error) {
	loaders := For(ctx)
	return loaders.partyLoader.Load(ctx, PartyKey{Company: company, PartyType: partyType, Name: name})()
}
