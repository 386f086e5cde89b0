package middlewares

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/models"
	"gorm.io/gorm"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders wrap your data loaders to inject via middleware
type Loaders struct {
	partyLoader   *dataloader.Loader[PartyKey, *models.Party]
	accountLoader *dataloader.Loader[AccountKey, *models.Account]
}

// NewLoaders instantiates data loaders for the middleware
func NewLoaders(conn *gorm.DB) *Loaders {
	partyReader := &partyReader{db: conn}
	accountReader := &accountReader{db: conn}

	return &Loaders{
		partyLoader:   dataloader.NewBatchedLoader(partyReader.getParties, dataloader.WithWait[PartyKey, *models.Party](time.Millisecond)),
		accountLoader: dataloader.NewBatchedLoader(accountReader.getAccounts, dataloader.WithWait[AccountKey, *models.Account](time.Millisecond)),
	}
}

func LoaderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders(config.GetDB())
		ctx := WithLoaders(c.Request.Context(), loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// For returns the request's loaders, or fresh ones for callers outside a
// request such as the CLI.
func For(ctx context.Context) *Loaders {
	if loaders, ok := ctx.Value(loadersKey).(*Loaders); ok && loaders != nil {
		return loaders
	}
	return NewLoaders(config.GetDB())
}

// handleError creates array of result with the same error repeated for as many items requested
func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

// generateLoaderResults orders results by keys; a missing key gets nil data.
func generateLoaderResults[K comparable, T any](results map[K]T, keys []K) []*dataloader.Result[T] {
	loaderResults := make([]*dataloader.Result[T], 0, len(keys))
	for _, key := range keys {
		loaderResults = append(loaderResults, &dataloader.Result[T]{Data: results[key]})
	}
	return loaderResults
}
