package service

import (
	"context"

	"mangwale-cart/models"
)

// SearchIndexInterface defines the contract the services need from the search
// index. Implemented by search.Client; faked in tests.
type SearchIndexInterface interface {
	// IndexFor returns the module-routed index name.
	IndexFor(moduleID int64) string
	// Indexes returns every index name the client writes to.
	Indexes() []string
	Upsert(ctx context.Context, index string, id int64, doc *models.SearchIndexDocument) error
	// Delete must treat a missing document as already consistent.
	Delete(ctx context.Context, index string, id int64) error
	Search(ctx context.Context, index string, query models.SearchQuery) ([]models.SearchHit, error)
}
