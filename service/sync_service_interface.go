package service

import (
	"context"

	"mangwale-cart/models"
)

// SyncServiceInterface defines the contract for catalog-to-index propagation.
// All methods swallow index failures: the catalog mutation has already
// committed when sync runs, so sync must never fail it.
type SyncServiceInterface interface {
	// ItemSaved propagates a create or update. Items failing the searchable
	// invariant are removed from the index instead of upserted.
	ItemSaved(ctx context.Context, item *models.CatalogItem)
	// ItemDeleted removes the item's document; a missing document is fine.
	ItemDeleted(ctx context.Context, itemID, moduleID int64)
	// Failures returns sync failures recorded for external reconciliation.
	Failures() []SyncFailure
}
