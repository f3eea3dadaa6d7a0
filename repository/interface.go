package repository

import (
	"context"
	"errors"

	"mangwale-cart/models"
)

// ErrNotFound is returned when a referenced entity id does not exist.
var ErrNotFound = errors.New("not found")

// ErrHasDependents is returned when a delete is blocked by referential
// integrity (items referencing a store or category, child categories).
var ErrHasDependents = errors.New("has dependents")

// ItemRepositoryInterface defines the contract for catalog item operations
type ItemRepositoryInterface interface {
	Get(ctx context.Context, id int64) (*models.CatalogItem, error)
	ListByStore(ctx context.Context, storeID int64) ([]models.CatalogItem, error)
	Create(ctx context.Context, item *models.CatalogItem) error
	Update(ctx context.Context, item *models.CatalogItem) error
	Delete(ctx context.Context, id int64) error
}

// StoreRepositoryInterface defines the contract for store operations
type StoreRepositoryInterface interface {
	Get(ctx context.Context, id int64) (*models.Store, error)
	GetByName(ctx context.Context, name string) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepositoryInterface defines the contract for category operations
type CategoryRepositoryInterface interface {
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}
