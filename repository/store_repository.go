package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mangwale-cart/logger"
	"mangwale-cart/models"
)

// StoreRepository handles database operations for stores
type StoreRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(db *sql.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Ensure StoreRepository implements StoreRepositoryInterface
var _ StoreRepositoryInterface = (*StoreRepository)(nil)

const storeColumns = `id, name, latitude, longitude, module_id, zone_id,
	COALESCE(opening_time, ''), COALESCE(closing_time, ''), minimum_order,
	home_delivery, take_away, active, status`

// Get retrieves a store by id
func (r *StoreRepository) Get(ctx context.Context, id int64) (*models.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = ?`
	store, err := scanStore(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("store %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store %d: %w", id, err)
	}
	return store, nil
}

// GetByName retrieves a store by exact name (case-insensitive). Used when the
// caller only has a store_name from the NLU layer.
func (r *StoreRepository) GetByName(ctx context.Context, name string) (*models.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE LOWER(name) = LOWER(?) LIMIT 1`
	store, err := scanStore(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("store %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store %q: %w", name, err)
	}
	return store, nil
}

// Create validates and inserts a store
func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO stores (name, latitude, longitude, module_id, zone_id, opening_time,
			closing_time, minimum_order, home_delivery, take_away, active, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		store.Name, store.Latitude, store.Longitude, store.ModuleID, store.ZoneID,
		store.OpensAt, store.ClosesAt, store.MinimumOrder, store.HomeDelivery,
		store.TakeAway, store.Active, store.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert store: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted store id: %w", err)
	}
	store.ID = id

	logger.Get().Infof("✅ Created store id=%d name=%s", store.ID, store.Name)
	return nil
}

// Update validates and rewrites an existing store
func (r *StoreRepository) Update(ctx context.Context, store *models.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE stores SET name = ?, latitude = ?, longitude = ?, module_id = ?, zone_id = ?,
			opening_time = ?, closing_time = ?, minimum_order = ?, home_delivery = ?,
			take_away = ?, active = ?, status = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		store.Name, store.Latitude, store.Longitude, store.ModuleID, store.ZoneID,
		store.OpensAt, store.ClosesAt, store.MinimumOrder, store.HomeDelivery,
		store.TakeAway, store.Active, store.Status, store.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update store %d: %w", store.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM stores WHERE id = ?`, store.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify store %d: %w", store.ID, err)
		}
		if exists == 0 {
			return fmt.Errorf("store %d: %w", store.ID, ErrNotFound)
		}
	}

	logger.Get().Infof("✅ Updated store id=%d name=%s", store.ID, store.Name)
	return nil
}

// Delete removes a store. Blocked with ErrHasDependents while items still
// reference it; the check and the delete run in one transaction.
func (r *StoreRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var dependents int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE store_id = ?`, id).Scan(&dependents); err != nil {
		return fmt.Errorf("failed to count store dependents: %w", err)
	}
	if dependents > 0 {
		return fmt.Errorf("store %d has %d items: %w", id, dependents, ErrHasDependents)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete store %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("store %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Get().Infof("🗑️  Deleted store id=%d", id)
	return nil
}

func scanStore(row scanner) (*models.Store, error) {
	var store models.Store
	err := row.Scan(
		&store.ID, &store.Name, &store.Latitude, &store.Longitude, &store.ModuleID,
		&store.ZoneID, &store.OpensAt, &store.ClosesAt, &store.MinimumOrder,
		&store.HomeDelivery, &store.TakeAway, &store.Active, &store.Status,
	)
	if err != nil {
		return nil, err
	}
	return &store, nil
}
