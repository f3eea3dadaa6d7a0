package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mangwale-cart/logger"
	"mangwale-cart/models"
)

// ItemRepository handles database operations for catalog items
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Ensure ItemRepository implements ItemRepositoryInterface
var _ ItemRepositoryInterface = (*ItemRepository)(nil)

const itemColumns = `id, store_id, category_id, COALESCE(secondary_category_ids, '[]'),
	name, COALESCE(description, ''), price, discount, discount_type, tax, tax_type,
	COALESCE(variations, '[]'), COALESCE(available_time_starts, ''), COALESCE(available_time_ends, ''),
	veg, in_stock, recommended, organic, order_count, module_id, status, approved,
	created_at, updated_at`

// Get retrieves a single catalog item by id
func (r *ItemRepository) Get(ctx context.Context, id int64) (*models.CatalogItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

// ListByStore retrieves all items belonging to a store
func (r *ItemRepository) ListByStore(ctx context.Context, storeID int64) ([]models.CatalogItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE store_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for store %d: %w", storeID, err)
	}
	defer rows.Close()

	var items []models.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// Create validates the item, verifies its references and inserts it.
// Nothing is written when validation fails.
func (r *ItemRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkReference(ctx, tx, "stores", item.StoreID); err != nil {
		return err
	}
	if err := checkReference(ctx, tx, "categories", item.CategoryID); err != nil {
		return err
	}

	variations, secondary, err := marshalItemJSON(item)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO items (store_id, category_id, secondary_category_ids, name, description,
			price, discount, discount_type, tax, tax_type, variations,
			available_time_starts, available_time_ends, veg, in_stock, recommended, organic,
			order_count, module_id, status, approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	result, err := tx.ExecContext(ctx, query,
		item.StoreID, item.CategoryID, secondary, item.Name, item.Description,
		item.Price, item.Discount, item.DiscountType.String(), item.Tax, item.TaxType.String(), variations,
		item.AvailableFrom, item.AvailableTo, item.Veg, item.InStock, item.Recommended, item.Organic,
		item.OrderCount, item.ModuleID, item.Status, item.Approved,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted item id: %w", err)
	}
	item.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Get().Infof("✅ Created item id=%d name=%s store=%d", item.ID, item.Name, item.StoreID)
	return nil
}

// Update validates and rewrites an existing item
func (r *ItemRepository) Update(ctx context.Context, item *models.CatalogItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkReference(ctx, tx, "stores", item.StoreID); err != nil {
		return err
	}
	if err := checkReference(ctx, tx, "categories", item.CategoryID); err != nil {
		return err
	}

	variations, secondary, err := marshalItemJSON(item)
	if err != nil {
		return err
	}

	query := `
		UPDATE items SET store_id = ?, category_id = ?, secondary_category_ids = ?, name = ?,
			description = ?, price = ?, discount = ?, discount_type = ?, tax = ?, tax_type = ?,
			variations = ?, available_time_starts = ?, available_time_ends = ?, veg = ?,
			in_stock = ?, recommended = ?, organic = ?, order_count = ?, module_id = ?,
			status = ?, approved = ?, updated_at = NOW()
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		item.StoreID, item.CategoryID, secondary, item.Name,
		item.Description, item.Price, item.Discount, item.DiscountType.String(), item.Tax, item.TaxType.String(),
		variations, item.AvailableFrom, item.AvailableTo, item.Veg,
		item.InStock, item.Recommended, item.Organic, item.OrderCount, item.ModuleID,
		item.Status, item.Approved, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// MySQL also reports 0 for no-op updates, so distinguish via existence.
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE id = ?`, item.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify item %d: %w", item.ID, err)
		}
		if exists == 0 {
			return fmt.Errorf("item %d: %w", item.ID, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Get().Infof("✅ Updated item id=%d name=%s", item.ID, item.Name)
	return nil
}

// Delete removes an item by id
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	logger.Get().Infof("🗑️  Deleted item id=%d", id)
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (*models.CatalogItem, error) {
	var item models.CatalogItem
	var variationsJSON, secondaryJSON []byte
	var discountType, taxType string
	err := row.Scan(
		&item.ID, &item.StoreID, &item.CategoryID, &secondaryJSON,
		&item.Name, &item.Description, &item.Price, &item.Discount, &discountType,
		&item.Tax, &taxType, &variationsJSON, &item.AvailableFrom, &item.AvailableTo,
		&item.Veg, &item.InStock, &item.Recommended, &item.Organic, &item.OrderCount,
		&item.ModuleID, &item.Status, &item.Approved, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if item.DiscountType, err = models.ParseChargeKind(discountType); err != nil {
		return nil, err
	}
	if item.TaxType, err = models.ParseChargeKind(taxType); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(variationsJSON, &item.Variations); err != nil {
		return nil, fmt.Errorf("failed to decode variations: %w", err)
	}
	if err := json.Unmarshal(secondaryJSON, &item.SecondaryCategoryIDs); err != nil {
		return nil, fmt.Errorf("failed to decode secondary categories: %w", err)
	}
	return &item, nil
}

func marshalItemJSON(item *models.CatalogItem) (variations, secondary []byte, err error) {
	if item.Variations == nil {
		item.Variations = []models.Variation{}
	}
	if item.SecondaryCategoryIDs == nil {
		item.SecondaryCategoryIDs = []int64{}
	}
	if variations, err = json.Marshal(item.Variations); err != nil {
		return nil, nil, fmt.Errorf("failed to encode variations: %w", err)
	}
	if secondary, err = json.Marshal(item.SecondaryCategoryIDs); err != nil {
		return nil, nil, fmt.Errorf("failed to encode secondary categories: %w", err)
	}
	return variations, secondary, nil
}

// checkReference verifies a referenced row exists inside the transaction
func checkReference(ctx context.Context, tx *sql.Tx, table string, id int64) error {
	var exists int
	query := fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE id = ?`, table)
	if err := tx.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check %s reference: %w", table, err)
	}
	if exists == 0 {
		return fmt.Errorf("%s %d: %w", table[:len(table)-1], id, ErrNotFound)
	}
	return nil
}
