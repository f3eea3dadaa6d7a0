package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mangwale-cart/logger"
	"mangwale-cart/models"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Ensure CategoryRepository implements CategoryRepositoryInterface
var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

// Get retrieves a category by id
func (r *CategoryRepository) Get(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT id, name, parent_id, module_id, status FROM categories WHERE id = ?`
	var category models.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.ParentID, &category.ModuleID, &category.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}

// Create validates and inserts a category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if category.ParentID != nil {
		if err := checkReference(ctx, tx, "categories", *category.ParentID); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO categories (name, parent_id, module_id, status) VALUES (?, ?, ?, ?)`,
		category.Name, category.ParentID, category.ModuleID, category.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted category id: %w", err)
	}
	category.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Get().Infof("✅ Created category id=%d name=%s", category.ID, category.Name)
	return nil
}

// Update validates and rewrites an existing category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, parent_id = ?, module_id = ?, status = ? WHERE id = ?`,
		category.Name, category.ParentID, category.ModuleID, category.Status, category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM categories WHERE id = ?`, category.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify category %d: %w", category.ID, err)
		}
		if exists == 0 {
			return fmt.Errorf("category %d: %w", category.ID, ErrNotFound)
		}
	}

	logger.Get().Infof("✅ Updated category id=%d name=%s", category.ID, category.Name)
	return nil
}

// Delete removes a category. Blocked with ErrHasDependents while items or
// child categories still reference it.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var items int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE category_id = ?`, id).Scan(&items); err != nil {
		return fmt.Errorf("failed to count category items: %w", err)
	}
	if items > 0 {
		return fmt.Errorf("category %d has %d items: %w", id, items, ErrHasDependents)
	}

	var children int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM categories WHERE parent_id = ?`, id).Scan(&children); err != nil {
		return fmt.Errorf("failed to count child categories: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("category %d has %d children: %w", id, children, ErrHasDependents)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Get().Infof("🗑️  Deleted category id=%d", id)
	return nil
}
