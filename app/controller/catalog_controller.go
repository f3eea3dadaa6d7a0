package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"mangwale-cart/cache"
	"mangwale-cart/logger"
	"mangwale-cart/models"
	"mangwale-cart/repository"
	"mangwale-cart/service"
)

// CatalogController handles the admin mutation surface for items, stores and
// categories. Every committed item mutation triggers the index sync hook;
// sync failures never surface to the mutation caller.
type CatalogController struct {
	items      repository.ItemRepositoryInterface
	stores     repository.StoreRepositoryInterface
	categories repository.CategoryRepositoryInterface
	sync       service.SyncServiceInterface
	storeCache *cache.StoreCache
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(items repository.ItemRepositoryInterface, stores repository.StoreRepositoryInterface, categories repository.CategoryRepositoryInterface, syncService service.SyncServiceInterface, storeCache *cache.StoreCache) *CatalogController {
	return &CatalogController{
		items:      items,
		stores:     stores,
		categories: categories,
		sync:       syncService,
		storeCache: storeCache,
	}
}

// GetItem handles GET /admin/items/:id
func (c *CatalogController) GetItem(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	item, err := c.items.Get(ctx.Context(), id)
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(item)
}

// ListStoreItems handles GET /admin/stores/:id/items
func (c *CatalogController) ListStoreItems(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	items, err := c.items.ListByStore(ctx.Context(), id)
	if err != nil {
		return mapError(ctx, err)
	}
	if items == nil {
		items = []models.CatalogItem{}
	}
	return ctx.JSON(items)
}

// CreateItem handles POST /admin/items
func (c *CatalogController) CreateItem(ctx *fiber.Ctx) error {
	var item models.CatalogItem
	if err := ctx.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := c.items.Create(ctx.Context(), &item); err != nil {
		return mapError(ctx, err)
	}
	// The catalog write has committed; the sync side-effect is best-effort.
	c.sync.ItemSaved(ctx.Context(), &item)
	return ctx.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem handles PUT /admin/items/:id
func (c *CatalogController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var item models.CatalogItem
	if err := ctx.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	item.ID = id
	if err := c.items.Update(ctx.Context(), &item); err != nil {
		return mapError(ctx, err)
	}
	c.sync.ItemSaved(ctx.Context(), &item)
	return ctx.JSON(item)
}

// DeleteItem handles DELETE /admin/items/:id
func (c *CatalogController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	// Read the module first: index routing needs it after the row is gone.
	item, err := c.items.Get(ctx.Context(), id)
	if err != nil {
		return mapError(ctx, err)
	}
	if err := c.items.Delete(ctx.Context(), id); err != nil {
		return mapError(ctx, err)
	}
	c.sync.ItemDeleted(ctx.Context(), id, item.ModuleID)
	return ctx.SendStatus(fiber.StatusNoContent)
}

// GetStore handles GET /admin/stores/:id
func (c *CatalogController) GetStore(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	store, err := c.stores.Get(ctx.Context(), id)
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(store)
}

// CreateStore handles POST /admin/stores
func (c *CatalogController) CreateStore(ctx *fiber.Ctx) error {
	var store models.Store
	if err := ctx.BodyParser(&store); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := c.stores.Create(ctx.Context(), &store); err != nil {
		return mapError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(store)
}

// UpdateStore handles PUT /admin/stores/:id
func (c *CatalogController) UpdateStore(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	existing, err := c.stores.Get(ctx.Context(), id)
	if err != nil {
		return mapError(ctx, err)
	}
	var store models.Store
	if err := ctx.BodyParser(&store); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	store.ID = id
	if err := c.stores.Update(ctx.Context(), &store); err != nil {
		return mapError(ctx, err)
	}
	c.invalidateStore(ctx, existing.Name, store.Name)
	return ctx.JSON(store)
}

// DeleteStore handles DELETE /admin/stores/:id
func (c *CatalogController) DeleteStore(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	existing, err := c.stores.Get(ctx.Context(), id)
	if err != nil {
		return mapError(ctx, err)
	}
	if err := c.stores.Delete(ctx.Context(), id); err != nil {
		return mapError(ctx, err)
	}
	c.invalidateStore(ctx, existing.Name, "")
	return ctx.SendStatus(fiber.StatusNoContent)
}

// CreateCategory handles POST /admin/categories
func (c *CatalogController) CreateCategory(ctx *fiber.Ctx) error {
	var category models.Category
	if err := ctx.BodyParser(&category); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := c.categories.Create(ctx.Context(), &category); err != nil {
		return mapError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /admin/categories/:id
func (c *CatalogController) UpdateCategory(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var category models.Category
	if err := ctx.BodyParser(&category); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	category.ID = id
	if err := c.categories.Update(ctx.Context(), &category); err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (c *CatalogController) DeleteCategory(ctx *fiber.Ctx) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := c.categories.Delete(ctx.Context(), id); err != nil {
		return mapError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ListSyncFailures handles GET /admin/sync/failures
func (c *CatalogController) ListSyncFailures(ctx *fiber.Ctx) error {
	failures := c.sync.Failures()
	if failures == nil {
		failures = []service.SyncFailure{}
	}
	return ctx.JSON(failures)
}

func (c *CatalogController) invalidateStore(ctx *fiber.Ctx, names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := c.storeCache.Invalidate(ctx.Context(), name); err != nil {
			logger.Get().Warnf("⚠️  %v", err)
		}
	}
}

func pathID(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// mapError translates the error taxonomy into HTTP statuses.
func mapError(ctx *fiber.Ctx, err error) error {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrHasDependents):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Get().Errorf("❌ Internal error: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
