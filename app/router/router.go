package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"mangwale-cart/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Cart    *controller.CartController
}

// Setup registers all routes on the Fiber app.
func Setup(app *fiber.App, controllers *Controllers) {
	app.Use(recover.New())
	app.Use(requestid.New())

	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	// Cart pipeline
	app.Post("/cart/build", controllers.Cart.BuildCart)
	app.Post("/resolve", controllers.Cart.Resolve)

	// Catalog mutation surface (admin collaborators)
	admin := app.Group("/admin")

	admin.Post("/items", controllers.Catalog.CreateItem)
	admin.Get("/items/:id", controllers.Catalog.GetItem)
	admin.Put("/items/:id", controllers.Catalog.UpdateItem)
	admin.Delete("/items/:id", controllers.Catalog.DeleteItem)

	admin.Post("/stores", controllers.Catalog.CreateStore)
	admin.Get("/stores/:id", controllers.Catalog.GetStore)
	admin.Get("/stores/:id/items", controllers.Catalog.ListStoreItems)
	admin.Put("/stores/:id", controllers.Catalog.UpdateStore)
	admin.Delete("/stores/:id", controllers.Catalog.DeleteStore)

	admin.Post("/categories", controllers.Catalog.CreateCategory)
	admin.Put("/categories/:id", controllers.Catalog.UpdateCategory)
	admin.Delete("/categories/:id", controllers.Catalog.DeleteCategory)

	admin.Get("/sync/failures", controllers.Catalog.ListSyncFailures)
}
