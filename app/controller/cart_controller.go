package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mangwale-cart/models"
	"mangwale-cart/service"
)

var validate = validator.New()

// CartController exposes the cart-build and resolve operations consumed by
// the conversation/order flow.
type CartController struct {
	cart     service.CartServiceInterface
	resolver service.ResolverServiceInterface
}

// NewCartController creates a new CartController
func NewCartController(cart service.CartServiceInterface, resolver service.ResolverServiceInterface) *CartController {
	return &CartController{cart: cart, resolver: resolver}
}

// BuildCart handles POST /cart/build
func (c *CartController) BuildCart(ctx *fiber.Ctx) error {
	var req models.CartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cart, err := c.cart.BuildCart(ctx.Context(), &req)
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(cart)
}

// Resolve handles POST /resolve, the standalone single-mention resolution.
func (c *CartController) Resolve(ctx *fiber.Ctx) error {
	var req models.ResolveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resolution, err := c.resolver.Resolve(ctx.Context(), req.Text, models.ResolveContext{
		StoreID:  req.StoreID,
		ModuleID: req.ModuleID,
	})
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(resolution)
}
