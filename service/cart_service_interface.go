package service

import (
	"context"

	"mangwale-cart/models"
)

// CartServiceInterface defines the contract for assembling a priced cart from
// NLU mentions.
type CartServiceInterface interface {
	BuildCart(ctx context.Context, req *models.CartRequest) (*models.Cart, error)
}
