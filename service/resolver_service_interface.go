package service

import (
	"context"

	"mangwale-cart/models"
)

// ResolverServiceInterface defines the contract for mapping one free-text
// mention to ranked catalog candidates.
type ResolverServiceInterface interface {
	Resolve(ctx context.Context, mention string, rctx models.ResolveContext) (*models.Resolution, error)
}
