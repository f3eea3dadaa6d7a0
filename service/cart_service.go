package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"mangwale-cart/cache"
	"mangwale-cart/logger"
	"mangwale-cart/models"
	"mangwale-cart/pricing"
	"mangwale-cart/repository"
	"mangwale-cart/utils"
)

// CartService turns (mention, quantity) pairs into a priced cart. Mentions
// resolve concurrently; output line order always matches input order.
type CartService struct {
	resolver      ResolverServiceInterface
	items         repository.ItemRepositoryInterface
	stores        repository.StoreRepositoryInterface
	storeCache    *cache.StoreCache
	maxConcurrent int
}

// NewCartService creates a new CartService. storeCache may be nil.
func NewCartService(resolver ResolverServiceInterface, items repository.ItemRepositoryInterface, stores repository.StoreRepositoryInterface, storeCache *cache.StoreCache, maxConcurrent int) *CartService {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &CartService{
		resolver:      resolver,
		items:         items,
		stores:        stores,
		storeCache:    storeCache,
		maxConcurrent: maxConcurrent,
	}
}

// Ensure CartService implements CartServiceInterface
var _ CartServiceInterface = (*CartService)(nil)

// BuildCart resolves every mention and assembles the priced cart. Unresolved
// and ambiguous lines are surfaced, never dropped or guessed. Only
// infrastructure failures return an error; "no match" is a line state.
func (s *CartService) BuildCart(ctx context.Context, req *models.CartRequest) (*models.Cart, error) {
	log := logger.Get()

	storeID, err := s.resolveStoreScope(ctx, req)
	if err != nil {
		return nil, err
	}

	rctx := models.ResolveContext{StoreID: storeID, ModuleID: req.ModuleID}
	lines := make([]models.CartLine, len(req.CartItems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, mention := range req.CartItems {
		i, mention := i, mention
		g.Go(func() error {
			line, err := s.buildLine(gctx, mention, rctx)
			if err != nil {
				return err
			}
			lines[i] = *line
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build cart: %w", err)
	}

	cart := &models.Cart{
		ID:       uuid.NewString(),
		Lines:    lines,
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Status:   models.CartComplete,
		StoreID:  storeID,
	}

	storesSeen := map[int64]bool{}
	for _, line := range lines {
		if line.Status != models.ResolutionResolved {
			cart.Status = models.CartNeedsReview
			continue
		}
		cart.Subtotal = cart.Subtotal.Add(line.LineTotal)
		cart.Tax = cart.Tax.Add(line.Tax)
		if line.StoreID != nil {
			storesSeen[*line.StoreID] = true
		}
	}
	cart.Total = cart.Subtotal.Add(cart.Tax)
	cart.TotalDisplay = utils.FormatINR(cart.Total)
	cart.IsMultiStore = len(storesSeen) > 1

	log.Infof("🛒 Built cart %s: %d lines, subtotal=%s, status=%s, multiStore=%v",
		cart.ID, len(cart.Lines), cart.Subtotal, cart.Status, cart.IsMultiStore)
	return cart, nil
}

// resolveStoreScope turns store_id / store_name input into a hard store scope.
// A name that matches nothing is a NotFound error: silently widening the
// scope would contaminate the cart with other stores' items.
func (s *CartService) resolveStoreScope(ctx context.Context, req *models.CartRequest) (*int64, error) {
	if req.StoreID != nil {
		return req.StoreID, nil
	}
	if req.StoreName == "" {
		return nil, nil
	}

	if store, ok := s.storeCache.GetByName(ctx, req.StoreName); ok {
		return &store.ID, nil
	}
	store, err := s.stores.GetByName(ctx, req.StoreName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store %q: %w", req.StoreName, err)
	}
	s.storeCache.Put(ctx, store)
	return &store.ID, nil
}

// buildLine resolves and prices a single mention. A mention-level store hint
// overrides the request scope for that line only.
func (s *CartService) buildLine(ctx context.Context, mention models.EntityMention, rctx models.ResolveContext) (*models.CartLine, error) {
	line := &models.CartLine{
		Name:      mention.Item,
		Quantity:  mention.Quantity,
		UnitPrice: decimal.Zero,
		LineTotal: decimal.Zero,
		Tax:       decimal.Zero,
	}

	// Quantity is never guessed: absent or non-positive means invalid.
	if mention.Quantity < 1 {
		line.Status = models.ResolutionNotFound
		return line, nil
	}

	if mention.StoreID != nil {
		rctx.StoreID = mention.StoreID
	}

	resolution, err := s.resolveMention(ctx, mention, rctx)
	if err != nil {
		return nil, err
	}

	line.Status = resolution.Status
	switch resolution.Status {
	case models.ResolutionResolved:
		chosen := resolution.Candidates[0]
		if err := s.priceLine(ctx, line, &chosen, mention); err != nil {
			// The index can lag the catalog. A hit whose row is gone is a
			// stale match, not an infrastructure failure.
			if errors.Is(err, repository.ErrNotFound) {
				line.Status = models.ResolutionNotFound
				return line, nil
			}
			return nil, err
		}
	case models.ResolutionAmbiguous:
		line.Candidates = resolution.Candidates
	}
	return line, nil
}

// resolveMention honors an explicit item-id hint before falling back to
// textual resolution.
func (s *CartService) resolveMention(ctx context.Context, mention models.EntityMention, rctx models.ResolveContext) (*models.Resolution, error) {
	if mention.ItemID != nil {
		item, err := s.items.Get(ctx, *mention.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &models.Resolution{Status: models.ResolutionNotFound}, nil
			}
			return nil, err
		}
		// The hint must still respect the store scope.
		if rctx.StoreID != nil && item.StoreID != *rctx.StoreID {
			return &models.Resolution{Status: models.ResolutionNotFound}, nil
		}
		return &models.Resolution{
			Status: models.ResolutionResolved,
			Candidates: []models.Candidate{{
				ItemID:   item.ID,
				Name:     item.Name,
				StoreID:  item.StoreID,
				ModuleID: item.ModuleID,
				Price:    item.Price,
				Score:    1.0,
			}},
		}, nil
	}
	return s.resolver.Resolve(ctx, mention.Item, rctx)
}

// priceLine prices a resolved line from the catalog row, the system of
// record, not from the index projection.
func (s *CartService) priceLine(ctx context.Context, line *models.CartLine, chosen *models.Candidate, mention models.EntityMention) error {
	item, err := s.items.Get(ctx, chosen.ItemID)
	if err != nil {
		return fmt.Errorf("failed to load resolved item %d: %w", chosen.ItemID, err)
	}

	unit := pricing.UnitPrice(item, mention.Variations)
	line.MatchedItemID = &item.ID
	line.MatchedName = item.Name
	line.StoreID = &item.StoreID
	line.UnitPrice = unit
	line.LineTotal = pricing.LineTotal(unit, mention.Quantity)
	line.Tax = pricing.LineTax(item, unit, mention.Quantity)
	return nil
}
