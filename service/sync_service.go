package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mangwale-cart/logger"
	"mangwale-cart/models"
	"mangwale-cart/repository"
)

// SyncFailure records one failed index write for a later backfill job.
type SyncFailure struct {
	ID     string    `json:"id"`
	ItemID int64     `json:"item_id"`
	Op     string    `json:"op"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// SyncService propagates catalog mutations into the search index. It is the
// only writer of SearchIndexDocument.
type SyncService struct {
	index      SearchIndexInterface
	stores     repository.StoreRepositoryInterface
	categories repository.CategoryRepositoryInterface
	now        func() time.Time

	mu       sync.Mutex
	failures []SyncFailure
}

// NewSyncService creates a new SyncService
func NewSyncService(index SearchIndexInterface, stores repository.StoreRepositoryInterface, categories repository.CategoryRepositoryInterface) *SyncService {
	return &SyncService{
		index:      index,
		stores:     stores,
		categories: categories,
		now:        time.Now,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// ProjectToIndexDocument builds the denormalized index document from current
// item, store and category state. Pure: same inputs, same document.
func ProjectToIndexDocument(item *models.CatalogItem, store *models.Store, category *models.Category, now time.Time) *models.SearchIndexDocument {
	doc := &models.SearchIndexDocument{
		ID:            item.ID,
		Name:          item.Name,
		Description:   item.Description,
		Price:         item.Price,
		Veg:           item.Veg,
		InStock:       item.InStock,
		Recommended:   item.Recommended,
		Organic:       item.Organic,
		OrderCount:    item.OrderCount,
		ModuleID:      item.ModuleID,
		CategoryID:    item.CategoryID,
		CategoryName:  category.Name,
		StoreID:       store.ID,
		StoreName:     store.Name,
		ZoneID:        store.ZoneID,
		AvailableFrom: item.AvailableFrom,
		AvailableTo:   item.AvailableTo,
		StoreOpensAt:  store.OpensAt,
		StoreClosesAt: store.ClosesAt,
		AvailableNow:  item.AvailableAt(now) && store.Open(now) && store.Active,
	}
	if store.Latitude != nil && store.Longitude != nil {
		doc.Geo = &models.GeoPoint{Lat: *store.Latitude, Lon: *store.Longitude}
	}
	return doc
}

// ItemSaved handles a committed create or update. The store/category join is
// recomputed at write time, never stored. When the item no longer satisfies
// the searchable invariant its document is removed so a status flip does not
// leave a stale searchable entry.
func (s *SyncService) ItemSaved(ctx context.Context, item *models.CatalogItem) {
	log := logger.Get()
	index := s.index.IndexFor(item.ModuleID)

	if !item.Searchable() {
		log.Infof("🔄 Sync: item %d not searchable (status=%d approved=%v), removing from %s",
			item.ID, item.Status, item.Approved, index)
		s.removeEverywhere(ctx, item.ID)
		return
	}

	store, err := s.stores.Get(ctx, item.StoreID)
	if err != nil {
		s.record(item.ID, "upsert", err)
		return
	}
	category, err := s.categories.Get(ctx, item.CategoryID)
	if err != nil {
		s.record(item.ID, "upsert", err)
		return
	}

	doc := ProjectToIndexDocument(item, store, category, s.now())
	if err := s.index.Upsert(ctx, index, item.ID, doc); err != nil {
		s.record(item.ID, "upsert", err)
		return
	}
	// An update can move the item between module groups. Clear the document
	// from every index except the one just written.
	for _, other := range s.index.Indexes() {
		if other == index {
			continue
		}
		if err := s.index.Delete(ctx, other, item.ID); err != nil {
			s.record(item.ID, "remove", err)
		}
	}
	log.Infof("✅ Sync: upserted item %d into %s", item.ID, index)
}

// ItemDeleted handles a committed delete.
func (s *SyncService) ItemDeleted(ctx context.Context, itemID, moduleID int64) {
	s.removeEverywhere(ctx, itemID)
	logger.Get().Infof("🗑️  Sync: removed item %d from the search indexes", itemID)
}

// removeEverywhere deletes the document from all indexes so no index keeps a
// copy under an outdated module routing.
func (s *SyncService) removeEverywhere(ctx context.Context, itemID int64) {
	for _, index := range s.index.Indexes() {
		if err := s.index.Delete(ctx, index, itemID); err != nil {
			s.record(itemID, "remove", err)
		}
	}
}

// Failures returns a copy of the recorded failures.
func (s *SyncService) Failures() []SyncFailure {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SyncFailure, len(s.failures))
	copy(out, s.failures)
	return out
}

// record logs and stores a failure. Sync never retries here; backfill is an
// external batch concern.
func (s *SyncService) record(itemID int64, op string, err error) {
	logger.Get().Warnf("❌ Sync: %s failed for item %d: %v", op, itemID, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, SyncFailure{
		ID:     uuid.NewString(),
		ItemID: itemID,
		Op:     op,
		Reason: err.Error(),
		At:     s.now(),
	})
}
