package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mangwale-cart/models"
)

var syncNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func syncFixtures() (*models.CatalogItem, *models.Store, *models.Category) {
	lat, lon := 28.61, 77.21
	item := &models.CatalogItem{
		ID:         10,
		StoreID:    1,
		CategoryID: 2,
		Name:       "Paneer Tikka",
		Price:      decimal.NewFromInt(250),
		ModuleID:   1,
		Status:     1,
		Approved:   true,
		InStock:    true,
	}
	store := &models.Store{
		ID: 1, Name: "Spice Hub", ModuleID: 1, ZoneID: 3,
		Latitude: &lat, Longitude: &lon, Active: true,
	}
	category := &models.Category{ID: 2, Name: "Starters", ModuleID: 1, Status: 1}
	return item, store, category
}

func newSyncService(index *fakeIndex) (*SyncService, *models.CatalogItem) {
	item, store, category := syncFixtures()
	s := NewSyncService(index, newFakeStores(*store), newFakeCategories(*category))
	s.now = func() time.Time { return syncNow }
	return s, item
}

func TestProjectToIndexDocument(t *testing.T) {
	item, store, category := syncFixtures()
	doc := ProjectToIndexDocument(item, store, category, syncNow)

	assert.Equal(t, item.ID, doc.ID)
	assert.Equal(t, "Paneer Tikka", doc.Name)
	assert.Equal(t, "Spice Hub", doc.StoreName)
	assert.Equal(t, "Starters", doc.CategoryName)
	assert.Equal(t, int64(3), doc.ZoneID)
	require.NotNil(t, doc.Geo)
	assert.Equal(t, 28.61, doc.Geo.Lat)
	assert.True(t, doc.AvailableNow)
}

func TestProjectToIndexDocumentNullGeo(t *testing.T) {
	item, store, category := syncFixtures()
	store.Latitude = nil
	store.Longitude = nil
	doc := ProjectToIndexDocument(item, store, category, syncNow)
	assert.Nil(t, doc.Geo)
}

func TestProjectToIndexDocumentIsPure(t *testing.T) {
	item, store, category := syncFixtures()
	first := ProjectToIndexDocument(item, store, category, syncNow)
	second := ProjectToIndexDocument(item, store, category, syncNow)
	assert.Equal(t, first, second)
}

func TestProjectAvailabilityConjunction(t *testing.T) {
	item, store, category := syncFixtures()

	// Item window excludes noon.
	item.AvailableFrom = "18:00"
	item.AvailableTo = "23:00"
	doc := ProjectToIndexDocument(item, store, category, syncNow)
	assert.False(t, doc.AvailableNow)

	// Store closed at noon even though the item window matches.
	item.AvailableFrom = ""
	item.AvailableTo = ""
	store.OpensAt = "18:00"
	store.ClosesAt = "23:00"
	doc = ProjectToIndexDocument(item, store, category, syncNow)
	assert.False(t, doc.AvailableNow)
}

func TestItemSavedUpserts(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)

	s.ItemSaved(context.Background(), item)

	doc, ok := index.doc("primary", item.ID)
	require.True(t, ok)
	assert.Equal(t, "Paneer Tikka", doc.Name)
	assert.Empty(t, s.Failures())
}

func TestItemSavedIdempotent(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)

	s.ItemSaved(context.Background(), item)
	first, _ := index.doc("primary", item.ID)

	s.ItemSaved(context.Background(), item)
	second, _ := index.doc("primary", item.ID)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, index.upserts)
}

func TestItemSavedModuleRouting(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)
	item.ModuleID = 5
	item.StoreID = 1

	s.ItemSaved(context.Background(), item)

	_, inPrimary := index.doc("primary", item.ID)
	_, inSecondary := index.doc("secondary", item.ID)
	assert.False(t, inPrimary)
	assert.True(t, inSecondary)
}

func TestItemSavedModuleMoveClearsOldIndex(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)

	s.ItemSaved(context.Background(), item)
	_, ok := index.doc("primary", item.ID)
	require.True(t, ok)

	item.ModuleID = 5
	s.ItemSaved(context.Background(), item)

	_, inPrimary := index.doc("primary", item.ID)
	_, inSecondary := index.doc("secondary", item.ID)
	assert.False(t, inPrimary)
	assert.True(t, inSecondary)
}

func TestItemSavedStatusFlipRemoves(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)

	s.ItemSaved(context.Background(), item)
	_, ok := index.doc("primary", item.ID)
	require.True(t, ok)

	item.Status = 0
	s.ItemSaved(context.Background(), item)

	_, ok = index.doc("primary", item.ID)
	assert.False(t, ok)
}

func TestItemSavedUnapprovedNeverIndexed(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)
	item.Approved = false

	s.ItemSaved(context.Background(), item)

	_, ok := index.doc("primary", item.ID)
	assert.False(t, ok)
	assert.Zero(t, index.upserts)
}

func TestItemDeletedRemoves(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)
	s.ItemSaved(context.Background(), item)

	s.ItemDeleted(context.Background(), item.ID, item.ModuleID)

	_, ok := index.doc("primary", item.ID)
	assert.False(t, ok)
}

func TestSyncFailureRecordedNotRaised(t *testing.T) {
	index := newFakeIndex()
	index.failUpsert = errors.New("index unreachable")
	s, item := newSyncService(index)

	// Must not panic or propagate; the catalog write already committed.
	s.ItemSaved(context.Background(), item)

	failures := s.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, item.ID, failures[0].ItemID)
	assert.Equal(t, "upsert", failures[0].Op)
	assert.Contains(t, failures[0].Reason, "unreachable")
	assert.Equal(t, syncNow, failures[0].At)
}

func TestSyncMissingStoreRecorded(t *testing.T) {
	index := newFakeIndex()
	s, item := newSyncService(index)
	item.StoreID = 999

	s.ItemSaved(context.Background(), item)

	require.Len(t, s.Failures(), 1)
	_, ok := index.doc("primary", item.ID)
	assert.False(t, ok)
}
