package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"mangwale-cart/models"
	"mangwale-cart/repository"
)

// fakeIndex is an in-memory SearchIndexInterface with error injection.
type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]map[int64]models.SearchIndexDocument
	upserts int
	deletes int

	failUpsert error
	failSearch error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]map[int64]models.SearchIndexDocument{}}
}

func (f *fakeIndex) IndexFor(moduleID int64) string {
	if moduleID == 5 || moduleID == 13 {
		return "secondary"
	}
	return "primary"
}

func (f *fakeIndex) Indexes() []string {
	return []string{"primary", "secondary"}
}

func (f *fakeIndex) Upsert(_ context.Context, index string, id int64, doc *models.SearchIndexDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.upserts++
	if f.docs[index] == nil {
		f.docs[index] = map[int64]models.SearchIndexDocument{}
	}
	f.docs[index][id] = *doc
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, index string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// A missing document is already consistent, matching the real client.
	f.deletes++
	delete(f.docs[index], id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, index string, query models.SearchQuery) ([]models.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSearch != nil {
		return nil, f.failSearch
	}

	tokens := strings.Fields(strings.ToLower(query.Text))
	var hits []models.SearchHit
	for _, doc := range f.docs[index] {
		if query.StoreID != nil && doc.StoreID != *query.StoreID {
			continue
		}
		if query.StoreID == nil && query.ModuleID != nil && doc.ModuleID != *query.ModuleID {
			continue
		}
		name := strings.ToLower(doc.Name)
		matched := false
		for _, t := range tokens {
			if strings.Contains(name, t) {
				matched = true
				break
			}
		}
		if matched {
			hits = append(hits, models.SearchHit{Score: 1, Document: doc})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Document.ID < hits[j].Document.ID })
	return hits, nil
}

func (f *fakeIndex) doc(index string, id int64) (models.SearchIndexDocument, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[index][id]
	return doc, ok
}

// fakeItems is an in-memory ItemRepositoryInterface.
type fakeItems struct {
	mu    sync.Mutex
	items map[int64]models.CatalogItem
}

var _ repository.ItemRepositoryInterface = (*fakeItems)(nil)

func newFakeItems(items ...models.CatalogItem) *fakeItems {
	f := &fakeItems{items: map[int64]models.CatalogItem{}}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeItems) Get(_ context.Context, id int64) (*models.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, repository.ErrNotFound)
	}
	return &item, nil
}

func (f *fakeItems) ListByStore(_ context.Context, storeID int64) ([]models.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CatalogItem
	for _, item := range f.items {
		if item.StoreID == storeID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeItems) Create(_ context.Context, item *models.CatalogItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItems) Update(_ context.Context, item *models.CatalogItem) error {
	return f.Create(context.Background(), item)
}

func (f *fakeItems) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

// fakeStores is an in-memory StoreRepositoryInterface.
type fakeStores struct {
	stores map[int64]models.Store
}

var _ repository.StoreRepositoryInterface = (*fakeStores)(nil)

func newFakeStores(stores ...models.Store) *fakeStores {
	f := &fakeStores{stores: map[int64]models.Store{}}
	for _, store := range stores {
		f.stores[store.ID] = store
	}
	return f
}

func (f *fakeStores) Get(_ context.Context, id int64) (*models.Store, error) {
	store, ok := f.stores[id]
	if !ok {
		return nil, fmt.Errorf("store %d: %w", id, repository.ErrNotFound)
	}
	return &store, nil
}

func (f *fakeStores) GetByName(_ context.Context, name string) (*models.Store, error) {
	for _, store := range f.stores {
		if strings.EqualFold(store.Name, name) {
			s := store
			return &s, nil
		}
	}
	return nil, fmt.Errorf("store %q: %w", name, repository.ErrNotFound)
}

func (f *fakeStores) Create(_ context.Context, store *models.Store) error {
	f.stores[store.ID] = *store
	return nil
}

func (f *fakeStores) Update(_ context.Context, store *models.Store) error {
	f.stores[store.ID] = *store
	return nil
}

func (f *fakeStores) Delete(_ context.Context, id int64) error {
	delete(f.stores, id)
	return nil
}

// fakeCategories is an in-memory CategoryRepositoryInterface.
type fakeCategories struct {
	categories map[int64]models.Category
}

var _ repository.CategoryRepositoryInterface = (*fakeCategories)(nil)

func newFakeCategories(categories ...models.Category) *fakeCategories {
	f := &fakeCategories{categories: map[int64]models.Category{}}
	for _, category := range categories {
		f.categories[category.ID] = category
	}
	return f
}

func (f *fakeCategories) Get(_ context.Context, id int64) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, repository.ErrNotFound)
	}
	return &category, nil
}

func (f *fakeCategories) Create(_ context.Context, category *models.Category) error {
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategories) Update(_ context.Context, category *models.Category) error {
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}
