package models

import (
	"github.com/shopspring/decimal"
)

// GeoPoint is the nullable geo field on an index document.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchIndexDocument is the denormalized projection of
// (CatalogItem ⨝ Store ⨝ Category) stored in the search index, one document
// per item, keyed by item id. The Sync component exclusively owns writes to
// this shape; the resolver only reads it.
type SearchIndexDocument struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Veg           bool            `json:"veg"`
	InStock       bool            `json:"in_stock"`
	Recommended   bool            `json:"recommended"`
	Organic       bool            `json:"organic"`
	OrderCount    int64           `json:"order_count"`
	ModuleID      int64           `json:"module_id"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	StoreID       int64           `json:"store_id"`
	StoreName     string          `json:"store_name"`
	ZoneID        int64           `json:"zone_id"`
	AvailableFrom string          `json:"available_time_starts"`
	AvailableTo   string          `json:"available_time_ends"`
	StoreOpensAt  string          `json:"store_opening_time"`
	StoreClosesAt string          `json:"store_closing_time"`
	AvailableNow  bool            `json:"available_now"`
	Geo           *GeoPoint       `json:"geo"`
}

// SearchQuery is a resolver-side read against the index. StoreID scoping is a
// hard constraint; ModuleID scoping applies only when StoreID is absent.
type SearchQuery struct {
	Text     string
	StoreID  *int64
	ModuleID *int64
	Limit    int
}

// SearchHit is one matching document with the index-side relevance score.
type SearchHit struct {
	Score    float64
	Document SearchIndexDocument
}
