package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ChargeKind tags how a discount or tax value is interpreted.
type ChargeKind int

const (
	ChargeAmount ChargeKind = iota
	ChargePercent
)

// ParseChargeKind parses the wire tags "amount" and "percent".
func ParseChargeKind(s string) (ChargeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "amount":
		return ChargeAmount, nil
	case "percent":
		return ChargePercent, nil
	default:
		return ChargeAmount, fmt.Errorf("unknown charge type %q", s)
	}
}

func (k ChargeKind) String() string {
	if k == ChargePercent {
		return "percent"
	}
	return "amount"
}

// MarshalJSON keeps the "amount"/"percent" string tags on the wire.
func (k ChargeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ChargeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseChargeKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ValidationError reports a malformed or out-of-range field. It is returned
// before any write happens, so a failed mutation never leaves partial state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Variation is a named option with a price delta added on top of the base price.
type Variation struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CatalogItem is the system-of-record row for a sellable item. Price,
// discount and tax live here, never in the search index.
type CatalogItem struct {
	ID                   int64           `json:"id"`
	StoreID              int64           `json:"store_id"`
	CategoryID           int64           `json:"category_id"`
	SecondaryCategoryIDs []int64         `json:"secondary_category_ids,omitempty"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	Discount             decimal.Decimal `json:"discount"`
	DiscountType         ChargeKind      `json:"discount_type"`
	Tax                  decimal.Decimal `json:"tax"`
	TaxType              ChargeKind      `json:"tax_type"`
	Variations           []Variation     `json:"variations,omitempty"`
	AvailableFrom        string          `json:"available_time_starts"` // "HH:MM"
	AvailableTo          string          `json:"available_time_ends"`   // "HH:MM"
	Veg                  bool            `json:"veg"`
	InStock              bool            `json:"in_stock"`
	Recommended          bool            `json:"recommended"`
	Organic              bool            `json:"organic"`
	OrderCount           int64           `json:"order_count"`
	ModuleID             int64           `json:"module_id"`
	Status               int             `json:"status"`
	Approved             bool            `json:"approved"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Searchable reports whether the item is eligible for index projection:
// active and approved.
func (i *CatalogItem) Searchable() bool {
	return i.Status == 1 && i.Approved
}

// AvailableAt reports whether the item's availability window contains the
// given time-of-day. Empty windows mean always available.
func (i *CatalogItem) AvailableAt(now time.Time) bool {
	return withinWindow(i.AvailableFrom, i.AvailableTo, now)
}

// ResolvedDiscount returns the discount as an absolute amount against the
// item's base price.
func (i *CatalogItem) ResolvedDiscount() decimal.Decimal {
	if i.DiscountType == ChargePercent {
		return i.Price.Mul(i.Discount).Div(decimal.NewFromInt(100))
	}
	return i.Discount
}

// Validate checks field-level invariants before any write.
func (i *CatalogItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if i.StoreID <= 0 {
		return &ValidationError{Field: "store_id", Reason: "must be greater than 0"}
	}
	if i.CategoryID <= 0 {
		return &ValidationError{Field: "category_id", Reason: "must be greater than 0"}
	}
	if i.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if i.Discount.IsNegative() {
		return &ValidationError{Field: "discount", Reason: "must not be negative"}
	}
	if i.Tax.IsNegative() {
		return &ValidationError{Field: "tax", Reason: "must not be negative"}
	}
	if i.ResolvedDiscount().GreaterThan(i.Price) {
		return &ValidationError{Field: "discount", Reason: "resolved discount exceeds price"}
	}
	for _, v := range i.Variations {
		if strings.TrimSpace(v.Name) == "" {
			return &ValidationError{Field: "variations", Reason: "variation name cannot be empty"}
		}
		if v.Price.IsNegative() {
			return &ValidationError{Field: "variations", Reason: "variation price must not be negative"}
		}
	}
	return nil
}

// Store groups items under one seller. Item availability is the conjunction
// of item-level and store-level status and hours.
type Store struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	ModuleID     int64           `json:"module_id"`
	ZoneID       int64           `json:"zone_id"`
	OpensAt      string          `json:"opening_time"` // "HH:MM"
	ClosesAt     string          `json:"closing_time"` // "HH:MM"
	MinimumOrder decimal.Decimal `json:"minimum_order"`
	HomeDelivery bool            `json:"home_delivery"`
	TakeAway     bool            `json:"take_away"`
	Active       bool            `json:"active"`
	Status       int             `json:"status"`
}

// Open reports whether the store's operating hours contain the given
// time-of-day. Empty hours mean always open; a window crossing midnight
// ("22:00"-"02:00") is honored.
func (s *Store) Open(now time.Time) bool {
	return withinWindow(s.OpensAt, s.ClosesAt, now)
}

// Validate checks store invariants before any write.
func (s *Store) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if s.ModuleID <= 0 {
		return &ValidationError{Field: "module_id", Reason: "must be greater than 0"}
	}
	if s.MinimumOrder.IsNegative() {
		return &ValidationError{Field: "minimum_order", Reason: "must not be negative"}
	}
	if (s.Latitude == nil) != (s.Longitude == nil) {
		return &ValidationError{Field: "latitude", Reason: "latitude and longitude must be set together"}
	}
	return nil
}

// Category is a catalog grouping; categories form a shallow tree via ParentID.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
	ModuleID int64  `json:"module_id"`
	Status   int    `json:"status"`
}

// Validate checks category invariants before any write.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if c.ParentID != nil && *c.ParentID <= 0 {
		return &ValidationError{Field: "parent_id", Reason: "must be greater than 0"}
	}
	return nil
}

// withinWindow checks a "HH:MM" time-of-day window. Empty bounds mean the
// window is unbounded on that side.
func withinWindow(from, to string, now time.Time) bool {
	if from == "" && to == "" {
		return true
	}
	minutes := now.Hour()*60 + now.Minute()
	start, okStart := parseMinutes(from)
	end, okEnd := parseMinutes(to)
	if !okStart || !okEnd {
		return true
	}
	if start <= end {
		return minutes >= start && minutes <= end
	}
	// Window crosses midnight.
	return minutes >= start || minutes <= end
}

func parseMinutes(s string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
