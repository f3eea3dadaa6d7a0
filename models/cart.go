package models

import (
	"github.com/shopspring/decimal"
)

// ResolutionStatus classifies the outcome of resolving one mention.
type ResolutionStatus string

const (
	ResolutionResolved  ResolutionStatus = "resolved"
	ResolutionAmbiguous ResolutionStatus = "ambiguous"
	ResolutionNotFound  ResolutionStatus = "not_found"
)

// CartStatus is the overall cart state.
type CartStatus string

const (
	CartComplete    CartStatus = "complete"
	CartNeedsReview CartStatus = "needs_review"
)

// EntityMention is one free-text item reference produced by the NLU layer.
// Quantity is an opaque pre-parsed integer; the core never guesses it.
type EntityMention struct {
	Item       string   `json:"item"`
	Quantity   int      `json:"quantity"`
	ItemID     *int64   `json:"item_id,omitempty"`
	StoreID    *int64   `json:"store_id,omitempty"`
	Variations []string `json:"variations,omitempty"`
}

// ResolveContext scopes a resolution. StoreID is a hard constraint when set.
type ResolveContext struct {
	StoreID  *int64
	ModuleID *int64
}

// Candidate is one catalog item a mention may refer to.
type Candidate struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	StoreID   int64           `json:"store_id"`
	StoreName string          `json:"store_name"`
	ModuleID  int64           `json:"module_id"`
	Price     decimal.Decimal `json:"price"`
	Score     float64         `json:"score"`
}

// Resolution is the ranked outcome of resolving one mention. "ambiguous" and
// "not_found" are first-class results, not errors.
type Resolution struct {
	Status     ResolutionStatus `json:"status"`
	Candidates []Candidate      `json:"candidates"`
}

// CartLine is one priced (or unresolved) line of the cart. Amounts are zero
// unless the line resolved; ambiguous lines carry the candidate list for
// caller-side disambiguation instead of a price.
type CartLine struct {
	Name          string           `json:"name"`
	MatchedItemID *int64           `json:"matched_item_id,omitempty"`
	MatchedName   string           `json:"matched_name,omitempty"`
	StoreID       *int64           `json:"store_id,omitempty"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	Quantity      int              `json:"quantity"`
	LineTotal     decimal.Decimal  `json:"line_total"`
	Tax           decimal.Decimal  `json:"tax"`
	Status        ResolutionStatus `json:"status"`
	Candidates    []Candidate      `json:"candidates,omitempty"`
}

// Cart is the structured result of one buildCart call. It is never persisted
// by this core.
type Cart struct {
	ID           string          `json:"id"`
	Lines        []CartLine      `json:"lines"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	Status       CartStatus      `json:"status"`
	IsMultiStore bool            `json:"is_multi_store"`
	StoreID      *int64          `json:"store_id,omitempty"`
}

// CartRequest is the input contract from the NLU collaborator.
type CartRequest struct {
	CartItems []EntityMention `json:"cart_items" validate:"required,min=1,dive"`
	StoreID   *int64          `json:"store_id,omitempty"`
	StoreName string          `json:"store_name,omitempty"`
	ZoneID    int64           `json:"zone_id"`
	ModuleID  *int64          `json:"module_id,omitempty"`
}

// ResolveRequest is the standalone resolution endpoint input.
type ResolveRequest struct {
	Text     string `json:"text" validate:"required"`
	StoreID  *int64 `json:"store_id,omitempty"`
	ModuleID *int64 `json:"module_id,omitempty"`
}
