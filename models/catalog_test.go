package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() *CatalogItem {
	return &CatalogItem{
		StoreID:    1,
		CategoryID: 2,
		Name:       "Roti",
		Price:      decimal.NewFromInt(10),
		Status:     1,
		Approved:   true,
	}
}

func TestItemValidateOK(t *testing.T) {
	assert.NoError(t, validItem().Validate())
}

func TestItemValidateNegativePrice(t *testing.T) {
	item := validItem()
	item.Price = decimal.NewFromInt(-1)
	var verr *ValidationError
	require.ErrorAs(t, item.Validate(), &verr)
	assert.Equal(t, "price", verr.Field)
}

func TestItemValidateDiscountExceedsPrice(t *testing.T) {
	item := validItem()
	item.Discount = decimal.NewFromInt(11)
	var verr *ValidationError
	require.ErrorAs(t, item.Validate(), &verr)
	assert.Equal(t, "discount", verr.Field)
}

func TestItemValidatePercentDiscountWithinPrice(t *testing.T) {
	item := validItem()
	item.Discount = decimal.NewFromInt(50)
	item.DiscountType = ChargePercent
	assert.NoError(t, item.Validate())
}

func TestItemValidateEmptyName(t *testing.T) {
	item := validItem()
	item.Name = "  "
	assert.Error(t, item.Validate())
}

func TestSearchableInvariant(t *testing.T) {
	item := validItem()
	assert.True(t, item.Searchable())

	item.Status = 0
	assert.False(t, item.Searchable())

	item.Status = 1
	item.Approved = false
	assert.False(t, item.Searchable())
}

func TestChargeKindJSONRoundTrip(t *testing.T) {
	type payload struct {
		Kind ChargeKind `json:"discount_type"`
	}

	raw, err := json.Marshal(payload{Kind: ChargePercent})
	require.NoError(t, err)
	assert.JSONEq(t, `{"discount_type":"percent"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"discount_type":"amount"}`), &decoded))
	assert.Equal(t, ChargeAmount, decoded.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"discount_type":"half"}`), &decoded))
}

func TestStoreValidateCoordinatesTogether(t *testing.T) {
	lat := 12.97
	store := &Store{Name: "Spice Hub", ModuleID: 1, Latitude: &lat}
	assert.Error(t, store.Validate())
}

func TestStoreOpenWindow(t *testing.T) {
	store := &Store{OpensAt: "09:00", ClosesAt: "22:00"}
	assert.True(t, store.Open(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.False(t, store.Open(time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)))
}

func TestStoreOpenWindowCrossesMidnight(t *testing.T) {
	store := &Store{OpensAt: "22:00", ClosesAt: "02:00"}
	assert.True(t, store.Open(time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC)))
	assert.True(t, store.Open(time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)))
	assert.False(t, store.Open(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestStoreOpenNoHours(t *testing.T) {
	store := &Store{}
	assert.True(t, store.Open(time.Now()))
}

func TestCategoryValidate(t *testing.T) {
	assert.NoError(t, (&Category{Name: "Breads"}).Validate())
	assert.Error(t, (&Category{Name: ""}).Validate())

	bad := int64(0)
	assert.Error(t, (&Category{Name: "Breads", ParentID: &bad}).Validate())
}
