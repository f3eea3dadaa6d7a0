package pricing

import (
	"github.com/shopspring/decimal"

	"mangwale-cart/models"
)

var hundred = decimal.NewFromInt(100)

// ResolveCharge turns a tagged discount/tax value into an absolute amount
// against the given base. The switch is exhaustive over ChargeKind.
func ResolveCharge(kind models.ChargeKind, value, base decimal.Decimal) decimal.Decimal {
	switch kind {
	case models.ChargePercent:
		return base.Mul(value).Div(hundred)
	default:
		return value
	}
}

// UnitPrice computes the effective unit price of an item:
//
//	base price - discount + sum of selected variation deltas
//
// The discount is clamped so the unit price never goes below zero. Selected
// variations are matched by name; unknown names contribute nothing.
func UnitPrice(item *models.CatalogItem, selected []string) decimal.Decimal {
	discount := ResolveCharge(item.DiscountType, item.Discount, item.Price)
	if discount.GreaterThan(item.Price) {
		discount = item.Price
	}
	unit := item.Price.Sub(discount)

	for _, name := range selected {
		for _, v := range item.Variations {
			if v.Name == name {
				unit = unit.Add(v.Price)
				break
			}
		}
	}

	if unit.IsNegative() {
		return decimal.Zero
	}
	return unit
}

// LineTax computes the tax carried by one line, applied on the discounted
// unit price times quantity.
func LineTax(item *models.CatalogItem, unit decimal.Decimal, quantity int) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))
	return ResolveCharge(item.TaxType, item.Tax, unit).Mul(qty)
}

// LineTotal is the pre-tax amount of one line.
func LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}
