package cart

import "github.com/shopspring/decimal"

// Item is one line of the shopping cart. ProductID is the unique key: the
// store never holds two entries for the same product.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
}

// Totals is the derived price/quantity pair. It is computed as one value and
// handed to subscribers as one value, so a half-updated pair is never visible.
type Totals struct {
	Price    decimal.Decimal `json:"totalPrice"`
	Quantity int             `json:"totalQuantity"`
}

func ZeroTotals() Totals {
	return Totals{Price: decimal.Zero, Quantity: 0}
}

// computeTotals is a deterministic fold over the item sequence.
func computeTotals(items []Item) Totals {
	t := ZeroTotals()
	for _, it := range items {
		t.Price = t.Price.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		t.Quantity += it.Quantity
	}
	return t
}
