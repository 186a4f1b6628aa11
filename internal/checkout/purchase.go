package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
	"github.com/Mr-randomize/ecommerce-go/internal/cart"
)

type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Address freezes display names for state and country, not directory codes;
// the order backend records what the shopper saw.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

type OrderSummary struct {
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalQuantity int             `json:"totalQuantity"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Purchase is the immutable snapshot taken at submission time. It is created
// once per attempt, never mutated afterwards, discarded on failure and
// consumed by the order backend on success.
type Purchase struct {
	Customer        Customer     `json:"customer"`
	ShippingAddress Address      `json:"shippingAddress"`
	BillingAddress  Address      `json:"billingAddress"`
	Order           OrderSummary `json:"order"`
	OrderItems      []OrderItem  `json:"orderItems"`
}

// newPurchase freezes the current cart contents and form values.
func newPurchase(ctx context.Context, items []cart.Item, totals cart.Totals, form *Form) *Purchase {
	orderItems := make([]OrderItem, len(items))
	for i, it := range items {
		orderItems[i] = OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}

	return &Purchase{
		Customer: Customer{
			FirstName: form.Customer.FirstName,
			LastName:  form.Customer.LastName,
			Email:     form.Customer.Email,
		},
		ShippingAddress: snapshotAddress(ctx, form.Addresses, address.TargetShipping),
		BillingAddress:  snapshotAddress(ctx, form.Addresses, address.TargetBilling),
		Order: OrderSummary{
			TotalPrice:    totals.Price,
			TotalQuantity: totals.Quantity,
		},
		OrderItems: orderItems,
	}
}

func snapshotAddress(ctx context.Context, form *address.Form, target address.Target) Address {
	var fields address.Fields
	if target == address.TargetBilling {
		fields = form.Billing()
	} else {
		fields = form.Shipping()
	}
	countryName, regionName := form.ResolvedNames(ctx, target)
	return Address{
		Street:  fields.Street,
		City:    fields.City,
		State:   regionName,
		Country: countryName,
		ZipCode: fields.ZipCode,
	}
}

// MinorUnits converts a decimal price into integer minor currency units,
// rounding half away from zero to match the gateway's arithmetic.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}
