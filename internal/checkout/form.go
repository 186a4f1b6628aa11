package checkout

import (
	"sort"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
)

type CustomerFields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CardFields struct {
	CardType        string `json:"cardType"`
	NameOnCard      string `json:"nameOnCard"`
	CardNumber      string `json:"cardNumber"`
	SecurityCode    string `json:"securityCode"`
	ExpirationMonth string `json:"expirationMonth"`
	ExpirationYear  string `json:"expirationYear"`
}

// Form is the checkout form state for one session: customer and card fields
// plus the cascading address state. It is owned and guarded by the
// orchestrator; only the address form carries its own lock because region
// fetches touch it concurrently.
type Form struct {
	Customer  CustomerFields
	Card      CardFields
	Addresses *address.Form

	touched map[string]bool
}

func NewForm(addresses *address.Form) *Form {
	return &Form{
		Addresses: addresses,
		touched:   make(map[string]bool),
	}
}

// MarkAllTouched flags every validated field, so the UI shows all failures
// after a rejected submit.
func (f *Form) MarkAllTouched() {
	for field := range formRules() {
		f.touched[field] = true
	}
}

func (f *Form) Touched(field string) bool {
	return f.touched[field]
}

// TouchedFields lists the flagged fields in stable order.
func (f *Form) TouchedFields() []string {
	out := make([]string, 0, len(f.touched))
	for field := range f.touched {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Reset clears the whole form after a completed checkout.
func (f *Form) Reset() {
	f.Customer = CustomerFields{}
	f.Card = CardFields{}
	f.Addresses.Reset()
	f.touched = make(map[string]bool)
}

// fieldValues flattens the form into path->value for validation.
func (f *Form) fieldValues() map[string]string {
	shipping := f.Addresses.Shipping()
	billing := f.Addresses.Billing()

	values := map[string]string{
		"customer.firstName":      f.Customer.FirstName,
		"customer.lastName":       f.Customer.LastName,
		"customer.email":          f.Customer.Email,
		"creditCard.cardType":     f.Card.CardType,
		"creditCard.nameOnCard":   f.Card.NameOnCard,
		"creditCard.cardNumber":   f.Card.CardNumber,
		"creditCard.securityCode": f.Card.SecurityCode,
	}
	for block, fields := range map[string]address.Fields{
		"shippingAddress": shipping,
		"billingAddress":  billing,
	} {
		values[block+".country"] = fields.CountryCode
		values[block+".state"] = fields.RegionCode
		values[block+".street"] = fields.Street
		values[block+".city"] = fields.City
		values[block+".zipCode"] = fields.ZipCode
	}
	return values
}
