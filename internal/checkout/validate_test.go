package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
)

func validTestForm(t *testing.T) *Form {
	t.Helper()
	ctx := context.Background()

	af := address.NewForm(address.NewResolver(stubDirectory{}))
	_, err := af.SelectCountry(ctx, address.TargetShipping, "US")
	require.NoError(t, err)
	af.SetLines(address.TargetShipping, "1 Main St", "Albany", "12207")
	af.SetBillingSameAsShipping(true)

	f := NewForm(af)
	f.Customer = CustomerFields{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	f.Card = CardFields{
		CardType:        "Visa",
		NameOnCard:      "Jane Doe",
		CardNumber:      "4242424242424242",
		SecurityCode:    "123",
		ExpirationMonth: "12",
		ExpirationYear:  "2028",
	}
	return f
}

func TestValidate_CleanFormHasNoErrors(t *testing.T) {
	f := validTestForm(t)
	assert.Nil(t, Validate(f))
}

func TestValidate_RequiredFields(t *testing.T) {
	f := validTestForm(t)
	f.Customer = CustomerFields{}
	f.Card = CardFields{}

	errs := Validate(f)
	require.True(t, errs.Any())

	for _, field := range []string{
		"customer.firstName", "customer.lastName", "customer.email",
		"creditCard.cardType", "creditCard.nameOnCard",
		"creditCard.cardNumber", "creditCard.securityCode",
	} {
		require.Contains(t, errs, field)
		assert.Equal(t, "required", errs[field][0].Code, field)
	}
}

func TestValidate_EmailPattern(t *testing.T) {
	f := validTestForm(t)

	for _, bad := range []string{"jane", "jane@", "jane@example", "JANE@EXAMPLE.COM"} {
		f.Customer.Email = bad
		errs := Validate(f)
		require.Contains(t, errs, "customer.email", "email %q", bad)
		assert.Equal(t, "pattern", errs["customer.email"][0].Code)
	}

	f.Customer.Email = "jane.doe+shop@example.co"
	assert.Nil(t, Validate(f))
}

func TestValidate_CardPatterns(t *testing.T) {
	f := validTestForm(t)

	f.Card.CardNumber = "4242"
	f.Card.SecurityCode = "12"
	errs := Validate(f)
	require.Contains(t, errs, "creditCard.cardNumber")
	require.Contains(t, errs, "creditCard.securityCode")
	assert.Equal(t, "pattern", errs["creditCard.cardNumber"][0].Code)
	assert.Equal(t, "pattern", errs["creditCard.securityCode"][0].Code)
}

func TestValidate_WhitespaceOnlyRejected(t *testing.T) {
	f := validTestForm(t)
	f.Customer.FirstName = "  \t "

	errs := Validate(f)
	require.Contains(t, errs, "customer.firstName")
	assert.Equal(t, "whitespace", errs["customer.firstName"][0].Code)
}

func TestValidate_MinLength(t *testing.T) {
	f := validTestForm(t)
	f.Customer.LastName = "D"

	errs := Validate(f)
	require.Contains(t, errs, "customer.lastName")
	assert.Equal(t, "minlength", errs["customer.lastName"][0].Code)
}

func TestValidate_AddressBlocksValidatedIndependently(t *testing.T) {
	ctx := context.Background()
	af := address.NewForm(address.NewResolver(stubDirectory{}))
	_, err := af.SelectCountry(ctx, address.TargetShipping, "US")
	require.NoError(t, err)
	af.SetLines(address.TargetShipping, "1 Main St", "Albany", "12207")
	// billing left completely empty

	f := validTestForm(t)
	f.Addresses = af

	errs := Validate(f)
	require.True(t, errs.Any())
	assert.NotContains(t, errs, "shippingAddress.street")
	assert.Contains(t, errs, "billingAddress.country")
	assert.Contains(t, errs, "billingAddress.state")
	assert.Contains(t, errs, "billingAddress.street")
	assert.Contains(t, errs, "billingAddress.city")
	assert.Contains(t, errs, "billingAddress.zipCode")
}

func TestValidate_ExpirationFieldsNeverValidated(t *testing.T) {
	f := validTestForm(t)
	f.Card.ExpirationMonth = ""
	f.Card.ExpirationYear = ""
	assert.Nil(t, Validate(f))
}

func TestMarkAllTouched_CoversEveryRuleField(t *testing.T) {
	f := validTestForm(t)
	assert.Empty(t, f.TouchedFields())

	f.MarkAllTouched()
	touched := f.TouchedFields()
	assert.Len(t, touched, len(formRules()))
	assert.True(t, f.Touched("billingAddress.zipCode"))
}
