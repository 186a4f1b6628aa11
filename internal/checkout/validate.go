package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError is one structured validation failure for one form field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Errors maps a form field path to its failures.
type Errors map[string][]FieldError

func (e Errors) Any() bool {
	return len(e) > 0
}

// Rule checks a single value. The composing code fills in the field name.
type Rule func(value string) *FieldError

func Required() Rule {
	return func(value string) *FieldError {
		if value == "" {
			return &FieldError{Code: "required", Message: "is required"}
		}
		return nil
	}
}

// MinLength passes empty values; Required owns those.
func MinLength(n int) Rule {
	return func(value string) *FieldError {
		if value != "" && len(value) < n {
			return &FieldError{Code: "minlength", Message: fmt.Sprintf("must be at least %d characters long", n)}
		}
		return nil
	}
}

func NotOnlyWhitespace() Rule {
	return func(value string) *FieldError {
		if value != "" && strings.TrimSpace(value) == "" {
			return &FieldError{Code: "whitespace", Message: "must not be only whitespace"}
		}
		return nil
	}
}

func Pattern(re *regexp.Regexp, message string) Rule {
	return func(value string) *FieldError {
		if value != "" && !re.MatchString(value) {
			return &FieldError{Code: "pattern", Message: message}
		}
		return nil
	}
}

var (
	emailPattern        = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,4}$`)
	cardNumberPattern   = regexp.MustCompile(`^[0-9]{16}$`)
	securityCodePattern = regexp.MustCompile(`^[0-9]{3}$`)
)

func freeTextRules() []Rule {
	return []Rule{Required(), MinLength(2), NotOnlyWhitespace()}
}

// formRules composes validators per field path. Field paths mirror the form
// layout: customer.*, shippingAddress.*, billingAddress.*, creditCard.*.
// Expiration month/year are deliberately unvalidated; they come from fixed
// select lists.
func formRules() map[string][]Rule {
	rules := map[string][]Rule{
		"customer.firstName":      freeTextRules(),
		"customer.lastName":       freeTextRules(),
		"customer.email":          {Required(), Pattern(emailPattern, "must be a valid email address")},
		"creditCard.cardType":     {Required()},
		"creditCard.nameOnCard":   freeTextRules(),
		"creditCard.cardNumber":   {Required(), Pattern(cardNumberPattern, "must be 16 digits")},
		"creditCard.securityCode": {Required(), Pattern(securityCodePattern, "must be 3 digits")},
	}
	for _, block := range []string{"shippingAddress", "billingAddress"} {
		rules[block+".country"] = []Rule{Required()}
		rules[block+".state"] = []Rule{Required()}
		rules[block+".street"] = freeTextRules()
		rules[block+".city"] = freeTextRules()
		rules[block+".zipCode"] = freeTextRules()
	}
	return rules
}

// Validate runs every field's rule chain over the form's current values and
// returns the collected failures.
func Validate(f *Form) Errors {
	values := f.fieldValues()
	errs := make(Errors)
	for field, rules := range formRules() {
		value := values[field]
		for _, rule := range rules {
			if fe := rule(value); fe != nil {
				fe.Field = field
				errs[field] = append(errs[field], *fe)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
