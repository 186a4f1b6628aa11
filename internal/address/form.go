package address

import (
	"context"
	"sync"
)

// Target names one of the two address blocks on the checkout form.
type Target string

const (
	TargetShipping Target = "shippingAddress"
	TargetBilling  Target = "billingAddress"
)

// Fields is the value of one address block. CountryCode and RegionCode hold
// directory codes; the free-text fields are entered by the shopper.
type Fields struct {
	CountryCode string `json:"country"`
	Street      string `json:"street"`
	City        string `json:"city"`
	RegionCode  string `json:"state"`
	ZipCode     string `json:"zipCode"`
}

// Form holds the cascading address state for one checkout: two address
// blocks, their resolved region lists, and the billing-equals-shipping flag.
//
// Region fetches may overlap when the shopper changes country quickly. Each
// block carries a request sequence; a response is applied only when its
// sequence is still current, so a late answer for an abandoned country is
// discarded rather than clobbering the new selection.
type Form struct {
	resolver *Resolver

	mu              sync.Mutex
	shipping        Fields
	billing         Fields
	shippingRegions []Region
	billingRegions  []Region
	shippingSeq     uint64
	billingSeq      uint64
	billingSame     bool
}

func NewForm(resolver *Resolver) *Form {
	return &Form{resolver: resolver}
}

// SelectCountry records the new country for the target block, invalidates the
// previously selected region and fetches the country's region list. When no
// region is chosen after the fetch, the first returned region is selected by
// default. A stale response (the shopper moved on to another country) returns
// nil regions and no error.
func (f *Form) SelectCountry(ctx context.Context, target Target, code string) ([]Region, error) {
	f.mu.Lock()
	fields, seqPtr := f.blockFor(target)
	fields.CountryCode = code
	fields.RegionCode = ""
	*seqPtr++
	seq := *seqPtr
	f.mu.Unlock()

	regions, err := f.resolver.Regions(ctx, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	fields, seqPtr = f.blockFor(target)
	if seq != *seqPtr {
		// a newer selection superseded this fetch
		return nil, nil
	}
	if err != nil {
		f.setRegions(target, nil)
		return nil, err
	}
	f.setRegions(target, regions)
	if fields.RegionCode == "" && len(regions) > 0 {
		fields.RegionCode = regions[0].Code
	}
	out := make([]Region, len(regions))
	copy(out, regions)
	return out, nil
}

// SelectRegion sets the chosen region for the target block.
func (f *Form) SelectRegion(target Target, regionCode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields, _ := f.blockFor(target)
	fields.RegionCode = regionCode
}

// SetLines updates the free-text fields of the target block.
func (f *Form) SetLines(target Target, street, city, zipCode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields, _ := f.blockFor(target)
	fields.Street = street
	fields.City = city
	fields.ZipCode = zipCode
}

// SetBillingSameAsShipping clones the shipping block and its already-resolved
// region list into billing (no refetch, so country and regions stay
// consistent). Toggling off resets the billing block completely; nothing from
// the cloned state survives. Either way any in-flight billing region fetch is
// invalidated.
func (f *Form) SetBillingSameAsShipping(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.billingSame = on
	f.billingSeq++
	if on {
		f.billing = f.shipping
		f.billingRegions = append([]Region(nil), f.shippingRegions...)
	} else {
		f.billing = Fields{}
		f.billingRegions = nil
	}
}

func (f *Form) BillingSameAsShipping() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.billingSame
}

func (f *Form) Shipping() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shipping
}

func (f *Form) Billing() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.billing
}

// Regions returns the resolved region options for the target block.
func (f *Form) Regions(target Target) []Region {
	f.mu.Lock()
	defer f.mu.Unlock()
	var src []Region
	if target == TargetBilling {
		src = f.billingRegions
	} else {
		src = f.shippingRegions
	}
	out := make([]Region, len(src))
	copy(out, src)
	return out
}

// ResolvedNames returns the display names of the target's selected country
// and region, for freezing into a purchase snapshot.
func (f *Form) ResolvedNames(ctx context.Context, target Target) (countryName, regionName string) {
	f.mu.Lock()
	var fields Fields
	var regions []Region
	if target == TargetBilling {
		fields, regions = f.billing, f.billingRegions
	} else {
		fields, regions = f.shipping, f.shippingRegions
	}
	f.mu.Unlock()

	countryName = f.resolver.CountryName(ctx, fields.CountryCode)
	regionName = fields.RegionCode
	for _, r := range regions {
		if r.Code == fields.RegionCode {
			regionName = r.Name
			break
		}
	}
	return countryName, regionName
}

// Reset clears both blocks, their region lists and the toggle.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shipping = Fields{}
	f.billing = Fields{}
	f.shippingRegions = nil
	f.billingRegions = nil
	f.shippingSeq++
	f.billingSeq++
	f.billingSame = false
}

// blockFor returns pointers into the locked form state. Caller holds f.mu.
func (f *Form) blockFor(target Target) (*Fields, *uint64) {
	if target == TargetBilling {
		return &f.billing, &f.billingSeq
	}
	return &f.shipping, &f.shippingSeq
}

func (f *Form) setRegions(target Target, regions []Region) {
	if target == TargetBilling {
		f.billingRegions = regions
	} else {
		f.shippingRegions = regions
	}
}
