package address

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory counts upstream calls and can be made to block until
// released, to order overlapping fetches deterministically in tests.
type fakeDirectory struct {
	mu            sync.Mutex
	countryCalls  int
	regionCalls   map[string]int
	regionsByCode map[string][]Region
	countriesErr  error
	blockOn       map[string]chan struct{}
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		regionCalls: make(map[string]int),
		regionsByCode: map[string][]Region{
			"US": {{Code: "NY", Name: "New York"}, {Code: "CA", Name: "California"}},
			"CA": {{Code: "ON", Name: "Ontario"}, {Code: "BC", Name: "British Columbia"}},
		},
		blockOn: make(map[string]chan struct{}),
	}
}

func (d *fakeDirectory) Countries(context.Context) ([]Country, error) {
	d.mu.Lock()
	d.countryCalls++
	err := d.countriesErr
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []Country{{Code: "US", Name: "United States"}, {Code: "CA", Name: "Canada"}}, nil
}

func (d *fakeDirectory) Regions(_ context.Context, code string) ([]Region, error) {
	d.mu.Lock()
	d.regionCalls[code]++
	gate := d.blockOn[code]
	regions := d.regionsByCode[code]
	d.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if regions == nil {
		return nil, errors.New("unknown country")
	}
	return regions, nil
}

func TestResolver_CountriesFetchedOnce(t *testing.T) {
	dir := newFakeDirectory()
	r := NewResolver(dir)
	ctx := context.Background()

	first, err := r.Countries(ctx)
	require.NoError(t, err)
	second, err := r.Countries(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, dir.countryCalls)
}

func TestResolver_RegionsCachedPerCountry(t *testing.T) {
	dir := newFakeDirectory()
	r := NewResolver(dir)
	ctx := context.Background()

	us, err := r.Regions(ctx, "US")
	require.NoError(t, err)
	require.Len(t, us, 2)

	_, err = r.Regions(ctx, "US")
	require.NoError(t, err)
	ca, err := r.Regions(ctx, "CA")
	require.NoError(t, err)

	assert.Equal(t, 1, dir.regionCalls["US"])
	assert.Equal(t, 1, dir.regionCalls["CA"])
	assert.Equal(t, "ON", ca[0].Code)
}

func TestResolver_CountryNameFallsBackToCode(t *testing.T) {
	dir := newFakeDirectory()
	r := NewResolver(dir)
	ctx := context.Background()

	assert.Equal(t, "United States", r.CountryName(ctx, "US"))
	assert.Equal(t, "XX", r.CountryName(ctx, "XX"))
}

func TestResolver_CountriesErrorNotCached(t *testing.T) {
	dir := newFakeDirectory()
	dir.countriesErr = errors.New("upstream down")
	r := NewResolver(dir)
	ctx := context.Background()

	_, err := r.Countries(ctx)
	require.Error(t, err)

	dir.mu.Lock()
	dir.countriesErr = nil
	dir.mu.Unlock()

	countries, err := r.Countries(ctx)
	require.NoError(t, err)
	assert.Len(t, countries, 2)
}
