package address

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Directory is the upstream source of countries and their regions.
type Directory interface {
	Countries(ctx context.Context) ([]Country, error)
	Regions(ctx context.Context, countryCode string) ([]Region, error)
}

// Resolver caches directory lookups for the life of the process. Countries
// are fetched once; regions are cached per country code, so a stale list for
// one country can never be served for another.
type Resolver struct {
	dir Directory
	sfg singleflight.Group

	mu        sync.RWMutex
	countries []Country
	regions   map[string][]Region
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{
		dir:     dir,
		regions: make(map[string][]Region),
	}
}

func (r *Resolver) Countries(ctx context.Context) ([]Country, error) {
	r.mu.RLock()
	cached := r.countries
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := r.sfg.Do("countries", func() (interface{}, error) {
		countries, err := r.dir.Countries(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch countries: %w", err)
		}
		r.mu.Lock()
		r.countries = countries
		r.mu.Unlock()
		return countries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Country), nil
}

func (r *Resolver) Regions(ctx context.Context, countryCode string) ([]Region, error) {
	r.mu.RLock()
	cached, ok := r.regions[countryCode]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := r.sfg.Do("regions:"+countryCode, func() (interface{}, error) {
		regions, err := r.dir.Regions(ctx, countryCode)
		if err != nil {
			return nil, fmt.Errorf("fetch regions for %s: %w", countryCode, err)
		}
		r.mu.Lock()
		r.regions[countryCode] = regions
		r.mu.Unlock()
		return regions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Region), nil
}

// CountryName resolves a code to its display name, falling back to the code
// when the directory does not know it.
func (r *Resolver) CountryName(ctx context.Context, code string) string {
	countries, err := r.Countries(ctx)
	if err != nil {
		return code
	}
	for _, c := range countries {
		if c.Code == code {
			return c.Name
		}
	}
	return code
}
