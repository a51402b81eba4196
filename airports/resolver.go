package airports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultLookupTimeout bounds a single store call when no timeout is given.
const DefaultLookupTimeout = 5 * time.Second

// Resolver joins an airport with its city and country. It holds no mutable
// state and may be shared between requests.
type Resolver struct {
	store   Store
	timeout time.Duration
	logger  *slog.Logger
}

// NewResolver creates a resolver reading from store. Each store call is
// bounded by timeout.
func NewResolver(store Store, timeout time.Duration, logger *slog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, timeout: timeout, logger: logger}
}

// Resolve looks up the airport with the given IATA code and attaches its city
// and, when the city resolves, its country. Missing city or country records
// leave the corresponding field empty. Only a missing airport is reported as
// ErrNotFound; any other store failure is returned wrapped with the hop that
// failed.
func (r *Resolver) Resolve(ctx context.Context, code string) (ResolvedAirport, error) {
	if code == "" {
		return ResolvedAirport{}, ErrInvalidInput
	}

	var airport Airport
	err := r.lookup(ctx, func(ctx context.Context) (err error) {
		airport, err = r.store.AirportByIATA(ctx, code)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ResolvedAirport{}, ErrNotFound
		}
		return ResolvedAirport{}, fmt.Errorf("airport lookup: %w", err)
	}

	resolved := newResolvedAirport(airport)
	if !hasRef(airport.CityID) {
		return resolved, nil
	}

	var city City
	err = r.lookup(ctx, func(ctx context.Context) (err error) {
		city, err = r.store.CityByID(ctx, *airport.CityID)
		return err
	})
	switch {
	case errors.Is(err, ErrNotFound):
		r.logger.Debug("city reference not resolved", "code", code, "city_id", *airport.CityID)
		return resolved, nil
	case err != nil:
		return ResolvedAirport{}, fmt.Errorf("city lookup: %w", err)
	}
	resolved.City = Some(city)

	if !hasRef(city.CountryID) {
		return resolved, nil
	}

	var country Country
	err = r.lookup(ctx, func(ctx context.Context) (err error) {
		country, err = r.store.CountryByID(ctx, *city.CountryID)
		return err
	})
	switch {
	case errors.Is(err, ErrNotFound):
		r.logger.Debug("country reference not resolved", "code", code, "country_id", *city.CountryID)
		return resolved, nil
	case err != nil:
		return ResolvedAirport{}, fmt.Errorf("country lookup: %w", err)
	}
	resolved.Country = Some(country)

	return resolved, nil
}

// Ping checks that the store answers within the lookup timeout.
func (r *Resolver) Ping(ctx context.Context) error {
	return r.lookup(ctx, r.store.Ping)
}

func (r *Resolver) lookup(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return fn(ctx)
}

// hasRef reports whether a foreign key is set. Zero is treated as unset.
func hasRef(id *int64) bool {
	return id != nil && *id != 0
}
