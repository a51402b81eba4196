package airports

import (
	"context"
	"sync"
	"time"
)

func ptr[T any](v T) *T { return &v }

// fakeStore is an in-memory Store. errs and delays are keyed by hop name:
// "airport", "city", "country", "ping".
type fakeStore struct {
	airports  map[string]Airport
	cities    map[int64]City
	countries map[int64]Country
	errs      map[string]error
	delays    map[string]time.Duration

	mu    sync.Mutex
	calls []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		airports: map[string]Airport{
			"HYD": {
				ID: 1, ICAOCode: "VOHS", IATACode: "HYD", Name: "Rajiv Gandhi International Airport",
				Type: "large_airport", LatitudeDeg: 17.2313, LongitudeDeg: 78.4299,
				ElevationFt: ptr(2024.0), CityID: ptr(int64(5)),
			},
			"ORP": {
				ID: 2, ICAOCode: "XORP", IATACode: "ORP", Name: "Orphaned City Field",
				Type: "small_airport", LatitudeDeg: 10, LongitudeDeg: 20, CityID: ptr(int64(999)),
			},
			"NOC": {
				ID: 3, ICAOCode: "XNOC", IATACode: "NOC", Name: "No City Field",
				Type: "small_airport", LatitudeDeg: 1.5, LongitudeDeg: 2.5,
			},
			"ASY": {
				ID: 4, ICAOCode: "XASY", IATACode: "ASY", Name: "Lost Country Field",
				Type: "medium_airport", LatitudeDeg: -3, LongitudeDeg: 4, ElevationFt: ptr(12.0),
				CityID: ptr(int64(7)),
			},
			"ZER": {
				ID: 5, ICAOCode: "XZER", IATACode: "ZER", Name: "Zero City Field",
				Type: "heliport", CityID: ptr(int64(0)),
			},
			"NCC": {
				ID: 6, ICAOCode: "XNCC", IATACode: "NCC", Name: "Countryless City Field",
				Type: "closed", CityID: ptr(int64(8)),
			},
		},
		cities: map[int64]City{
			5: {ID: 5, Name: "Hyderabad", CountryID: ptr(int64(91)), IsActive: true, Lat: 17.385, Long: 78.4867},
			7: {ID: 7, Name: "Nowhere", CountryID: ptr(int64(404)), IsActive: false, Lat: -3.1, Long: 4.2},
			8: {ID: 8, Name: "Stateless", IsActive: true},
			0: {ID: 0, Name: "Should never be read"},
		},
		countries: map[int64]Country{
			91: {ID: 91, Name: "India", CountryCodeTwo: "IN", CountryCodeThree: "IND", MobileCode: 91, ContinentID: ptr(int64(4))},
		},
		errs:   map[string]error{},
		delays: map[string]time.Duration{},
	}
}

func (f *fakeStore) enter(ctx context.Context, hop string) error {
	f.mu.Lock()
	f.calls = append(f.calls, hop)
	delay := f.delays[hop]
	err := f.errs[hop]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeStore) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) AirportByIATA(ctx context.Context, code string) (Airport, error) {
	if err := f.enter(ctx, "airport"); err != nil {
		return Airport{}, err
	}
	a, ok := f.airports[code]
	if !ok {
		return Airport{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) CityByID(ctx context.Context, id int64) (City, error) {
	if err := f.enter(ctx, "city"); err != nil {
		return City{}, err
	}
	c, ok := f.cities[id]
	if !ok {
		return City{}, ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) CountryByID(ctx context.Context, id int64) (Country, error) {
	if err := f.enter(ctx, "country"); err != nil {
		return Country{}, err
	}
	c, ok := f.countries[id]
	if !ok {
		return Country{}, ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.enter(ctx, "ping")
}
