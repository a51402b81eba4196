package airports

import (
	"context"
	"errors"
	"sync/atomic"
)

var (
	// ErrInvalidInput is returned when no airport code was supplied.
	ErrInvalidInput = errors.New("airports: missing airport code")
	// ErrNotFound is returned by a Store when no record matches.
	ErrNotFound = errors.New("airports: record not found")
	// ErrNotConnected is returned while the backing store is still connecting.
	ErrNotConnected = errors.New("airports: store not connected")
)

// Store reads airport, city, and country records. Implementations return
// ErrNotFound when a lookup matches nothing and must be safe for concurrent
// use.
type Store interface {
	AirportByIATA(ctx context.Context, code string) (Airport, error)
	CityByID(ctx context.Context, id int64) (City, error)
	CountryByID(ctx context.Context, id int64) (Country, error)
	Ping(ctx context.Context) error
}

type storeRef struct {
	Store
}

// DeferredStore serves lookups from a Store installed after construction.
// Until Install is called every call fails with ErrNotConnected, which lets
// the HTTP server start before the database connection is ready.
type DeferredStore struct {
	current atomic.Pointer[storeRef]
}

// NewDeferredStore returns a store with nothing installed.
func NewDeferredStore() *DeferredStore {
	return &DeferredStore{}
}

// Install makes s the backing store for all subsequent calls.
func (d *DeferredStore) Install(s Store) {
	d.current.Store(&storeRef{Store: s})
}

func (d *DeferredStore) load() (Store, error) {
	ref := d.current.Load()
	if ref == nil {
		return nil, ErrNotConnected
	}
	return ref.Store, nil
}

func (d *DeferredStore) AirportByIATA(ctx context.Context, code string) (Airport, error) {
	s, err := d.load()
	if err != nil {
		return Airport{}, err
	}
	return s.AirportByIATA(ctx, code)
}

func (d *DeferredStore) CityByID(ctx context.Context, id int64) (City, error) {
	s, err := d.load()
	if err != nil {
		return City{}, err
	}
	return s.CityByID(ctx, id)
}

func (d *DeferredStore) CountryByID(ctx context.Context, id int64) (Country, error) {
	s, err := d.load()
	if err != nil {
		return Country{}, err
	}
	return s.CountryByID(ctx, id)
}

func (d *DeferredStore) Ping(ctx context.Context) error {
	s, err := d.load()
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}
