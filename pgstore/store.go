// Package pgstore reads airport reference data from PostgreSQL tables that
// mirror the document collections: data, city and country.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hava/airport-lookup/backend/airports"
)

const (
	airportQuery = `SELECT id::int8, COALESCE(icao_code, ''), COALESCE(iata_code, ''), COALESCE(name, ''), COALESCE(type, ''),
        COALESCE(latitude_deg, 0)::float8, COALESCE(longitude_deg, 0)::float8, elevation_ft::float8, city_id::int8
        FROM data WHERE iata_code = $1 LIMIT 1`
	cityQuery = `SELECT id::int8, COALESCE(name, ''), country_id::int8, COALESCE(is_active, false),
        COALESCE(lat, 0)::float8, COALESCE(long, 0)::float8
        FROM city WHERE id = $1 LIMIT 1`
	countryQuery = `SELECT id::int8, COALESCE(name, ''), COALESCE(country_code_two, ''), COALESCE(country_code_three, ''),
        COALESCE(mobile_code, 0)::int8, continent_id::int8
        FROM country WHERE id = $1 LIMIT 1`
)

// Querier is the subset of pgxpool.Pool used by the store.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store implements airports.Store over a pgx connection pool.
type Store struct {
	db   Querier
	pool *pgxpool.Pool
}

// Connect creates a pool for databaseURL and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: pool, pool: pool}, nil
}

// New returns a store reading through db.
func New(db Querier) *Store {
	return &Store{db: db}
}

func (s *Store) AirportByIATA(ctx context.Context, code string) (airports.Airport, error) {
	var a airports.Airport
	err := s.db.QueryRow(ctx, airportQuery, code).Scan(
		&a.ID, &a.ICAOCode, &a.IATACode, &a.Name, &a.Type,
		&a.LatitudeDeg, &a.LongitudeDeg, &a.ElevationFt, &a.CityID,
	)
	return a, translate(err, "data")
}

func (s *Store) CityByID(ctx context.Context, id int64) (airports.City, error) {
	var c airports.City
	err := s.db.QueryRow(ctx, cityQuery, id).Scan(
		&c.ID, &c.Name, &c.CountryID, &c.IsActive, &c.Lat, &c.Long,
	)
	return c, translate(err, "city")
}

func (s *Store) CountryByID(ctx context.Context, id int64) (airports.Country, error) {
	var c airports.Country
	err := s.db.QueryRow(ctx, countryQuery, id).Scan(
		&c.ID, &c.Name, &c.CountryCodeTwo, &c.CountryCodeThree, &c.MobileCode, &c.ContinentID,
	)
	return c, translate(err, "country")
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the pool when the store owns one.
func (s *Store) Close(context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func translate(err error, table string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return airports.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", table, err)
	}
}
