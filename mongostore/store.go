// Package mongostore reads airport reference data from MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hava/airport-lookup/backend/airports"
)

// Collection names used by the system of record.
const (
	AirportCollection = "data"
	CityCollection    = "city"
	CountryCollection = "country"
)

// Store implements airports.Store on top of a MongoDB database.
type Store struct {
	client    *mongo.Client
	airports  *mongo.Collection
	cities    *mongo.Collection
	countries *mongo.Collection
}

// Connect dials uri, verifies the connection with a ping, and returns a
// store reading from the named database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return New(client, database), nil
}

// New returns a store over an already connected client.
func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:    client,
		airports:  db.Collection(AirportCollection),
		cities:    db.Collection(CityCollection),
		countries: db.Collection(CountryCollection),
	}
}

func (s *Store) AirportByIATA(ctx context.Context, code string) (airports.Airport, error) {
	var doc airportDoc
	if err := s.airports.FindOne(ctx, airportFilter(code)).Decode(&doc); err != nil {
		return airports.Airport{}, translate(err, AirportCollection)
	}
	return doc.airport(), nil
}

func (s *Store) CityByID(ctx context.Context, id int64) (airports.City, error) {
	var doc cityDoc
	if err := s.cities.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		return airports.City{}, translate(err, CityCollection)
	}
	return doc.city(), nil
}

func (s *Store) CountryByID(ctx context.Context, id int64) (airports.Country, error) {
	var doc countryDoc
	if err := s.countries.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		return airports.Country{}, translate(err, CountryCollection)
	}
	return doc.country(), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func airportFilter(code string) bson.D {
	return bson.D{{Key: "iata_code", Value: code}}
}

// idFilter matches the record's own "id" field, not _id. Numeric values
// compare across BSON int32, int64 and double, so one filter covers however
// the importer typed the column.
func idFilter(id int64) bson.D {
	return bson.D{{Key: "id", Value: id}}
}

func translate(err error, collection string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return airports.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", collection, err)
	}
}
