package mongostore

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/hava/airport-lookup/backend/airports"
)

// Documents loaded with mongoimport from CSV carry numbers as int32, int64,
// double or string, and blank cells as "". The types below accept all of
// them; null, missing and blank values decode as absent.

type optionalFloat struct {
	value float64
	valid bool
}

func (f *optionalFloat) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v, ok, err := parseNumber(t, data)
	if err != nil {
		return err
	}
	*f = optionalFloat{value: v, valid: ok}
	return nil
}

func (f optionalFloat) ptr() *float64 {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

type optionalInt struct {
	value int64
	valid bool
}

func (n *optionalInt) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v, ok, err := parseNumber(t, data)
	if err != nil {
		return err
	}
	if ok && v != math.Trunc(v) {
		return fmt.Errorf("cannot decode %v as an integer", v)
	}
	*n = optionalInt{value: int64(v), valid: ok}
	return nil
}

func (n optionalInt) ptr() *int64 {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

type flexBool bool

func (b *flexBool) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeBoolean:
		*b = flexBool(raw.Boolean())
	case bson.TypeString:
		s := strings.TrimSpace(raw.StringValue())
		if s == "" {
			*b = false
			return nil
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("cannot decode %q as a boolean", s)
		}
		*b = flexBool(v)
	default:
		v, ok, err := parseNumber(t, data)
		if err != nil {
			return err
		}
		*b = flexBool(ok && v != 0)
	}
	return nil
}

func parseNumber(t bsontype.Type, data []byte) (float64, bool, error) {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		return 0, false, nil
	case bson.TypeInt32:
		return float64(raw.Int32()), true, nil
	case bson.TypeInt64:
		return float64(raw.Int64()), true, nil
	case bson.TypeDouble:
		return raw.Double(), true, nil
	case bson.TypeString:
		s := strings.TrimSpace(raw.StringValue())
		if s == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("cannot decode %q as a number", s)
		}
		return v, true, nil
	default:
		return 0, false, fmt.Errorf("cannot decode BSON %s as a number", t)
	}
}

type airportDoc struct {
	ID           optionalInt   `bson:"id"`
	ICAOCode     string        `bson:"icao_code"`
	IATACode     string        `bson:"iata_code"`
	Name         string        `bson:"name"`
	Type         string        `bson:"type"`
	LatitudeDeg  optionalFloat `bson:"latitude_deg"`
	LongitudeDeg optionalFloat `bson:"longitude_deg"`
	ElevationFt  optionalFloat `bson:"elevation_ft"`
	CityID       optionalInt   `bson:"city_id"`
}

func (d airportDoc) airport() airports.Airport {
	return airports.Airport{
		ID:           d.ID.value,
		ICAOCode:     d.ICAOCode,
		IATACode:     d.IATACode,
		Name:         d.Name,
		Type:         d.Type,
		LatitudeDeg:  d.LatitudeDeg.value,
		LongitudeDeg: d.LongitudeDeg.value,
		ElevationFt:  d.ElevationFt.ptr(),
		CityID:       d.CityID.ptr(),
	}
}

type cityDoc struct {
	ID        optionalInt   `bson:"id"`
	Name      string        `bson:"name"`
	CountryID optionalInt   `bson:"country_id"`
	IsActive  flexBool      `bson:"is_active"`
	Lat       optionalFloat `bson:"lat"`
	Long      optionalFloat `bson:"long"`
}

func (d cityDoc) city() airports.City {
	return airports.City{
		ID:        d.ID.value,
		Name:      d.Name,
		CountryID: d.CountryID.ptr(),
		IsActive:  bool(d.IsActive),
		Lat:       d.Lat.value,
		Long:      d.Long.value,
	}
}

type countryDoc struct {
	ID               optionalInt `bson:"id"`
	Name             string      `bson:"name"`
	CountryCodeTwo   string      `bson:"country_code_two"`
	CountryCodeThree string      `bson:"country_code_three"`
	MobileCode       optionalInt `bson:"mobile_code"`
	ContinentID      optionalInt `bson:"continent_id"`
}

func (d countryDoc) country() airports.Country {
	return airports.Country{
		ID:               d.ID.value,
		Name:             d.Name,
		CountryCodeTwo:   d.CountryCodeTwo,
		CountryCodeThree: d.CountryCodeThree,
		MobileCode:       d.MobileCode.value,
		ContinentID:      d.ContinentID.ptr(),
	}
}
