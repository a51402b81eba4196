package airports

import "encoding/json"

// Airport is a record from the airports collection. Identifiers are the
// integer "id" field kept by the system of record, not the store's own key.
// A nil ElevationFt is rendered as null.
type Airport struct {
	ID           int64    `json:"id"`
	ICAOCode     string   `json:"icao_code"`
	IATACode     string   `json:"iata_code"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	LatitudeDeg  float64  `json:"latitude_deg"`
	LongitudeDeg float64  `json:"longitude_deg"`
	ElevationFt  *float64 `json:"elevation_ft"`
	CityID       *int64   `json:"city_id,omitempty"`
}

// City is a record from the city collection. It is also the projection
// returned inside a resolved airport.
type City struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	CountryID *int64  `json:"country_id,omitempty"`
	IsActive  bool    `json:"is_active"`
	Lat       float64 `json:"lat"`
	Long      float64 `json:"long"`
}

// Country is a record from the country collection. ContinentID is kept as a
// raw reference and never resolved.
type Country struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	CountryCodeTwo   string `json:"country_code_two"`
	CountryCodeThree string `json:"country_code_three"`
	MobileCode       int64  `json:"mobile_code"`
	ContinentID      *int64 `json:"continent_id,omitempty"`
}

// ResolvedAirport is an airport joined with its city and country.
type ResolvedAirport struct {
	ID           int64             `json:"id"`
	ICAOCode     string            `json:"icao_code"`
	IATACode     string            `json:"iata_code"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	LatitudeDeg  float64           `json:"latitude_deg"`
	LongitudeDeg float64           `json:"longitude_deg"`
	ElevationFt  *float64          `json:"elevation_ft"`
	City         Optional[City]    `json:"city"`
	Country      Optional[Country] `json:"country"`
}

// Optional holds a value that may be missing. A missing value is encoded as
// {"data":null}, which existing API consumers expect in place of the object.
type Optional[T any] struct {
	value *T
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: &v}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.value != nil
}

var placeholder = []byte(`{"data":null}`)

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.value == nil {
		return placeholder, nil
	}
	return json.Marshal(o.value)
}

func newResolvedAirport(a Airport) ResolvedAirport {
	return ResolvedAirport{
		ID:           a.ID,
		ICAOCode:     a.ICAOCode,
		IATACode:     a.IATACode,
		Name:         a.Name,
		Type:         a.Type,
		LatitudeDeg:  a.LatitudeDeg,
		LongitudeDeg: a.LongitudeDeg,
		ElevationFt:  a.ElevationFt,
	}
}
