package cities

import (
	"context"
	"fmt"
)

// Record is a single city as returned by the city data provider.
// Name is used as the navigation key and is not guaranteed to be unique.
type Record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode,omitempty"`
	Timezone    string `json:"timezone"`
	Population  int64  `json:"population,omitempty"`
}

// SortKey names a sortable column of the city list.
type SortKey string

const (
	SortNone        SortKey = ""
	SortName        SortKey = "name"
	SortCountryName SortKey = "countryName"
	SortTimezone    SortKey = "timezone"
)

// ParseSortKey converts a column name into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortName, SortCountryName, SortTimezone:
		return k, nil
	default:
		return SortNone, fmt.Errorf("unknown sort column %q", s)
	}
}

// field returns the record value the key orders by.
func (k SortKey) field(r Record) string {
	switch k {
	case SortName:
		return r.Name
	case SortCountryName:
		return r.CountryName
	case SortTimezone:
		return r.Timezone
	default:
		return ""
	}
}

// Direction is the ordering applied when a SortKey is set.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Provider abstracts the remote source of city records.
type Provider interface {
	Name() string
	FetchCities(ctx context.Context) ([]Record, error)
}
