// Package gazetteer contains the static directory of named locations
// (cities, airports, administrative divisions) and the country-code table
// that the zone resolver matches tokens against.
//
// Both tables are parsed once from TSV files embedded at compile time and
// are immutable afterwards, so they are safe to share across any number of
// concurrent resolutions without locking. The tables are produced by
// cmd/genlocations; their sort order is load-bearing (see Locations).
package gazetteer

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:generate go run ../../cmd/genlocations

// Embedding the tables means the binary carries its own gazetteer and the
// data and the code that reads it are always in sync.
//
//go:embed data/locations.tsv data/countries.tsv
var dataFS embed.FS

// Kind classifies what a resolved zone reference points at.
type Kind int

const (
	// KindTimezone marks a bare IANA time-zone reference. It never appears
	// on a table record; only the zone resolver produces it.
	KindTimezone Kind = iota
	KindCity
	KindAirport
	KindDivision
)

// String returns the lowercase wire name of the kind, as used in JSON output
// and in the locations.tsv kind column.
func (k Kind) String() string {
	switch k {
	case KindTimezone:
		return "timezone"
	case KindCity:
		return "city"
	case KindAirport:
		return "airport"
	case KindDivision:
		return "division"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Location is a single gazetteer record. Records are constructed once at
// load time and never mutated.
type Location struct {
	// Name is the display and match name (GeoNames ASCII name).
	Name string

	// Country is the ISO 3166-1 alpha-2 country code.
	Country string

	// AdminCode is the sub-country administrative code used for
	// disambiguation (e.g. a US state). Empty when the source had none or
	// a purely numeric one.
	AdminCode string

	// Aliases holds short codes for the record, e.g. 3-letter IATA codes.
	Aliases []string

	// Kind is one of KindCity, KindAirport, KindDivision.
	Kind Kind

	// TZ is the IANA time-zone identifier for the location.
	TZ string
}

type country struct {
	code, name string
}

var locations, countries = mustLoad()

// Locations returns the full location table.
//
// The returned slice is the shared table, not a copy; callers must treat it
// as read-only. Table order is the disambiguation policy: records sharing a
// display name are pre-sorted so that capitals come first, then records in
// the priority country, then higher population. The resolver takes the
// first match, so this order decides every name tie.
func Locations() []Location {
	return locations
}

// CountryName returns the display name for an ISO country code.
// The country table is sorted by code, so lookup is a binary search.
func CountryName(code string) (string, bool) {
	i := sort.Search(len(countries), func(i int) bool {
		return countries[i].code >= code
	})
	if i < len(countries) && countries[i].code == code {
		return countries[i].name, true
	}
	return "", false
}

// mustLoad parses both embedded tables. The data is produced at build time
// by cmd/genlocations, so a parse failure is a packaging bug, not a runtime
// condition; it panics rather than returning an error.
func mustLoad() ([]Location, []country) {
	locs, err := loadLocations()
	if err != nil {
		panic(fmt.Sprintf("gazetteer: bad embedded locations.tsv: %v", err))
	}
	ctys, err := loadCountries()
	if err != nil {
		panic(fmt.Sprintf("gazetteer: bad embedded countries.tsv: %v", err))
	}
	return locs, ctys
}

func loadLocations() ([]Location, error) {
	raw, err := dataFS.ReadFile("data/locations.tsv")
	if err != nil {
		return nil, err
	}

	kinds := map[string]Kind{
		"city":     KindCity,
		"airport":  KindAirport,
		"division": KindDivision,
	}

	var locs []Location
	sc := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) != 6 {
			return nil, fmt.Errorf("line %d: expected 6 fields, got %d", line, len(fields))
		}
		kind, ok := kinds[fields[4]]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown kind %q", line, fields[4])
		}
		var aliases []string
		if fields[1] != "" {
			aliases = strings.Split(fields[1], ";")
		}
		locs = append(locs, Location{
			Name:      fields[0],
			Country:   fields[2],
			AdminCode: fields[3],
			Aliases:   aliases,
			Kind:      kind,
			TZ:        fields[5],
		})
	}
	return locs, sc.Err()
}

func loadCountries() ([]country, error) {
	raw, err := dataFS.ReadFile("data/countries.tsv")
	if err != nil {
		return nil, err
	}

	var ctys []country
	sc := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for sc.Scan() {
		line++
		code, name, ok := strings.Cut(sc.Text(), "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected 2 fields", line)
		}
		ctys = append(ctys, country{code: code, name: name})
	}
	return ctys, sc.Err()
}
