package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cityLine builds a minimal 19-column GeoNames row with the columns the
// parser reads filled in.
func cityLine(name, featureCode, country, admin1, population, tz string) string {
	fields := make([]string, 19)
	fields[2] = name
	fields[7] = featureCode
	fields[8] = country
	fields[10] = admin1
	fields[14] = population
	fields[17] = tz
	return strings.Join(fields, "\t")
}

func TestParseCityLine(t *testing.T) {
	r, ok := parseCityLine(cityLine("Vienna", "PPLC", "AT", "09", "1911191", "Europe/Vienna"))
	require.True(t, ok)
	assert.Equal(t, "Vienna", r.Name)
	assert.Equal(t, "AT", r.Country)
	assert.Equal(t, "", r.Admin, "numeric admin1 codes are dropped")
	assert.Equal(t, "city", r.Kind)
	assert.Equal(t, "Europe/Vienna", r.TZ)
	assert.True(t, r.important)
	assert.EqualValues(t, 1911191, r.population)

	r, ok = parseCityLine(cityLine("Springfield", "PPLA2", "US", "MO", "169176", "America/Chicago"))
	require.True(t, ok)
	assert.Equal(t, "MO", r.Admin, "postal-style admin1 codes are kept")
	assert.False(t, r.important)
}

func TestParseCityLineSkips(t *testing.T) {
	_, ok := parseCityLine("# GeoNames dump header")
	assert.False(t, ok, "comments")

	_, ok = parseCityLine(cityLine("Vienna (historical)", "PPL", "AT", "", "1", "Europe/Vienna"))
	assert.False(t, ok, "parenthetical qualifiers")

	_, ok = parseCityLine("too\tfew\tcolumns")
	assert.False(t, ok, "short rows")
}

func TestSortRecords(t *testing.T) {
	records := []record{
		{Name: "springfield", Country: "GB", population: 5_000_000},
		{Name: "Athens", Country: "US", Admin: "GA", population: 127_000},
		{Name: "Springfield", Country: "US", Admin: "IL", population: 116_000},
		{Name: "Athens", Country: "GR", important: true, population: 664_000},
		{Name: "Springfield", Country: "US", Admin: "MO", population: 169_000},
	}
	sortRecords(records, "US")

	// Case-insensitive name, then capital status, then priority country,
	// then population descending.
	want := []struct {
		name, country, admin string
	}{
		{"Athens", "GR", ""},
		{"Athens", "US", "GA"},
		{"Springfield", "US", "MO"},
		{"Springfield", "US", "IL"},
		{"springfield", "GB", ""},
	}
	require.Len(t, records, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, records[i].Name, "row %d", i)
		assert.Equal(t, w.country, records[i].Country, "row %d", i)
		assert.Equal(t, w.admin, records[i].Admin, "row %d", i)
	}
}
