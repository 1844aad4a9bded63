package convert

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/when/internal/expr"
	"github.com/pkordes/when/internal/zone"
)

// fixedNow is 2024-07-15T10:00:00Z: 12:00 in Vienna (CEST), 06:00 in
// Toronto and New York (EDT).
var fixedNow = time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)

func fixedConverter() *Converter {
	return &Converter{Now: func() time.Time { return fixedNow }}
}

func TestConvertDefaultsToLocal(t *testing.T) {
	t.Setenv("TZ", "Europe/Vienna")

	out, err := fixedConverter().Convert("now")
	require.NoError(t, err)
	assert.True(t, out.IsRelative)
	require.Len(t, out.Locations, 1)

	got := out.Locations[0]
	assert.Equal(t, "Europe/Vienna", got.Zone.TZ())
	assert.True(t, got.Time.Equal(fixedNow))
	assert.Equal(t, 12, got.Time.Hour())
}

func TestConvertExplicitSourceAppendsLocal(t *testing.T) {
	t.Setenv("TZ", "America/New_York")

	out, err := fixedConverter().Convert("2pm in vie")
	require.NoError(t, err)
	assert.False(t, out.IsRelative)
	require.Len(t, out.Locations, 2)

	src, home := out.Locations[0], out.Locations[1]
	assert.Equal(t, "Vienna", src.Zone.Name())
	assert.Equal(t, 14, src.Time.Hour())
	assert.Equal(t, "America/New_York", home.Zone.TZ())
	assert.Equal(t, 8, home.Time.Hour())
	assert.True(t, src.Time.Equal(home.Time))
}

func TestConvertSourceIsLocalZone(t *testing.T) {
	t.Setenv("TZ", "Europe/Vienna")

	out, err := fixedConverter().Convert("2pm in vienna")
	require.NoError(t, err)
	require.Len(t, out.Locations, 1, "no duplicate result when source is the local zone")
	assert.Equal(t, "Vienna", out.Locations[0].Zone.Name())
}

func TestConvertChain(t *testing.T) {
	t.Setenv("TZ", "Australia/Sydney")

	out, err := fixedConverter().Convert("noon in utc -> vie -> yyz")
	require.NoError(t, err)
	require.Len(t, out.Locations, 3, "explicit targets suppress the implicit local result")

	hours := []int{12, 14, 8}
	for i, r := range out.Locations {
		assert.True(t, r.Time.Equal(out.Locations[0].Time), "result %d instant", i)
		assert.Equal(t, hours[i], r.Time.Hour(), "result %d hour", i)
	}
	assert.True(t, out.Locations[0].Zone.IsUTC())
	assert.Equal(t, "Toronto", out.Locations[2].Zone.Name())
}

func TestConvertUnixTimestamp(t *testing.T) {
	t.Setenv("TZ", "Europe/Vienna")

	out, err := fixedConverter().Convert("1577836800")
	require.NoError(t, err)
	assert.False(t, out.IsRelative)
	require.Len(t, out.Locations, 2)

	assert.True(t, out.Locations[0].Zone.IsUTC())
	assert.True(t, out.Locations[0].Time.Equal(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Europe/Vienna", out.Locations[1].Zone.TZ())
	assert.Equal(t, 1, out.Locations[1].Time.Hour())
}

func TestConvertErrorsPropagate(t *testing.T) {
	t.Setenv("TZ", "UTC")
	c := fixedConverter()

	_, err := c.Convert("2pm in narnia")
	var uz *zone.UnknownZoneError
	require.ErrorAs(t, err, &uz)
	assert.Equal(t, "narnia", uz.Token)

	_, err = c.Convert("2pm fhtagn")
	var tg *expr.TrailingGarbageError
	require.ErrorAs(t, err, &tg)

	_, err = c.Convert("31/2")
	var oor *expr.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "month", oor.Field)
}

func TestTimeAtLocationJSON(t *testing.T) {
	vie, err := zone.Resolve("vie")
	require.NoError(t, err)

	r := TimeAtLocation{
		Time: time.Date(2024, time.July, 15, 14, 0, 0, 0, vie.Location()),
		Zone: vie,
	}
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"datetime": "2024-07-15T14:00:00+02:00",
		"time_of_day": "afternoon",
		"timezone": {"name": "Europe/Vienna", "abbrev": "CEST", "utc_offset": "+02:00"},
		"location": {"name": "Vienna", "country": "Austria", "kind": "city"}
	}`, string(raw))
}

func TestTimeAtLocationJSONBareZone(t *testing.T) {
	utc, err := zone.Resolve("UTC")
	require.NoError(t, err)

	raw, err := json.Marshal(TimeAtLocation{
		Time: time.Date(2024, time.July, 15, 23, 30, 0, 0, utc.Location()),
		Zone: utc,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"datetime": "2024-07-15T23:30:00Z",
		"time_of_day": "night",
		"timezone": {"name": "UTC", "abbrev": "UTC", "utc_offset": "+00:00"}
	}`, string(raw))
}

func TestUTCOffsetNegative(t *testing.T) {
	ny, err := zone.Resolve("America/New_York")
	require.NoError(t, err)

	r := TimeAtLocation{Time: time.Date(2024, time.January, 15, 9, 0, 0, 0, ny.Location()), Zone: ny}
	assert.Equal(t, "-05:00", r.UTCOffset())
	assert.Equal(t, "EST", r.Abbrev())
}
