// Package convert orchestrates expression parsing, zone resolution and
// evaluation into an ordered list of (instant, zone) results: one per
// location in the chain, all naming the same absolute instant.
package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkordes/when/internal/expr"
	"github.com/pkordes/when/internal/gazetteer"
	"github.com/pkordes/when/internal/zone"
)

// Converter turns input strings into conversion outcomes. The zero value
// is ready to use and reads the system clock; tests inject Now.
type Converter struct {
	Now func() time.Time
}

func (c *Converter) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// TimeAtLocation is one chain result: an instant expressed in one zone.
type TimeAtLocation struct {
	Time time.Time
	Zone zone.Ref
}

// Outcome is the full result of converting one input string, shaped for
// the HTTP API and the CLI's JSON output alike.
type Outcome struct {
	IsRelative bool             `json:"is_relative"`
	Locations  []TimeAtLocation `json:"locations"`
}

// Convert parses an input string and processes the resulting expression.
// Errors from either stage propagate unchanged so callers can classify
// them.
func (c *Converter) Convert(input string) (*Outcome, error) {
	e, err := expr.Parse(input)
	if err != nil {
		return nil, err
	}
	results, err := c.Process(e)
	if err != nil {
		return nil, err
	}
	return &Outcome{IsRelative: e.IsRelative(), Locations: results}, nil
}

// Process evaluates an expression: the source zone is the expression's
// first location, or the host's local zone when it names none. The
// expression is applied to the current instant in the source zone, and
// every chained target re-expresses that same instant.
//
// When the expression names a source but no targets, the local zone is
// appended as an implicit target so the caller always sees the conversion
// home, unless local and source are the same zone.
func (c *Converter) Process(e *expr.Expression) ([]TimeAtLocation, error) {
	srcTok := e.Location()
	if srcTok == "" {
		srcTok = "local"
	}
	src, err := zone.Resolve(srcTok)
	if err != nil {
		return nil, err
	}

	t, err := e.Apply(c.now().In(src.Location()))
	if err != nil {
		return nil, err
	}

	results := []TimeAtLocation{{Time: t, Zone: src}}
	for _, tok := range e.Targets() {
		target, err := zone.Resolve(tok)
		if err != nil {
			return nil, err
		}
		results = append(results, TimeAtLocation{Time: t.In(target.Location()), Zone: target})
	}

	if e.Location() != "" && len(e.Targets()) == 0 {
		if local, err := zone.Resolve("local"); err == nil && local.TZ() != src.TZ() {
			results = append(results, TimeAtLocation{Time: t.In(local.Location()), Zone: local})
		}
	}

	return results, nil
}

// Abbrev returns the zone abbreviation in effect at the result's instant
// ("CEST", "EDT"; numeric like "+04" where the database has no letters).
func (r TimeAtLocation) Abbrev() string {
	name, _ := r.Time.Zone()
	return name
}

// UTCOffset renders the offset in effect at the result's instant as
// "+HH:MM" or "-HH:MM".
func (r TimeAtLocation) UTCOffset() string {
	_, off := r.Time.Zone()
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s%02d:%02d", sign, off/3600, off%3600/60)
}

type timezoneJSON struct {
	Name      string `json:"name"`
	Abbrev    string `json:"abbrev"`
	UTCOffset string `json:"utc_offset"`
}

type locationJSON struct {
	Name      string `json:"name"`
	AdminCode string `json:"admin_code,omitempty"`
	Country   string `json:"country,omitempty"`
	Kind      string `json:"kind"`
}

// MarshalJSON renders the wire form shared by the HTTP API and the CLI
// JSON output. The location object is omitted for bare time zones.
func (r TimeAtLocation) MarshalJSON() ([]byte, error) {
	out := struct {
		Datetime  string        `json:"datetime"`
		TimeOfDay string        `json:"time_of_day"`
		Timezone  timezoneJSON  `json:"timezone"`
		Location  *locationJSON `json:"location,omitempty"`
	}{
		Datetime:  r.Time.Format(time.RFC3339),
		TimeOfDay: TimeOfDay(r.Time.Hour()),
		Timezone: timezoneJSON{
			Name:      r.Zone.TZ(),
			Abbrev:    r.Abbrev(),
			UTCOffset: r.UTCOffset(),
		},
	}
	if r.Zone.Kind() != gazetteer.KindTimezone {
		loc := &locationJSON{Name: r.Zone.Name(), Kind: r.Zone.Kind().String()}
		if ac, ok := r.Zone.AdminCode(); ok {
			loc.AdminCode = ac
		}
		if country, ok := r.Zone.Country(); ok {
			loc.Country = country
		}
		out.Location = loc
	}
	return json.Marshal(out)
}
