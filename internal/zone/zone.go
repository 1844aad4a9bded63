// Package zone resolves location tokens ("vie", "Springfield, IL",
// "America/New York", "local") into zone references, applying a fixed
// precedence of matching strategies over the IANA identifier set and the
// gazetteer.
//
// Resolution is deterministic and side-effect-free apart from reading the
// host's zone configuration for the "local" token, so it is safe to call
// concurrently and cheap to repeat; references are never cached.
package zone

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	// The binary carries its own copy of the tz database so identifier
	// loading never depends on the host's zoneinfo files.
	_ "time/tzdata"

	"github.com/pkordes/when/internal/gazetteer"
)

// zones.txt is the committed list of IANA/Olson identifiers, one per line,
// sorted. It is the authority for exact-identifier matching and for the
// timezone listings exposed by the CLI and the HTTP API.
//
//go:embed zones.txt
var zonesRaw []byte

var identifiers, identifierIndex = mustLoadZones()

// UnknownZoneError is returned when a token matches no resolution step.
// Token carries the original, un-normalized input for the error message.
type UnknownZoneError struct {
	Token string
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("unknown timezone '%s'", e.Token)
}

// Ref is a resolved zone reference: either a bare IANA time zone or a
// gazetteer record. It is a small immutable value, cheap to construct and
// copy; all accessors dispatch on which of the two variants it holds.
type Ref struct {
	tz  string              // canonical IANA identifier, always set
	loc *time.Location      // loaded from tz, always set
	rec *gazetteer.Location // non-nil only for gazetteer-backed refs
}

// Name returns the IANA identifier for bare time zones and the location's
// display name for gazetteer-backed references.
func (r Ref) Name() string {
	if r.rec != nil {
		return r.rec.Name
	}
	return r.tz
}

// Kind reports what the reference points at. Bare zones are KindTimezone.
func (r Ref) Kind() gazetteer.Kind {
	if r.rec != nil {
		return r.rec.Kind
	}
	return gazetteer.KindTimezone
}

// Country returns the display name of the location's country via the
// country table. Bare time zones carry no country.
func (r Ref) Country() (string, bool) {
	if r.rec == nil {
		return "", false
	}
	return gazetteer.CountryName(r.rec.Country)
}

// AdminCode returns the sub-country administrative code, when the
// underlying record has one.
func (r Ref) AdminCode() (string, bool) {
	if r.rec == nil || r.rec.AdminCode == "" {
		return "", false
	}
	return r.rec.AdminCode, true
}

// TZ returns the IANA identifier used for all instant conversions.
func (r Ref) TZ() string {
	return r.tz
}

// Location returns the loaded *time.Location for the reference.
func (r Ref) Location() *time.Location {
	return r.loc
}

// utcNames is the fixed set of identifiers that mean "exactly UTC".
// This is identity, not offset: a zone currently at UTC+0 is not UTC.
var utcNames = map[string]bool{
	"Universal":     true,
	"UTC":           true,
	"UCT":           true,
	"Zulu":          true,
	"Etc/Universal": true,
	"Etc/UCT":       true,
	"Etc/UTC":       true,
	"Etc/Zulu":      true,
}

// IsUTC reports whether the reference is one of the canonical UTC aliases.
func (r Ref) IsUTC() bool {
	return utcNames[r.tz]
}

// String renders the display form: bare zones print their identifier,
// gazetteer-backed references print "name[, admin_code][; country]".
func (r Ref) String() string {
	if r.rec == nil {
		return r.tz
	}
	var b strings.Builder
	b.WriteString(r.rec.Name)
	if code, ok := r.AdminCode(); ok {
		b.WriteString(", ")
		b.WriteString(code)
	}
	if country, ok := r.Country(); ok {
		b.WriteString("; ")
		b.WriteString(country)
	}
	return b.String()
}

// Resolve finds the zone a token denotes. Matching is case-insensitive
// throughout and the first matching step wins:
//
//  1. "local" is replaced with the host zone (UTC when undeterminable)
//     before any further matching.
//  2. Exact IANA identifier, with spaces normalized to underscores.
//  3. "Name, Code" / "Name Code" split at the last comma, else the last
//     space; the code part must match a record's country or admin code.
//  4. Plain gazetteer name; table order decides ties.
//  5. Three-character tokens match record aliases (airport-style codes).
//
// Anything else fails with an *UnknownZoneError carrying the original token.
func Resolve(token string) (Ref, error) {
	name := token
	if strings.EqualFold(name, "local") {
		name = localZone()
	}

	if canonical, ok := identifierIndex[strings.ToLower(strings.ReplaceAll(name, " ", "_"))]; ok {
		return newZoneRef(canonical, nil)
	}

	for _, delim := range []string{",", " "} {
		i := strings.LastIndex(name, delim)
		if i < 0 {
			continue
		}
		base := strings.TrimRight(name[:i], " ")
		code := strings.TrimLeft(name[i+1:], " ")
		if rec := findRecord(func(loc *gazetteer.Location) bool {
			return strings.EqualFold(loc.Name, base) &&
				(strings.EqualFold(loc.Country, code) || strings.EqualFold(loc.AdminCode, code))
		}); rec != nil {
			return newZoneRef(rec.TZ, rec)
		}
	}

	if rec := findRecord(func(loc *gazetteer.Location) bool {
		return strings.EqualFold(loc.Name, name)
	}); rec != nil {
		return newZoneRef(rec.TZ, rec)
	}

	if len(name) == 3 {
		if rec := findRecord(func(loc *gazetteer.Location) bool {
			for _, alias := range loc.Aliases {
				if strings.EqualFold(alias, name) {
					return true
				}
			}
			return false
		}); rec != nil {
			return newZoneRef(rec.TZ, rec)
		}
	}

	return Ref{}, &UnknownZoneError{Token: token}
}

// Identifiers returns the committed IANA identifier list, sorted by name.
// The returned slice is shared; callers must treat it as read-only.
func Identifiers() []string {
	return identifiers
}

// findRecord returns the first table record matching pred, or nil.
// "First" is meaningful: the table's sort order is the tie-break policy.
func findRecord(pred func(*gazetteer.Location) bool) *gazetteer.Location {
	locs := gazetteer.Locations()
	for i := range locs {
		if pred(&locs[i]) {
			return &locs[i]
		}
	}
	return nil
}

func newZoneRef(tz string, rec *gazetteer.Location) (Ref, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		// Every identifier comes from the committed list or the gazetteer,
		// both validated against the compiled-in tzdata by tests.
		return Ref{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return Ref{tz: tz, loc: loc, rec: rec}, nil
}

// localZone determines the host's IANA zone identifier. It checks the TZ
// environment variable first, then the /etc/localtime symlink, and falls
// back to UTC when neither yields an identifier.
func localZone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return strings.TrimPrefix(tz, ":")
	}
	if link, err := os.Readlink("/etc/localtime"); err == nil {
		if i := strings.Index(link, "zoneinfo/"); i >= 0 {
			return link[i+len("zoneinfo/"):]
		}
	}
	return "UTC"
}

func mustLoadZones() ([]string, map[string]string) {
	var ids []string
	index := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(zonesRaw))
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
		index[strings.ToLower(id)] = id
	}
	if err := sc.Err(); err != nil {
		panic(fmt.Sprintf("zone: bad embedded zones.txt: %v", err))
	}
	return ids, index
}
