// Package expr defines the expression grammar for human-typed time, date
// and location input ("2pm in vie -> yyz", "tomorrow noon", "+3h",
// "1577836800") and evaluates parsed expressions against a reference
// instant.
//
// The grammar is deliberately small and deterministic: it is not a natural
// language parser. Parse classifies every failure as a grammar error, a
// trailing-garbage error or an out-of-range error so callers can render
// actionable messages.
package expr

import "time"

// TimeSpec is a time-of-day override. When Relative is false the three
// fields are absolute set-points (the grammar always yields all three, with
// absent sub-fields as zero); when Relative is true they are signed offsets
// added as durations.
type TimeSpec struct {
	Relative bool
	Hour     int
	Minute   int
	Second   int
}

// DateSpec is a date override. When Relative is true only Days is
// meaningful (a signed day count). Otherwise Day is always set while Month
// and Year are applied only when their Has flag is set, leaving the
// reference instant's field untouched.
type DateSpec struct {
	Relative bool
	Days     int

	Day      int
	Month    int
	Year     int
	HasMonth bool
	HasYear  bool
}

// Expression is the parsed, immutable form of one input string.
// Locations holds the raw location tokens: index 0 is the source, the rest
// are conversion targets in "->" order. Either override may be nil, meaning
// the reference instant's time or date passes through unchanged.
type Expression struct {
	Time      *TimeSpec
	Date      *DateSpec
	Locations []string
}

// Location returns the source location token, or "" when the expression
// carries none.
func (e *Expression) Location() string {
	if len(e.Locations) > 0 {
		return e.Locations[0]
	}
	return ""
}

// Targets returns the conversion target tokens after the source.
func (e *Expression) Targets() []string {
	if len(e.Locations) > 1 {
		return e.Locations[1:]
	}
	return nil
}

// IsRelative reports whether the expression's result moves with the clock:
// true when there is no absolute time override (including the bare "now"
// case) or when the date override is relative.
func (e *Expression) IsRelative() bool {
	if e.Time == nil || e.Time.Relative {
		return true
	}
	return e.Date != nil && e.Date.Relative
}

// Apply imposes the expression's overrides on a reference instant and
// returns the resulting instant in the same zone. Time is applied first,
// then date; the two are independent, so the order is not observable.
// Absolute date fields are validated stepwise and fail with an
// *OutOfRangeError naming the offending field; nothing is clamped or
// wrapped.
func (e *Expression) Apply(ref time.Time) (time.Time, error) {
	t := ref

	if ts := e.Time; ts != nil {
		if ts.Relative {
			t = t.Add(time.Duration(ts.Hour)*time.Hour +
				time.Duration(ts.Minute)*time.Minute +
				time.Duration(ts.Second)*time.Second)
		} else {
			t = time.Date(t.Year(), t.Month(), t.Day(),
				ts.Hour, ts.Minute, ts.Second, t.Nanosecond(), t.Location())
		}
	}

	ds := e.Date
	if ds == nil {
		return t, nil
	}
	if ds.Relative {
		return t.AddDate(0, 0, ds.Days), nil
	}

	if ds.Day < 1 || ds.Day > daysIn(t.Month(), t.Year()) {
		return time.Time{}, &OutOfRangeError{Field: "day"}
	}
	t = time.Date(t.Year(), t.Month(), ds.Day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	if ds.HasMonth {
		if ds.Month < 1 || ds.Month > 12 || t.Day() > daysIn(time.Month(ds.Month), t.Year()) {
			return time.Time{}, &OutOfRangeError{Field: "month"}
		}
		t = time.Date(t.Year(), time.Month(ds.Month), t.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}

	if ds.HasYear {
		if ds.Year < 1 || ds.Year > 9999 || t.Day() > daysIn(t.Month(), ds.Year) {
			return time.Time{}, &OutOfRangeError{Field: "year"}
		}
		t = time.Date(ds.Year, t.Month(), t.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}

	return t, nil
}

// daysIn returns the number of days in a month. The zeroth day of the next
// month normalizes to the last day of this one.
func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
