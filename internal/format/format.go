// Package format renders conversion outcomes for the terminal: a verbose
// block per result, a one-line short form, pretty JSON, and the timezone
// listing table.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pkordes/when/internal/convert"
	"github.com/pkordes/when/internal/gazetteer"
	"github.com/pkordes/when/internal/zone"
)

// ColorMode controls ANSI color output.
type ColorMode int

const (
	// ColorAuto leaves terminal detection to the rendering library.
	ColorAuto ColorMode = iota
	ColorNever
	ColorAlways
)

// ParseColorMode maps the --colors flag value to a mode.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto":
		return ColorAuto, nil
	case "never":
		return ColorNever, nil
	case "always":
		return ColorAlways, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, never or always)", s)
}

// Apply sets the process-wide color state.
func (m ColorMode) Apply() {
	switch m {
	case ColorNever:
		text.DisableColors()
	case ColorAlways:
		text.EnableColors()
	}
}

// Printer renders outcomes to Out. Now is the reference for humanized
// deltas; nil means the system clock.
type Printer struct {
	Out io.Writer
	Now func() time.Time
}

func (p *Printer) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Full renders one verbose block per result, blocks separated by a blank
// line.
func (p *Printer) Full(out *convert.Outcome) {
	now := p.now()
	for i, r := range out.Locations {
		if i > 0 {
			fmt.Fprintln(p.Out)
		}
		fmt.Fprintf(p.Out, "time:     %s (%s, %s)\n",
			text.Bold.Sprint(r.Time.Format("15:04:05")),
			convert.RelativeTo(r.Time, now),
			convert.TimeOfDay(r.Time.Hour()))
		fmt.Fprintf(p.Out, "date:     %s (%s)\n",
			r.Time.Format("2006-01-02"), r.Time.Weekday())
		fmt.Fprintf(p.Out, "zone:     %s (%s; %s)\n",
			r.Zone.TZ(), r.Abbrev(), r.UTCOffset())
		if r.Zone.Kind() != gazetteer.KindTimezone {
			fmt.Fprintf(p.Out, "location: %s\n", r.Zone)
		}
	}
}

// Short renders one line per result.
func (p *Printer) Short(out *convert.Outcome) {
	for _, r := range out.Locations {
		fmt.Fprintf(p.Out, "%s (%s)\n",
			r.Time.Format("2006-01-02 15:04:05 -0700"), r.Zone)
	}
}

// JSON renders the result list as an indented JSON array.
func (p *Printer) JSON(out *convert.Outcome) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Locations)
}

// ListTimezones renders every embedded IANA identifier with the
// abbreviation and offset in effect at now.
func (p *Printer) ListTimezones() {
	now := p.now()

	t := table.NewWriter()
	t.SetOutputMirror(p.Out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Timezone", "Abbrev", "Offset"})
	for _, id := range zone.Identifiers() {
		loc, err := time.LoadLocation(id)
		if err != nil {
			continue
		}
		local := now.In(loc)
		abbrev, _ := local.Zone()
		t.AppendRow(table.Row{id, abbrev, local.Format("-07:00")})
	}
	t.Render()
}
