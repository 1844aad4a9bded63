package expr

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/when/internal/zone"
)

// maxUnixSeconds is 9999-12-31T23:59:59Z; epoch literals past it are
// rejected rather than producing five-digit years.
const maxUnixSeconds = 253402300799

// Parse converts a raw input string into an Expression.
//
// The accepted surface syntax is an optional time specifier, an optional
// date specifier (in either order), or alternatively a single relative time
// group or unix epoch-seconds literal, followed by an optional location
// chain ("in a -> b -> c"). The empty string and the literal "now" both
// yield an expression with no overrides.
//
// Failures are classified: a *GrammarError when the input does not match
// the syntax, a *TrailingGarbageError when a valid prefix is followed by
// leftover text, and an *OutOfRangeError for an unrepresentable epoch
// literal.
func Parse(input string) (*Expression, error) {
	src := strings.TrimSpace(input)
	p := &parser{src: src, toks: scan(src)}

	e := &Expression{}
	unixTime := false

	switch {
	case p.peek().kind == tokPlus || p.peek().kind == tokMinus:
		ts, err := p.parseRelativeTime()
		if err != nil {
			return nil, err
		}
		e.Time = ts
	case p.unixAhead():
		if err := p.parseUnixTime(e); err != nil {
			return nil, err
		}
		unixTime = true
	default:
		timeDone, dateDone := false, false
		for {
			if !timeDone && p.timeAhead() {
				ts, err := p.parseTime()
				if err != nil {
					return nil, err
				}
				e.Time = ts // nil for "now": consumed, but no override
				timeDone = true
				continue
			}
			if !dateDone && p.dateAhead() {
				ds, err := p.parseDate()
				if err != nil {
					return nil, err
				}
				e.Date = ds
				dateDone = true
				continue
			}
			break
		}
	}

	if p.isWord("in") {
		locs, err := p.parseLocations()
		if err != nil {
			return nil, err
		}
		e.Locations = locs
	}

	if t := p.peek(); t.kind != tokEOF {
		return nil, &TrailingGarbageError{Rest: strings.TrimSpace(src[t.start:])}
	}

	// An epoch literal names an absolute UTC instant, so UTC is its
	// implied source: with no explicit location the chain becomes just
	// "utc", and an explicit non-UTC location is demoted to the first
	// conversion target. Non-epoch expressions are never touched.
	if unixTime {
		if len(e.Locations) == 0 {
			e.Locations = []string{"utc"}
		} else if ref, err := zone.Resolve(e.Locations[0]); err != nil || !ref.IsUTC() {
			e.Locations = append([]string{"utc"}, e.Locations...)
		}
	}

	return e, nil
}

type parser struct {
	src  string
	toks []token
	i    int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) peekAt(n int) token {
	i := p.i + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isWord(s string) bool {
	t := p.peek()
	return t.kind == tokWord && strings.EqualFold(t.text, s)
}

// ---- time specifier ---------------------------------------------------------

func isMeridiem(s string) bool {
	return strings.EqualFold(s, "am") || strings.EqualFold(s, "pm")
}

func (p *parser) timeAhead() bool {
	t := p.peek()
	if t.kind == tokWord {
		switch strings.ToLower(t.text) {
		case "noon", "midnight", "now":
			return true
		}
		return false
	}
	if t.kind == tokNumber {
		n := p.peekAt(1)
		if n.kind == tokColon {
			return true
		}
		if n.kind == tokWord && isMeridiem(n.text) {
			return true
		}
	}
	return false
}

// parseTime consumes one time specifier. It returns nil for "now", which
// must not produce an override: "now" means the reference instant's time,
// not midnight.
func (p *parser) parseTime() (*TimeSpec, error) {
	if t := p.peek(); t.kind == tokWord {
		p.next()
		switch strings.ToLower(t.text) {
		case "noon":
			return &TimeSpec{Hour: 12}, nil
		case "midnight":
			return &TimeSpec{}, nil
		default: // "now", guaranteed by timeAhead
			return nil, nil
		}
	}

	hourTok := p.next()
	hour, _ := strconv.Atoi(hourTok.text)
	minute, second := 0, 0

	sawColon := false
	if p.peek().kind == tokColon {
		sawColon = true
		p.next()
		m := p.peek()
		if m.kind != tokNumber {
			return nil, &GrammarError{Expected: []string{"minute"}, Found: m.describe()}
		}
		p.next()
		minute, _ = strconv.Atoi(m.text)

		if p.peek().kind == tokColon {
			p.next()
			s := p.peek()
			if s.kind != tokNumber {
				return nil, &GrammarError{Expected: []string{"second"}, Found: s.describe()}
			}
			p.next()
			second, _ = strconv.Atoi(s.text)
		}
	}

	if m := p.peek(); m.kind == tokWord && isMeridiem(m.text) {
		p.next()
		if hour < 1 || hour > 12 {
			return nil, &GrammarError{Expected: []string{"12-hour clock hour"}, Found: hourTok.describe()}
		}
		if strings.EqualFold(m.text, "pm") {
			// 12pm is noon already.
			if hour != 12 {
				hour += 12
			}
		} else if hour == 12 {
			// 12am is midnight.
			hour = 0
		}
	} else {
		if !sawColon {
			return nil, &GrammarError{Expected: []string{"am or pm"}, Found: m.describe()}
		}
		if hour > 23 {
			return nil, &GrammarError{Expected: []string{"hour"}, Found: hourTok.describe()}
		}
	}

	if minute > 59 {
		return nil, &GrammarError{Expected: []string{"minute"}, Found: "'" + strconv.Itoa(minute) + "'"}
	}
	if second > 59 {
		return nil, &GrammarError{Expected: []string{"second"}, Found: "'" + strconv.Itoa(second) + "'"}
	}

	return &TimeSpec{Hour: hour, Minute: minute, Second: second}, nil
}

// parseRelativeTime consumes a signed offset group like "+3h", "-15m" or
// "+1h30m10s". The single leading sign applies to every present field;
// absent fields stay zero.
func (p *parser) parseRelativeTime() (*TimeSpec, error) {
	sign := 1
	if p.next().kind == tokMinus {
		sign = -1
	}

	var hours, minutes, seconds int
	seen := false
	for p.peek().kind == tokNumber {
		numTok := p.next()
		n, _ := strconv.Atoi(numTok.text)

		unit := p.peek()
		if unit.kind != tokWord {
			return nil, &GrammarError{Expected: []string{"duration unit (h, m or s)"}, Found: unit.describe()}
		}
		switch strings.ToLower(unit.text) {
		case "h", "hr", "hrs", "hour", "hours":
			hours = n
		case "m", "min", "mins", "minute", "minutes":
			minutes = n
		case "s", "sec", "secs", "second", "seconds":
			seconds = n
		default:
			return nil, &GrammarError{Expected: []string{"duration unit (h, m or s)"}, Found: unit.describe()}
		}
		p.next()
		seen = true
	}
	if !seen {
		return nil, &GrammarError{Expected: []string{"number"}, Found: p.peek().describe()}
	}

	return &TimeSpec{Relative: true, Hour: sign * hours, Minute: sign * minutes, Second: sign * seconds}, nil
}

// ---- date specifier ---------------------------------------------------------

var months = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

func isOrdinalSuffix(s string) bool {
	switch strings.ToLower(s) {
	case "st", "nd", "rd", "th":
		return true
	}
	return false
}

func isDaysWord(s string) bool {
	return strings.EqualFold(s, "day") || strings.EqualFold(s, "days")
}

func (p *parser) dateAhead() bool {
	t := p.peek()
	if t.kind == tokWord {
		w := strings.ToLower(t.text)
		switch w {
		case "today", "tomorrow", "yesterday":
			return true
		case "in":
			return p.inDaysAhead()
		}
		return months[w] > 0
	}
	if t.kind == tokNumber {
		n := p.peekAt(1)
		if n.kind == tokSlash {
			return true
		}
		if n.kind == tokWord {
			if months[strings.ToLower(n.text)] > 0 {
				return true
			}
			// Ordinal suffixes only count when glued to the number,
			// as in "4th".
			if isOrdinalSuffix(n.text) && n.start == t.end {
				return true
			}
		}
	}
	return false
}

// inDaysAhead distinguishes the "in N days" date form from the "in
// <location>" clause, which share their keyword.
func (p *parser) inDaysAhead() bool {
	i := 1
	if k := p.peekAt(i).kind; k == tokMinus || k == tokPlus {
		i++
	}
	if p.peekAt(i).kind != tokNumber {
		return false
	}
	after := p.peekAt(i + 1)
	return after.kind == tokWord && isDaysWord(after.text)
}

func (p *parser) parseDate() (*DateSpec, error) {
	t := p.peek()
	if t.kind == tokWord {
		switch strings.ToLower(t.text) {
		case "today":
			p.next()
			return &DateSpec{Relative: true}, nil
		case "tomorrow":
			p.next()
			return &DateSpec{Relative: true, Days: 1}, nil
		case "yesterday":
			p.next()
			return &DateSpec{Relative: true, Days: -1}, nil
		case "in":
			return p.parseInDays()
		}
		return p.parseEnglishDate()
	}
	if p.peekAt(1).kind == tokSlash {
		return p.parseNumericDate()
	}
	return p.parseEnglishDate()
}

func (p *parser) parseInDays() (*DateSpec, error) {
	p.next() // "in"
	sign := 1
	if k := p.peek().kind; k == tokMinus || k == tokPlus {
		if k == tokMinus {
			sign = -1
		}
		p.next()
	}
	numTok := p.next() // number, guaranteed by inDaysAhead
	days, _ := strconv.Atoi(numTok.text)
	p.next() // "days"
	return &DateSpec{Relative: true, Days: sign * days}, nil
}

// parseEnglishDate consumes a textual date: a month name and a day in
// either order with an optional 4-digit year ("March 4th 2024",
// "4 March"), or a bare ordinal day ("4th") that leaves month and year to
// the reference instant.
func (p *parser) parseEnglishDate() (*DateSpec, error) {
	ds := &DateSpec{}

	if t := p.peek(); t.kind == tokNumber {
		ds.Day = p.parseEnglishDay()
		if m := p.peek(); m.kind == tokWord && months[strings.ToLower(m.text)] > 0 {
			p.next()
			ds.Month = months[strings.ToLower(m.text)]
			ds.HasMonth = true
		}
	} else {
		monthTok := p.next() // month word, guaranteed by dateAhead
		ds.Month = months[strings.ToLower(monthTok.text)]
		ds.HasMonth = true

		d := p.peek()
		if d.kind != tokNumber || len(d.text) == 4 {
			return nil, &GrammarError{Expected: []string{"day of month"}, Found: d.describe()}
		}
		ds.Day = p.parseEnglishDay()
	}

	if y := p.peek(); y.kind == tokNumber && len(y.text) == 4 {
		p.next()
		ds.Year, _ = strconv.Atoi(y.text)
		ds.HasYear = true
	}

	return ds, nil
}

// parseEnglishDay consumes a day number and strips a glued ordinal suffix.
func (p *parser) parseEnglishDay() int {
	numTok := p.next()
	day, _ := strconv.Atoi(numTok.text)
	if s := p.peek(); s.kind == tokWord && isOrdinalSuffix(s.text) && s.start == numTok.end {
		p.next()
	}
	return day
}

// parseNumericDate consumes "dd/mm" or "dd/mm/yyyy".
func (p *parser) parseNumericDate() (*DateSpec, error) {
	dayTok := p.next()
	day, _ := strconv.Atoi(dayTok.text)
	p.next() // slash, guaranteed by dateAhead

	m := p.peek()
	if m.kind != tokNumber {
		return nil, &GrammarError{Expected: []string{"month"}, Found: m.describe()}
	}
	p.next()
	month, _ := strconv.Atoi(m.text)

	ds := &DateSpec{Day: day, Month: month, HasMonth: true}

	if p.peek().kind == tokSlash {
		p.next()
		y := p.peek()
		if y.kind != tokNumber || len(y.text) != 4 {
			return nil, &GrammarError{Expected: []string{"4-digit year"}, Found: y.describe()}
		}
		p.next()
		ds.Year, _ = strconv.Atoi(y.text)
		ds.HasYear = true
	}

	return ds, nil
}

// ---- unix epoch literal -----------------------------------------------------

// unixAhead recognizes a bare epoch-seconds literal: at least five digits
// standing alone, save for a following location clause. Shorter numbers are
// left to the date/time forms.
func (p *parser) unixAhead() bool {
	t := p.peek()
	if t.kind != tokNumber || len(t.text) < 5 {
		return false
	}
	n := p.peekAt(1)
	return n.kind == tokEOF || (n.kind == tokWord && strings.EqualFold(n.text, "in"))
}

// parseUnixTime consumes an epoch literal. It fully determines both
// overrides: the instant's UTC clock and calendar fields.
func (p *parser) parseUnixTime(e *Expression) error {
	t := p.next()
	ts, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil || ts > maxUnixSeconds {
		return &OutOfRangeError{Field: "unix timestamp"}
	}
	u := time.Unix(ts, 0).UTC()
	e.Time = &TimeSpec{Hour: u.Hour(), Minute: u.Minute(), Second: u.Second()}
	e.Date = &DateSpec{
		Day:      u.Day(),
		Month:    int(u.Month()),
		Year:     u.Year(),
		HasMonth: true,
		HasYear:  true,
	}
	return nil
}

// ---- location chain ---------------------------------------------------------

// parseLocations consumes the "in" keyword and splits everything after it
// on "->". Tokens keep their original spelling (resolution is
// case-insensitive and error messages want the verbatim text); empty chain
// entries are discarded.
func (p *parser) parseLocations() ([]string, error) {
	inTok := p.next()

	var locs []string
	for _, piece := range strings.Split(p.src[inTok.end:], "->") {
		if piece = strings.TrimSpace(piece); piece != "" {
			locs = append(locs, piece)
		}
	}
	if len(locs) == 0 {
		return nil, &GrammarError{Expected: []string{"location"}, Found: "end of input"}
	}

	p.i = len(p.toks) - 1 // the chain consumes the rest of the input
	return locs, nil
}
