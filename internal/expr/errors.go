package expr

import (
	"fmt"
	"strings"
)

// GrammarError reports input that does not match the accepted syntax.
// Expected holds the token categories the parser would have accepted at the
// failure point; Found describes what was encountered instead.
type GrammarError struct {
	Expected []string
	Found    string
}

func (e *GrammarError) Error() string {
	switch {
	case len(e.Expected) > 0 && e.Found != "":
		return fmt.Sprintf("invalid syntax (unexpected %s; expected %s)",
			e.Found, strings.Join(e.Expected, ", "))
	case len(e.Expected) > 0:
		return fmt.Sprintf("invalid syntax (expected %s)", strings.Join(e.Expected, ", "))
	case e.Found != "":
		return fmt.Sprintf("invalid syntax (unexpected %s)", e.Found)
	}
	return "invalid syntax (unknown parsing error)"
}

// TrailingGarbageError reports that a valid expression prefix was recognized
// but extra text remains after it. Rest carries the unconsumed suffix so the
// caller can point at the exact leftover.
type TrailingGarbageError struct {
	Rest string
}

func (e *TrailingGarbageError) Error() string {
	return fmt.Sprintf("invalid syntax (unsure how to interpret %q)", e.Rest)
}

// OutOfRangeError reports a calendar field or unix timestamp outside its
// valid bounds. Field names the offending category: "day", "month", "year"
// or "unix timestamp".
type OutOfRangeError struct {
	Field string
}

func (e *OutOfRangeError) Error() string {
	return e.Field + " out of range"
}
