package convert

import (
	"fmt"
	"time"
)

// TimeOfDay names the part of the day an hour falls into.
func TimeOfDay(hour int) string {
	switch {
	case hour == 5:
		return "early morning"
	case hour >= 6 && hour <= 8:
		return "morning"
	case hour >= 9 && hour <= 11:
		return "late morning"
	case hour == 12:
		return "noon"
	case hour >= 13 && hour <= 16:
		return "afternoon"
	case hour >= 17 && hour <= 18:
		return "early evening"
	case hour >= 19 && hour <= 20:
		return "evening"
	case hour >= 21 && hour <= 22:
		return "late evening"
	default:
		return "night"
	}
}

// RelativeTo describes how far an instant lies from a reference, in words:
// "right now", "in 5 minutes", "about 3 hours ago", "in 2 days". Hours are
// always qualified with "about" since the value is rounded.
func RelativeTo(t, now time.Time) string {
	d := t.Sub(now)
	past := d < 0
	if past {
		d = -d
	}

	var phrase string
	switch {
	case d < time.Minute:
		return "right now"
	case d < time.Hour:
		n := int((d + time.Minute/2) / time.Minute)
		if n >= 60 {
			phrase = "about 1 hour"
			break
		}
		phrase = plural(n, "minute")
	case d < 24*time.Hour:
		n := int((d + time.Hour/2) / time.Hour)
		if n >= 24 {
			phrase = "1 day"
			break
		}
		phrase = "about " + plural(n, "hour")
	default:
		phrase = plural(int((d+12*time.Hour)/(24*time.Hour)), "day")
	}

	if past {
		return phrase + " ago"
	}
	return "in " + phrase
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
