package slots

import (
	"strings"
	"time"
)

// slotKeyLayout is the canonical key format for parsed date/times.
const slotKeyLayout = "2006-01-02T15:04"

// displayLayout renders a slot back to the user.
const displayLayout = "Mon Jan 2 at 3:04 PM"

var absoluteLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02t15:04",
	"2006-01-02 3pm",
	"2006-01-02 3:04pm",
	"01/02/2006 15:04",
	"01/02/2006 3pm",
	"01/02/2006 3:04pm",
	"January 2 2006 3pm",
	"January 2 2006 3:04pm",
	"January 2 2006 15:04",
	"January 2, 2006 3pm",
	"January 2, 2006 3:04pm",
}

var clockLayouts = []string{
	"15:04",
	"3:04pm",
	"3:04 pm",
	"3pm",
	"3 pm",
}

// collapse trims and collapses whitespace, preserving case so literal layout
// characters like the ISO "T" still match.
func collapse(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// normalize lowercases and collapses whitespace so formatting differences do
// not defeat contention detection.
func normalize(raw string) string {
	return strings.ToLower(collapse(raw))
}

// Canonicalize reduces requested date/time text to a stable contention key.
// Equivalent textual representations of the same instant map to the same
// key, and a canonical key round-trips to itself. When the text is
// understood the parsed time is returned alongside; free text that no layout
// matches falls back to the normalized text itself as the key, with ok set
// to false. Layouts are tried against the case-preserved text first because
// case-sensitive literals ("T") only survive there, then against the
// lowercased text so month names and meridiems match in any casing.
func Canonicalize(raw string, now time.Time) (key string, t time.Time, ok bool) {
	text := normalize(raw)

	if t, ok := parseRelative(text, now); ok {
		return t.Format(slotKeyLayout), t, true
	}
	for _, candidate := range []string{collapse(raw), text} {
		for _, layout := range absoluteLayouts {
			if parsed, err := time.ParseInLocation(layout, candidate, now.Location()); err == nil {
				return parsed.Format(slotKeyLayout), parsed, true
			}
		}
	}
	return text, time.Time{}, false
}

// parseRelative handles "today 3pm" / "tomorrow at 15:00" style requests.
func parseRelative(text string, now time.Time) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return time.Time{}, false
	}

	var dayOffset int
	switch fields[0] {
	case "today":
		dayOffset = 0
	case "tomorrow":
		dayOffset = 1
	default:
		return time.Time{}, false
	}

	rest := fields[1:]
	if rest[0] == "at" {
		rest = rest[1:]
	}
	clock := strings.Join(rest, " ")

	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		base := now.AddDate(0, 0, dayOffset)
		t := time.Date(base.Year(), base.Month(), base.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		return t, true
	}
	return time.Time{}, false
}

// DisplayTime renders a canonical slot key for the user; unparsed keys are
// shown as-is.
func DisplayTime(key string) string {
	if t, err := time.Parse(slotKeyLayout, key); err == nil {
		return t.Format(displayLayout)
	}
	return key
}
