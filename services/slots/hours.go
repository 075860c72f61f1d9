package slots

import (
	"fmt"
	"time"

	"petcare/models"
)

// BusinessHours is the clinic's operating window. Appointments must start at
// or after Open and before Close; the clinic is closed on Sundays.
type BusinessHours struct {
	Open  int
	Close int
}

// DefaultBusinessHours matches the clinic's published schedule.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{Open: 9, Close: 17}
}

// Allows reports whether t falls inside the operating window, with an
// explanation when it does not.
func (h BusinessHours) Allows(t time.Time) (bool, string) {
	if t.Weekday() == time.Sunday {
		return false, "We're closed on Sundays."
	}
	if t.Hour() < h.Open || t.Hour() >= h.Close {
		return false, fmt.Sprintf(
			"That time is outside our opening hours (%02d:00 to %02d:00, Monday through Saturday).",
			h.Open, h.Close)
	}
	return true, ""
}

// takenFunc reports whether a canonical key already carries an active hold.
type takenFunc func(key string) bool

// suggest walks forward from "from" in hourly steps, collecting up to max
// free slots inside the operating window. The scan is bounded to a week so a
// fully booked calendar cannot loop forever.
func (h BusinessHours) suggest(from time.Time, max int, taken takenFunc) []models.SuggestedSlot {
	if max <= 0 {
		return nil
	}

	var out []models.SuggestedSlot
	candidate := from.Truncate(time.Hour)
	for i := 0; i < 7*24 && len(out) < max; i++ {
		candidate = candidate.Add(time.Hour)
		if ok, _ := h.Allows(candidate); !ok {
			continue
		}
		key := candidate.Format(slotKeyLayout)
		if taken(key) {
			continue
		}
		out = append(out, models.SuggestedSlot{
			SlotKey:     key,
			DisplayTime: candidate.Format(displayLayout),
		})
	}
	return out
}

// availability applies the shared policy checks for a requested time: input
// shape, operating hours, then contention. Both managers delegate here so
// the two backends cannot drift apart.
func availability(requested string, now time.Time, hours BusinessHours, maxSuggest int, taken takenFunc) (*models.Availability, error) {
	text := normalize(requested)
	if len(text) < 3 {
		return nil, newSlotError(CodeMalformedSlot, "requested date/time %q is too short to interpret", requested)
	}

	key, t, parsed := Canonicalize(requested, now)

	if parsed {
		if ok, reason := hours.Allows(t); !ok {
			return &models.Availability{
				Available:      false,
				Message:        reason,
				SuggestedSlots: hours.suggest(t, maxSuggest, taken),
			}, nil
		}
	}

	if taken(key) {
		from := t
		if !parsed {
			from = now
		}
		return &models.Availability{
			Available:      false,
			Message:        "That time slot is already taken.",
			SuggestedSlots: hours.suggest(from, maxSuggest, taken),
		}, nil
	}

	return &models.Availability{
		Available: true,
		Message:   "That time is available.",
	}, nil
}
