package rota

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid field on an input record.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError reports every invalid field found on the input, not just
// the first, so callers can fix the whole record in one pass.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// add records a violation against a field.
func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// merge copies another validation error's fields under a prefix.
func (e *ValidationError) merge(prefix string, err error) {
	sub, ok := err.(*ValidationError)
	if !ok {
		e.add(prefix, "%s", err.Error())
		return
	}
	for _, f := range sub.Fields {
		e.add(prefix+"."+f.Field, "%s", f.Message)
	}
}

// orNil returns the error if any field failed, nil otherwise.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks the pharmacist's structural invariants.
func (p Pharmacist) Validate() error {
	verr := &ValidationError{}

	if p.ID == "" {
		verr.add("id", "must not be empty")
	}
	if !p.Band.Valid() {
		verr.add("band", "unrecognised band %d", int(p.Band))
	}
	if !p.PrimaryDirectorate.Valid() {
		verr.add("primaryDirectorate", "unrecognised ward %d", int(p.PrimaryDirectorate))
	}
	for i, d := range p.DaysUnavailable {
		if !d.Valid() {
			verr.add(fmt.Sprintf("daysUnavailable[%d]", i), "not a weekday: %d", int(d))
		}
	}
	for i, pref := range p.Preferences {
		if !pref.Ward.Valid() {
			verr.add(fmt.Sprintf("preferences[%d].ward", i), "unrecognised ward %d", int(pref.Ward))
		}
		if pref.Rank < 1 || pref.Rank > 5 {
			verr.add(fmt.Sprintf("preferences[%d].rank", i), "rank %d outside 1-5", pref.Rank)
		}
	}

	return verr.orNil()
}

// Validate checks the slot's structural invariants: a non-empty time window,
// a valid day and location, and a requirement with min <= ideal.
func (s ShiftSlot) Validate() error {
	verr := &ValidationError{}

	if s.ID == "" {
		verr.add("id", "must not be empty")
	}
	if !s.Day.Valid() {
		verr.add("day", "not a weekday: %d", int(s.Day))
	}
	if s.Window.End <= s.Window.Start {
		verr.add("window", "empty or inverted window %s", s.Window)
	}
	if s.TravelBufferMinutes < 0 {
		verr.add("travelBufferMinutes", "must not be negative")
	}

	switch s.Location.Kind {
	case LocationDispensary:
		if s.Location.Window < 1 {
			verr.add("location.window", "dispensary window ordinal %d is below 1", s.Location.Window)
		}
	case LocationWard:
		if !s.Location.Ward.Valid() {
			verr.add("location.ward", "unrecognised ward %d", int(s.Location.Ward))
		}
	case LocationClinic:
		if s.Location.Clinic == "" {
			verr.add("location.clinic", "clinic code must not be empty")
		}
	default:
		verr.add("location.kind", "unrecognised location kind %d", int(s.Location.Kind))
	}

	if s.Requirement.Min < 0 {
		verr.add("requirement.min", "must not be negative")
	}
	if s.Requirement.Ideal < s.Requirement.Min {
		verr.add("requirement.ideal", "ideal %d below minimum %d", s.Requirement.Ideal, s.Requirement.Min)
	}

	return verr.orNil()
}

// ValidateInputs validates a whole generation snapshot in one pass,
// aggregating every field error across all pharmacists and slots along with
// cross-record problems (duplicate IDs, locked references to unknown slots).
func ValidateInputs(pharmacists []Pharmacist, slots []ShiftSlot) error {
	verr := &ValidationError{}

	slotIDs := make(map[string]bool, len(slots))
	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			verr.merge(fmt.Sprintf("slots[%d]", i), err)
		}
		if slot.ID != "" {
			if slotIDs[slot.ID] {
				verr.add(fmt.Sprintf("slots[%d].id", i), "duplicate slot id %q", slot.ID)
			}
			slotIDs[slot.ID] = true
		}
	}

	pharmacistIDs := make(map[string]bool, len(pharmacists))
	for i, p := range pharmacists {
		if err := p.Validate(); err != nil {
			verr.merge(fmt.Sprintf("pharmacists[%d]", i), err)
		}
		if p.ID != "" {
			if pharmacistIDs[p.ID] {
				verr.add(fmt.Sprintf("pharmacists[%d].id", i), "duplicate pharmacist id %q", p.ID)
			}
			pharmacistIDs[p.ID] = true
		}
		for j, slotID := range p.LockedSlotIDs {
			if !slotIDs[slotID] {
				verr.add(fmt.Sprintf("pharmacists[%d].lockedSlotIDs[%d]", i, j), "unknown slot %q", slotID)
			}
		}
	}

	return verr.orNil()
}
