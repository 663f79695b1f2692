// Package checker holds the hard rules of the rota. Each rule is a pure
// predicate over a candidate assignment and the rota built so far; the
// allocator uses the checker to prune candidates and tests exercise each
// rule independently.
package checker

import (
	"fmt"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// ViolationKind identifies which hard rule a candidate assignment breaks.
type ViolationKind int

const (
	// DoubleBooked: the pharmacist already holds an assignment whose
	// conflict window overlaps the candidate's.
	DoubleBooked ViolationKind = iota

	// DispensaryLimit: a second dispensary window on the same day without
	// a backfill exception.
	DispensaryLimit

	// MissingQualification: the slot requires training the pharmacist
	// does not hold.
	MissingQualification

	// Unavailable: the pharmacist is marked unavailable for the day.
	Unavailable

	// BandIneligible: the pharmacist's band cannot cover dispensary work.
	BandIneligible

	// LockedImmutable: the candidate duplicates or displaces a locked,
	// pre-committed assignment.
	LockedImmutable

	// UnknownReference: the candidate names a pharmacist or slot outside
	// the snapshot. ValidateInputs catches these before allocation starts.
	UnknownReference
)

func (k ViolationKind) String() string {
	switch k {
	case DoubleBooked:
		return "double-booked"
	case DispensaryLimit:
		return "dispensary-limit"
	case MissingQualification:
		return "missing-qualification"
	case Unavailable:
		return "unavailable"
	case BandIneligible:
		return "band-ineligible"
	case LockedImmutable:
		return "locked-immutable"
	case UnknownReference:
		return "unknown-reference"
	default:
		return fmt.Sprintf("ViolationKind(%d)", int(k))
	}
}

// Checker evaluates candidates against an immutable snapshot of the week's
// pharmacists and slots. It holds no allocation state: the rota-so-far is
// passed to every call and never mutated.
type Checker struct {
	pharmacists map[string]rota.Pharmacist
	slots       map[string]rota.ShiftSlot
}

// New indexes the snapshot for constant-time lookups during allocation.
func New(pharmacists []rota.Pharmacist, slots []rota.ShiftSlot) *Checker {
	c := &Checker{
		pharmacists: make(map[string]rota.Pharmacist, len(pharmacists)),
		slots:       make(map[string]rota.ShiftSlot, len(slots)),
	}
	for _, p := range pharmacists {
		c.pharmacists[p.ID] = p
	}
	for _, s := range slots {
		c.slots[s.ID] = s
	}
	return c
}

// Violations returns every hard rule the candidate would break if committed
// on top of the current assignments. An empty result means the candidate is
// legal.
func (c *Checker) Violations(candidate rota.Assignment, current []rota.Assignment) []ViolationKind {
	var kinds []ViolationKind

	pharmacist, okP := c.pharmacists[candidate.PharmacistID]
	slot, okS := c.slots[candidate.SlotID]
	if !okP || !okS {
		return []ViolationKind{UnknownReference}
	}

	if c.doubleBooked(candidate, slot, current) {
		kinds = append(kinds, DoubleBooked)
	}
	if c.dispensaryLimit(candidate, slot, current) {
		kinds = append(kinds, DispensaryLimit)
	}
	if !pharmacist.HasQualification(slot.Requirement.Qualification) {
		kinds = append(kinds, MissingQualification)
	}
	if !pharmacist.IsAvailable(slot.Day) {
		kinds = append(kinds, Unavailable)
	}
	if slot.Location.Kind == rota.LocationDispensary && !pharmacist.CanCoverDispensary() {
		kinds = append(kinds, BandIneligible)
	}
	if c.lockedImmutable(candidate, current) {
		kinds = append(kinds, LockedImmutable)
	}

	return kinds
}

// IsLegal reports whether the candidate breaks no hard rule.
func (c *Checker) IsLegal(candidate rota.Assignment, current []rota.Assignment) bool {
	return len(c.Violations(candidate, current)) == 0
}

// doubleBooked reports a same-day time overlap with any existing assignment
// held by the same pharmacist. Clinic travel buffers widen both windows.
func (c *Checker) doubleBooked(candidate rota.Assignment, slot rota.ShiftSlot, current []rota.Assignment) bool {
	for _, existing := range current {
		if existing.PharmacistID != candidate.PharmacistID {
			continue
		}
		other, ok := c.slots[existing.SlotID]
		if !ok || other.Day != slot.Day {
			continue
		}
		if other.ConflictWindow().Overlaps(slot.ConflictWindow()) {
			return true
		}
	}
	return false
}

// dispensaryLimit enforces at most one dispensary window per pharmacist per
// day. A candidate carrying the backfill exception is exempt.
func (c *Checker) dispensaryLimit(candidate rota.Assignment, slot rota.ShiftSlot, current []rota.Assignment) bool {
	if slot.Location.Kind != rota.LocationDispensary || candidate.Backfill {
		return false
	}
	for _, existing := range current {
		if existing.PharmacistID != candidate.PharmacistID {
			continue
		}
		other, ok := c.slots[existing.SlotID]
		if !ok {
			continue
		}
		if other.Day == slot.Day && other.Location.Kind == rota.LocationDispensary {
			return true
		}
	}
	return false
}

// lockedImmutable rejects candidates that restate a (pharmacist, slot) pair
// already held as a locked assignment. Locked assignments are seeded before
// the search and can never be altered or replaced.
func (c *Checker) lockedImmutable(candidate rota.Assignment, current []rota.Assignment) bool {
	for _, existing := range current {
		if existing.Locked &&
			existing.PharmacistID == candidate.PharmacistID &&
			existing.SlotID == candidate.SlotID {
			return true
		}
	}
	return false
}
