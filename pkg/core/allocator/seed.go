package allocator

import (
	"fmt"
	"sort"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// LockedConflictError is fatal at seeding time: two pre-committed
// assignments for the same pharmacist overlap, so no legal rota exists.
type LockedConflictError struct {
	PharmacistID string
	SlotA        string
	SlotB        string
}

func (e *LockedConflictError) Error() string {
	return fmt.Sprintf("locked assignments for pharmacist %s conflict: slots %s and %s overlap",
		e.PharmacistID, e.SlotA, e.SlotB)
}

// seedLocked places every pre-committed assignment before the search begins.
// Locked assignments are never altered or removed afterwards. A second
// locked dispensary window on the same day is taken as a recorded backfill
// exception rather than a violation.
func (a *allocation) seedLocked() error {
	for _, p := range a.pharmacists {
		slotIDs := make([]string, len(p.LockedSlotIDs))
		copy(slotIDs, p.LockedSlotIDs)
		sort.Strings(slotIDs)

		var seeded []rota.ShiftSlot
		for _, slotID := range slotIDs {
			slot := a.slotByID[slotID]

			for _, prior := range seeded {
				if prior.Day == slot.Day && prior.ConflictWindow().Overlaps(slot.ConflictWindow()) {
					return &LockedConflictError{
						PharmacistID: p.ID,
						SlotA:        prior.ID,
						SlotB:        slot.ID,
					}
				}
			}

			assignment := newAssignment(p.ID, slotID)
			assignment.Locked = true
			assignment.Backfill = isSecondDispensary(slot, seeded)
			a.commit(assignment)
			seeded = append(seeded, slot)
		}
	}
	return nil
}

// isSecondDispensary reports whether the slot would be the pharmacist's
// second dispensary window that day among their seeded slots.
func isSecondDispensary(slot rota.ShiftSlot, seeded []rota.ShiftSlot) bool {
	if slot.Location.Kind != rota.LocationDispensary {
		return false
	}
	for _, prior := range seeded {
		if prior.Day == slot.Day && prior.Location.Kind == rota.LocationDispensary {
			return true
		}
	}
	return false
}
