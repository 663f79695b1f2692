package rota

import "sort"

// SlotCoverage summarises how one slot ended up staffed.
type SlotCoverage struct {
	SlotID   string
	Day      Day
	Location Location
	Assigned int
	Min      int
	Ideal    int
}

// MetMinimum reports whether the slot reached its hard floor.
func (c SlotCoverage) MetMinimum() bool {
	return c.Assigned >= c.Min
}

// Entry is one cell of the rendered rota: a pharmacist committed to a slot.
type Entry struct {
	SlotID       string
	Location     Location
	Window       TimeWindow
	PharmacistID string
	Locked       bool
	Backfill     bool
}

// WeeklyRota is the completed output of one allocation run: every assignment
// for a Monday-Friday cycle plus the derived coverage report. It exposes no
// mutation; a changed rota means a new allocator run.
type WeeklyRota struct {
	ID          string
	Assignments []Assignment

	slots    map[string]ShiftSlot
	slotIDs  []string
	coverage []SlotCoverage
}

// NewWeeklyRota derives a rota aggregate from the week's slots and the
// assignments committed against them. Assignments naming unknown slots are
// ignored; the allocator never produces them.
func NewWeeklyRota(id string, slots []ShiftSlot, assignments []Assignment) *WeeklyRota {
	w := &WeeklyRota{
		ID:          id,
		Assignments: assignments,
		slots:       make(map[string]ShiftSlot, len(slots)),
	}

	counts := make(map[string]int, len(slots))
	for _, a := range assignments {
		counts[a.SlotID]++
	}

	for _, slot := range slots {
		w.slots[slot.ID] = slot
		w.slotIDs = append(w.slotIDs, slot.ID)
		w.coverage = append(w.coverage, SlotCoverage{
			SlotID:   slot.ID,
			Day:      slot.Day,
			Location: slot.Location,
			Assigned: counts[slot.ID],
			Min:      slot.Requirement.Min,
			Ideal:    slot.Requirement.Ideal,
		})
	}

	// Fixed report order: day, then location label, then slot ID.
	sort.SliceStable(w.coverage, func(i, j int) bool {
		a, b := w.coverage[i], w.coverage[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Location.String() != b.Location.String() {
			return a.Location.String() < b.Location.String()
		}
		return a.SlotID < b.SlotID
	})

	return w
}

// Coverage returns the per-slot coverage report in a fixed order.
func (w *WeeklyRota) Coverage() []SlotCoverage {
	out := make([]SlotCoverage, len(w.coverage))
	copy(out, w.coverage)
	return out
}

// UnmetMinimums returns the coverage rows whose hard floor was not reached.
func (w *WeeklyRota) UnmetMinimums() []SlotCoverage {
	var unmet []SlotCoverage
	for _, c := range w.coverage {
		if !c.MetMinimum() {
			unmet = append(unmet, c)
		}
	}
	return unmet
}

// Feasible reports whether every slot met its minimum headcount.
func (w *WeeklyRota) Feasible() bool {
	return len(w.UnmetMinimums()) == 0
}

// Slot returns the slot definition behind an assignment.
func (w *WeeklyRota) Slot(slotID string) (ShiftSlot, bool) {
	s, ok := w.slots[slotID]
	return s, ok
}

// DayEntries returns the rota cells for one day, ordered by window start,
// then location label, then pharmacist ID. This is the tabular shape the
// external renderer consumes.
func (w *WeeklyRota) DayEntries(day Day) []Entry {
	var entries []Entry
	for _, a := range w.Assignments {
		slot, ok := w.slots[a.SlotID]
		if !ok || slot.Day != day {
			continue
		}
		entries = append(entries, Entry{
			SlotID:       slot.ID,
			Location:     slot.Location,
			Window:       slot.Window,
			PharmacistID: a.PharmacistID,
			Locked:       a.Locked,
			Backfill:     a.Backfill,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Window.Start != b.Window.Start {
			return a.Window.Start < b.Window.Start
		}
		if a.Location.String() != b.Location.String() {
			return a.Location.String() < b.Location.String()
		}
		return a.PharmacistID < b.PharmacistID
	})

	return entries
}

// AssignmentsFor returns every assignment held by one pharmacist,
// ordered by day then window start.
func (w *WeeklyRota) AssignmentsFor(pharmacistID string) []Assignment {
	var out []Assignment
	for _, a := range w.Assignments {
		if a.PharmacistID == pharmacistID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si := w.slots[out[i].SlotID]
		sj := w.slots[out[j].SlotID]
		if si.Day != sj.Day {
			return si.Day < sj.Day
		}
		return si.Window.Start < sj.Window.Start
	})
	return out
}

// HoursFor returns the total assigned shift-hours one pharmacist holds.
func (w *WeeklyRota) HoursFor(pharmacistID string) float64 {
	total := 0.0
	for _, a := range w.Assignments {
		if a.PharmacistID != pharmacistID {
			continue
		}
		if slot, ok := w.slots[a.SlotID]; ok {
			total += slot.Window.Hours()
		}
	}
	return total
}
