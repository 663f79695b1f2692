package allocator

import "github.com/emclarke/pharmacy-rota/pkg/core/rota"

// unmetPenalty dominates any achievable soft score, so repair always prefers
// relieving an unmet minimum over polishing preferences.
const unmetPenalty = 1000.0

// repair runs the bounded local-repair phase: relocations of single
// assignments and pairwise swaps, accepted only when they introduce no new
// hard violation and strictly improve the objective (score minus the unmet
// minimum penalty). The iteration cap guarantees termination.
func (a *allocation) repair() {
	iterations := 0

	for iterations < a.repairCap {
		iterations++
		if !a.tryRelocation() && !a.trySwap() && !a.trySubstitution() {
			return // local optimum
		}
	}
}

// objective folds unmet minimums into the soft score so both repair goals -
// relieving an unmet-minimum slot and reducing fairness variance - compare
// on one axis.
func (a *allocation) objective(assignments []rota.Assignment) float64 {
	counts := make(map[string]int, len(a.slots))
	for _, assignment := range assignments {
		counts[assignment.SlotID]++
	}

	shortfall := 0
	for _, slot := range a.slots {
		if missing := slot.Requirement.Min - counts[slot.ID]; missing > 0 {
			shortfall += missing
		}
	}

	return a.scorer.Score(assignments) - unmetPenalty*float64(shortfall)
}

// tryRelocation moves one non-locked assignment to a different slot for the
// same pharmacist. The first strictly-improving legal move in the fixed scan
// order is taken, keeping the phase deterministic.
func (a *allocation) tryRelocation() bool {
	base := a.objective(a.assignments)

	for i, assignment := range a.assignments {
		if assignment.Locked {
			continue
		}

		for _, target := range a.slots {
			if target.ID == assignment.SlotID {
				continue
			}
			// Only move into slots still wanting staff.
			if a.assignedCount(target.ID) >= target.Requirement.Ideal {
				continue
			}

			moved := newAssignment(assignment.PharmacistID, target.ID)
			rest := withoutIndex(a.assignments, i)
			if !a.checker.IsLegal(moved, rest) {
				continue
			}

			trial := append(rest, moved)
			if a.objective(trial) > base {
				a.assignments = trial
				return true
			}
		}
	}

	return false
}

// trySwap exchanges the pharmacists of two non-locked assignments in
// different slots. Both reassignments must pass the checker and the pair
// must strictly improve the objective.
func (a *allocation) trySwap() bool {
	base := a.objective(a.assignments)

	for i := 0; i < len(a.assignments); i++ {
		first := a.assignments[i]
		if first.Locked {
			continue
		}
		for j := i + 1; j < len(a.assignments); j++ {
			second := a.assignments[j]
			if second.Locked || second.SlotID == first.SlotID {
				continue
			}

			swappedFirst := newAssignment(second.PharmacistID, first.SlotID)
			swappedSecond := newAssignment(first.PharmacistID, second.SlotID)

			rest := withoutIndexes(a.assignments, i, j)
			if !a.checker.IsLegal(swappedFirst, rest) {
				continue
			}
			if !a.checker.IsLegal(swappedSecond, append(rest, swappedFirst)) {
				continue
			}

			trial := append(rest, swappedFirst, swappedSecond)
			if a.objective(trial) > base {
				a.assignments = trial
				return true
			}
		}
	}

	return false
}

// trySubstitution hands one non-locked assignment to a different pharmacist.
// This is the move that unloads an overloaded pharmacist onto a colleague
// holding nothing, which neither relocation nor a pairwise swap can express.
func (a *allocation) trySubstitution() bool {
	base := a.objective(a.assignments)

	for i, assignment := range a.assignments {
		if assignment.Locked {
			continue
		}
		slot := a.slotByID[assignment.SlotID]

		for _, p := range a.pharmacists {
			if p.ID == assignment.PharmacistID {
				continue
			}

			replacement := newAssignment(p.ID, slot.ID)
			rest := withoutIndex(a.assignments, i)
			if !a.checker.IsLegal(replacement, rest) {
				continue
			}

			trial := append(rest, replacement)
			if a.objective(trial) > base {
				a.assignments = trial
				return true
			}
		}
	}

	return false
}

// withoutIndex copies the slice minus one element. Copies keep the checker's
// inputs immutable.
func withoutIndex(assignments []rota.Assignment, idx int) []rota.Assignment {
	out := make([]rota.Assignment, 0, len(assignments)-1)
	out = append(out, assignments[:idx]...)
	out = append(out, assignments[idx+1:]...)
	return out
}

func withoutIndexes(assignments []rota.Assignment, i, j int) []rota.Assignment {
	out := make([]rota.Assignment, 0, len(assignments)-2)
	for idx, assignment := range assignments {
		if idx == i || idx == j {
			continue
		}
		out = append(out, assignment)
	}
	return out
}
