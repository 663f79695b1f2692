// Package allocator builds the weekly rota: it seeds locked assignments,
// fills slots most-constrained-first using the checker to prune and the
// scorer to rank, then runs a bounded local-repair pass. One call is a
// single-shot batch computation over an immutable snapshot; it performs no
// I/O and holds no cross-run state.
package allocator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/emclarke/pharmacy-rota/pkg/core/checker"
	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
	"github.com/emclarke/pharmacy-rota/pkg/core/scorer"
)

// DefaultRepairFactor bounds the repair phase at factor x slot count
// iterations when the input does not say otherwise.
const DefaultRepairFactor = 4

// Input is the complete snapshot for one generation run.
type Input struct {
	Pharmacists []rota.Pharmacist
	Slots       []rota.ShiftSlot
	Weights     scorer.Weights

	// RepairFactor caps repair iterations at RepairFactor x len(Slots).
	// Zero means DefaultRepairFactor.
	RepairFactor int
}

// Allocate produces the best weekly rota it can find for the snapshot.
// Invalid input and overlapping locked assignments are fatal; an
// unreachable minimum is not - it is reported in the outcome and the run
// continues for every other slot.
func Allocate(input Input) (*Outcome, error) {
	if err := rota.ValidateInputs(input.Pharmacists, input.Slots); err != nil {
		return nil, err
	}
	if err := input.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}

	a := newAllocation(input)

	if err := a.seedLocked(); err != nil {
		return nil, err
	}

	for _, slot := range a.orderedSlots() {
		a.fillSlot(slot)
	}

	a.repair()

	return a.buildOutcome(), nil
}

// allocation is the working state of one run.
type allocation struct {
	pharmacists []rota.Pharmacist // sorted by ID for stable iteration
	slots       []rota.ShiftSlot  // sorted by ID
	slotByID    map[string]rota.ShiftSlot
	checker     *checker.Checker
	scorer      *scorer.Scorer
	repairCap   int

	assignments []rota.Assignment
}

func newAllocation(input Input) *allocation {
	pharmacists := make([]rota.Pharmacist, len(input.Pharmacists))
	copy(pharmacists, input.Pharmacists)
	sort.Slice(pharmacists, func(i, j int) bool { return pharmacists[i].ID < pharmacists[j].ID })

	slots := make([]rota.ShiftSlot, len(input.Slots))
	copy(slots, input.Slots)
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })

	factor := input.RepairFactor
	if factor <= 0 {
		factor = DefaultRepairFactor
	}

	a := &allocation{
		pharmacists: pharmacists,
		slots:       slots,
		slotByID:    make(map[string]rota.ShiftSlot, len(slots)),
		checker:     checker.New(pharmacists, slots),
		scorer:      scorer.New(input.Weights, pharmacists, slots),
		repairCap:   factor * len(slots),
	}
	for _, s := range slots {
		a.slotByID[s.ID] = s
	}
	return a
}

// orderedSlots returns the fill order: qualification-requiring slots first,
// then by largest unmet demand (minimum minus already-seeded count), ties
// broken by slot ID. Most-constrained-first reduces late dead ends.
func (a *allocation) orderedSlots() []rota.ShiftSlot {
	seeded := a.assignedCounts()

	ordered := make([]rota.ShiftSlot, len(a.slots))
	copy(ordered, a.slots)

	deficit := func(s rota.ShiftSlot) int {
		return s.Requirement.Min - seeded[s.ID]
	}
	requiresQualification := func(s rota.ShiftSlot) bool {
		return s.Requirement.Qualification != rota.QualificationNone
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := ordered[i], ordered[j]
		if requiresQualification(si) != requiresQualification(sj) {
			return requiresQualification(si)
		}
		if deficit(si) != deficit(sj) {
			return deficit(si) > deficit(sj)
		}
		return si.ID < sj.ID
	})

	return ordered
}

// fillSlot greedily commits the best-ranked eligible pharmacists: up to the
// minimum unconditionally, then up to the ideal while each extra commitment
// still improves the total score.
func (a *allocation) fillSlot(slot rota.ShiftSlot) {
	for a.assignedCount(slot.ID) < slot.Requirement.Ideal {
		belowMin := a.assignedCount(slot.ID) < slot.Requirement.Min

		candidate, gain, found := a.bestCandidate(slot)
		if !found {
			break
		}
		// Past the minimum, extra staffing must earn its keep.
		if !belowMin && gain <= 0 {
			break
		}

		a.commit(candidate)
	}
}

// bestCandidate ranks eligible pharmacists by marginal score gain with
// deterministic tie-breaks: pharmacist ID, then directorate name. Iterating
// the pre-sorted pharmacist slice keeps runs reproducible.
func (a *allocation) bestCandidate(slot rota.ShiftSlot) (rota.Assignment, float64, bool) {
	var (
		best     rota.Assignment
		bestP    rota.Pharmacist
		bestGain float64
		found    bool
	)

	for _, p := range a.pharmacists {
		candidate := newAssignment(p.ID, slot.ID)
		if !a.checker.IsLegal(candidate, a.assignments) {
			continue
		}

		gain := a.scorer.MarginalGain(a.assignments, candidate)
		if !found || gain > bestGain ||
			(gain == bestGain && lessPharmacist(p, bestP)) {
			best, bestP, bestGain, found = candidate, p, gain, true
		}
	}

	return best, bestGain, found
}

func lessPharmacist(a, b rota.Pharmacist) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.PrimaryDirectorate.String() < b.PrimaryDirectorate.String()
}

func (a *allocation) commit(assignment rota.Assignment) {
	a.assignments = append(a.assignments, assignment)
}

func (a *allocation) assignedCount(slotID string) int {
	count := 0
	for _, assignment := range a.assignments {
		if assignment.SlotID == slotID {
			count++
		}
	}
	return count
}

func (a *allocation) assignedCounts() map[string]int {
	counts := make(map[string]int, len(a.slots))
	for _, assignment := range a.assignments {
		counts[assignment.SlotID]++
	}
	return counts
}

// newAssignment mints a deterministic assignment: the ID is a name-based
// UUID over the (pharmacist, slot) pair, so identical runs produce
// byte-identical rotas.
func newAssignment(pharmacistID, slotID string) rota.Assignment {
	return rota.Assignment{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(pharmacistID+"/"+slotID)).String(),
		PharmacistID: pharmacistID,
		SlotID:       slotID,
	}
}
