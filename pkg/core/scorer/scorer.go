// Package scorer computes the soft-constraint quality score of a full or
// partial rota. The absolute value has no external meaning; the allocator
// only compares scores between candidates.
package scorer

import (
	"fmt"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// Weights configures the soft terms. Each weight is a non-negative real;
// zero disables that term. Weights travel with the invocation, never as
// ambient globals, so concurrent runs with different weightings cannot
// interfere.
type Weights struct {
	IdealCoverage     float64 `yaml:"idealCoverage" validate:"gte=0"`
	Fairness          float64 `yaml:"fairness" validate:"gte=0"`
	Preference        float64 `yaml:"preference" validate:"gte=0"`
	DefaultDispensary float64 `yaml:"defaultDispensary" validate:"gte=0"`
}

// DefaultWeights returns a balanced weighting that works for the standard
// hospital week.
func DefaultWeights() Weights {
	return Weights{
		IdealCoverage:     10,
		Fairness:          2,
		Preference:        3,
		DefaultDispensary: 4,
	}
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	for _, entry := range []struct {
		name  string
		value float64
	}{
		{"idealCoverage", w.IdealCoverage},
		{"fairness", w.Fairness},
		{"preference", w.Preference},
		{"defaultDispensary", w.DefaultDispensary},
	} {
		if entry.value < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", entry.name, entry.value)
		}
	}
	return nil
}

// Scorer evaluates assignment sets against an immutable snapshot of the
// week's pharmacists and slots.
type Scorer struct {
	weights     Weights
	pharmacists []rota.Pharmacist
	slotList    []rota.ShiftSlot
	byID        map[string]rota.Pharmacist
	slots       map[string]rota.ShiftSlot
}

// New builds a scorer over the generation snapshot. Terms iterate the slices
// in the order given, never maps, so floating-point sums are reproducible.
func New(weights Weights, pharmacists []rota.Pharmacist, slots []rota.ShiftSlot) *Scorer {
	s := &Scorer{
		weights:     weights,
		pharmacists: pharmacists,
		slotList:    slots,
		byID:        make(map[string]rota.Pharmacist, len(pharmacists)),
		slots:       make(map[string]rota.ShiftSlot, len(slots)),
	}
	for _, p := range pharmacists {
		s.byID[p.ID] = p
	}
	for _, slot := range slots {
		s.slots[slot.ID] = slot
	}
	return s
}

// Score sums the weighted soft terms over the given assignments. Higher is
// better; the value is monotonically increasing with rota quality.
func (s *Scorer) Score(assignments []rota.Assignment) float64 {
	return s.weights.IdealCoverage*s.coverageTerm(assignments) +
		s.weights.Fairness*s.fairnessTerm(assignments) +
		s.weights.Preference*s.preferenceTerm(assignments) +
		s.weights.DefaultDispensary*s.defaultDispensaryTerm(assignments)
}

// MarginalGain returns how much committing the candidate would move the
// total score.
func (s *Scorer) MarginalGain(current []rota.Assignment, candidate rota.Assignment) float64 {
	with := make([]rota.Assignment, 0, len(current)+1)
	with = append(with, current...)
	with = append(with, candidate)
	return s.Score(with) - s.Score(current)
}

// coverageTerm rewards each slot in proportion to min(assigned, ideal)/ideal.
// Staffing past ideal earns nothing extra.
func (s *Scorer) coverageTerm(assignments []rota.Assignment) float64 {
	counts := make(map[string]int, len(s.slots))
	for _, a := range assignments {
		counts[a.SlotID]++
	}

	total := 0.0
	for _, slot := range s.slotList {
		if slot.Requirement.Ideal == 0 {
			continue
		}
		assigned := counts[slot.ID]
		if assigned > slot.Requirement.Ideal {
			assigned = slot.Requirement.Ideal
		}
		total += float64(assigned) / float64(slot.Requirement.Ideal)
	}
	return total
}

// fairnessTerm returns the negated variance of assigned shift-hours across
// all pharmacists in the snapshot. An even spread scores 0, the best
// possible; systematic overload of a subset scores below it.
func (s *Scorer) fairnessTerm(assignments []rota.Assignment) float64 {
	if len(s.pharmacists) == 0 {
		return 0
	}

	hours := make(map[string]float64, len(s.pharmacists))
	for _, a := range assignments {
		if slot, ok := s.slots[a.SlotID]; ok {
			hours[a.PharmacistID] += slot.Window.Hours()
		}
	}

	mean := 0.0
	for _, p := range s.pharmacists {
		mean += hours[p.ID]
	}
	mean /= float64(len(s.pharmacists))

	variance := 0.0
	for _, p := range s.pharmacists {
		d := hours[p.ID] - mean
		variance += d * d
	}
	variance /= float64(len(s.pharmacists))

	return -variance
}

// preferenceTerm rewards ward assignments that match where the pharmacist
// wants to be: full credit on their primary directorate, partial credit on a
// ranked preference, nothing off-preference.
func (s *Scorer) preferenceTerm(assignments []rota.Assignment) float64 {
	total := 0.0
	for _, a := range assignments {
		slot, ok := s.slots[a.SlotID]
		if !ok || slot.Location.Kind != rota.LocationWard {
			continue
		}
		pharmacist, ok := s.byID[a.PharmacistID]
		if !ok {
			continue
		}

		switch {
		case pharmacist.PrimaryDirectorate == slot.Location.Ward:
			total += 1.0
		default:
			if rank := pharmacist.PreferenceRank(slot.Location.Ward); rank > 0 {
				// Rank 1 earns 0.5, rank 5 earns 0.1.
				total += float64(6-rank) / 10.0
			}
		}
	}
	return total
}

// defaultDispensaryTerm rewards dispensary windows absorbed by pharmacists
// flagged as default-dispensary, keeping ward-committed staff on their wards.
func (s *Scorer) defaultDispensaryTerm(assignments []rota.Assignment) float64 {
	total := 0.0
	for _, a := range assignments {
		slot, ok := s.slots[a.SlotID]
		if !ok || slot.Location.Kind != rota.LocationDispensary {
			continue
		}
		if p, ok := s.byID[a.PharmacistID]; ok && p.DefaultDispensary {
			total += 1.0
		}
	}
	return total
}
