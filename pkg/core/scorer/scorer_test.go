package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

func scorerPharmacists() []rota.Pharmacist {
	return []rota.Pharmacist{
		{
			ID:                 "p1",
			Band:               rota.Band7,
			PrimaryDirectorate: rota.Medicine,
			Preferences:        []rota.WardPreference{{Ward: rota.Surgery, Rank: 1}},
		},
		{
			ID:                 "p2",
			Band:               rota.Band6,
			PrimaryDirectorate: rota.Surgery,
			DefaultDispensary:  true,
			Preferences:        []rota.WardPreference{{Ward: rota.Medicine, Rank: 5}},
		},
	}
}

func scorerSlots() []rota.ShiftSlot {
	return []rota.ShiftSlot{
		{
			ID:          "Monday-ward-Medicine",
			Day:         rota.Monday,
			Window:      rota.TimeWindow{Start: 9 * 60, End: 17 * 60},
			Location:    rota.Location{Kind: rota.LocationWard, Ward: rota.Medicine},
			Requirement: rota.Requirement{Min: 1, Ideal: 2},
		},
		{
			ID:          "Monday-dispensary-1",
			Day:         rota.Monday,
			Window:      rota.TimeWindow{Start: 9 * 60, End: 11 * 60},
			Location:    rota.Location{Kind: rota.LocationDispensary, Window: 1},
			Requirement: rota.Requirement{Min: 1, Ideal: 1},
		},
	}
}

// only enables a single term so each can be asserted in isolation.
func only(w Weights) *Scorer {
	return New(w, scorerPharmacists(), scorerSlots())
}

func assign(pharmacistID, slotID string) rota.Assignment {
	return rota.Assignment{ID: pharmacistID + "/" + slotID, PharmacistID: pharmacistID, SlotID: slotID}
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := DefaultWeights()
	bad.Fairness = -1
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fairness")
}

func TestScorer_CoverageTerm(t *testing.T) {
	s := only(Weights{IdealCoverage: 1})

	assert.Equal(t, 0.0, s.Score(nil))

	// Half of the ward's ideal of 2.
	half := []rota.Assignment{assign("p1", "Monday-ward-Medicine")}
	assert.InDelta(t, 0.5, s.Score(half), 1e-9)

	// Full coverage of both slots.
	full := append(half,
		assign("p2", "Monday-ward-Medicine"),
		assign("p2", "Monday-dispensary-1"),
	)
	assert.InDelta(t, 2.0, s.Score(full), 1e-9)
}

func TestScorer_CoverageCapsAtIdeal(t *testing.T) {
	s := only(Weights{IdealCoverage: 1})

	atIdeal := []rota.Assignment{assign("p2", "Monday-dispensary-1")}
	past := append(atIdeal, assign("p1", "Monday-dispensary-1"))

	assert.Equal(t, s.Score(atIdeal), s.Score(past))
}

func TestScorer_FairnessTerm(t *testing.T) {
	s := only(Weights{Fairness: 1})

	// Empty rota has zero variance.
	assert.Equal(t, 0.0, s.Score(nil))

	// p1 works 8h, p2 nothing: mean 4, variance 16, term -16.
	uneven := []rota.Assignment{assign("p1", "Monday-ward-Medicine")}
	assert.InDelta(t, -16.0, s.Score(uneven), 1e-9)

	// Spreading the same work reduces the penalty.
	spread := []rota.Assignment{
		assign("p1", "Monday-ward-Medicine"),
		assign("p2", "Monday-ward-Medicine"),
	}
	assert.Greater(t, s.Score(spread), s.Score(uneven))
}

func TestScorer_PreferenceTerm(t *testing.T) {
	s := only(Weights{Preference: 1})

	// p1's primary directorate earns full credit.
	primary := []rota.Assignment{assign("p1", "Monday-ward-Medicine")}
	assert.InDelta(t, 1.0, s.Score(primary), 1e-9)

	// p2 ranks Medicine 5th: (6-5)/10 = 0.1.
	ranked := []rota.Assignment{assign("p2", "Monday-ward-Medicine")}
	assert.InDelta(t, 0.1, s.Score(ranked), 1e-9)

	// Dispensary work earns no preference credit.
	dispensary := []rota.Assignment{assign("p1", "Monday-dispensary-1")}
	assert.Equal(t, 0.0, s.Score(dispensary))
}

func TestScorer_DefaultDispensaryTerm(t *testing.T) {
	s := only(Weights{DefaultDispensary: 1})

	// p2 is flagged default-dispensary, p1 is not.
	assert.InDelta(t, 1.0, s.Score([]rota.Assignment{assign("p2", "Monday-dispensary-1")}), 1e-9)
	assert.Equal(t, 0.0, s.Score([]rota.Assignment{assign("p1", "Monday-dispensary-1")}))

	// Ward work never triggers the term.
	assert.Equal(t, 0.0, s.Score([]rota.Assignment{assign("p2", "Monday-ward-Medicine")}))
}

func TestScorer_ZeroWeightDisablesTerm(t *testing.T) {
	s := only(Weights{IdealCoverage: 1, Preference: 0})

	primary := []rota.Assignment{assign("p1", "Monday-ward-Medicine")}
	// Only the coverage half-credit remains.
	assert.InDelta(t, 0.5, s.Score(primary), 1e-9)
}

func TestScorer_WeightsScaleTerms(t *testing.T) {
	single := only(Weights{Preference: 1})
	tripled := only(Weights{Preference: 3})

	primary := []rota.Assignment{assign("p1", "Monday-ward-Medicine")}
	assert.InDelta(t, 3*single.Score(primary), tripled.Score(primary), 1e-9)
}

func TestScorer_MarginalGain(t *testing.T) {
	s := only(Weights{IdealCoverage: 10})

	current := []rota.Assignment{assign("p1", "Monday-ward-Medicine")}
	candidate := assign("p2", "Monday-ward-Medicine")

	gain := s.MarginalGain(current, candidate)
	assert.InDelta(t, s.Score(append(current, candidate))-s.Score(current), gain, 1e-9)
	assert.InDelta(t, 5.0, gain, 1e-9)

	// MarginalGain leaves the current set untouched.
	assert.Len(t, current, 1)
}

func TestScorer_DeterministicAcrossOrderings(t *testing.T) {
	s := New(DefaultWeights(), scorerPharmacists(), scorerSlots())

	a := []rota.Assignment{
		assign("p1", "Monday-ward-Medicine"),
		assign("p2", "Monday-dispensary-1"),
	}
	b := []rota.Assignment{
		assign("p2", "Monday-dispensary-1"),
		assign("p1", "Monday-ward-Medicine"),
	}

	assert.Equal(t, s.Score(a), s.Score(b))
}
