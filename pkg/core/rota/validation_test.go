package rota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSlot() ShiftSlot {
	return ShiftSlot{
		ID:          "Monday-ward-Medicine",
		Day:         Monday,
		Window:      TimeWindow{Start: 9 * 60, End: 17 * 60},
		Location:    Location{Kind: LocationWard, Ward: Medicine},
		Requirement: Requirement{Min: 1, Ideal: 2},
	}
}

func validPharmacist(id string) Pharmacist {
	return Pharmacist{
		ID:                 id,
		Name:               "Test Pharmacist",
		Band:               Band7,
		PrimaryDirectorate: Medicine,
	}
}

func TestShiftSlot_Validate_Valid(t *testing.T) {
	assert.NoError(t, validSlot().Validate())
}

func TestShiftSlot_Validate_CollectsEveryViolation(t *testing.T) {
	slot := validSlot()
	slot.Window = TimeWindow{Start: 11 * 60, End: 11 * 60} // empty
	slot.Requirement = Requirement{Min: 3, Ideal: 1}       // inverted

	err := slot.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Both violations reported, not just the first.
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "window", verr.Fields[0].Field)
	assert.Equal(t, "requirement.ideal", verr.Fields[1].Field)
}

func TestPharmacist_Validate_CollectsEveryViolation(t *testing.T) {
	p := Pharmacist{
		Band:               Band(3),
		PrimaryDirectorate: Ward(99),
		Preferences:        []WardPreference{{Ward: Surgery, Rank: 9}},
	}

	err := p.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = f.Field
	}
	assert.Equal(t, []string{"id", "band", "primaryDirectorate", "preferences[0].rank"}, fields)
}

func TestValidateInputs_Valid(t *testing.T) {
	err := ValidateInputs(
		[]Pharmacist{validPharmacist("p1"), validPharmacist("p2")},
		[]ShiftSlot{validSlot()},
	)
	assert.NoError(t, err)
}

func TestValidateInputs_DuplicateIDs(t *testing.T) {
	err := ValidateInputs(
		[]Pharmacist{validPharmacist("p1"), validPharmacist("p1")},
		[]ShiftSlot{validSlot(), validSlot()},
	)
	require.Error(t, err)

	assert.Contains(t, err.Error(), `duplicate slot id "Monday-ward-Medicine"`)
	assert.Contains(t, err.Error(), `duplicate pharmacist id "p1"`)
}

func TestValidateInputs_LockedSlotMustExist(t *testing.T) {
	p := validPharmacist("p1")
	p.LockedSlotIDs = []string{"no-such-slot"}

	err := ValidateInputs([]Pharmacist{p}, []ShiftSlot{validSlot()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown slot "no-such-slot"`)
}
