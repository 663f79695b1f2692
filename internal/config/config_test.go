package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rota_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
weights:
  idealCoverage: 10
  fairness: 2
  preference: 3
  defaultDispensary: 4
dispensaryWindows:
  - start: "09:00"
    end: "11:00"
  - start: "11:00"
    end: "13:00"
lunchCover:
  start: "12:30"
  end: "13:15"
wards:
  - ward: Medicine
    day: Monday
    min: 2
    ideal: 4
clinics:
  - code: PHAR2PSP
    rrule: FREQ=WEEKLY;BYDAY=TU
    start: "13:00"
    end: "15:00"
    travelMinutes: 30
    qualification: Warfarin-trained
    min: 1
    ideal: 1
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.Weights.IdealCoverage)
	assert.Len(t, cfg.DispensaryWindows, 2)
	require.NotNil(t, cfg.LunchCover)
	assert.Equal(t, "12:30", cfg.LunchCover.Start)
	assert.Len(t, cfg.Wards, 1)
	assert.Len(t, cfg.Clinics, 1)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate_RejectsBadInput(t *testing.T) {
	base := func() *Config {
		return &Config{
			DispensaryWindows: []WindowConfig{{Start: "09:00", End: "11:00"}},
		}
	}

	t.Run("no dispensary windows", func(t *testing.T) {
		cfg := base()
		cfg.DispensaryWindows = nil
		assert.Error(t, Validate(cfg))
	})

	t.Run("inverted window", func(t *testing.T) {
		cfg := base()
		cfg.DispensaryWindows = []WindowConfig{{Start: "11:00", End: "09:00"}}
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inverted window")
	})

	t.Run("bad clock time", func(t *testing.T) {
		cfg := base()
		cfg.LunchCover = &WindowConfig{Start: "noon", End: "13:00"}
		assert.Error(t, Validate(cfg))
	})

	t.Run("negative weight", func(t *testing.T) {
		cfg := base()
		cfg.Weights.Fairness = -1
		assert.Error(t, Validate(cfg))
	})

	t.Run("unknown ward", func(t *testing.T) {
		cfg := base()
		cfg.Wards = []WardRequirementConfig{{Ward: "Oncology", Day: "Monday", Min: 1, Ideal: 1}}
		assert.Error(t, Validate(cfg))
	})

	t.Run("ward ideal below min", func(t *testing.T) {
		cfg := base()
		cfg.Wards = []WardRequirementConfig{{Ward: "Medicine", Day: "Monday", Min: 3, Ideal: 1}}
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ideal 1 below minimum 3")
	})

	t.Run("bad rrule", func(t *testing.T) {
		cfg := base()
		cfg.Clinics = []ClinicConfig{{Code: "X", RRule: "not-a-rule", Start: "09:00", End: "10:00"}}
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid rrule")
	})
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestDefault_BuildSlots(t *testing.T) {
	slots, err := Default().BuildSlots()
	require.NoError(t, err)

	// 4 dispensary windows + lunch cover across 5 days, 5 ward rows per day,
	// 6 weekly clinics.
	assert.Len(t, slots, 20+5+25+6)

	byID := make(map[string]rota.ShiftSlot, len(slots))
	for _, s := range slots {
		byID[s.ID] = s
	}

	// The warfarin clinic lands on Tuesday with its travel buffer.
	clinic, ok := byID["Tuesday-clinic-PHAR2PSP"]
	require.True(t, ok)
	assert.Equal(t, rota.LocationClinic, clinic.Location.Kind)
	assert.Equal(t, 30, clinic.TravelBufferMinutes)
	assert.Equal(t, rota.WarfarinTrained, clinic.Requirement.Qualification)
	assert.Equal(t, 1, clinic.Requirement.Min)

	// ITU ward slots require the training even though the config row
	// does not spell it out.
	itu, ok := byID["Monday-ward-ITU"]
	require.True(t, ok)
	assert.Equal(t, rota.ITUTrained, itu.Requirement.Qualification)
	assert.Equal(t, 0, itu.Requirement.Min)

	// Medicine drops its minimum midweek.
	assert.Equal(t, 4, byID["Monday-ward-Medicine"].Requirement.Min)
	assert.Equal(t, 3, byID["Wednesday-ward-Medicine"].Requirement.Min)
	assert.Equal(t, 3, byID["Thursday-ward-Medicine"].Requirement.Min)

	// Lunch cover is a fifth dispensary window.
	lunch, ok := byID["Friday-dispensary-lunch"]
	require.True(t, ok)
	assert.Equal(t, rota.LocationDispensary, lunch.Location.Kind)
	assert.Equal(t, 0.75, lunch.Window.Hours())

	// Every slot passes its own validation.
	for _, s := range slots {
		assert.NoError(t, s.Validate(), s.ID)
	}
}

func TestBuildSlots_RejectsWeekendClinic(t *testing.T) {
	cfg := &Config{
		DispensaryWindows: []WindowConfig{{Start: "09:00", End: "11:00"}},
		Clinics: []ClinicConfig{
			{Code: "SAT1", RRule: "FREQ=WEEKLY;BYDAY=SA", Start: "09:00", End: "12:00", Ideal: 1},
		},
	}

	_, err := cfg.BuildSlots()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekend")
}

func TestBuildSlots_MultiDayClinic(t *testing.T) {
	cfg := &Config{
		DispensaryWindows: []WindowConfig{{Start: "09:00", End: "11:00"}},
		Clinics: []ClinicConfig{
			{Code: "AC1", RRule: "FREQ=WEEKLY;BYDAY=MO,TH", Start: "09:00", End: "12:00", Ideal: 1},
		},
	}

	slots, err := cfg.BuildSlots()
	require.NoError(t, err)

	var clinics []string
	for _, s := range slots {
		if s.Location.Kind == rota.LocationClinic {
			clinics = append(clinics, s.ID)
		}
	}
	assert.Equal(t, []string{"Monday-clinic-AC1", "Thursday-clinic-AC1"}, clinics)
}

func TestBuildSlots_StableOrder(t *testing.T) {
	first, err := Default().BuildSlots()
	require.NoError(t, err)
	second, err := Default().BuildSlots()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
