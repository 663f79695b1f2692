package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// PreferenceConfig is one ranked ward preference on a roster entry.
type PreferenceConfig struct {
	Ward string `yaml:"ward" validate:"required"`
	Rank int    `yaml:"rank" validate:"gte=1,lte=5"`
}

// RosterEntry is one pharmacist as written in a roster file.
type RosterEntry struct {
	ID                 string             `yaml:"id" validate:"required"`
	Name               string             `yaml:"name" validate:"required"`
	Email              string             `yaml:"email,omitempty"`
	Band               string             `yaml:"band" validate:"required"`
	PrimaryDirectorate string             `yaml:"primaryDirectorate" validate:"required"`
	ITUTrained         bool               `yaml:"ituTrained,omitempty"`
	WarfarinTrained    bool               `yaml:"warfarinTrained,omitempty"`
	DefaultDispensary  bool               `yaml:"defaultDispensary,omitempty"`
	DaysUnavailable    []string           `yaml:"daysUnavailable,omitempty"`
	Preferences        []PreferenceConfig `yaml:"preferences,omitempty" validate:"dive"`
	LockedSlots        []string           `yaml:"lockedSlots,omitempty"`
}

// Roster is the full staff list for one generation run.
type Roster struct {
	Pharmacists []RosterEntry `yaml:"pharmacists" validate:"required,min=1,dive"`
}

// LoadRoster reads a roster file and converts it into engine pharmacist
// records.
func LoadRoster(path string) ([]rota.Pharmacist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	if err := validate.Struct(&roster); err != nil {
		return nil, fmt.Errorf("roster validation failed: %w", err)
	}

	pharmacists := make([]rota.Pharmacist, 0, len(roster.Pharmacists))
	for i, entry := range roster.Pharmacists {
		p, err := entry.toPharmacist()
		if err != nil {
			return nil, fmt.Errorf("invalid pharmacists[%d] (%s): %w", i, entry.Name, err)
		}
		pharmacists = append(pharmacists, p)
	}

	return pharmacists, nil
}

func (e RosterEntry) toPharmacist() (rota.Pharmacist, error) {
	band, err := rota.ParseBand(e.Band)
	if err != nil {
		return rota.Pharmacist{}, err
	}
	directorate, err := rota.ParseWard(e.PrimaryDirectorate)
	if err != nil {
		return rota.Pharmacist{}, err
	}

	var qualifications []rota.Qualification
	if e.ITUTrained {
		qualifications = append(qualifications, rota.ITUTrained)
	}
	if e.WarfarinTrained {
		qualifications = append(qualifications, rota.WarfarinTrained)
	}

	var unavailable []rota.Day
	for _, name := range e.DaysUnavailable {
		day, err := rota.ParseDay(name)
		if err != nil {
			return rota.Pharmacist{}, err
		}
		unavailable = append(unavailable, day)
	}

	var preferences []rota.WardPreference
	for _, pref := range e.Preferences {
		ward, err := rota.ParseWard(pref.Ward)
		if err != nil {
			return rota.Pharmacist{}, err
		}
		preferences = append(preferences, rota.WardPreference{Ward: ward, Rank: pref.Rank})
	}

	return rota.Pharmacist{
		ID:                 e.ID,
		Name:               e.Name,
		Email:              e.Email,
		Band:               band,
		PrimaryDirectorate: directorate,
		Qualifications:     qualifications,
		DefaultDispensary:  e.DefaultDispensary,
		DaysUnavailable:    unavailable,
		Preferences:        preferences,
		LockedSlotIDs:      e.LockedSlots,
	}, nil
}
