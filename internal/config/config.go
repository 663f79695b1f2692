// Package config loads the week's structure - dispensary windows, ward
// requirements, clinics - and the scoring weights from a YAML file, and
// expands it into the shift slots the engine consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
	"github.com/emclarke/pharmacy-rota/pkg/core/scorer"
)

// WindowConfig is a clock-time span, e.g. start "09:00" end "11:00".
type WindowConfig struct {
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

// WardRequirementConfig is one row of the ward staffing table.
type WardRequirementConfig struct {
	Ward  string `yaml:"ward" validate:"required"`
	Day   string `yaml:"day" validate:"required"`
	Min   int    `yaml:"min" validate:"gte=0"`
	Ideal int    `yaml:"ideal" validate:"gte=0"`
}

// ClinicConfig describes a recurring clinic. The recurrence rule picks the
// weekday(s), e.g. "FREQ=WEEKLY;BYDAY=TU" for every Tuesday.
type ClinicConfig struct {
	Code          string `yaml:"code" validate:"required"`
	RRule         string `yaml:"rrule" validate:"required"`
	Start         string `yaml:"start" validate:"required"`
	End           string `yaml:"end" validate:"required"`
	TravelMinutes int    `yaml:"travelMinutes,omitempty" validate:"gte=0"`
	Qualification string `yaml:"qualification,omitempty"`
	Min           int    `yaml:"min" validate:"gte=0"`
	Ideal         int    `yaml:"ideal" validate:"gte=0"`
}

// Config is the full week template plus scoring weights. It is passed
// explicitly into each generation run; there are no ambient settings.
type Config struct {
	Weights           scorer.Weights          `yaml:"weights"`
	DispensaryWindows []WindowConfig          `yaml:"dispensaryWindows" validate:"required,min=1,dive"`
	LunchCover        *WindowConfig           `yaml:"lunchCover,omitempty"`
	Wards             []WardRequirementConfig `yaml:"wards" validate:"dive"`
	Clinics           []ClinicConfig          `yaml:"clinics,omitempty" validate:"dive"`

	// WardDay is the window ward slots span, defaulting to the working day.
	WardDay *WindowConfig `yaml:"wardDay,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads rota_config.yaml from the current directory or the user's home
// directory, whichever is found first.
func Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct validation plus the checks tags cannot express:
// rrule syntax, clock-time syntax, weight bounds and min<=ideal ordering.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := cfg.Weights.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, w := range cfg.DispensaryWindows {
		if err := checkWindow(w); err != nil {
			return fmt.Errorf("invalid dispensaryWindows[%d]: %w", i, err)
		}
	}
	if cfg.LunchCover != nil {
		if err := checkWindow(*cfg.LunchCover); err != nil {
			return fmt.Errorf("invalid lunchCover: %w", err)
		}
	}
	if cfg.WardDay != nil {
		if err := checkWindow(*cfg.WardDay); err != nil {
			return fmt.Errorf("invalid wardDay: %w", err)
		}
	}

	for i, row := range cfg.Wards {
		if _, err := rota.ParseWard(row.Ward); err != nil {
			return fmt.Errorf("invalid wards[%d]: %w", i, err)
		}
		if _, err := rota.ParseDay(row.Day); err != nil {
			return fmt.Errorf("invalid wards[%d]: %w", i, err)
		}
		if row.Ideal < row.Min {
			return fmt.Errorf("invalid wards[%d]: ideal %d below minimum %d", i, row.Ideal, row.Min)
		}
	}

	for i, clinic := range cfg.Clinics {
		if _, err := rrule.StrToRRule(clinic.RRule); err != nil {
			return fmt.Errorf("invalid rrule in clinics[%d]: %w", i, err)
		}
		if err := checkWindow(WindowConfig{Start: clinic.Start, End: clinic.End}); err != nil {
			return fmt.Errorf("invalid clinics[%d]: %w", i, err)
		}
		if _, err := rota.ParseQualification(clinic.Qualification); err != nil {
			return fmt.Errorf("invalid clinics[%d]: %w", i, err)
		}
		if clinic.Ideal < clinic.Min {
			return fmt.Errorf("invalid clinics[%d]: ideal %d below minimum %d", i, clinic.Ideal, clinic.Min)
		}
	}

	return nil
}

func checkWindow(w WindowConfig) error {
	start, err := rota.ParseClock(w.Start)
	if err != nil {
		return err
	}
	end, err := rota.ParseClock(w.End)
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("empty or inverted window %s-%s", w.Start, w.End)
	}
	return nil
}

// findConfigFile searches for rota_config.yaml in the current directory and
// then the home directory.
func findConfigFile() (string, error) {
	const configFileName = "rota_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

// BuildSlots expands the week template into concrete shift slots: the fixed
// dispensary windows each weekday, one ward slot per requirement row, lunch
// cover, and clinics on the weekdays their recurrence rules name. Slot IDs
// are stable across runs so locked assignments can reference them.
func (cfg *Config) BuildSlots() ([]rota.ShiftSlot, error) {
	var slots []rota.ShiftSlot

	for _, day := range rota.Weekdays {
		for i, w := range cfg.DispensaryWindows {
			window, err := parseWindow(w)
			if err != nil {
				return nil, fmt.Errorf("dispensary window %d: %w", i+1, err)
			}
			slots = append(slots, rota.ShiftSlot{
				ID:       fmt.Sprintf("%s-dispensary-%d", day, i+1),
				Day:      day,
				Window:   window,
				Location: rota.Location{Kind: rota.LocationDispensary, Window: i + 1},
				Requirement: rota.Requirement{
					Min:   1,
					Ideal: 1,
				},
			})
		}

		if cfg.LunchCover != nil {
			window, err := parseWindow(*cfg.LunchCover)
			if err != nil {
				return nil, fmt.Errorf("lunch cover window: %w", err)
			}
			slots = append(slots, rota.ShiftSlot{
				ID:       fmt.Sprintf("%s-dispensary-lunch", day),
				Day:      day,
				Window:   window,
				Location: rota.Location{Kind: rota.LocationDispensary, Window: len(cfg.DispensaryWindows) + 1},
				Requirement: rota.Requirement{
					Min:   1,
					Ideal: 1,
				},
			})
		}
	}

	wardDay := WindowConfig{Start: "09:00", End: "17:00"}
	if cfg.WardDay != nil {
		wardDay = *cfg.WardDay
	}
	wardWindow, err := parseWindow(wardDay)
	if err != nil {
		return nil, fmt.Errorf("ward day window: %w", err)
	}

	for _, row := range cfg.Wards {
		ward, err := rota.ParseWard(row.Ward)
		if err != nil {
			return nil, err
		}
		day, err := rota.ParseDay(row.Day)
		if err != nil {
			return nil, err
		}
		req := rota.Requirement{Min: row.Min, Ideal: row.Ideal}
		if ward == rota.ITU {
			req.Qualification = rota.ITUTrained
		}
		slots = append(slots, rota.ShiftSlot{
			ID:          fmt.Sprintf("%s-ward-%s", day, row.Ward),
			Day:         day,
			Window:      wardWindow,
			Location:    rota.Location{Kind: rota.LocationWard, Ward: ward},
			Requirement: req,
		})
	}

	for _, clinic := range cfg.Clinics {
		days, err := clinicDays(clinic.RRule)
		if err != nil {
			return nil, fmt.Errorf("clinic %s: %w", clinic.Code, err)
		}
		window, err := parseWindow(WindowConfig{Start: clinic.Start, End: clinic.End})
		if err != nil {
			return nil, fmt.Errorf("clinic %s: %w", clinic.Code, err)
		}
		qualification, err := rota.ParseQualification(clinic.Qualification)
		if err != nil {
			return nil, fmt.Errorf("clinic %s: %w", clinic.Code, err)
		}

		for _, day := range days {
			slots = append(slots, rota.ShiftSlot{
				ID:       fmt.Sprintf("%s-clinic-%s", day, clinic.Code),
				Day:      day,
				Window:   window,
				Location: rota.Location{Kind: rota.LocationClinic, Clinic: clinic.Code},
				Requirement: rota.Requirement{
					Min:           clinic.Min,
					Ideal:         clinic.Ideal,
					Qualification: qualification,
				},
				TravelBufferMinutes: clinic.TravelMinutes,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

func parseWindow(w WindowConfig) (rota.TimeWindow, error) {
	start, err := rota.ParseClock(w.Start)
	if err != nil {
		return rota.TimeWindow{}, err
	}
	end, err := rota.ParseClock(w.End)
	if err != nil {
		return rota.TimeWindow{}, err
	}
	return rota.TimeWindow{Start: start, End: end}, nil
}

// clinicDays expands a weekly recurrence rule to the rota weekdays it names.
// Weekend days are rejected; the rota covers Monday to Friday.
func clinicDays(rule string) ([]rota.Day, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("bad rrule %q: %w", rule, err)
	}

	weekdays := r.OrigOptions.Byweekday
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("rrule %q names no weekday (expected BYDAY)", rule)
	}

	var days []rota.Day
	for _, wd := range weekdays {
		// rrule weekday ordinals run Monday=0 to Sunday=6.
		ord := wd.Day()
		if ord > int(rota.Friday) {
			return nil, fmt.Errorf("rrule %q names a weekend day", rule)
		}
		days = append(days, rota.Day(ord))
	}

	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days, nil
}
