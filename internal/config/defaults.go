package config

import (
	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
	"github.com/emclarke/pharmacy-rota/pkg/core/scorer"
)

// Default returns the standard hospital week: four two-hour dispensary
// windows plus lunch cover each weekday, the usual ward staffing table, and
// the six recurring clinics.
func Default() *Config {
	cfg := &Config{
		Weights: scorer.DefaultWeights(),
		DispensaryWindows: []WindowConfig{
			{Start: "09:00", End: "11:00"},
			{Start: "11:00", End: "13:00"},
			{Start: "13:00", End: "15:00"},
			{Start: "15:00", End: "17:00"},
		},
		LunchCover: &WindowConfig{Start: "12:30", End: "13:15"},
		Clinics: []ClinicConfig{
			// The Tuesday warfarin clinic is the one clinic that must run.
			{Code: "PHAR2PSP", RRule: "FREQ=WEEKLY;BYDAY=TU", Start: "13:00", End: "15:00", TravelMinutes: 30, Qualification: "Warfarin-trained", Min: 1, Ideal: 1},
			{Code: "PHARM1A", RRule: "FREQ=WEEKLY;BYDAY=MO", Start: "09:00", End: "13:00", TravelMinutes: 30, Qualification: "Warfarin-trained", Min: 0, Ideal: 1},
			{Code: "PHAR2PGC", RRule: "FREQ=WEEKLY;BYDAY=TU", Start: "13:00", End: "15:00", TravelMinutes: 30, Qualification: "Warfarin-trained", Min: 0, Ideal: 1},
			{Code: "PHARM3A", RRule: "FREQ=WEEKLY;BYDAY=WE", Start: "09:00", End: "13:30", TravelMinutes: 30, Qualification: "Warfarin-trained", Min: 0, Ideal: 1},
			{Code: "PHARM4A", RRule: "FREQ=WEEKLY;BYDAY=TH", Start: "09:00", End: "12:00", TravelMinutes: 30, Qualification: "Warfarin-trained", Min: 0, Ideal: 1},
			{Code: "PHAR5AFC", RRule: "FREQ=WEEKLY;BYDAY=FR", Start: "09:00", End: "13:00", TravelMinutes: 30, Qualification: "Warfarin-trained", Min: 0, Ideal: 1},
		},
	}

	// Ward staffing table. ITU runs on trained staff when available; its
	// minimum stays 0 so a week without ITU-trained cover is still feasible.
	type row struct {
		ward       rota.Ward
		min, ideal int
	}
	standard := []row{
		{rota.EAU, 1, 2},
		{rota.Surgery, 1, 2},
		{rota.ITU, 0, 1},
		{rota.CareOfElderly, 1, 2},
		{rota.Medicine, 4, 6},
	}
	for _, day := range rota.Weekdays {
		for _, r := range standard {
			min, ideal := r.min, r.ideal
			// Medicine drops to 3 midweek.
			if r.ward == rota.Medicine && (day == rota.Wednesday || day == rota.Thursday) {
				min = 3
			}
			cfg.Wards = append(cfg.Wards, WardRequirementConfig{
				Ward:  r.ward.String(),
				Day:   day.String(),
				Min:   min,
				Ideal: ideal,
			})
		}
	}

	return cfg
}
