package rota

import (
	"fmt"
	"strings"
)

// ParseDay converts a day name (as stored in config files and the database)
// back to its Day value.
func ParseDay(s string) (Day, error) {
	for _, d := range Weekdays {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// ParseWard converts a ward label back to its Ward value. Both the display
// name ("Care of the Elderly") and a compact alias ("CareOfElderly") are
// accepted.
func ParseWard(s string) (Ward, error) {
	for _, w := range Wards {
		if strings.EqualFold(s, w.String()) {
			return w, nil
		}
	}
	if strings.EqualFold(s, "CareOfElderly") {
		return CareOfElderly, nil
	}
	return 0, fmt.Errorf("unknown ward %q", s)
}

// ParseBand converts a band label ("Band 7" or "7") to its Band value.
func ParseBand(s string) (Band, error) {
	switch strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Band")) {
	case "6":
		return Band6, nil
	case "7":
		return Band7, nil
	case "8":
		return Band8, nil
	}
	return 0, fmt.Errorf("unknown band %q", s)
}

// ParseQualification converts a qualification label to its value. The empty
// string means no qualification constraint.
func ParseQualification(s string) (Qualification, error) {
	switch {
	case s == "" || strings.EqualFold(s, "none"):
		return QualificationNone, nil
	case strings.EqualFold(s, ITUTrained.String()) || strings.EqualFold(s, "ITU"):
		return ITUTrained, nil
	case strings.EqualFold(s, WarfarinTrained.String()) || strings.EqualFold(s, "Warfarin"):
		return WarfarinTrained, nil
	}
	return 0, fmt.Errorf("unknown qualification %q", s)
}

// ParseClock converts "HH:MM" to minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("bad clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad clock time %q: out of range", s)
	}
	return h*60 + m, nil
}
