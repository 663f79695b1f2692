package rota

import "fmt"

// Day is a working weekday. The rota covers Monday to Friday only.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the days of one rota cycle in order.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

func (d Day) String() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	default:
		return fmt.Sprintf("Day(%d)", int(d))
	}
}

// Valid reports whether the day falls inside the Monday-Friday cycle.
func (d Day) Valid() bool {
	return d >= Monday && d <= Friday
}

// Band is a pharmacist's seniority tier, ordered lowest to highest.
type Band int

const (
	Band6 Band = iota + 6
	Band7
	Band8
)

func (b Band) String() string {
	return fmt.Sprintf("Band %d", int(b))
}

// Valid reports whether the band is one of the recognised tiers.
func (b Band) Valid() bool {
	return b >= Band6 && b <= Band8
}

// Ward is a clinical area needing pharmacist coverage.
type Ward int

const (
	EAU Ward = iota
	Surgery
	ITU
	CareOfElderly
	Medicine
)

// Wards lists every ward in a fixed order.
var Wards = []Ward{EAU, Surgery, ITU, CareOfElderly, Medicine}

func (w Ward) String() string {
	switch w {
	case EAU:
		return "EAU"
	case Surgery:
		return "Surgery"
	case ITU:
		return "ITU"
	case CareOfElderly:
		return "Care of the Elderly"
	case Medicine:
		return "Medicine"
	default:
		return fmt.Sprintf("Ward(%d)", int(w))
	}
}

// Valid reports whether the ward is one of the recognised areas.
func (w Ward) Valid() bool {
	return w >= EAU && w <= Medicine
}

// Qualification is a training flag a slot may require.
type Qualification int

const (
	// QualificationNone marks a requirement with no training constraint.
	QualificationNone Qualification = iota
	ITUTrained
	WarfarinTrained
)

func (q Qualification) String() string {
	switch q {
	case QualificationNone:
		return "None"
	case ITUTrained:
		return "ITU-trained"
	case WarfarinTrained:
		return "Warfarin-trained"
	default:
		return fmt.Sprintf("Qualification(%d)", int(q))
	}
}

// TimeWindow is a span within a single day, in minutes from midnight.
type TimeWindow struct {
	Start int
	End   int
}

// Overlaps reports whether two windows share any time.
// Windows that merely touch (one ends as the other starts) do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start < other.End && other.Start < w.End
}

// Hours returns the window length in hours.
func (w TimeWindow) Hours() float64 {
	return float64(w.End-w.Start) / 60.0
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}

// LocationKind distinguishes the three coverage demands in the week.
type LocationKind int

const (
	LocationDispensary LocationKind = iota
	LocationWard
	LocationClinic
)

func (k LocationKind) String() string {
	switch k {
	case LocationDispensary:
		return "Dispensary"
	case LocationWard:
		return "Ward"
	case LocationClinic:
		return "Clinic"
	default:
		return fmt.Sprintf("LocationKind(%d)", int(k))
	}
}

// Location identifies where a shift slot's coverage is delivered.
// Exactly one of the kind-specific fields is meaningful:
// Window for dispensary slots, Ward for ward slots, Clinic for clinic slots.
type Location struct {
	Kind LocationKind

	// Window is the dispensary window ordinal (1-4, or 5 for lunch cover).
	Window int

	// Ward is the clinical area for ward slots.
	Ward Ward

	// Clinic is the clinic code for clinic slots, e.g. "PHAR2PSP".
	Clinic string
}

func (l Location) String() string {
	switch l.Kind {
	case LocationDispensary:
		return fmt.Sprintf("Dispensary %d", l.Window)
	case LocationWard:
		return l.Ward.String()
	case LocationClinic:
		return "Clinic " + l.Clinic
	default:
		return l.Kind.String()
	}
}

// Requirement is the staffing demand attached to a shift slot.
// Min is a hard floor, Ideal a soft target, and Qualification (when not
// QualificationNone) restricts the slot to trained pharmacists.
type Requirement struct {
	Min           int
	Ideal         int
	Qualification Qualification
}

// ShiftSlot is one unit of coverage demand: a day, a time window, a location
// and the requirement that must be met there.
type ShiftSlot struct {
	ID          string
	Day         Day
	Window      TimeWindow
	Location    Location
	Requirement Requirement

	// TravelBufferMinutes widens the slot's conflict window on both sides.
	// Used for clinics that need travel time before and after.
	TravelBufferMinutes int
}

// ConflictWindow returns the window used for overlap checks, widened by any
// travel buffer. Clinics block dispensary windows either side of their
// clinical hours.
func (s ShiftSlot) ConflictWindow() TimeWindow {
	return TimeWindow{
		Start: s.Window.Start - s.TravelBufferMinutes,
		End:   s.Window.End + s.TravelBufferMinutes,
	}
}

// WardPreference ranks a pharmacist's liking for a ward. Rank 1 is the
// strongest preference; ranks run 1-5.
type WardPreference struct {
	Ward Ward
	Rank int
}

// Pharmacist is one staff member as seen by the engine. The record is a
// read-only snapshot for the duration of a generation run.
type Pharmacist struct {
	ID    string
	Name  string
	Email string

	Band               Band
	PrimaryDirectorate Ward
	Qualifications     []Qualification

	// DefaultDispensary marks pharmacists who preferentially absorb
	// dispensary windows before ward-committed staff.
	DefaultDispensary bool

	// DaysUnavailable lists days this pharmacist cannot work (annual
	// leave, part-time patterns).
	DaysUnavailable []Day

	// Preferences are optional ranked ward preferences.
	Preferences []WardPreference

	// LockedSlotIDs are pre-committed slots the allocator must preserve.
	LockedSlotIDs []string
}

// HasQualification reports whether the pharmacist holds the qualification.
// QualificationNone is held by everyone.
func (p Pharmacist) HasQualification(q Qualification) bool {
	if q == QualificationNone {
		return true
	}
	for _, held := range p.Qualifications {
		if held == q {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the pharmacist can work the given day.
func (p Pharmacist) IsAvailable(day Day) bool {
	for _, d := range p.DaysUnavailable {
		if d == day {
			return false
		}
	}
	return true
}

// CanCoverDispensary reports whether the pharmacist's band allows dispensary
// work. Band 8 staff do not take dispensary windows.
func (p Pharmacist) CanCoverDispensary() bool {
	return p.Band == Band6 || p.Band == Band7
}

// PreferenceRank returns the pharmacist's rank for a ward, or 0 if the ward
// is not among their preferences.
func (p Pharmacist) PreferenceRank(w Ward) int {
	for _, pref := range p.Preferences {
		if pref.Ward == w {
			return pref.Rank
		}
	}
	return 0
}

// Assignment commits one pharmacist to one shift slot for the week.
type Assignment struct {
	ID           string
	PharmacistID string
	SlotID       string

	// Locked marks a pre-committed assignment the allocator must never
	// alter or remove.
	Locked bool

	// Backfill marks an explicitly sanctioned second dispensary window on
	// the same day. A flagged exception, not a violation.
	Backfill bool
}
