package allocator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// UnmetMinimumViolation records a slot that could not reach its hard floor.
// Non-fatal: the run completes and the violation is reported here, never
// silently dropped.
type UnmetMinimumViolation struct {
	SlotID   string
	Day      rota.Day
	Location rota.Location
	Assigned int
	Required int
}

func (v UnmetMinimumViolation) String() string {
	return fmt.Sprintf("unmet minimum at %s %s (%s): assigned %d of %d",
		v.Day, v.Location, v.SlotID, v.Assigned, v.Required)
}

// Outcome is the final result of one allocation run: the rota, every
// coverage violation, and the final soft score.
type Outcome struct {
	Rota       *rota.WeeklyRota
	Violations []UnmetMinimumViolation
	Score      float64
}

// Feasible reports whether every slot met its minimum headcount.
func (o *Outcome) Feasible() bool {
	return len(o.Violations) == 0
}

// buildOutcome freezes the working assignments into the read-only aggregate
// and derives the violation report. The rota ID is a name-based UUID over
// the sorted assignment IDs, so identical snapshots yield identical rotas.
func (a *allocation) buildOutcome() *Outcome {
	assignments := make([]rota.Assignment, len(a.assignments))
	copy(assignments, a.assignments)
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].SlotID != assignments[j].SlotID {
			return assignments[i].SlotID < assignments[j].SlotID
		}
		return assignments[i].PharmacistID < assignments[j].PharmacistID
	})

	ids := make([]string, len(assignments))
	for i, assignment := range assignments {
		ids[i] = assignment.ID
	}
	rotaID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(ids, ","))).String()

	week := rota.NewWeeklyRota(rotaID, a.slots, assignments)

	violations := []UnmetMinimumViolation{}
	for _, c := range week.UnmetMinimums() {
		violations = append(violations, UnmetMinimumViolation{
			SlotID:   c.SlotID,
			Day:      c.Day,
			Location: c.Location,
			Assigned: c.Assigned,
			Required: c.Min,
		})
	}

	return &Outcome{
		Rota:       week,
		Violations: violations,
		Score:      a.scorer.Score(assignments),
	}
}
