package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/emclarke/pharmacy-rota/pkg/core/allocator"
	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// printRota writes the generated week as day-by-day tables plus the
// coverage summary. This is the CLI's rendering of the tabular structure the
// aggregate exposes; richer renderers live outside this tool.
func printRota(w io.Writer, outcome *allocator.Outcome, pharmacists []rota.Pharmacist) {
	names := make(map[string]string, len(pharmacists))
	for _, p := range pharmacists {
		names[p.ID] = p.Name
	}
	displayName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	for _, day := range rota.Weekdays {
		entries := outcome.Rota.DayEntries(day)
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s\n", day)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tLOCATION\tPHARMACIST\tFLAGS")
		for _, entry := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				entry.Window, entry.Location, displayName(entry.PharmacistID), entryFlags(entry))
		}
		tw.Flush()
	}

	fmt.Fprintf(w, "\nCoverage (assigned/min/ideal)\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range outcome.Rota.Coverage() {
		status := "ok"
		if !c.MetMinimum() {
			status = "UNMET"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d/%d\t%s\n", c.Day, c.Location, c.Assigned, c.Min, c.Ideal, status)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nScore: %.3f\n", outcome.Score)
	if outcome.Feasible() {
		fmt.Fprintln(w, "Feasible: every slot met its minimum")
	} else {
		fmt.Fprintf(w, "Infeasible: %d unmet minimum(s)\n", len(outcome.Violations))
		for _, v := range outcome.Violations {
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
}

func entryFlags(entry rota.Entry) string {
	switch {
	case entry.Locked && entry.Backfill:
		return "locked,backfill"
	case entry.Locked:
		return "locked"
	case entry.Backfill:
		return "backfill"
	default:
		return ""
	}
}
