package conflict

import (
	"fmt"
	"strings"

	"github.com/briangreenhill/ultraplan/plan"
)

// Resolution records what happened to one conflict.
type Resolution struct {
	Conflict Conflict `json:"conflict"`
	Resolved bool     `json:"resolved"`
	// RemovedID names the session deleted to resolve the conflict; empty
	// when nothing was eligible and the conflict was left standing.
	RemovedID string `json:"removedId,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Report is the outcome of a full-week resolution pass.
type Report struct {
	Resolutions []Resolution `json:"resolutions,omitempty"`
	// Surfaced lists lower-severity and cross-day conflicts that are
	// reported but never auto-resolved.
	Surfaced []Conflict `json:"surfaced,omitempty"`
}

// Unresolved returns the conflicts that could not be resolved because every
// offending session was protected.
func (r Report) Unresolved() []Conflict {
	var out []Conflict
	for _, res := range r.Resolutions {
		if !res.Resolved {
			out = append(out, res.Conflict)
		}
	}
	return out
}

// ResolveDay resolves remove-type conflicts within one day by deleting the
// single lowest-priority eligible session per conflict. Protected sessions
// (locked, or USER/BASE_PLAN/RACE origin) are never removed; a conflict with
// no eligible session is returned unresolved. Conflicts suggesting a
// reschedule are never acted on here, whatever their severity.
func ResolveDay(d *plan.DailyPlan) []Resolution {
	var out []Resolution
	unresolved := map[string]bool{}
	for {
		acted := false
		for _, c := range DetectDaily(*d) {
			if c.Severity != SeverityHigh || c.SuggestedResolution != "remove" {
				continue
			}
			key := string(c.Type) + ":" + strings.Join(c.SessionIDs, ",")
			if unresolved[key] {
				continue
			}
			res := resolveOne(d, c)
			out = append(out, res)
			if res.Resolved {
				acted = true
				break // re-detect against the mutated day
			}
			unresolved[key] = true
		}
		if !acted {
			break
		}
	}
	return out
}

// ResolveWeek runs the daily resolution pass over every day and collects
// cross-day conflicts for reporting. Only high-severity remove-type daily
// conflicts are auto-resolved; everything else is surfaced.
func ResolveWeek(w *plan.WeeklyPlan) Report {
	var rep Report
	for i := range w.Days {
		rep.Resolutions = append(rep.Resolutions, ResolveDay(&w.Days[i])...)
		for _, c := range DetectDaily(w.Days[i]) {
			if c.Severity != SeverityHigh || c.SuggestedResolution != "remove" {
				rep.Surfaced = append(rep.Surfaced, c)
			}
		}
	}
	rep.Surfaced = append(rep.Surfaced, DetectWeekly(w)...)
	return rep
}

// resolveOne removes the lowest-priority eligible session referenced by the
// conflict, or reports the conflict unresolved when everything is protected.
func resolveOne(d *plan.DailyPlan, c Conflict) Resolution {
	inConflict := make(map[string]bool, len(c.SessionIDs))
	for _, id := range c.SessionIDs {
		inConflict[id] = true
	}

	victim := -1
	for i, s := range d.Sessions {
		if !inConflict[s.ID] || s.Protected() {
			continue
		}
		if victim < 0 || originPriority[s.Origin] < originPriority[d.Sessions[victim].Origin] {
			victim = i
		}
	}
	if victim < 0 {
		return Resolution{
			Conflict: c,
			Resolved: false,
			Note:     fmt.Sprintf("unresolved %s conflict on %s: all sessions protected", c.Type, d.Day),
		}
	}

	removed := d.Sessions[victim]
	d.Sessions = append(d.Sessions[:victim], d.Sessions[victim+1:]...)
	return Resolution{
		Conflict:  c,
		Resolved:  true,
		RemovedID: removed.ID,
		Note:      fmt.Sprintf("removed %s (%s origin) to resolve %s on %s", removed.ID, removed.Origin, c.Type, d.Day),
	}
}
