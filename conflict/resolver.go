// Package conflict detects sessions that co-occur in ways that violate
// fatigue or goal-compatibility rules, and removes the lowest-priority
// removable session when a conflict is severe enough to auto-resolve.
package conflict

import (
	"fmt"

	"github.com/briangreenhill/ultraplan/plan"
)

// Type classifies a conflict.
type Type string

const (
	ExcessiveFatigue    Type = "excessive_fatigue"
	Overload            Type = "overload"
	ContradictoryGoals  Type = "contradictory_goals"
	DurationOverflow    Type = "duration_overflow"
	SchedulingViolation Type = "scheduling_violation"
)

// Severity ranks a conflict. Only high-severity conflicts are auto-resolved
// during a full-week pass.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Conflict is one detected incompatibility. SessionIDs name the offending
// sessions; Reason is machine-oriented.
type Conflict struct {
	Type                Type     `json:"type"`
	Severity            Severity `json:"severity"`
	Day                 string   `json:"day"`
	SessionIDs          []string `json:"sessionIds"`
	Reason              string   `json:"reason"`
	SuggestedResolution string   `json:"suggestedResolution"` // remove|reschedule|none
}

// Detection thresholds.
const (
	fatigueMediumThreshold = 120.0
	fatigueHighThreshold   = 150.0
	longRunGoalConflictKm  = 20.0
	maxDailyDurationMin    = 300.0
)

// originPriority orders sessions for removal: the lowest priority eligible
// session goes first. Locked sessions and USER/BASE_PLAN/RACE origins are
// never removed regardless of priority.
var originPriority = map[plan.Origin]int{
	plan.OriginRace:      7,
	plan.OriginUser:      6,
	plan.OriginBasePlan:  5,
	plan.OriginTaperPlan: 4,
	plan.OriginRacePlan:  3,
	plan.OriginGenerated: 2,
	plan.OriginAdaptive:  1,
}

// SessionFatigueLoad estimates a 0-100 fatigue score for one session from
// its intensity class, type and duration.
func SessionFatigueLoad(s plan.Session) float64 {
	var load float64
	switch s.Intensity {
	case plan.IntensityHigh:
		load = 70
	case plan.IntensityMedium:
		load = 45
	default:
		load = 20
	}
	switch s.Type {
	case plan.TypeMuscularEndurance:
		load += 15
	case plan.TypeLong:
		load += 10
	case plan.TypeBackToBack:
		load += 15
	}
	if s.DurationMin > 180 {
		load += 30
	} else if s.DurationMin > 120 {
		load += 15
	}
	if load > 100 {
		load = 100
	}
	return load
}

// DetectDaily finds conflicts within one daily plan. Days with fewer than
// two sessions cannot conflict.
func DetectDaily(d plan.DailyPlan) []Conflict {
	if len(d.Sessions) < 2 {
		return nil
	}
	var out []Conflict
	ids := sessionIDs(d.Sessions)

	// Summed fatigue load.
	var total float64
	for _, s := range d.Sessions {
		total += SessionFatigueLoad(s)
	}
	if total > fatigueHighThreshold {
		out = append(out, Conflict{
			Type: ExcessiveFatigue, Severity: SeverityHigh, Day: d.Day, SessionIDs: ids,
			Reason:              fmt.Sprintf("combined fatigue load %.0f exceeds %.0f", total, fatigueHighThreshold),
			SuggestedResolution: "remove",
		})
	} else if total > fatigueMediumThreshold {
		out = append(out, Conflict{
			Type: ExcessiveFatigue, Severity: SeverityMedium, Day: d.Day, SessionIDs: ids,
			Reason:              fmt.Sprintf("combined fatigue load %.0f exceeds %.0f", total, fatigueMediumThreshold),
			SuggestedResolution: "remove",
		})
	}

	// More than one independently high-intensity session.
	var high []string
	for _, s := range d.Sessions {
		if s.Intensity == plan.IntensityHigh {
			high = append(high, s.ID)
		}
	}
	if len(high) > 1 {
		out = append(out, Conflict{
			Type: Overload, Severity: SeverityHigh, Day: d.Day, SessionIDs: high,
			Reason:              fmt.Sprintf("%d high-intensity sessions on one day", len(high)),
			SuggestedResolution: "remove",
		})
	}

	out = append(out, detectContradictoryGoals(d)...)

	// Total duration overflow.
	if dur := d.TotalDurationMin(); dur > maxDailyDurationMin {
		out = append(out, Conflict{
			Type: DurationOverflow, Severity: SeverityMedium, Day: d.Day, SessionIDs: ids,
			Reason:              fmt.Sprintf("total duration %.0fmin exceeds %.0fmin", dur, maxDailyDurationMin),
			SuggestedResolution: "remove",
		})
	}
	return out
}

func detectContradictoryGoals(d plan.DailyPlan) []Conflict {
	var out []Conflict

	// Strength work alongside a long run over the threshold.
	var longIDs, strengthIDs []string
	for _, s := range d.Sessions {
		if s.Type == plan.TypeLong && s.DistanceKm > longRunGoalConflictKm {
			longIDs = append(longIDs, s.ID)
		}
		if s.Type == plan.TypeMuscularEndurance || s.Type == plan.TypeStrength {
			strengthIDs = append(strengthIDs, s.ID)
		}
	}
	if len(longIDs) > 0 && len(strengthIDs) > 0 {
		out = append(out, Conflict{
			Type: ContradictoryGoals, Severity: SeverityHigh, Day: d.Day,
			SessionIDs:          append(append([]string{}, longIDs...), strengthIDs...),
			Reason:              fmt.Sprintf("strength work scheduled with a long run over %.0fkm", longRunGoalConflictKm),
			SuggestedResolution: "reschedule",
		})
	}

	// Heat adaptation alongside quality work.
	var heatIDs, qualityIDs []string
	for _, s := range d.Sessions {
		switch s.Type {
		case plan.TypeHeatAdaptation:
			heatIDs = append(heatIDs, s.ID)
		case plan.TypeThreshold, plan.TypeTempo, plan.TypeVO2Max, plan.TypeRacePace:
			qualityIDs = append(qualityIDs, s.ID)
		}
	}
	if len(heatIDs) > 0 && len(qualityIDs) > 0 {
		out = append(out, Conflict{
			Type: ContradictoryGoals, Severity: SeverityMedium, Day: d.Day,
			SessionIDs:          append(append([]string{}, heatIDs...), qualityIDs...),
			Reason:              "heat adaptation scheduled with a quality session",
			SuggestedResolution: "reschedule",
		})
	}
	return out
}

// DetectWeekly finds cross-day scheduling conflicts. These are surfaced for
// reporting only and never auto-resolved.
func DetectWeekly(w *plan.WeeklyPlan) []Conflict {
	var out []Conflict
	for i := 0; i < 6; i++ {
		if w.Days[i].HasHighIntensity() && w.Days[i+1].HasHighIntensity() {
			ids := append(highIntensityIDs(w.Days[i]), highIntensityIDs(w.Days[i+1])...)
			out = append(out, Conflict{
				Type: SchedulingViolation, Severity: SeverityMedium, Day: w.Days[i].Day,
				SessionIDs:          ids,
				Reason:              fmt.Sprintf("high-intensity sessions on consecutive days %s and %s", w.Days[i].Day, w.Days[i+1].Day),
				SuggestedResolution: "none",
			})
		}
	}
	return out
}

func sessionIDs(ss []plan.Session) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.ID
	}
	return out
}

func highIntensityIDs(d plan.DailyPlan) []string {
	var out []string
	for _, s := range d.Sessions {
		if s.Intensity == plan.IntensityHigh {
			out = append(out, s.ID)
		}
	}
	return out
}
