package conflict

import (
	"testing"

	"github.com/briangreenhill/ultraplan/plan"
)

func TestSessionFatigueLoad(t *testing.T) {
	tests := []struct {
		name string
		s    plan.Session
		want float64
	}{
		{"easy run", plan.Session{Type: plan.TypeEasy, Intensity: plan.IntensityLow, DurationMin: 45}, 20},
		{"medium long run", plan.Session{Type: plan.TypeLong, Intensity: plan.IntensityMedium, DurationMin: 110}, 55},
		{"long run over two hours", plan.Session{Type: plan.TypeLong, Intensity: plan.IntensityMedium, DurationMin: 150}, 70},
		{"high-intensity ME", plan.Session{Type: plan.TypeMuscularEndurance, Intensity: plan.IntensityHigh, DurationMin: 60}, 85},
		{"capped at 100", plan.Session{Type: plan.TypeBackToBack, Intensity: plan.IntensityHigh, DurationMin: 240}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SessionFatigueLoad(tt.s); got != tt.want {
				t.Fatalf("load = %.0f, want %.0f", got, tt.want)
			}
		})
	}
}

func day(name string, sessions ...plan.Session) plan.DailyPlan {
	return plan.DailyPlan{Day: name, Sessions: sessions}
}

func findConflict(cs []Conflict, typ Type) *Conflict {
	for i := range cs {
		if cs[i].Type == typ {
			return &cs[i]
		}
	}
	return nil
}

func TestDetectDaily_SingleSessionNeverConflicts(t *testing.T) {
	d := day("Saturday", plan.Session{
		ID: "a", Type: plan.TypeBackToBack, Intensity: plan.IntensityHigh, DurationMin: 400,
	})
	if got := DetectDaily(d); got != nil {
		t.Fatalf("conflicts = %+v", got)
	}
}

func TestDetectDaily_ExcessiveFatigue(t *testing.T) {
	// 70 + 85 = 155 combined load.
	d := day("Tuesday",
		plan.Session{ID: "a", Type: plan.TypeVO2Max, Intensity: plan.IntensityHigh, DurationMin: 60},
		plan.Session{ID: "b", Type: plan.TypeMuscularEndurance, Intensity: plan.IntensityHigh, DurationMin: 50},
	)
	c := findConflict(DetectDaily(d), ExcessiveFatigue)
	if c == nil || c.Severity != SeverityHigh || c.SuggestedResolution != "remove" {
		t.Fatalf("conflict = %+v", c)
	}

	// 70 + 55 = 125: medium band.
	d = day("Tuesday",
		plan.Session{ID: "a", Type: plan.TypeVO2Max, Intensity: plan.IntensityHigh, DurationMin: 60},
		plan.Session{ID: "b", Type: plan.TypeLong, Intensity: plan.IntensityMedium, DurationMin: 100},
	)
	c = findConflict(DetectDaily(d), ExcessiveFatigue)
	if c == nil || c.Severity != SeverityMedium {
		t.Fatalf("conflict = %+v", c)
	}
}

func TestDetectDaily_ContradictoryGoals(t *testing.T) {
	d := day("Saturday",
		plan.Session{ID: "long", Type: plan.TypeLong, Intensity: plan.IntensityMedium, DistanceKm: 25, DurationMin: 150},
		plan.Session{ID: "str", Type: plan.TypeStrength, Intensity: plan.IntensityLow, DurationMin: 40},
	)
	c := findConflict(DetectDaily(d), ContradictoryGoals)
	if c == nil {
		t.Fatal("no contradictory-goals conflict detected")
	}
	if c.Severity != SeverityHigh || c.SuggestedResolution != "reschedule" {
		t.Fatalf("conflict = %+v", c)
	}

	// Under the distance threshold the pairing is fine.
	d.Sessions[0].DistanceKm = 18
	if c := findConflict(DetectDaily(d), ContradictoryGoals); c != nil {
		t.Fatalf("18km long + strength flagged: %+v", c)
	}
}

func TestDetectDaily_HeatWithQuality(t *testing.T) {
	d := day("Wednesday",
		plan.Session{ID: "heat", Type: plan.TypeHeatAdaptation, Intensity: plan.IntensityLow, DurationMin: 45},
		plan.Session{ID: "tempo", Type: plan.TypeTempo, Intensity: plan.IntensityHigh, DurationMin: 50},
	)
	c := findConflict(DetectDaily(d), ContradictoryGoals)
	if c == nil || c.Severity != SeverityMedium || c.SuggestedResolution != "reschedule" {
		t.Fatalf("conflict = %+v", c)
	}
}

func TestDetectDaily_DurationOverflow(t *testing.T) {
	d := day("Saturday",
		plan.Session{ID: "a", Type: plan.TypeLong, Intensity: plan.IntensityMedium, DurationMin: 260},
		plan.Session{ID: "b", Type: plan.TypeEasy, Intensity: plan.IntensityLow, DurationMin: 50},
	)
	c := findConflict(DetectDaily(d), DurationOverflow)
	if c == nil || c.Severity != SeverityMedium {
		t.Fatalf("conflict = %+v", c)
	}
}

func TestDetectWeekly_ConsecutiveHighDays(t *testing.T) {
	w := plan.WeeklyPlan{}
	for i, name := range plan.DayNames {
		w.Days[i] = plan.DailyPlan{Day: name}
	}
	w.Day("Tuesday").Sessions = []plan.Session{{ID: "a", Type: plan.TypeVO2Max, Intensity: plan.IntensityHigh}}
	w.Day("Wednesday").Sessions = []plan.Session{{ID: "b", Type: plan.TypeTempo, Intensity: plan.IntensityHigh}}

	cs := DetectWeekly(&w)
	c := findConflict(cs, SchedulingViolation)
	if c == nil || c.SuggestedResolution != "none" {
		t.Fatalf("conflicts = %+v", cs)
	}
	if len(c.SessionIDs) != 2 {
		t.Errorf("session ids = %v", c.SessionIDs)
	}
}

func TestResolveDay_RemovesLowestPriority(t *testing.T) {
	d := day("Thursday",
		plan.Session{ID: "key", Type: plan.TypeVO2Max, Intensity: plan.IntensityHigh, DurationMin: 60, Origin: plan.OriginTaperPlan},
		plan.Session{ID: "extra", Type: plan.TypeHillRepeats, Intensity: plan.IntensityHigh, DurationMin: 50, Origin: plan.OriginAdaptive},
	)
	res := ResolveDay(&d)
	if len(res) == 0 {
		t.Fatal("no resolutions")
	}
	if !res[0].Resolved || res[0].RemovedID != "extra" {
		t.Fatalf("resolution = %+v", res[0])
	}
	if len(d.Sessions) != 1 || d.Sessions[0].ID != "key" {
		t.Fatalf("day = %+v", d.Sessions)
	}
}

func TestResolveDay_ProtectedSessionsSurvive(t *testing.T) {
	d := day("Saturday",
		plan.Session{ID: "race", Type: plan.TypeSimulation, Intensity: plan.IntensityHigh, DurationMin: 300, Origin: plan.OriginRace, Locked: true},
		plan.Session{ID: "planned", Type: plan.TypeLong, Intensity: plan.IntensityHigh, DurationMin: 120, Origin: plan.OriginBasePlan},
	)
	res := ResolveDay(&d)
	if len(res) == 0 {
		t.Fatal("expected unresolved resolutions")
	}
	for _, r := range res {
		if r.Resolved {
			t.Fatalf("protected session removed: %+v", r)
		}
	}
	if len(d.Sessions) != 2 {
		t.Fatalf("day mutated: %+v", d.Sessions)
	}
}

func TestResolveDay_RescheduleSuggestionsNeverRemove(t *testing.T) {
	// Long + strength over the distance threshold suggests a reschedule; the
	// resolver must leave both sessions in place even though this is a
	// high-severity conflict and the strength session is removable.
	d := day("Saturday",
		plan.Session{ID: "long", Type: plan.TypeLong, Intensity: plan.IntensityMedium, DistanceKm: 25, DurationMin: 150, Origin: plan.OriginBasePlan},
		plan.Session{ID: "str", Type: plan.TypeStrength, Intensity: plan.IntensityLow, DurationMin: 40, Origin: plan.OriginGenerated},
	)
	res := ResolveDay(&d)
	for _, r := range res {
		if r.Resolved {
			t.Fatalf("reschedule-type conflict auto-resolved: %+v", r)
		}
	}
	if len(d.Sessions) != 2 {
		t.Fatalf("day mutated: %+v", d.Sessions)
	}
}

func TestResolveDay_TerminatesOnUnresolvable(t *testing.T) {
	d := day("Friday",
		plan.Session{ID: "a", Type: plan.TypeVO2Max, Intensity: plan.IntensityHigh, DurationMin: 60, Origin: plan.OriginUser},
		plan.Session{ID: "b", Type: plan.TypeTempo, Intensity: plan.IntensityHigh, DurationMin: 60, Origin: plan.OriginBasePlan},
	)
	res := ResolveDay(&d)
	// Each distinct unresolvable conflict is reported exactly once.
	seen := map[string]int{}
	for _, r := range res {
		seen[string(r.Conflict.Type)]++
	}
	for typ, n := range seen {
		if n > 1 {
			t.Errorf("conflict %s reported %d times", typ, n)
		}
	}
}

func TestResolveWeek(t *testing.T) {
	w := plan.WeeklyPlan{}
	for i, name := range plan.DayNames {
		w.Days[i] = plan.DailyPlan{Day: name}
	}
	// Tuesday: auto-resolvable overload.
	w.Day("Tuesday").Sessions = []plan.Session{
		{ID: "key", Type: plan.TypeVO2Max, Intensity: plan.IntensityHigh, DurationMin: 60, Origin: plan.OriginBasePlan},
		{ID: "gen", Type: plan.TypeHillRepeats, Intensity: plan.IntensityHigh, DurationMin: 50, Origin: plan.OriginGenerated},
	}
	// Saturday: medium-severity pairing, surfaced but untouched.
	w.Day("Saturday").Sessions = []plan.Session{
		{ID: "heat", Type: plan.TypeHeatAdaptation, Intensity: plan.IntensityLow, DurationMin: 45, Origin: plan.OriginGenerated},
		{ID: "tempo", Type: plan.TypeTempo, Intensity: plan.IntensityHigh, DurationMin: 50, Origin: plan.OriginBasePlan},
	}
	// Sunday: high-severity reschedule suggestion, surfaced but untouched.
	w.Day("Sunday").Sessions = []plan.Session{
		{ID: "long", Type: plan.TypeLong, Intensity: plan.IntensityMedium, DistanceKm: 25, DurationMin: 150, Origin: plan.OriginBasePlan},
		{ID: "str", Type: plan.TypeStrength, Intensity: plan.IntensityLow, DurationMin: 40, Origin: plan.OriginGenerated},
	}

	rep := ResolveWeek(&w)

	if len(w.Day("Tuesday").Sessions) != 1 || w.Day("Tuesday").Sessions[0].ID != "key" {
		t.Fatalf("Tuesday = %+v", w.Day("Tuesday").Sessions)
	}
	if len(w.Day("Saturday").Sessions) != 2 {
		t.Fatalf("medium conflict auto-resolved: %+v", w.Day("Saturday").Sessions)
	}
	if len(w.Day("Sunday").Sessions) != 2 {
		t.Fatalf("reschedule conflict auto-resolved: %+v", w.Day("Sunday").Sessions)
	}
	var surfacedHigh bool
	for _, c := range rep.Surfaced {
		if c.Type == ContradictoryGoals && c.Severity == SeverityHigh {
			surfacedHigh = true
		}
	}
	if !surfacedHigh {
		t.Errorf("surfaced = %+v", rep.Surfaced)
	}
	if findConflict(rep.Surfaced, ContradictoryGoals) == nil {
		t.Errorf("surfaced = %+v", rep.Surfaced)
	}
	if len(rep.Unresolved()) != 0 {
		t.Errorf("unresolved = %+v", rep.Unresolved())
	}
}
