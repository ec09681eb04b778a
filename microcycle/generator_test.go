package microcycle

import (
	"reflect"
	"testing"
	"time"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/catalog"
	"github.com/briangreenhill/ultraplan/constraints"
	"github.com/briangreenhill/ultraplan/plan"
)

var weekStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

func testInput() WeekInput {
	return WeekInput{
		Week: plan.MacrocycleWeek{
			Number:      4,
			Phase:       plan.PhaseBase,
			Start:       weekStart,
			End:         weekStart.AddDate(0, 0, 6),
			WeekInPhase: 2,
		},
		Profile: athlete.Profile{
			ID:               "ath-1",
			Category:         athlete.Cat2,
			StartingVolumeKm: 50,
			VolumeCeilingKm:  160,
			RecoveryRatio:    athlete.Recovery3to1,
		},
		Race: athlete.RaceEvent{
			Name:       "Gorge 100K",
			Date:       weekStart.AddDate(0, 0, 16*7),
			DistanceKm: 100,
			VerticalM:  3500,
			Type:       athlete.Race100K,
			Priority:   "A",
		},
		Constraints: constraints.Derive(5, nil),
	}
}

func newTestGenerator() *Generator {
	return NewGenerator(catalog.Default(), DefaultPolicy())
}

func TestTargetMileage_TenPercentRule(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.PrevWeekKm = 40

	// 50 * 0.85 * 1.15 = 48.875 wants more than prev+10%.
	got := g.targetMileage(in)
	if got != 44.0 {
		t.Fatalf("target = %.1f, want 44.0 (40km + 10%%)", got)
	}
}

func TestTargetMileage_NoHistoryUsesPhaseVolume(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.PrevWeekKm = 0

	if got := g.targetMileage(in); got != 48.9 {
		t.Fatalf("target = %.1f, want 48.9", got)
	}
}

func TestTargetMileage_RecoveryWeekReduction(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.PrevWeekKm = 40
	in.RecoveryWeek = true

	if got := g.targetMileage(in); got != 32.0 {
		t.Fatalf("recovery target = %.1f, want 32.0 (40km - 20%%)", got)
	}
}

func TestTargetMileage_CeilingWins(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.Profile.VolumeCeilingKm = 30

	if got := g.targetMileage(in); got != 30.0 {
		t.Fatalf("target = %.1f, want the 30.0 ceiling", got)
	}
}

func TestTargetVertical(t *testing.T) {
	g := newTestGenerator()
	in := testInput() // hilly race (3500m > 1000m threshold)

	if got := g.targetVertical(in, 40); got != 1600 {
		t.Fatalf("base vertical = %.0f, want 1600 (40km x 40m/km)", got)
	}

	in.Week.Phase = plan.PhaseSpecificity
	if got := g.targetVertical(in, 40); got != 2080 {
		t.Fatalf("specificity vertical = %.0f, want 2080 (+30%%)", got)
	}

	in.Week.Phase = plan.PhaseTaper
	if got := g.targetVertical(in, 40); got != 800 {
		t.Fatalf("taper vertical = %.0f, want 800 (halved)", got)
	}

	in.Week.Phase = plan.PhaseBase
	in.Race.VerticalM = 500 // flat race
	if got := g.targetVertical(in, 40); got != 800 {
		t.Fatalf("flat vertical = %.0f, want 800 (40km x 20m/km)", got)
	}
}

func TestGenerate_RestDaysStayEmpty(t *testing.T) {
	g := newTestGenerator()
	for _, phase := range plan.PhaseOrder {
		in := testInput()
		in.Week.Phase = phase
		in.Race.Date = weekStart.AddDate(0, 0, 16*7) // never in-week

		week := g.Generate(in)
		for _, restDay := range in.Constraints.RestDays {
			d := week.Day(restDay)
			if d == nil {
				t.Fatalf("day %s missing from plan", restDay)
			}
			if !d.IsRestDay() {
				t.Errorf("phase %s: sessions scheduled on rest day %s: %v", phase, restDay, d.Sessions)
			}
		}
		res := constraints.ValidateWeeklyPlan(&week, in.Constraints)
		if !res.IsValid {
			t.Errorf("phase %s: %v", phase, res.Messages)
		}
	}
}

func TestGenerate_OneLongRunOnWeekend(t *testing.T) {
	g := newTestGenerator()
	week := g.Generate(testInput())

	var longDays []string
	for _, d := range week.Days {
		for _, s := range d.Sessions {
			if s.Type == plan.TypeLong || s.Type == plan.TypeBackToBack {
				longDays = append(longDays, d.Day)
			}
		}
	}
	if len(longDays) != 1 {
		t.Fatalf("long runs on %v, want exactly one", longDays)
	}
	if longDays[0] != "Saturday" {
		t.Errorf("long run on %s, want Saturday for a 5-day Monday-first week", longDays[0])
	}
}

func TestGenerate_PhaseKeySessions(t *testing.T) {
	g := newTestGenerator()
	tests := []struct {
		phase       plan.Phase
		weekInPhase int
		wantType    plan.SessionType
	}{
		{plan.PhaseBase, 1, plan.TypeHillSprints},
		{plan.PhaseIntensity, 1, plan.TypeVO2Max},
		{plan.PhaseSpecificity, 1, plan.TypeHillRepeats},
		{plan.PhaseSpecificity, 2, plan.TypeRacePace},
		{plan.PhaseTaper, 1, plan.TypeTempo},
	}
	for _, tt := range tests {
		in := testInput()
		in.Week.Phase = tt.phase
		in.Week.WeekInPhase = tt.weekInPhase
		week := g.Generate(in)

		found := false
		for _, d := range week.Days {
			if d.HasType(tt.wantType) {
				found = true
			}
		}
		if !found {
			t.Errorf("phase %s week %d: no %s session placed", tt.phase, tt.weekInPhase, tt.wantType)
		}
	}
}

func TestGenerate_EasyRunSharesMuscularEnduranceDay(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.Week.Phase = plan.PhaseSpecificity
	in.Constraints = constraints.Derive(4, nil)

	week := g.Generate(in)

	var sharedDay *plan.DailyPlan
	for i := range week.Days {
		d := &week.Days[i]
		if d.HasType(plan.TypeMuscularEndurance) && d.HasType(plan.TypeEasy) {
			sharedDay = d
		}
	}
	if sharedDay == nil {
		t.Fatal("no day pairs the muscular-endurance session with an easy run")
	}

	// The paired easy run is cut shorter than a standalone one.
	var sharedKm, soloKm float64
	for _, d := range week.Days {
		for _, s := range d.Sessions {
			if s.Type != plan.TypeEasy {
				continue
			}
			if d.Day == sharedDay.Day {
				sharedKm = s.DistanceKm
			} else if soloKm == 0 {
				soloKm = s.DistanceKm
			}
		}
	}
	if soloKm == 0 {
		t.Fatal("no standalone easy run to compare against")
	}
	if sharedKm > soloKm {
		t.Errorf("shared-day easy run %.1f km exceeds the standalone %.1f km", sharedKm, soloKm)
	}
}

func TestGenerate_MuscularEnduranceInEveryBuildableWeek(t *testing.T) {
	g := newTestGenerator()
	for _, phase := range []plan.Phase{plan.PhaseSpecificity, plan.PhaseTaper} {
		in := testInput()
		in.Week.Phase = phase
		in.Week.WeekInPhase = 2
		in.Constraints = constraints.Derive(4, nil)

		week := g.Generate(in)
		found := false
		for _, d := range week.Days {
			if d.HasType(plan.TypeMuscularEndurance) {
				found = true
			}
		}
		if !found {
			t.Errorf("phase %s: no muscular-endurance session placed", phase)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	a := g.Generate(in)
	b := g.Generate(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two generations of the same input differ")
	}
}

func TestGenerate_SessionIDsAreStable(t *testing.T) {
	g := newTestGenerator()
	week := g.Generate(testInput())
	seen := map[string]bool{}
	for _, d := range week.Days {
		for _, s := range d.Sessions {
			if s.ID == "" {
				t.Errorf("session on %s has no ID", d.Day)
			}
			if seen[s.ID] {
				t.Errorf("duplicate session ID %s", s.ID)
			}
			seen[s.ID] = true
		}
	}
}

func TestGenerate_WeeklyVolumeNearTarget(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.PrevWeekKm = 40
	week := g.Generate(in)

	got := week.TotalDistanceKm()
	if got < week.TargetDistanceKm*0.8 || got > week.TargetDistanceKm*1.2 {
		t.Errorf("scheduled %.1f km for a %.1f km target", got, week.TargetDistanceKm)
	}
}

func TestRaceWeekOverride(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.Week.Phase = plan.PhaseGoal
	in.Race.Date = weekStart.AddDate(0, 0, 5) // Saturday of this week

	week := g.Generate(in)
	sat := week.Day("Saturday")
	if len(sat.Sessions) != 1 {
		t.Fatalf("race day has %d sessions", len(sat.Sessions))
	}
	race := sat.Sessions[0]
	if race.Type != plan.TypeSimulation || !race.Locked || race.Origin != plan.OriginRace {
		t.Errorf("race session = %+v", race)
	}
	if race.Title != "Gorge 100K" {
		t.Errorf("race title = %q", race.Title)
	}
	// An A race empties the rest of the week.
	if !week.Day("Sunday").IsRestDay() {
		t.Errorf("Sunday after an A race should be empty: %v", week.Day("Sunday").Sessions)
	}
}

func TestRaceWeekOverride_BRaceKeepsFollowingDays(t *testing.T) {
	g := newTestGenerator()
	in := testInput()
	in.Race.Priority = "B"
	in.Race.Date = weekStart.AddDate(0, 0, 2) // Wednesday
	in.Constraints = constraints.Derive(7, nil)

	week := g.Generate(in)
	wed := week.Day("Wednesday")
	if len(wed.Sessions) != 1 || !wed.Sessions[0].Locked {
		t.Fatalf("Wednesday = %+v", wed.Sessions)
	}
	var after int
	for _, d := range []string{"Thursday", "Friday", "Saturday", "Sunday"} {
		after += len(week.Day(d).Sessions)
	}
	if after == 0 {
		t.Error("B race should not clear the rest of the week")
	}
}
