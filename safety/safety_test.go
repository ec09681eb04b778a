package safety

import (
	"math"
	"testing"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/plan"
)

func TestACWR(t *testing.T) {
	tests := []struct {
		name      string
		history   []float64
		candidate float64
		want      float64
		ok        bool
	}{
		{"steady load", []float64{40, 40, 40, 40}, 40, 1.0, true},
		{"sharp spike", []float64{40, 40, 40, 40}, 100, 1.375, true},
		{"detraining", []float64{50, 50, 10, 10}, 10, 0.667, true},
		{"too little history", []float64{40, 40, 40}, 40, 0, false},
		{"no history", nil, 40, 0, false},
		{"zero chronic load", []float64{0, 0, 0, 0}, 40, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ACWR(tt.history, tt.candidate)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("ratio = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestACWR_MonotonicInCandidate(t *testing.T) {
	history := []float64{40, 45, 50, 48}
	prev := 0.0
	for km := 10.0; km <= 100; km += 10 {
		ratio, ok := ACWR(history, km)
		if !ok {
			t.Fatal("expected ACWR to be computable")
		}
		if ratio <= prev {
			t.Fatalf("ratio not increasing: %.3f after %.3f at %0.fkm", ratio, prev, km)
		}
		prev = ratio
	}
}

// weekWith builds a week with one easy session of the given distance on each
// listed day, Monday-first labels throughout.
func weekWith(km float64, days ...string) plan.WeeklyPlan {
	var w plan.WeeklyPlan
	for i, name := range plan.DayNames {
		w.Days[i] = plan.DailyPlan{Day: name}
	}
	for _, d := range days {
		w.Day(d).Sessions = append(w.Day(d).Sessions, plan.Session{
			Type: plan.TypeEasy, DistanceKm: km, Intensity: plan.IntensityLow, Origin: plan.OriginGenerated,
		})
	}
	return w
}

func cat2() athlete.Profile {
	return athlete.Profile{Category: athlete.Cat2, Age: 30, RecoveryRatio: athlete.Recovery3to1}
}

func TestCheck_VolumeBand(t *testing.T) {
	e := New(DefaultLimits())

	// 5 x 35km = 175km, above the Cat2 band max of 160.
	week := weekWith(35, "Monday", "Tuesday", "Wednesday", "Friday", "Saturday")
	res := e.Check(&week, cat2(), nil, 0)
	if res.Passed {
		t.Fatal("175km Cat2 week should not pass")
	}
	if !hasRule(res.Violations, RuleVolumeBand) {
		t.Errorf("violations = %+v", res.Violations)
	}

	// 20km total is under the Cat2 minimum: a warning, not a block.
	week = weekWith(10, "Tuesday", "Saturday")
	res = e.Check(&week, cat2(), nil, 0)
	if !res.Passed {
		t.Fatalf("under-minimum week should pass with a warning, got %+v", res.Violations)
	}
	if !hasRule(res.Warnings, RuleVolumeBand) {
		t.Errorf("warnings = %+v", res.Warnings)
	}
}

func TestCheck_WeekOverWeek(t *testing.T) {
	e := New(DefaultLimits())

	week := weekWith(10, "Monday", "Tuesday", "Wednesday", "Friday", "Saturday") // 50km
	res := e.Check(&week, cat2(), nil, 40)
	if res.Passed || !hasRule(res.Violations, RuleWeeklyIncrease) {
		t.Fatalf("50km after 40km should block: %+v", res)
	}

	// 44km after 40km is exactly the 10% cap.
	week = weekWith(11, "Monday", "Tuesday", "Wednesday", "Friday")
	res = e.Check(&week, cat2(), nil, 40)
	if hasRule(res.Violations, RuleWeeklyIncrease) {
		t.Fatalf("44km after 40km should be allowed: %+v", res.Violations)
	}

	// A sudden 50% drop only warns.
	week = weekWith(10, "Tuesday", "Saturday") // 20km
	res = e.Check(&week, cat2(), nil, 40)
	if !hasRule(res.Warnings, RuleWeeklyDecrease) {
		t.Fatalf("warnings = %+v", res.Warnings)
	}
}

func TestCheck_NoRestDayIsCritical(t *testing.T) {
	e := New(DefaultLimits())
	week := weekWith(5, plan.DayNames[:]...)
	res := e.Check(&week, cat2(), nil, 0)
	if res.Passed {
		t.Fatal("a week with zero rest days must never pass")
	}
	found := false
	for _, v := range res.Violations {
		if v.Rule == RuleRestDays && v.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Errorf("violations = %+v", res.Violations)
	}
}

func TestCheck_ConsecutiveHardDays(t *testing.T) {
	e := New(DefaultLimits())
	week := weekWith(8, "Friday")
	for _, d := range []string{"Monday", "Tuesday", "Wednesday"} {
		week.Day(d).Sessions = []plan.Session{{
			Type: plan.TypeTempo, DistanceKm: 10, Intensity: plan.IntensityHigh,
		}}
	}
	res := e.Check(&week, cat2(), nil, 0)
	if !hasRule(res.Violations, RuleConsecutiveHard) {
		t.Fatalf("three hard days in a row should block: %+v", res)
	}
	if !hasRule(res.Warnings, RuleConsecutiveHigh) {
		t.Errorf("consecutive high-intensity days should also warn: %+v", res.Warnings)
	}
}

func TestCheck_HighIntensityCap(t *testing.T) {
	e := New(DefaultLimits())

	week := weekWith(5, "Sunday")
	for _, d := range []string{"Monday", "Wednesday", "Friday"} {
		week.Day(d).Sessions = []plan.Session{{
			Type: plan.TypeVO2Max, DistanceKm: 8, Intensity: plan.IntensityHigh,
		}}
	}

	// Three high-intensity sessions sit at the Cat2 cap and over the Cat1 cap.
	res := e.Check(&week, cat2(), nil, 0)
	if hasRule(res.Violations, RuleHighIntensityCap) {
		t.Fatalf("three high sessions are allowed for Cat2: %+v", res.Violations)
	}
	cat1 := athlete.Profile{Category: athlete.Cat1, Age: 30, RecoveryRatio: athlete.Recovery2to1}
	res = e.Check(&week, cat1, nil, 0)
	if !hasRule(res.Violations, RuleHighIntensityCap) {
		t.Fatalf("three high sessions exceed the Cat1 cap: %+v", res)
	}
}

func TestCheck_HardSessionQuotaWarning(t *testing.T) {
	e := New(DefaultLimits())
	week := weekWith(5, "Sunday")
	for _, d := range []string{"Monday", "Wednesday", "Friday"} {
		week.Day(d).Sessions = []plan.Session{{
			Type: plan.TypeTempo, DistanceKm: 8, Intensity: plan.IntensityHigh,
		}}
	}
	p := cat2()
	p.RecoveryRatio = athlete.Recovery2to1 // quota 2
	res := e.Check(&week, p, nil, 0)
	if !hasRule(res.Warnings, RuleHardSessionQuota) {
		t.Fatalf("warnings = %+v", res.Warnings)
	}
}

func TestCheck_ACWRSeverities(t *testing.T) {
	e := New(DefaultLimits())
	history := []float64{40, 40, 40, 40}

	// 130km candidate: acute mean 62.5 over chronic 40 is 1.56.
	week := weekWith(26, "Monday", "Tuesday", "Wednesday", "Friday", "Saturday")
	res := e.Check(&week, cat2(), history, 0)
	critical := false
	for _, v := range res.Violations {
		if v.Rule == RuleACWR && v.Severity == SeverityCritical {
			critical = true
		}
	}
	if !critical {
		t.Fatalf("ACWR 1.56 should be critical: %+v", res.Violations)
	}

	// 100km candidate: ratio 1.375 warns without blocking volume-wise.
	week = weekWith(25, "Monday", "Tuesday", "Friday", "Saturday")
	res = e.Check(&week, cat2(), history, 0)
	if !hasRule(res.Warnings, RuleACWR) {
		t.Fatalf("warnings = %+v", res.Warnings)
	}
}

func TestCheck_AgeAdjustedCeiling(t *testing.T) {
	e := New(DefaultLimits())
	// 150km is inside the Cat2 band but over the age-50 ceiling of 128km.
	week := weekWith(30, "Monday", "Tuesday", "Wednesday", "Friday", "Saturday")
	p := cat2()
	p.Age = 52
	res := e.Check(&week, p, nil, 0)
	if !hasRule(res.Warnings, RuleAgeAdjustedVolume) {
		t.Fatalf("warnings = %+v", res.Warnings)
	}
	// The same week is fine at 30.
	res = e.Check(&week, cat2(), nil, 0)
	if hasRule(res.Warnings, RuleAgeAdjustedVolume) {
		t.Errorf("warnings = %+v", res.Warnings)
	}
}

func hasRule(vs []Violation, rule string) bool {
	for _, v := range vs {
		if v.Rule == rule {
			return true
		}
	}
	return false
}
