// Package microcycle turns one macrocycle week into a concrete weekly plan:
// target volumes, workout selection from the catalog, range resolution and
// daily placement under the training constraints.
package microcycle

import (
	"fmt"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/catalog"
	"github.com/briangreenhill/ultraplan/constraints"
	"github.com/briangreenhill/ultraplan/plan"
)

// Policy carries the generator's tuning tables.
type Policy struct {
	PhaseVolume    map[plan.Phase]float64
	CategoryVolume map[athlete.Category]float64

	MaxWeeklyIncrease float64 // the 10% rule
	RecoveryReduction float64

	VerticalPerKmFlat        float64
	VerticalPerKmHilly       float64
	HillyRaceVerticalM       float64
	SpecificityVerticalBoost float64
	TaperVerticalFactor      float64

	// Pace assumptions for back-filling missing dimensions.
	EasyPaceMinPerKm float64
	HardPaceMinPerKm float64

	// Long run share of weekly volume by phase.
	LongRunShare map[plan.Phase]float64

	CorePerWeek map[plan.Phase]int

	MidweekEasyFactor float64
	// SharedDayEasyFactor shortens the easy run that shares a day with the
	// muscular-endurance session.
	SharedDayEasyFactor float64
}

// DefaultPolicy returns the production tuning tables.
func DefaultPolicy() Policy {
	return Policy{
		PhaseVolume: map[plan.Phase]float64{
			plan.PhaseTransition:  0.5,
			plan.PhaseBase:        0.85,
			plan.PhaseIntensity:   0.95,
			plan.PhaseSpecificity: 1.0,
			plan.PhaseTaper:       0.65,
			plan.PhaseGoal:        0.3,
		},
		CategoryVolume: map[athlete.Category]float64{
			athlete.Cat1: 1.0,
			athlete.Cat2: 1.15,
		},
		MaxWeeklyIncrease:        0.10,
		RecoveryReduction:        0.20,
		VerticalPerKmFlat:        20,
		VerticalPerKmHilly:       40,
		HillyRaceVerticalM:       1000,
		SpecificityVerticalBoost: 0.30,
		TaperVerticalFactor:      0.5,
		EasyPaceMinPerKm:         6,
		HardPaceMinPerKm:         5,
		LongRunShare: map[plan.Phase]float64{
			plan.PhaseTransition:  0.30,
			plan.PhaseBase:        0.35,
			plan.PhaseIntensity:   0.32,
			plan.PhaseSpecificity: 0.38,
			plan.PhaseTaper:       0.30,
			plan.PhaseGoal:        0.25,
		},
		CorePerWeek: map[plan.Phase]int{
			plan.PhaseTransition:  3,
			plan.PhaseBase:        2,
			plan.PhaseIntensity:   2,
			plan.PhaseSpecificity: 2,
			plan.PhaseTaper:       1,
			plan.PhaseGoal:        0,
		},
		MidweekEasyFactor:   0.75,
		SharedDayEasyFactor: 0.5,
	}
}

// WeekInput is everything Generate needs for one week.
type WeekInput struct {
	Week         plan.MacrocycleWeek
	Profile      athlete.Profile
	Race         athlete.RaceEvent
	RecoveryWeek bool
	// Previous week's actual mileage; 0 means unknown and disables the
	// week-over-week caps.
	PrevWeekKm  float64
	Constraints constraints.TrainingConstraints
}

// Generator selects and places workouts. The catalog is injected; the
// generator never reaches for a library implicitly.
type Generator struct {
	catalog *catalog.Catalog
	policy  Policy
}

// NewGenerator builds a generator over a catalog.
func NewGenerator(c *catalog.Catalog, policy Policy) *Generator {
	return &Generator{catalog: c, policy: policy}
}

// Generate produces one weekly plan with exactly seven daily plans.
func (g *Generator) Generate(in WeekInput) plan.WeeklyPlan {
	week := plan.WeeklyPlan{
		WeekNumber:   in.Week.Number,
		Phase:        in.Week.Phase,
		Start:        in.Week.Start,
		End:          in.Week.End,
		RecoveryWeek: in.RecoveryWeek,
	}
	for i := range week.Days {
		week.Days[i] = plan.DailyPlan{
			Date: in.Week.Start.AddDate(0, 0, i),
			Day:  plan.DayNames[i],
		}
	}

	week.TargetDistanceKm = g.targetMileage(in)
	week.TargetVerticalM = g.targetVertical(in, week.TargetDistanceKm)

	rest := restDaySet(in.Constraints)
	g.place(&week, in, rest)
	g.raceWeekOverride(&week, in)

	return week
}

// restDaySet returns the authoritative rest set for the week: the explicit
// constraint set, deterministically supplemented when it covers fewer than
// 7-daysPerWeek days.
func restDaySet(c constraints.TrainingConstraints) map[string]bool {
	days := c.RestDays
	if len(days) < 7-c.DaysPerWeek {
		days = c.SupplementRestDays()
	}
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

// sessionID builds a stable, human-greppable session identifier. The
// generator is deterministic end to end, IDs included.
func sessionID(weekNumber int, day string, slot int) string {
	return fmt.Sprintf("w%02d-%s-%d", weekNumber, day, slot)
}
