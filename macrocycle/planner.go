// Package macrocycle allocates the weeks between a start date and a goal
// race into periodization phases and builds concrete week boundaries.
package macrocycle

import (
	"fmt"
	"math"
	"time"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/plan"
)

// InsufficientTrainingTimeError means the race is too close to build any
// macrocycle. It aborts plan creation; the athlete needs a later race date
// or more lead time.
type InsufficientTrainingTimeError struct {
	Weeks   int
	Minimum int
}

func (e *InsufficientTrainingTimeError) Error() string {
	return fmt.Sprintf("insufficient training time: %d weeks available, minimum %d", e.Weeks, e.Minimum)
}

// Policy carries every allocation constant. Callers substitute alternate
// tables in tests instead of monkeypatching globals.
type Policy struct {
	MinTotalWeeks   int
	TransitionWeeks int // deducted when coming off a prior race
	GoalWeeks       int

	TaperWeeks       map[athlete.RaceType]int
	SpecificityIdeal map[athlete.RaceType]int
	MinSpecificity   int
	MinBaseWeeks     map[athlete.Category]int

	// Aerobic deficiency: base extension of ExtensionPer5Pct weeks per 5% of
	// threshold gap beyond GapThresholdPct, capped at MaxExtensionWeeks.
	GapThresholdPct   float64
	ExtensionPer5Pct  int
	MaxExtensionWeeks int
}

// DefaultPolicy returns the production allocation tables.
func DefaultPolicy() Policy {
	return Policy{
		MinTotalWeeks:   8,
		TransitionWeeks: 2,
		GoalWeeks:       1,
		TaperWeeks: map[athlete.RaceType]int{
			athlete.RaceShortTrail: 1,
			athlete.Race50K:        2,
			athlete.Race50M:        2,
			athlete.Race100K:       3,
			athlete.Race100M:       3,
			athlete.Race200M:       4,
		},
		SpecificityIdeal: map[athlete.RaceType]int{
			athlete.RaceShortTrail: 4,
			athlete.Race50K:        5,
			athlete.Race50M:        6,
			athlete.Race100K:       6,
			athlete.Race100M:       7,
			athlete.Race200M:       8,
		},
		MinSpecificity: 2,
		MinBaseWeeks: map[athlete.Category]int{
			athlete.Cat1: 8,
			athlete.Cat2: 6,
		},
		GapThresholdPct:   10,
		ExtensionPer5Pct:  2,
		MaxExtensionWeeks: 8,
	}
}

// Breakdown is the phase-to-week-count allocation.
type Breakdown struct {
	Transition  int `json:"transition"`
	Base        int `json:"base"`
	Intensity   int `json:"intensity"`
	Specificity int `json:"specificity"`
	Taper       int `json:"taper"`
	Goal        int `json:"goal"`
}

// Total sums all phase allocations.
func (b Breakdown) Total() int {
	return b.Transition + b.Base + b.Intensity + b.Specificity + b.Taper + b.Goal
}

// Weeks returns the allocation for a phase.
func (b Breakdown) Weeks(p plan.Phase) int {
	switch p {
	case plan.PhaseTransition:
		return b.Transition
	case plan.PhaseBase:
		return b.Base
	case plan.PhaseIntensity:
		return b.Intensity
	case plan.PhaseSpecificity:
		return b.Specificity
	case plan.PhaseTaper:
		return b.Taper
	case plan.PhaseGoal:
		return b.Goal
	}
	return 0
}

// Planner allocates macrocycles under a policy. Pure: no clocks, no state.
type Planner struct {
	policy Policy
}

// New builds a planner.
func New(policy Policy) *Planner {
	return &Planner{policy: policy}
}

// StartOfWeek returns the Monday of the week containing t, at midnight UTC.
// Callers inject "now"; the planner never reads the system clock.
func StartOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0
	return t.AddDate(0, 0, -offset)
}

// Build allocates every week from start through the race's calendar week
// into phases and walks out concrete week boundaries, so the goal week always
// contains race day. start is normally the Monday of the current week;
// fromRace deducts a transition block for athletes coming off a race.
func (p *Planner) Build(profile athlete.Profile, race athlete.RaceEvent, start time.Time, fromRace bool) ([]plan.MacrocycleWeek, Breakdown, error) {
	start = StartOfWeek(start)
	total := int(StartOfWeek(race.Date).Sub(start).Hours()/24/7) + 1
	if total < p.policy.MinTotalWeeks {
		return nil, Breakdown{}, &InsufficientTrainingTimeError{Weeks: total, Minimum: p.policy.MinTotalWeeks}
	}

	bd := p.allocate(profile, race, total, fromRace)
	return p.buildWeeks(start, bd), bd, nil
}

func (p *Planner) allocate(profile athlete.Profile, race athlete.RaceEvent, total int, fromRace bool) Breakdown {
	bd := Breakdown{Goal: p.policy.GoalWeeks}
	if fromRace {
		bd.Transition = p.policy.TransitionWeeks
	}
	bd.Taper = p.policy.TaperWeeks[race.Type]
	if bd.Taper < 1 {
		bd.Taper = 1
	}

	// Clamp fixed blocks so at least three buildable weeks remain. Never a
	// hard failure past the minimum-total check.
	remaining := total - bd.Transition - bd.Taper - bd.Goal
	for remaining < 3 && bd.Taper > 1 {
		bd.Taper--
		remaining++
	}
	for remaining < 3 && bd.Transition > 0 {
		bd.Transition--
		remaining++
	}

	base, intensity, specificity := p.distribute(profile, remaining)
	specificity = p.clampSpecificity(race, base, specificity, &base)
	base, intensity = p.extendBaseForAerobicDeficiency(profile, base, intensity)

	bd.Base = base
	bd.Intensity = intensity
	bd.Specificity = specificity
	// Rounding remainder goes back to base.
	bd.Base += remaining - (base + intensity + specificity)
	if bd.Base < 0 {
		// Minimum-specificity clamping overshot the runway; absorb it there.
		bd.Specificity += bd.Base
		bd.Base = 0
	}
	return bd
}

// distribute splits buildable weeks across base/intensity/specificity using
// banded fractions keyed on the remaining-week count and category minimums.
func (p *Planner) distribute(profile athlete.Profile, remaining int) (base, intensity, specificity int) {
	var baseFrac, intensityFrac float64
	switch {
	case remaining < 12:
		baseFrac, intensityFrac = 0.50, 0.25
	case remaining < 20:
		baseFrac, intensityFrac = 0.45, 0.30
	default:
		baseFrac, intensityFrac = 0.40, 0.30
	}

	base = int(math.Round(float64(remaining) * baseFrac))
	intensity = int(math.Round(float64(remaining) * intensityFrac))

	minBase := p.policy.MinBaseWeeks[profile.Category]
	if base < minBase {
		base = minBase
	}
	// Short runways can't honor the category minimum; leave at least one
	// intensity and one specificity week.
	if base > remaining-2 {
		base = remaining - 2
	}
	if base < 1 {
		base = 1
	}
	if intensity > remaining-base-1 {
		intensity = remaining - base - 1
	}
	if intensity < 1 && remaining-base >= 2 {
		intensity = 1
	}
	if intensity < 0 {
		intensity = 0
	}
	specificity = remaining - base - intensity
	if specificity < 0 {
		specificity = 0
	}
	return base, intensity, specificity
}

// clampSpecificity trims specificity toward the race-type ideal, moving any
// surplus into base, and pulls weeks from base when specificity sits under
// the ideal. It never drops below the global specificity minimum.
func (p *Planner) clampSpecificity(race athlete.RaceEvent, base, specificity int, baseOut *int) int {
	ideal, ok := p.policy.SpecificityIdeal[race.Type]
	if !ok {
		ideal = p.policy.MinSpecificity
	}
	if specificity > ideal {
		*baseOut = base + (specificity - ideal)
		specificity = ideal
	} else if specificity < ideal {
		minBase := 1
		pull := ideal - specificity
		if base-pull < minBase {
			pull = base - minBase
		}
		if pull > 0 {
			*baseOut = base - pull
			specificity += pull
		}
	}
	if specificity < p.policy.MinSpecificity {
		specificity = p.policy.MinSpecificity
	}
	return specificity
}

// extendBaseForAerobicDeficiency lengthens base when the athlete's aerobic
// and lactate thresholds sit too far apart, taking weeks from intensity
// first.
func (p *Planner) extendBaseForAerobicDeficiency(profile athlete.Profile, base, intensity int) (int, int) {
	gap, ok := profile.AerobicDeficiencyPct()
	if !ok || gap <= p.policy.GapThresholdPct {
		return base, intensity
	}
	excess := gap - p.policy.GapThresholdPct
	extra := int(excess/5) * p.policy.ExtensionPer5Pct
	if extra > p.policy.MaxExtensionWeeks {
		extra = p.policy.MaxExtensionWeeks
	}
	// Taken from intensity down to one week; beyond that base grows only at
	// the expense of total accuracy, so the rest is dropped.
	for extra > 0 && intensity > 1 {
		intensity--
		base++
		extra--
	}
	return base, intensity
}

// buildWeeks walks forward from start, 7 days a week, phase by phase in
// fixed order, skipping zero-length phases.
func (p *Planner) buildWeeks(start time.Time, bd Breakdown) []plan.MacrocycleWeek {
	weeks := make([]plan.MacrocycleWeek, 0, bd.Total())
	number := 1
	cursor := start
	for _, phase := range plan.PhaseOrder {
		for i := 0; i < bd.Weeks(phase); i++ {
			weeks = append(weeks, plan.MacrocycleWeek{
				Number:      number,
				Phase:       phase,
				Start:       cursor,
				End:         cursor.AddDate(0, 0, 6),
				WeekInPhase: i + 1,
			})
			number++
			cursor = cursor.AddDate(0, 0, 7)
		}
	}
	return weeks
}
