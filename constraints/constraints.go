// Package constraints derives the structural training constraints a weekly
// plan must honor: training-day count, rest-day set and vertical ceilings.
// The rest-day derivation is pure and reproducible bit-for-bit: the same
// daysPerWeek always yields the same day sets.
package constraints

import "github.com/briangreenhill/ultraplan/plan"

// TrainingConstraints bounds what the microcycle generator may schedule.
type TrainingConstraints struct {
	DaysPerWeek        int       `json:"daysPerWeek"`
	RestDays           []string  `json:"restDays"`
	WeeklyHours        plan.Range `json:"weeklyHours"`
	MaxDailyVerticalM  float64   `json:"maxDailyVerticalM"`
	MaxWeeklyVerticalM float64   `json:"maxWeeklyVerticalM"`
}

// TrainingDays spreads daysPerWeek training days as evenly as possible over
// the Monday-first week by even sampling: day index floor(i*7/daysPerWeek).
func TrainingDays(daysPerWeek int) []string {
	daysPerWeek = clampDays(daysPerWeek)
	out := make([]string, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		out = append(out, plan.DayNames[i*7/daysPerWeek])
	}
	return out
}

// DeriveRestDays returns the 7-daysPerWeek days not selected by
// TrainingDays, in Monday-first order.
func DeriveRestDays(daysPerWeek int) []string {
	daysPerWeek = clampDays(daysPerWeek)
	training := make(map[string]bool, daysPerWeek)
	for _, d := range TrainingDays(daysPerWeek) {
		training[d] = true
	}
	out := make([]string, 0, 7-daysPerWeek)
	for _, d := range plan.DayNames {
		if !training[d] {
			out = append(out, d)
		}
	}
	return out
}

func clampDays(n int) int {
	if n < 0 {
		return 0
	}
	if n > 7 {
		return 7
	}
	return n
}

// Derive builds constraints from the onboarding days-per-week answer. When
// the athlete gave no explicit rest days the set is derived by even sampling.
func Derive(daysPerWeek int, explicitRestDays []string) TrainingConstraints {
	daysPerWeek = clampDays(daysPerWeek)
	rest := explicitRestDays
	if len(rest) == 0 {
		rest = DeriveRestDays(daysPerWeek)
	}
	return TrainingConstraints{
		DaysPerWeek: daysPerWeek,
		RestDays:    rest,
		WeeklyHours: plan.Range{
			Min: float64(daysPerWeek),
			Max: float64(daysPerWeek) * 1.75,
		},
		MaxDailyVerticalM:  1200,
		MaxWeeklyVerticalM: 4000,
	}
}

// SupplementRestDays extends an explicit rest-day set until it covers
// 7-daysPerWeek days, pulling missing days from the even-sampling derivation
// first and then walking Monday to Sunday. Deterministic for a given input.
func (c TrainingConstraints) SupplementRestDays() []string {
	need := 7 - c.DaysPerWeek
	have := make(map[string]bool, len(c.RestDays))
	out := make([]string, 0, need)
	for _, d := range c.RestDays {
		if plan.DayIndex(d) >= 0 && !have[d] {
			have[d] = true
			out = append(out, d)
		}
	}
	for _, d := range DeriveRestDays(c.DaysPerWeek) {
		if len(out) >= need {
			break
		}
		if !have[d] {
			have[d] = true
			out = append(out, d)
		}
	}
	for _, d := range plan.DayNames {
		if len(out) >= need {
			break
		}
		if !have[d] {
			have[d] = true
			out = append(out, d)
		}
	}
	return out
}

// IsRestDay reports whether the day label is in the constraint's rest set.
func (c TrainingConstraints) IsRestDay(day string) bool {
	for _, d := range c.RestDays {
		if d == day {
			return true
		}
	}
	return false
}
