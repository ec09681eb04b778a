// Package safety checks candidate weekly plans against volume, intensity
// and recovery guardrails. The evaluator is advisory-only: it never edits a
// plan, it returns blocking violations and non-blocking warnings as data and
// the caller decides what to do.
package safety

import (
	"fmt"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/plan"
)

// Severity ranks a violation. Errors and criticals block, warnings never do.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Violation is one guardrail hit. Message is machine-oriented; the
// explanation layer turns it into athlete-facing text.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Value    float64  `json:"value"`
	Limit    float64  `json:"limit"`
}

// Result buckets blocking violations separately from warnings.
type Result struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"` // error + critical
	Warnings   []Violation `json:"warnings,omitempty"`
}

// Rule identifiers.
const (
	RuleVolumeBand        = "volume-band"
	RuleWeeklyIncrease    = "weekly-increase"
	RuleWeeklyDecrease    = "weekly-decrease"
	RuleRestDays          = "rest-days"
	RuleConsecutiveHard   = "consecutive-hard-days"
	RuleHardSessionQuota  = "hard-session-quota"
	RuleHighIntensityCap  = "high-intensity-cap"
	RuleConsecutiveHigh   = "consecutive-high-intensity"
	RuleACWR              = "acwr"
	RuleAgeAdjustedVolume = "age-adjusted-volume"
)

// Limits is the evaluator's policy table.
type Limits struct {
	VolumeBands map[athlete.Category]plan.Range // km per week

	MaxWeeklyIncrease float64 // error above
	MaxWeeklyDecrease float64 // warning above (taper should be gradual)

	MinRestDays        int
	MinRestDaysAge     int // age at which MinRestDaysOlder applies
	MinRestDaysOlder   int
	MaxConsecutiveHard int

	MaxHighIntensity map[athlete.Category]int

	ACWRCritical float64
	ACWRWarn     float64
	ACWRLow      float64

	// Category ceiling reductions by age.
	AgeReduction40 float64
	AgeReduction50 float64
}

// DefaultLimits returns the production guardrail table.
func DefaultLimits() Limits {
	return Limits{
		VolumeBands: map[athlete.Category]plan.Range{
			athlete.Cat1: {Min: 15, Max: 100},
			athlete.Cat2: {Min: 30, Max: 160},
		},
		MaxWeeklyIncrease:  0.10,
		MaxWeeklyDecrease:  0.30,
		MinRestDays:        1,
		MinRestDaysAge:     40,
		MinRestDaysOlder:   2,
		MaxConsecutiveHard: 2,
		MaxHighIntensity: map[athlete.Category]int{
			athlete.Cat1: 2,
			athlete.Cat2: 3,
		},
		ACWRCritical:   1.5,
		ACWRWarn:       1.3,
		ACWRLow:        0.7,
		AgeReduction40: 0.10,
		AgeReduction50: 0.20,
	}
}

// Evaluator runs the guardrail rule set.
type Evaluator struct {
	limits Limits
}

// New builds an evaluator.
func New(limits Limits) *Evaluator {
	return &Evaluator{limits: limits}
}

// Check evaluates a candidate week. history is the athlete's recorded weekly
// mileages, most recent last; prevWeekKm is the immediately previous week's
// actual mileage, 0 when unknown.
func (e *Evaluator) Check(week *plan.WeeklyPlan, profile athlete.Profile, history []float64, prevWeekKm float64) Result {
	var all []Violation
	volume := week.TotalDistanceKm()

	all = append(all, e.checkVolumeBand(volume, profile)...)
	all = append(all, e.checkWeekOverWeek(volume, prevWeekKm)...)
	all = append(all, e.checkRecovery(week, profile)...)
	all = append(all, e.checkIntensity(week, profile)...)
	all = append(all, e.checkACWR(volume, history)...)
	all = append(all, e.checkAgeAdjusted(week, volume, profile)...)

	res := Result{Passed: true}
	for _, v := range all {
		if v.Severity == SeverityWarning {
			res.Warnings = append(res.Warnings, v)
			continue
		}
		res.Violations = append(res.Violations, v)
		res.Passed = false
	}
	return res
}

func (e *Evaluator) checkVolumeBand(volume float64, profile athlete.Profile) []Violation {
	band, ok := e.limits.VolumeBands[profile.Category]
	if !ok {
		return nil
	}
	switch {
	case volume > band.Max:
		return []Violation{{
			Rule: RuleVolumeBand, Severity: SeverityError,
			Message: fmt.Sprintf("weekly volume %.1fkm exceeds %s max %.0fkm", volume, profile.Category, band.Max),
			Value:   volume, Limit: band.Max,
		}}
	case volume < band.Min:
		return []Violation{{
			Rule: RuleVolumeBand, Severity: SeverityWarning,
			Message: fmt.Sprintf("weekly volume %.1fkm under %s min %.0fkm", volume, profile.Category, band.Min),
			Value:   volume, Limit: band.Min,
		}}
	}
	return nil
}

func (e *Evaluator) checkWeekOverWeek(volume, prevWeekKm float64) []Violation {
	if prevWeekKm <= 0 {
		return nil
	}
	var out []Violation
	if limit := prevWeekKm * (1 + e.limits.MaxWeeklyIncrease); volume > limit {
		out = append(out, Violation{
			Rule: RuleWeeklyIncrease, Severity: SeverityError,
			Message: fmt.Sprintf("volume %.1fkm is more than %.0f%% over last week's %.1fkm", volume, e.limits.MaxWeeklyIncrease*100, prevWeekKm),
			Value:   volume, Limit: limit,
		})
	}
	if limit := prevWeekKm * (1 - e.limits.MaxWeeklyDecrease); volume < limit {
		out = append(out, Violation{
			Rule: RuleWeeklyDecrease, Severity: SeverityWarning,
			Message: fmt.Sprintf("volume %.1fkm drops more than %.0f%% from last week's %.1fkm", volume, e.limits.MaxWeeklyDecrease*100, prevWeekKm),
			Value:   volume, Limit: limit,
		})
	}
	return out
}

func (e *Evaluator) checkRecovery(week *plan.WeeklyPlan, profile athlete.Profile) []Violation {
	var out []Violation

	minRest := e.limits.MinRestDays
	if profile.Age >= e.limits.MinRestDaysAge {
		minRest = e.limits.MinRestDaysOlder
	}
	rest := week.RestDayCount()
	if rest < 1 {
		out = append(out, Violation{
			Rule: RuleRestDays, Severity: SeverityCritical,
			Message: "no rest day in week",
			Value:   float64(rest), Limit: 1,
		})
	} else if rest < minRest {
		out = append(out, Violation{
			Rule: RuleRestDays, Severity: SeverityWarning,
			Message: fmt.Sprintf("%d rest day(s), minimum %d at age %d", rest, minRest, profile.Age),
			Value:   float64(rest), Limit: float64(minRest),
		})
	}

	// Consecutive high-intensity-or-long days.
	streak, maxStreak := 0, 0
	for _, d := range week.Days {
		hard := false
		for _, s := range d.Sessions {
			if s.IsHard() {
				hard = true
				break
			}
		}
		if hard {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 0
		}
	}
	if maxStreak > e.limits.MaxConsecutiveHard {
		out = append(out, Violation{
			Rule: RuleConsecutiveHard, Severity: SeverityError,
			Message: fmt.Sprintf("%d consecutive hard or long days, max %d", maxStreak, e.limits.MaxConsecutiveHard),
			Value:   float64(maxStreak), Limit: float64(e.limits.MaxConsecutiveHard),
		})
	}

	// Hard-session quota implied by the recovery ratio.
	quota := profile.RecoveryRatio.HardSessionQuota()
	hardCount := 0
	for _, d := range week.Days {
		for _, s := range d.Sessions {
			if s.IsHard() {
				hardCount++
			}
		}
	}
	if hardCount > quota {
		out = append(out, Violation{
			Rule: RuleHardSessionQuota, Severity: SeverityWarning,
			Message: fmt.Sprintf("%d hard sessions against a %s recovery-ratio quota of %d", hardCount, profile.RecoveryRatio, quota),
			Value:   float64(hardCount), Limit: float64(quota),
		})
	}
	return out
}

func (e *Evaluator) checkIntensity(week *plan.WeeklyPlan, profile athlete.Profile) []Violation {
	var out []Violation

	count := 0
	for _, d := range week.Days {
		for _, s := range d.Sessions {
			if s.Intensity == plan.IntensityHigh {
				count++
			}
		}
	}
	if cap, ok := e.limits.MaxHighIntensity[profile.Category]; ok && count > cap {
		out = append(out, Violation{
			Rule: RuleHighIntensityCap, Severity: SeverityError,
			Message: fmt.Sprintf("%d high-intensity sessions, %s cap is %d", count, profile.Category, cap),
			Value:   float64(count), Limit: float64(cap),
		})
	}

	for i := 0; i < 6; i++ {
		if week.Days[i].HasHighIntensity() && week.Days[i+1].HasHighIntensity() {
			out = append(out, Violation{
				Rule: RuleConsecutiveHigh, Severity: SeverityWarning,
				Message: fmt.Sprintf("high-intensity sessions on consecutive days %s and %s", week.Days[i].Day, week.Days[i+1].Day),
				Value:   2, Limit: 1,
			})
			break
		}
	}
	return out
}

func (e *Evaluator) checkACWR(volume float64, history []float64) []Violation {
	ratio, ok := ACWR(history, volume)
	if !ok {
		return nil
	}
	switch {
	case ratio > e.limits.ACWRCritical:
		return []Violation{{
			Rule: RuleACWR, Severity: SeverityCritical,
			Message: fmt.Sprintf("acute:chronic workload ratio %.2f above %.1f injury-risk threshold", ratio, e.limits.ACWRCritical),
			Value:   ratio, Limit: e.limits.ACWRCritical,
		}}
	case ratio > e.limits.ACWRWarn:
		return []Violation{{
			Rule: RuleACWR, Severity: SeverityWarning,
			Message: fmt.Sprintf("acute:chronic workload ratio %.2f above %.1f", ratio, e.limits.ACWRWarn),
			Value:   ratio, Limit: e.limits.ACWRWarn,
		}}
	case ratio < e.limits.ACWRLow:
		return []Violation{{
			Rule: RuleACWR, Severity: SeverityWarning,
			Message: fmt.Sprintf("acute:chronic workload ratio %.2f below %.1f, detraining risk", ratio, e.limits.ACWRLow),
			Value:   ratio, Limit: e.limits.ACWRLow,
		}}
	}
	return nil
}

func (e *Evaluator) checkAgeAdjusted(week *plan.WeeklyPlan, volume float64, profile athlete.Profile) []Violation {
	band, ok := e.limits.VolumeBands[profile.Category]
	if !ok {
		return nil
	}
	ceiling := band.Max
	switch {
	case profile.Age >= 50:
		ceiling *= 1 - e.limits.AgeReduction50
	case profile.Age >= 40:
		ceiling *= 1 - e.limits.AgeReduction40
	default:
		return nil
	}
	if volume > ceiling {
		return []Violation{{
			Rule: RuleAgeAdjustedVolume, Severity: SeverityWarning,
			Message: fmt.Sprintf("volume %.1fkm exceeds age-adjusted ceiling %.1fkm at age %d", volume, ceiling, profile.Age),
			Value:   volume, Limit: ceiling,
		}}
	}
	return nil
}
