package adaptive

import (
	"fmt"
	"math"

	"github.com/briangreenhill/ultraplan/plan"
)

// Mutation caps for the medical-attention rewrite.
const (
	medicalVolumeFactor  = 0.4
	medicalMaxDistanceKm = 8.0
	medicalMaxDurationMin = 60.0
	deloadFactor         = 0.7
	skipWorkoutFactor    = 0.5
)

// apply dispatches the decision to its mutation and stamps the adaptation
// note. Locked sessions (races) are never rescaled or removed.
func apply(week *plan.WeeklyPlan, d Decision) {
	switch d.Action {
	case ActionMaintain:
		week.AdaptationNote = "plan maintained: " + d.Reason
		return
	case ActionReduceVolumeMinor:
		scaleVolume(week, 1+d.VolumeAdjustment)
	case ActionReduceIntensity:
		reduceIntensity(week)
	case ActionAddRestDay:
		addRestDay(week)
	case ActionDeloadWeek:
		scaleVolume(week, deloadFactor)
		reduceIntensity(week)
	case ActionSkipWorkout:
		skipWorkout(week)
	case ActionShiftLongRun:
		shiftLongRun(week)
	case ActionMedicalAttention:
		medicalAttention(week)
	}
	week.AdaptationNote = fmt.Sprintf("%s applied (%+.0f%% volume): %s", d.Action, d.VolumeAdjustment*100, d.Reason)
}

// scaleVolume multiplies every unlocked, non-rest session's distance and
// duration, rounding distance to one decimal and duration to the minute.
func scaleVolume(week *plan.WeeklyPlan, factor float64) {
	for i := range week.Days {
		for j := range week.Days[i].Sessions {
			s := &week.Days[i].Sessions[j]
			if s.Locked || s.Type == plan.TypeRest {
				continue
			}
			s.DistanceKm = round1(s.DistanceKm * factor)
			s.DurationMin = math.Round(s.DurationMin * factor)
			s.VerticalM = math.Round(s.VerticalM * factor)
		}
	}
}

// reduceIntensity downgrades high-intensity sessions to medium.
func reduceIntensity(week *plan.WeeklyPlan) {
	for i := range week.Days {
		for j := range week.Days[i].Sessions {
			s := &week.Days[i].Sessions[j]
			if s.Locked || s.Intensity != plan.IntensityHigh {
				continue
			}
			s.Intensity = plan.IntensityMedium
			s.Notes = appendNote(s.Notes, "intensity reduced after feedback")
		}
	}
}

// addRestDay clears the lowest-load day that holds only easy-class work and
// no long run.
func addRestDay(week *plan.WeeklyPlan) {
	victim, victimLoad := -1, math.MaxFloat64
	for i, d := range week.Days {
		if d.IsRestDay() || d.HasType(plan.TypeLong) || d.HasHighIntensity() {
			continue
		}
		if locked(d) {
			continue
		}
		if load := d.TotalDistanceKm(); load < victimLoad {
			victim, victimLoad = i, load
		}
	}
	if victim < 0 {
		week.AddNote("add_rest_day: no convertible easy day found")
		return
	}
	week.Days[victim].Sessions = nil
}

// skipWorkout replaces the first high-intensity day's sessions with one easy
// run at half the day's volume.
func skipWorkout(week *plan.WeeklyPlan) {
	for i, d := range week.Days {
		if !d.HasHighIntensity() || locked(d) {
			continue
		}
		dist := round1(d.TotalDistanceKm() * skipWorkoutFactor)
		week.Days[i].Sessions = []plan.Session{{
			ID:          fmt.Sprintf("w%02d-%s-skip", week.WeekNumber, d.Day),
			Type:        plan.TypeEasy,
			Title:       "Easy run (workout skipped)",
			DistanceKm:  dist,
			DurationMin: math.Round(dist * 6),
			VerticalM:   math.Round(dist * 10),
			Intensity:   plan.IntensityLow,
			Origin:      plan.OriginAdaptive,
		}}
		return
	}
	week.AddNote("skip_workout: no high-intensity day found")
}

// shiftLongRun swaps the long-run day with the following day, or the
// previous one when the long run already sits on Sunday.
func shiftLongRun(week *plan.WeeklyPlan) {
	for i, d := range week.Days {
		if !d.HasType(plan.TypeLong) {
			continue
		}
		j := i + 1
		if j > 6 {
			j = i - 1
		}
		if j < 0 || locked(week.Days[j]) || locked(d) {
			week.AddNote("shift_long_run: adjacent day not swappable")
			return
		}
		week.Days[i].Sessions, week.Days[j].Sessions = week.Days[j].Sessions, week.Days[i].Sessions
		return
	}
	week.AddNote("shift_long_run: no long run in week")
}

// medicalAttention rewrites the week to an alternating rest / very easy
// recovery pattern at no more than 40% of the original volume. Locked race
// sessions stay where they are.
func medicalAttention(week *plan.WeeklyPlan) {
	target := week.TotalDistanceKm() * medicalVolumeFactor

	recoveryDays := 0
	for i := range week.Days {
		if i%2 == 1 && !locked(week.Days[i]) {
			recoveryDays++
		}
	}
	perDay := 0.0
	if recoveryDays > 0 {
		perDay = math.Min(medicalMaxDistanceKm, round1(target/float64(recoveryDays)))
	}

	for i := range week.Days {
		if locked(week.Days[i]) {
			continue
		}
		if i%2 == 0 || perDay <= 0 {
			week.Days[i].Sessions = nil
			continue
		}
		dur := math.Min(medicalMaxDurationMin, math.Round(perDay*6))
		week.Days[i].Sessions = []plan.Session{{
			ID:          fmt.Sprintf("w%02d-%s-recovery", week.WeekNumber, week.Days[i].Day),
			Type:        plan.TypeRecovery,
			Title:       "Very easy recovery",
			DistanceKm:  perDay,
			DurationMin: dur,
			Intensity:   plan.IntensityLow,
			Origin:      plan.OriginAdaptive,
			Notes:       "medical attention recommended before resuming normal training",
		}}
	}
}

func locked(d plan.DailyPlan) bool {
	for _, s := range d.Sessions {
		if s.Locked {
			return true
		}
	}
	return false
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "; " + note
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
