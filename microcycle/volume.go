package microcycle

import (
	"math"

	"github.com/briangreenhill/ultraplan/plan"
)

// targetMileage computes the week's target distance: starting volume times
// phase and category multipliers, bounded by the 10% rule (or forced down
// 20% on recovery weeks) and the athlete's absolute ceiling.
func (g *Generator) targetMileage(in WeekInput) float64 {
	target := in.Profile.StartingVolumeKm *
		g.policy.PhaseVolume[in.Week.Phase] *
		g.policy.CategoryVolume[in.Profile.Category]

	if in.PrevWeekKm > 0 {
		if in.RecoveryWeek {
			target = in.PrevWeekKm * (1 - g.policy.RecoveryReduction)
		} else if cap := in.PrevWeekKm * (1 + g.policy.MaxWeeklyIncrease); target > cap {
			target = cap
		}
	}

	if in.Profile.VolumeCeilingKm > 0 && target > in.Profile.VolumeCeilingKm {
		target = in.Profile.VolumeCeilingKm
	}
	return round1(target)
}

// targetVertical derives the vertical-gain target from the mileage target
// and the goal race's profile, boosted in specificity and halved in taper.
func (g *Generator) targetVertical(in WeekInput, targetKm float64) float64 {
	rate := g.policy.VerticalPerKmFlat
	if in.Race.VerticalM > g.policy.HillyRaceVerticalM {
		rate = g.policy.VerticalPerKmHilly
	}
	vert := targetKm * rate
	switch in.Week.Phase {
	case plan.PhaseSpecificity:
		vert *= 1 + g.policy.SpecificityVerticalBoost
	case plan.PhaseTaper:
		vert *= g.policy.TaperVerticalFactor
	}
	if in.Constraints.MaxWeeklyVerticalM > 0 && vert > in.Constraints.MaxWeeklyVerticalM {
		vert = in.Constraints.MaxWeeklyVerticalM
	}
	return math.Round(vert)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
