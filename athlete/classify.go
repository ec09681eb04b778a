package athlete

import "math"

// Classification thresholds. An athlete is Cat2 only when volume, experience
// and consistency all clear the bar.
const (
	cat2MinWeeklyKm       = 40.0
	cat2MinYearsTraining  = 3.0
	cat2MinConsistencyPct = 70.0

	cat1FloorKm   = 15.0
	cat2FloorKm   = 30.0
	cat1CeilingKm = 100.0
	cat2CeilingKm = 160.0

	classifyHistoryWeeks = 4
)

// Classify derives category, starting volume, volume ceiling and recovery
// ratio from onboarding data and writes them onto a copy of the profile.
// The derivation is pure: the same inputs always produce the same outputs.
func Classify(p Profile) Profile {
	recent := p.RecentMileageAvg(classifyHistoryWeeks)

	p.Category = Cat1
	if recent >= cat2MinWeeklyKm &&
		p.YearsTraining >= cat2MinYearsTraining &&
		p.ConsistencyPct >= cat2MinConsistencyPct {
		p.Category = Cat2
	}

	floor, ceiling := cat1FloorKm, cat1CeilingKm
	if p.Category == Cat2 {
		floor, ceiling = cat2FloorKm, cat2CeilingKm
	}

	// Starting volume is what the athlete actually handles now, kept inside
	// the category band and rounded to a whole km.
	start := recent
	if start < floor {
		start = floor
	}
	if start > ceiling {
		start = ceiling
	}
	p.StartingVolumeKm = math.Round(start)
	p.VolumeCeilingKm = ceiling

	// Older or less consistent athletes recover on a tighter cadence.
	p.RecoveryRatio = Recovery3to1
	if p.Category == Cat1 || p.Age >= 50 {
		p.RecoveryRatio = Recovery2to1
	}

	return p
}
