// Package athlete holds the athlete and race model the planning engine
// consumes: profiles, the category classification, race events and the
// rolling feedback records the adaptive controller reads.
package athlete

// Category splits athletes into a low-volume/novice and a
// high-volume/experienced training track.
type Category string

const (
	Cat1 Category = "cat1" // low volume / novice
	Cat2 Category = "cat2" // high volume / experienced
)

// RecoveryRatio is the hard-weeks-to-recovery-weeks cadence.
type RecoveryRatio string

const (
	Recovery2to1 RecoveryRatio = "2:1"
	Recovery3to1 RecoveryRatio = "3:1"
)

// CadenceWeeks returns the length of one hard+recovery block, i.e. a
// recovery week recurs every CadenceWeeks-th week.
func (r RecoveryRatio) CadenceWeeks() int {
	if r == Recovery3to1 {
		return 4
	}
	return 3
}

// HardSessionQuota is the per-week hard session count the ratio implies.
func (r RecoveryRatio) HardSessionQuota() int {
	if r == Recovery3to1 {
		return 3
	}
	return 2
}

// RaceResult is a past race the athlete reported during onboarding.
type RaceResult struct {
	Name        string  `json:"name"`
	DistanceKm  float64 `json:"distanceKm"`
	VerticalM   float64 `json:"verticalM"`
	DurationMin float64 `json:"durationMin"`
}

// Surface is the athlete's preferred running surface.
type Surface string

const (
	SurfaceTrail Surface = "trail"
	SurfaceRoad  Surface = "road"
	SurfaceMixed Surface = "mixed"
)

// Profile is the classified athlete profile. Category, starting volume,
// volume ceiling and recovery ratio are outputs of Classify, not user input.
// A profile is immutable within a planning session and re-derived whenever
// onboarding data changes.
type Profile struct {
	ID            string  `json:"id"`
	Age           int     `json:"age"`
	YearsTraining float64 `json:"yearsTraining"`

	// Onboarding history, most recent last.
	WeeklyMileageKm []float64    `json:"weeklyMileageKm"`
	AvgVerticalM    float64      `json:"avgVerticalM"`
	RecentRaces     []RaceResult `json:"recentRaces,omitempty"`
	ConsistencyPct  float64      `json:"consistencyPct"` // 0-100

	InjuryHistory []string `json:"injuryHistory,omitempty"`

	// Threshold heart rates, 0 when unknown.
	AerobicThresholdHR int `json:"aerobicThresholdHR,omitempty"`
	LactateThresholdHR int `json:"lactateThresholdHR,omitempty"`

	Surface Surface `json:"surface"`

	// Classification outputs.
	Category         Category      `json:"category"`
	StartingVolumeKm float64       `json:"startingVolumeKm"`
	VolumeCeilingKm  float64       `json:"volumeCeilingKm"`
	RecoveryRatio    RecoveryRatio `json:"recoveryRatio"`
}

// RecentMileageAvg averages the last n recorded weekly mileages, or all of
// them when fewer than n exist. Returns 0 with no history.
func (p Profile) RecentMileageAvg(n int) float64 {
	h := p.WeeklyMileageKm
	if len(h) == 0 || n <= 0 {
		return 0
	}
	if len(h) > n {
		h = h[len(h)-n:]
	}
	var sum float64
	for _, v := range h {
		sum += v
	}
	return sum / float64(len(h))
}

// AerobicDeficiencyPct returns how far the aerobic/lactate threshold gap
// exceeds expectations, as a percentage of lactate threshold HR, and whether
// both thresholds were available to compute it.
func (p Profile) AerobicDeficiencyPct() (float64, bool) {
	if p.AerobicThresholdHR <= 0 || p.LactateThresholdHR <= 0 {
		return 0, false
	}
	gap := float64(p.LactateThresholdHR-p.AerobicThresholdHR) / float64(p.LactateThresholdHR) * 100
	if gap < 0 {
		gap = 0
	}
	return gap, true
}
