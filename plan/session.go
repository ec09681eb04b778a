package plan

// SessionType classifies a workout session.
type SessionType string

// Session types known to the catalog and the generators.
const (
	TypeEasy              SessionType = "easy"
	TypeRecovery          SessionType = "recovery"
	TypeLong              SessionType = "long"
	TypeBackToBack        SessionType = "back_to_back"
	TypeTempo             SessionType = "tempo"
	TypeThreshold         SessionType = "threshold"
	TypeVO2Max            SessionType = "vo2max"
	TypeFartlek           SessionType = "fartlek"
	TypeProgression       SessionType = "progression"
	TypeRacePace          SessionType = "race_pace"
	TypeHillSprints       SessionType = "hill_sprints"
	TypeHillRepeats       SessionType = "hill_repeats"
	TypeDownhill          SessionType = "downhill"
	TypeStrides           SessionType = "strides"
	TypeMuscularEndurance SessionType = "muscular_endurance"
	TypeStrength          SessionType = "strength"
	TypeCoreStability     SessionType = "core_stability"
	TypeHeatAdaptation    SessionType = "heat_adaptation"
	TypeCrossTraining     SessionType = "cross_training"
	TypeSimulation        SessionType = "simulation"
	TypeRest              SessionType = "rest"
)

// Intensity is the coarse intensity class of a session.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Origin records which component authored a session. Origin and the lock flag
// jointly decide whether the conflict resolver may ever auto-remove a session.
type Origin string

const (
	OriginBasePlan  Origin = "base_plan"
	OriginUser      Origin = "user"
	OriginAdaptive  Origin = "adaptive"
	OriginRace      Origin = "race"
	OriginRacePlan  Origin = "race_plan"
	OriginTaperPlan Origin = "taper_plan"
	OriginGenerated Origin = "generated"
)

// Range is a numeric range a template carries before the generator resolves
// it to a concrete value.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool { return r.Min == 0 && r.Max == 0 }

// Intervals describes the interval structure of a structured workout.
type Intervals struct {
	WarmupMin   float64 `json:"warmupMin"`
	CooldownMin float64 `json:"cooldownMin"`
	Repeats     int     `json:"repeats"`
	WorkMin     float64 `json:"workMin"`
	RecoveryMin float64 `json:"recoveryMin"`
}

// Session is one concrete scheduled workout. Duration, distance and vertical
// are always concrete here; ranges live on catalog templates and are resolved
// by the microcycle generator before a session enters a plan.
type Session struct {
	ID          string      `json:"id"`
	Type        SessionType `json:"type"`
	Title       string      `json:"title"`
	DurationMin float64     `json:"durationMin"`
	DistanceKm  float64     `json:"distanceKm"`
	VerticalM   float64     `json:"verticalM"`
	Intensity   Intensity   `json:"intensity"`
	Zones       []string    `json:"zones,omitempty"`
	Intervals   *Intervals  `json:"intervals,omitempty"`
	Origin      Origin      `json:"origin"`
	Locked      bool        `json:"locked"`
	LockReason  string      `json:"lockReason,omitempty"`
	Completed   bool        `json:"completed"`
	Notes       string      `json:"notes,omitempty"`
}

// Protected reports whether a session may never be auto-removed by the
// conflict resolver, either because it is locked or because of its origin.
func (s Session) Protected() bool {
	if s.Locked {
		return true
	}
	switch s.Origin {
	case OriginUser, OriginBasePlan, OriginRace:
		return true
	}
	return false
}

// IsHard reports whether the session counts against consecutive-hard-day and
// hard-session-quota rules: high intensity or a long-type effort.
func (s Session) IsHard() bool {
	return s.Intensity == IntensityHigh || s.Type == TypeLong || s.Type == TypeBackToBack
}
