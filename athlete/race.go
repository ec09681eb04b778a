package athlete

import "time"

// RaceType is the distance/discipline class of a race.
type RaceType string

const (
	RaceShortTrail RaceType = "short_trail" // sub-ultra
	Race50K        RaceType = "50k"
	Race50M        RaceType = "50m"
	Race100K       RaceType = "100k"
	Race100M       RaceType = "100m"
	Race200M       RaceType = "200m"
)

// RacePriority ranks a race's importance in the plan.
type RacePriority string

const (
	PriorityA RacePriority = "A" // goal race
	PriorityB RacePriority = "B" // tune-up
	PriorityC RacePriority = "C" // training race
)

// RaceEvent is a race on the athlete's calendar. Created from user input and
// read-only to the planner thereafter.
type RaceEvent struct {
	Name        string       `json:"name"`
	Date        time.Time    `json:"date"`
	DistanceKm  float64      `json:"distanceKm"`
	VerticalM   float64      `json:"verticalM"`
	Type        RaceType     `json:"type"`
	Priority    RacePriority `json:"priority"`
	AltitudeM   float64      `json:"altitudeM,omitempty"`
	Climate     string       `json:"climate,omitempty"`
	Terrain     string       `json:"terrain,omitempty"`
	Technical   bool         `json:"technical,omitempty"`
	ExpectedMin float64      `json:"expectedMin,omitempty"` // expected finish time, 0 when unknown
}

// InferRaceType bands a distance into a race type. Band edges sit at the
// midpoints between the nominal distances (50km, 80km, 100km, 160km, 320km)
// so every distance maps to exactly one type; 80km is a 50-miler, the 100K
// band starts at 90km.
func InferRaceType(distanceKm float64) RaceType {
	switch {
	case distanceKm < 42:
		return RaceShortTrail
	case distanceKm < 65:
		return Race50K
	case distanceKm < 90:
		return Race50M
	case distanceKm < 130:
		return Race100K
	case distanceKm < 250:
		return Race100M
	default:
		return Race200M
	}
}

// EstimateDurationMin estimates a finish time when the athlete has not
// supplied one: 6 min/km plus 10 minutes per 100m of climb.
func (r RaceEvent) EstimateDurationMin() float64 {
	if r.ExpectedMin > 0 {
		return r.ExpectedMin
	}
	return r.DistanceKm*6 + r.VerticalM/100*10
}
