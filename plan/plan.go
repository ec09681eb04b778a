// Package plan defines the data model shared by the training plan engine:
// periodization phases, macrocycle weeks, sessions, daily and weekly plans.
package plan

import "time"

// Phase represents a periodization phase within a macrocycle.
type Phase string

// Phases in their fixed macrocycle order.
const (
	PhaseTransition  Phase = "transition"
	PhaseBase        Phase = "base"
	PhaseIntensity   Phase = "intensity"
	PhaseSpecificity Phase = "specificity"
	PhaseTaper       Phase = "taper"
	PhaseGoal        Phase = "goal"
)

// PhaseOrder lists phases in the only order they may appear in a macrocycle.
var PhaseOrder = []Phase{
	PhaseTransition,
	PhaseBase,
	PhaseIntensity,
	PhaseSpecificity,
	PhaseTaper,
	PhaseGoal,
}

// DayNames lists day-of-week labels, Monday first. All weekly plans and
// rest-day sets use these labels.
var DayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex returns the Monday-first index of a day label, or -1 if the label
// is unknown.
func DayIndex(day string) int {
	for i, d := range DayNames {
		if d == day {
			return i
		}
	}
	return -1
}

// MacrocycleWeek is one calendar week of the macrocycle.
type MacrocycleWeek struct {
	Number      int       `json:"number"` // 1-based across the whole plan
	Phase       Phase     `json:"phase"`
	Start       time.Time `json:"start"` // Monday
	End         time.Time `json:"end"`   // Sunday
	WeekInPhase int       `json:"weekInPhase"`
}

// DailyPlan is one calendar day with zero or more sessions. An empty session
// list means a rest day.
type DailyPlan struct {
	Date     time.Time `json:"date"`
	Day      string    `json:"day"` // label from DayNames
	Sessions []Session `json:"sessions"`
}

// IsRestDay reports whether the day has no sessions scheduled.
func (d DailyPlan) IsRestDay() bool { return len(d.Sessions) == 0 }

// TotalDistanceKm sums session distances for the day.
func (d DailyPlan) TotalDistanceKm() float64 {
	var sum float64
	for _, s := range d.Sessions {
		sum += s.DistanceKm
	}
	return sum
}

// TotalDurationMin sums session durations for the day.
func (d DailyPlan) TotalDurationMin() float64 {
	var sum float64
	for _, s := range d.Sessions {
		sum += s.DurationMin
	}
	return sum
}

// HasHighIntensity reports whether any session on the day is high intensity.
func (d DailyPlan) HasHighIntensity() bool {
	for _, s := range d.Sessions {
		if s.Intensity == IntensityHigh {
			return true
		}
	}
	return false
}

// HasType reports whether any session on the day has the given type.
func (d DailyPlan) HasType(t SessionType) bool {
	for _, s := range d.Sessions {
		if s.Type == t {
			return true
		}
	}
	return false
}

// WeeklyPlan is one concrete microcycle: seven days of sessions plus targets
// and bookkeeping. It is mutated in place by the adaptive controller and the
// conflict resolver so completed-session history survives adaptation.
type WeeklyPlan struct {
	WeekNumber       int        `json:"weekNumber"`
	Phase            Phase      `json:"phase"`
	Start            time.Time  `json:"start"`
	End              time.Time  `json:"end"`
	RecoveryWeek     bool       `json:"recoveryWeek"`
	TargetDistanceKm float64    `json:"targetDistanceKm"`
	TargetVerticalM  float64    `json:"targetVerticalM"`
	ActualDistanceKm float64    `json:"actualDistanceKm"`
	ActualVerticalM  float64    `json:"actualVerticalM"`
	Days             [7]DailyPlan `json:"days"` // Monday first
	Notes            []string   `json:"notes,omitempty"`
	AdaptationNote   string     `json:"adaptationNote,omitempty"`
}

// Day returns a pointer to the daily plan with the given label, or nil.
func (w *WeeklyPlan) Day(label string) *DailyPlan {
	i := DayIndex(label)
	if i < 0 {
		return nil
	}
	return &w.Days[i]
}

// TotalDistanceKm sums planned distance across the week.
func (w *WeeklyPlan) TotalDistanceKm() float64 {
	var sum float64
	for _, d := range w.Days {
		sum += d.TotalDistanceKm()
	}
	return sum
}

// TotalVerticalM sums planned vertical gain across the week.
func (w *WeeklyPlan) TotalVerticalM() float64 {
	var sum float64
	for _, d := range w.Days {
		for _, s := range d.Sessions {
			sum += s.VerticalM
		}
	}
	return sum
}

// RestDayCount counts days with no sessions.
func (w *WeeklyPlan) RestDayCount() int {
	n := 0
	for _, d := range w.Days {
		if d.IsRestDay() {
			n++
		}
	}
	return n
}

// AddNote appends a free-text note to the week.
func (w *WeeklyPlan) AddNote(note string) {
	if note == "" {
		return
	}
	w.Notes = append(w.Notes, note)
}
