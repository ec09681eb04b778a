package microcycle

import (
	"math"

	"github.com/briangreenhill/ultraplan/catalog"
	"github.com/briangreenhill/ultraplan/plan"
)

// keyDayPreference is the fixed day-pattern template for quality sessions:
// Tuesday and Thursday are the canonical key days, with deterministic
// spill-over when the athlete doesn't train on them.
var keyDayPreference = []string{"Tuesday", "Thursday", "Friday", "Monday", "Wednesday"}

// longDayPreference places the long run on the weekend when possible.
var longDayPreference = []string{"Saturday", "Sunday"}

// place fills the week's training days: long run, phase key sessions, the
// muscular-endurance session, core stability, then round-robin easy fill.
func (g *Generator) place(week *plan.WeeklyPlan, in WeekInput, rest map[string]bool) {
	var trainingDays []string
	for _, d := range plan.DayNames {
		if !rest[d] {
			trainingDays = append(trainingDays, d)
		}
	}
	if len(trainingDays) == 0 {
		return
	}

	baseOrigin := plan.OriginBasePlan
	if in.Week.Phase == plan.PhaseTaper {
		baseOrigin = plan.OriginTaperPlan
	}

	// Long run, exactly one per week.
	longDay := pickDay(longDayPreference, trainingDays, nil)
	if longDay == "" {
		longDay = trainingDays[len(trainingDays)-1]
	}
	assigned := map[string]bool{}
	if long, ok := g.longRunFor(in, week.TargetDistanceKm, sessionID(week.WeekNumber, longDay, 0), baseOrigin); ok {
		week.Day(longDay).Sessions = append(week.Day(longDay).Sessions, long)
		assigned[longDay] = true
	}

	// Phase key sessions on the pattern's key days.
	slots := len(trainingDays) - 1 // long day is spoken for
	for _, typ := range keyTypes(in.Week.Phase, in.Week.WeekInPhase) {
		if slots <= 0 {
			break
		}
		day := pickDay(keyDayPreference, trainingDays, assigned)
		if day == "" {
			break
		}
		if s, ok := g.findSession(in, typ, sessionID(week.WeekNumber, day, 0), baseOrigin); ok {
			week.Day(day).Sessions = append(week.Day(day).Sessions, s)
			assigned[day] = true
			slots--
		}
	}

	// Muscular endurance, once per week on the day with the most recovery
	// spacing from the long run and the key days. Dropped entirely when no
	// non-adjacent day exists.
	if meDay := pickMuscularEnduranceDay(trainingDays, week); meDay != "" {
		id := sessionID(week.WeekNumber, meDay, len(week.Day(meDay).Sessions))
		if s, ok := g.findSession(in, plan.TypeMuscularEndurance, id, plan.OriginGenerated); ok {
			week.Day(meDay).Sessions = append(week.Day(meDay).Sessions, s)
		}
	}

	g.fillEasyDays(week, in, trainingDays)
	g.addCoreSessions(week, in, trainingDays, longDay)
}

// pickDay returns the first preferred day that is a training day and not yet
// assigned a quality session.
func pickDay(preference, trainingDays []string, assigned map[string]bool) string {
	isTraining := map[string]bool{}
	for _, d := range trainingDays {
		isTraining[d] = true
	}
	for _, d := range preference {
		if isTraining[d] && !assigned[d] {
			return d
		}
	}
	return ""
}

// pickMuscularEnduranceDay maximizes the minimum day-distance to any hard or
// long day; adjacent days (distance < 2) are never eligible. Ties go to the
// earlier day.
func pickMuscularEnduranceDay(trainingDays []string, week *plan.WeeklyPlan) string {
	var hardIdx []int
	for i, d := range week.Days {
		for _, s := range d.Sessions {
			if s.IsHard() {
				hardIdx = append(hardIdx, i)
				break
			}
		}
	}

	best, bestSpacing := "", 0
	for _, day := range trainingDays {
		i := plan.DayIndex(day)
		if len(week.Days[i].Sessions) > 0 {
			continue
		}
		spacing := 7
		for _, h := range hardIdx {
			if d := abs(i - h); d < spacing {
				spacing = d
			}
		}
		if spacing >= 2 && spacing > bestSpacing {
			best, bestSpacing = day, spacing
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// fillEasyDays puts an easy run on every remaining training day, rotating
// through the catalog's easy templates for variety and sizing runs so the
// week lands near its distance target, with mid-week runs cut shorter. The
// day pattern pairs the muscular-endurance session with its own easy run, so
// a day holding only the ME session is filled too, at a reduced share.
func (g *Generator) fillEasyDays(week *plan.WeeklyPlan, in WeekInput, trainingDays []string) {
	shared := map[string]bool{}
	var fillDays []string
	for _, d := range trainingDays {
		day := week.Day(d)
		switch {
		case day.IsRestDay():
			fillDays = append(fillDays, d)
		case muscularEnduranceOnly(day):
			fillDays = append(fillDays, d)
			shared[d] = true
		}
	}
	if len(fillDays) == 0 {
		return
	}

	templates := g.catalog.FindAll(catalog.Query{
		Type:     plan.TypeEasy,
		Phase:    in.Week.Phase,
		Category: in.Profile.Category,
		RaceType: in.Race.Type,
	})
	if len(templates) == 0 {
		return
	}

	remaining := week.TargetDistanceKm - week.TotalDistanceKm()
	if remaining < 0 {
		remaining = 0
	}
	var weightSum float64
	for _, d := range fillDays {
		weightSum += g.easyFillWeight(d, shared[d])
	}

	for i, day := range fillDays {
		tmpl := templates[(week.WeekNumber+i)%len(templates)]
		id := sessionID(week.WeekNumber, day, len(week.Day(day).Sessions))
		s := g.concretize(tmpl, id, plan.OriginGenerated)
		if weightSum > 0 && remaining > 0 {
			km := remaining * g.easyFillWeight(day, shared[day]) / weightSum
			s.DistanceKm = round1(clamp(km, 3, 30))
			s.DurationMin = math.Round(s.DistanceKm * g.policy.EasyPaceMinPerKm)
			s.VerticalM = math.Round(s.DistanceKm * verticalPerKm(s.Type))
		}
		week.Day(day).Sessions = append(week.Day(day).Sessions, s)
	}
}

// muscularEnduranceOnly reports whether the day's scheduled work is the ME
// session alone.
func muscularEnduranceOnly(d *plan.DailyPlan) bool {
	if len(d.Sessions) == 0 {
		return false
	}
	for _, s := range d.Sessions {
		if s.Type != plan.TypeMuscularEndurance {
			return false
		}
	}
	return true
}

func (g *Generator) easyFillWeight(day string, sharedWithME bool) float64 {
	w := easyDayWeight(day, g.policy.MidweekEasyFactor)
	if sharedWithME {
		w *= g.policy.SharedDayEasyFactor
	}
	return w
}

func easyDayWeight(day string, midweekFactor float64) float64 {
	switch day {
	case "Tuesday", "Wednesday", "Thursday":
		return midweekFactor
	}
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// addCoreSessions attaches short core-stability sessions at the phase's
// frequency, first training days first, never on the long day.
func (g *Generator) addCoreSessions(week *plan.WeeklyPlan, in WeekInput, trainingDays []string, longDay string) {
	n := g.policy.CorePerWeek[in.Week.Phase]
	for _, day := range trainingDays {
		if n <= 0 {
			break
		}
		if day == longDay {
			continue
		}
		id := sessionID(week.WeekNumber, day, len(week.Day(day).Sessions))
		if s, ok := g.findSession(in, plan.TypeCoreStability, id, plan.OriginGenerated); ok {
			week.Day(day).Sessions = append(week.Day(day).Sessions, s)
			n--
		}
	}
}

// raceWeekOverride inserts the race itself when the race date falls inside
// the generated week: a locked simulation-type session on the exact calendar
// date. For an A race every later day in the week becomes a rest day.
func (g *Generator) raceWeekOverride(week *plan.WeeklyPlan, in WeekInput) {
	if in.Race.Date.Before(week.Start) || in.Race.Date.After(week.End.AddDate(0, 0, 1)) {
		return
	}
	idx := int(in.Race.Date.Sub(week.Start).Hours() / 24)
	if idx < 0 || idx > 6 {
		return
	}

	race := plan.Session{
		ID:          sessionID(week.WeekNumber, plan.DayNames[idx], 0),
		Type:        plan.TypeSimulation,
		Title:       in.Race.Name,
		DistanceKm:  in.Race.DistanceKm,
		VerticalM:   in.Race.VerticalM,
		DurationMin: math.Round(in.Race.EstimateDurationMin()),
		Intensity:   plan.IntensityHigh,
		Origin:      plan.OriginRace,
		Locked:      true,
		LockReason:  "scheduled race",
	}
	week.Days[idx].Sessions = []plan.Session{race}

	if in.Race.Priority == "A" {
		for i := idx + 1; i < 7; i++ {
			week.Days[i].Sessions = nil
		}
	}
}
