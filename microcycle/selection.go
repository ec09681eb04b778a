package microcycle

import (
	"math"

	"github.com/briangreenhill/ultraplan/catalog"
	"github.com/briangreenhill/ultraplan/plan"
)

// keyTypes returns the phase's key session types in priority order. When the
// training week is short the later entries are dropped first.
func keyTypes(phase plan.Phase, weekInPhase int) []plan.SessionType {
	switch phase {
	case plan.PhaseBase:
		return []plan.SessionType{plan.TypeHillSprints, plan.TypeStrides}
	case plan.PhaseIntensity:
		return []plan.SessionType{plan.TypeVO2Max, plan.TypeTempo}
	case plan.PhaseSpecificity:
		// Alternate hill repeats with race-specific efforts week over week.
		if weekInPhase%2 == 1 {
			return []plan.SessionType{plan.TypeHillRepeats}
		}
		return []plan.SessionType{plan.TypeRacePace}
	case plan.PhaseTaper:
		// Single short sharpener.
		return []plan.SessionType{plan.TypeTempo}
	}
	return nil
}

// runSession reports whether a session type covers ground (and therefore
// carries distance and vertical).
func runSession(t plan.SessionType) bool {
	switch t {
	case plan.TypeStrength, plan.TypeCoreStability, plan.TypeCrossTraining, plan.TypeRest:
		return false
	}
	return true
}

// verticalPerKm is the back-fill vertical heuristic by workout type.
func verticalPerKm(t plan.SessionType) float64 {
	switch t {
	case plan.TypeHillSprints, plan.TypeHillRepeats, plan.TypeDownhill:
		return 45
	case plan.TypeLong, plan.TypeBackToBack, plan.TypeMuscularEndurance:
		return 18
	default:
		return 10
	}
}

// concretize resolves a template into a concrete session: range midpoints
// first, then any still-missing dimension back-filled from the others using
// fixed pace and vertical assumptions.
func (g *Generator) concretize(t catalog.Template, id string, origin plan.Origin) plan.Session {
	s := plan.Session{
		ID:        id,
		Type:      t.Type,
		Title:     t.Title,
		Intensity: t.Intensity,
		Zones:     t.Zones,
		Origin:    origin,
	}
	if t.Intervals != nil {
		iv := *t.Intervals
		s.Intervals = &iv
	}

	if !t.Duration.IsZero() {
		s.DurationMin = t.Duration.Mid()
	}
	if !t.Distance.IsZero() {
		s.DistanceKm = t.Distance.Mid()
	}
	if !t.Vertical.IsZero() {
		s.VerticalM = t.Vertical.Mid()
	}

	pace := g.policy.EasyPaceMinPerKm
	if t.Intensity != plan.IntensityLow {
		pace = g.policy.HardPaceMinPerKm
	}
	if runSession(t.Type) {
		if s.DurationMin == 0 && s.DistanceKm > 0 {
			s.DurationMin = s.DistanceKm * pace
		}
		if s.DistanceKm == 0 && s.DurationMin > 0 {
			s.DistanceKm = s.DurationMin / pace
		}
		if s.VerticalM == 0 {
			s.VerticalM = s.DistanceKm * verticalPerKm(t.Type)
		}
	}

	s.DistanceKm = round1(s.DistanceKm)
	s.DurationMin = math.Round(s.DurationMin)
	s.VerticalM = math.Round(s.VerticalM)
	return s
}

// longRunFor builds the week's single long session, sized by the phase's
// share of the weekly target rather than the template midpoint.
func (g *Generator) longRunFor(in WeekInput, targetKm float64, id string, origin plan.Origin) (plan.Session, bool) {
	tmpl, ok := g.catalog.Find(catalog.Query{
		Type:     plan.TypeLong,
		Phase:    in.Week.Phase,
		Category: in.Profile.Category,
		RaceType: in.Race.Type,
	})
	if !ok {
		return plan.Session{}, false
	}
	s := g.concretize(tmpl, id, origin)

	share := g.policy.LongRunShare[in.Week.Phase]
	if share <= 0 {
		share = 0.33
	}
	s.DistanceKm = round1(targetKm * share)
	s.DurationMin = math.Round(s.DistanceKm * g.policy.EasyPaceMinPerKm)
	s.VerticalM = math.Round(s.DistanceKm * verticalPerKm(plan.TypeLong))
	if in.Constraints.MaxDailyVerticalM > 0 && s.VerticalM > in.Constraints.MaxDailyVerticalM {
		s.VerticalM = in.Constraints.MaxDailyVerticalM
	}
	return s, true
}

// findSession resolves one catalog slot; a miss after the fallback chain
// leaves the slot empty (an implicit rest day).
func (g *Generator) findSession(in WeekInput, typ plan.SessionType, id string, origin plan.Origin) (plan.Session, bool) {
	tmpl, ok := g.catalog.Find(catalog.Query{
		Type:     typ,
		Phase:    in.Week.Phase,
		Category: in.Profile.Category,
		RaceType: in.Race.Type,
	})
	if !ok {
		return plan.Session{}, false
	}
	return g.concretize(tmpl, id, origin), true
}
