package catalog

import (
	"testing"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/plan"
)

func TestFind_MostSpecificMatchWins(t *testing.T) {
	c := Default()
	tmpl, ok := c.Find(Query{
		Type:     plan.TypeLong,
		Phase:    plan.PhaseSpecificity,
		Category: athlete.Cat2,
		RaceType: athlete.Race100K,
	})
	if !ok {
		t.Fatal("no long template for specificity phase")
	}
	if tmpl.Title != "Race-terrain long run" {
		t.Errorf("got %q", tmpl.Title)
	}
}

func TestFind_FallbackDropsRaceType(t *testing.T) {
	c := Default()
	// No specificity long run is tagged for short trail; the race-type tag is
	// relaxed before the phase tag.
	tmpl, ok := c.Find(Query{
		Type:     plan.TypeLong,
		Phase:    plan.PhaseSpecificity,
		Category: athlete.Cat1,
		RaceType: athlete.RaceShortTrail,
	})
	if !ok {
		t.Fatal("fallback found nothing")
	}
	if tmpl.Title != "Race-terrain long run" {
		t.Errorf("got %q", tmpl.Title)
	}
}

func TestFind_FallbackToTypeOnly(t *testing.T) {
	c := New([]Template{
		{Type: plan.TypeTempo, Title: "only tempo", Phases: []plan.Phase{plan.PhaseIntensity}},
	})
	// Nothing matches the goal phase; the type-only pool is the last resort.
	tmpl, ok := c.Find(Query{Type: plan.TypeTempo, Phase: plan.PhaseGoal})
	if !ok || tmpl.Title != "only tempo" {
		t.Fatalf("tmpl=%+v ok=%v", tmpl, ok)
	}
}

func TestFind_MissingTypeIsAMiss(t *testing.T) {
	c := New([]Template{{Type: plan.TypeEasy, Title: "easy"}})
	if _, ok := c.Find(Query{Type: plan.TypeVO2Max}); ok {
		t.Fatal("expected a miss for an absent type")
	}
}

func TestFindAll_CategoryFilter(t *testing.T) {
	c := Default()
	// The gym ME circuit is Cat1-only; Cat2 athletes get the hike variant.
	for _, tmpl := range c.FindAll(Query{
		Type: plan.TypeMuscularEndurance, Phase: plan.PhaseBase, Category: athlete.Cat2,
	}) {
		if tmpl.Title == "Gym muscular endurance circuit" {
			t.Errorf("cat1-only template matched for cat2")
		}
	}
}

func TestDefault_CoversGeneratorNeeds(t *testing.T) {
	c := Default()
	needed := []plan.SessionType{
		plan.TypeEasy, plan.TypeRecovery, plan.TypeLong, plan.TypeTempo,
		plan.TypeVO2Max, plan.TypeHillSprints, plan.TypeHillRepeats,
		plan.TypeRacePace, plan.TypeStrides, plan.TypeMuscularEndurance,
		plan.TypeCoreStability,
	}
	for _, typ := range needed {
		if _, ok := c.Find(Query{Type: typ}); !ok {
			t.Errorf("catalog has no %s template", typ)
		}
	}
}
