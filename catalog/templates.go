package catalog

import (
	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/plan"
)

// Default returns the built-in template library. Values are ranges; the
// generator resolves them per athlete and week.
func Default() *Catalog {
	return New(defaultTemplates)
}

var defaultTemplates = []Template{
	// Easy aerobic variants. Kept deliberately interchangeable so the
	// generator can rotate through them for variety.
	{
		Type: plan.TypeEasy, Title: "Easy run",
		Duration: plan.Range{Min: 40, Max: 60}, Intensity: plan.IntensityLow,
		Zones: []string{"Z1", "Z2"},
	},
	{
		Type: plan.TypeEasy, Title: "Relaxed trail run",
		Duration: plan.Range{Min: 45, Max: 70}, Intensity: plan.IntensityLow,
		Zones: []string{"Z2"},
	},
	{
		Type: plan.TypeEasy, Title: "Easy run with pickups",
		Duration: plan.Range{Min: 40, Max: 55}, Intensity: plan.IntensityLow,
		Zones: []string{"Z2"},
	},
	{
		Type: plan.TypeRecovery, Title: "Recovery jog",
		Duration: plan.Range{Min: 25, Max: 40}, Intensity: plan.IntensityLow,
		Zones: []string{"Z1"},
	},

	// Long runs by phase.
	{
		Type: plan.TypeLong, Title: "Aerobic long run",
		Phases:   []plan.Phase{plan.PhaseTransition, plan.PhaseBase},
		Duration: plan.Range{Min: 90, Max: 150}, Intensity: plan.IntensityMedium,
		Zones: []string{"Z2"},
	},
	{
		Type: plan.TypeLong, Title: "Long run with quality surges",
		Phases:   []plan.Phase{plan.PhaseIntensity},
		Duration: plan.Range{Min: 120, Max: 180}, Intensity: plan.IntensityMedium,
		Zones: []string{"Z2", "Z3"},
	},
	{
		Type: plan.TypeLong, Title: "Race-terrain long run",
		Phases:   []plan.Phase{plan.PhaseSpecificity},
		Duration: plan.Range{Min: 150, Max: 240}, Intensity: plan.IntensityMedium,
		Zones: []string{"Z2", "Z3"},
		RaceTypes: []athlete.RaceType{
			athlete.Race50K, athlete.Race50M, athlete.Race100K,
			athlete.Race100M, athlete.Race200M,
		},
	},
	{
		Type: plan.TypeLong, Title: "Shortened taper long run",
		Phases:   []plan.Phase{plan.PhaseTaper},
		Duration: plan.Range{Min: 60, Max: 90}, Intensity: plan.IntensityLow,
		Zones: []string{"Z2"},
	},
	{
		Type: plan.TypeBackToBack, Title: "Back-to-back long day",
		Phases:     []plan.Phase{plan.PhaseSpecificity},
		Categories: []athlete.Category{athlete.Cat2},
		Duration:   plan.Range{Min: 90, Max: 150}, Intensity: plan.IntensityMedium,
		Zones: []string{"Z2"},
		RaceTypes: []athlete.RaceType{
			athlete.Race100K, athlete.Race100M, athlete.Race200M,
		},
	},

	// Base phase quality.
	{
		Type: plan.TypeHillSprints, Title: "Hill sprints",
		Phases:   []plan.Phase{plan.PhaseBase},
		Duration: plan.Range{Min: 40, Max: 55}, Intensity: plan.IntensityHigh,
		Zones:    []string{"Z2", "Z5"},
		Intervals: &plan.Intervals{
			WarmupMin: 15, CooldownMin: 10, Repeats: 8, WorkMin: 0.25, RecoveryMin: 2,
		},
	},
	{
		Type: plan.TypeStrides, Title: "Easy run plus strides",
		Phases:   []plan.Phase{plan.PhaseBase},
		Duration: plan.Range{Min: 40, Max: 55}, Intensity: plan.IntensityLow,
		Zones:    []string{"Z2", "Z4"},
		Intervals: &plan.Intervals{
			WarmupMin: 0, CooldownMin: 5, Repeats: 6, WorkMin: 0.33, RecoveryMin: 1.5,
		},
	},

	// Intensity phase quality.
	{
		Type: plan.TypeVO2Max, Title: "VO2max intervals",
		Phases:   []plan.Phase{plan.PhaseIntensity},
		Duration: plan.Range{Min: 55, Max: 75}, Intensity: plan.IntensityHigh,
		Zones:    []string{"Z5"},
		Intervals: &plan.Intervals{
			WarmupMin: 15, CooldownMin: 10, Repeats: 5, WorkMin: 3, RecoveryMin: 3,
		},
	},
	{
		Type: plan.TypeTempo, Title: "Tempo run",
		Phases:   []plan.Phase{plan.PhaseIntensity, plan.PhaseSpecificity},
		Duration: plan.Range{Min: 50, Max: 70}, Intensity: plan.IntensityHigh,
		Zones:    []string{"Z3", "Z4"},
		Intervals: &plan.Intervals{
			WarmupMin: 15, CooldownMin: 10, Repeats: 1, WorkMin: 25, RecoveryMin: 0,
		},
	},
	{
		Type: plan.TypeThreshold, Title: "Threshold cruise intervals",
		Phases:   []plan.Phase{plan.PhaseIntensity},
		Duration: plan.Range{Min: 55, Max: 75}, Intensity: plan.IntensityHigh,
		Zones:    []string{"Z4"},
		Intervals: &plan.Intervals{
			WarmupMin: 15, CooldownMin: 10, Repeats: 3, WorkMin: 10, RecoveryMin: 2,
		},
	},
	{
		Type: plan.TypeFartlek, Title: "Fartlek",
		Phases:   []plan.Phase{plan.PhaseBase, plan.PhaseIntensity},
		Duration: plan.Range{Min: 45, Max: 60}, Intensity: plan.IntensityMedium,
		Zones: []string{"Z2", "Z4"},
	},
	{
		Type: plan.TypeProgression, Title: "Progression run",
		Phases:   []plan.Phase{plan.PhaseIntensity, plan.PhaseSpecificity},
		Duration: plan.Range{Min: 50, Max: 70}, Intensity: plan.IntensityMedium,
		Zones: []string{"Z2", "Z4"},
	},

	// Specificity phase quality.
	{
		Type: plan.TypeHillRepeats, Title: "Long hill repeats",
		Phases:   []plan.Phase{plan.PhaseSpecificity},
		Duration: plan.Range{Min: 60, Max: 85}, Intensity: plan.IntensityHigh,
		Zones:    []string{"Z3", "Z4"},
		Vertical: plan.Range{Min: 400, Max: 700},
		Intervals: &plan.Intervals{
			WarmupMin: 15, CooldownMin: 10, Repeats: 6, WorkMin: 5, RecoveryMin: 3,
		},
	},
	{
		Type: plan.TypeRacePace, Title: "Race-pace effort",
		Phases:   []plan.Phase{plan.PhaseSpecificity},
		Duration: plan.Range{Min: 60, Max: 90}, Intensity: plan.IntensityMedium,
		Zones: []string{"Z3"},
	},
	{
		Type: plan.TypeDownhill, Title: "Downhill repeats",
		Phases:     []plan.Phase{plan.PhaseSpecificity},
		Categories: []athlete.Category{athlete.Cat2},
		Duration:   plan.Range{Min: 50, Max: 70}, Intensity: plan.IntensityHigh,
		Zones: []string{"Z3"},
		RaceTypes: []athlete.RaceType{
			athlete.Race100K, athlete.Race100M, athlete.Race200M,
		},
	},

	// Taper sharpener.
	{
		Type: plan.TypeTempo, Title: "Taper sharpener",
		Phases:   []plan.Phase{plan.PhaseTaper},
		Duration: plan.Range{Min: 30, Max: 40}, Intensity: plan.IntensityMedium,
		Zones:    []string{"Z2", "Z4"},
		Intervals: &plan.Intervals{
			WarmupMin: 10, CooldownMin: 10, Repeats: 4, WorkMin: 2, RecoveryMin: 2,
		},
	},

	// Strength and muscular endurance.
	{
		Type: plan.TypeMuscularEndurance, Title: "Weighted uphill hike",
		Duration: plan.Range{Min: 60, Max: 90}, Intensity: plan.IntensityMedium,
		Vertical: plan.Range{Min: 300, Max: 600},
		Zones:    []string{"Z2", "Z3"},
	},
	{
		Type: plan.TypeMuscularEndurance, Title: "Gym muscular endurance circuit",
		Duration:   plan.Range{Min: 45, Max: 60}, Intensity: plan.IntensityMedium,
		Categories: []athlete.Category{athlete.Cat1},
	},
	{
		Type: plan.TypeStrength, Title: "General strength",
		Duration: plan.Range{Min: 30, Max: 45}, Intensity: plan.IntensityLow,
	},
	{
		Type: plan.TypeCoreStability, Title: "Core and stability",
		Duration: plan.Range{Min: 15, Max: 25}, Intensity: plan.IntensityLow,
	},

	// Environment-specific.
	{
		Type: plan.TypeHeatAdaptation, Title: "Heat adaptation run",
		Phases:   []plan.Phase{plan.PhaseSpecificity, plan.PhaseTaper},
		Duration: plan.Range{Min: 40, Max: 60}, Intensity: plan.IntensityLow,
		Zones: []string{"Z1", "Z2"},
	},
	{
		Type: plan.TypeCrossTraining, Title: "Cross training",
		Phases:   []plan.Phase{plan.PhaseTransition},
		Duration: plan.Range{Min: 40, Max: 60}, Intensity: plan.IntensityLow,
	},
}
