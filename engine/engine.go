// Package engine is the library boundary of the planning core: it wires the
// macrocycle planner, microcycle generator, conflict resolver, guardrail
// evaluator and adaptive controller into the two operations the surrounding
// application calls — building a plan and adapting a week.
package engine

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/briangreenhill/ultraplan/adaptive"
	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/catalog"
	"github.com/briangreenhill/ultraplan/conflict"
	"github.com/briangreenhill/ultraplan/constraints"
	"github.com/briangreenhill/ultraplan/macrocycle"
	"github.com/briangreenhill/ultraplan/microcycle"
	"github.com/briangreenhill/ultraplan/plan"
	"github.com/briangreenhill/ultraplan/safety"
)

// Engine composes the planning pipeline. All policy tables are fixed at
// construction; the engine itself is stateless and safe for concurrent use
// across athletes.
type Engine struct {
	macro      *macrocycle.Planner
	micro      *microcycle.Generator
	evaluator  *safety.Evaluator
	controller *adaptive.Controller
}

// Options overrides individual policy tables; zero-valued fields fall back
// to production defaults.
type Options struct {
	Catalog          *catalog.Catalog
	MacrocyclePolicy *macrocycle.Policy
	MicrocyclePolicy *microcycle.Policy
	SafetyLimits     *safety.Limits
}

// New builds an engine. New(Options{}) is the production configuration.
func New(opts Options) *Engine {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	macroPolicy := macrocycle.DefaultPolicy()
	if opts.MacrocyclePolicy != nil {
		macroPolicy = *opts.MacrocyclePolicy
	}
	microPolicy := microcycle.DefaultPolicy()
	if opts.MicrocyclePolicy != nil {
		microPolicy = *opts.MicrocyclePolicy
	}
	limits := safety.DefaultLimits()
	if opts.SafetyLimits != nil {
		limits = *opts.SafetyLimits
	}
	evaluator := safety.New(limits)
	return &Engine{
		macro:      macrocycle.New(macroPolicy),
		micro:      microcycle.NewGenerator(cat, microPolicy),
		evaluator:  evaluator,
		controller: adaptive.NewController(evaluator),
	}
}

// PlanRequest is everything BuildPlan needs. Start is injected by the
// caller — the engine never reads the system clock.
type PlanRequest struct {
	Profile     athlete.Profile
	Race        athlete.RaceEvent
	Start       time.Time
	FromRace    bool
	Constraints constraints.TrainingConstraints
	// History holds recorded weekly mileages, most recent last, for the
	// workload-ratio checks.
	History []float64
	// TuneUpRaces are B/C races inside the plan horizon; they are inserted
	// as locked race sessions on their calendar dates.
	TuneUpRaces []athlete.RaceEvent
}

// TrainingPlan is a fully generated, validated plan.
type TrainingPlan struct {
	ID        string               `json:"id"`
	AthleteID string               `json:"athleteId"`
	Race      athlete.RaceEvent    `json:"race"`
	Breakdown macrocycle.Breakdown `json:"breakdown"`
	Weeks     []plan.WeeklyPlan    `json:"weeks"`
	Checks    []safety.Result      `json:"checks"`
}

// Week returns the plan's week by number, or nil.
func (t *TrainingPlan) Week(n int) *plan.WeeklyPlan {
	for i := range t.Weeks {
		if t.Weeks[i].WeekNumber == n {
			return &t.Weeks[i]
		}
	}
	return nil
}

// BuildPlan runs the full pipeline: macrocycle allocation, per-week
// microcycle generation with the recovery-week cadence, tune-up race
// insertion, a conflict-resolution pass and a guardrail validation whose
// warnings are attached to each week.
func (e *Engine) BuildPlan(req PlanRequest) (*TrainingPlan, error) {
	weeks, breakdown, err := e.macro.Build(req.Profile, req.Race, req.Start, req.FromRace)
	if err != nil {
		return nil, err
	}

	out := &TrainingPlan{
		ID:        uuid.NewString(),
		AthleteID: req.Profile.ID,
		Race:      req.Race,
		Breakdown: breakdown,
		Weeks:     make([]plan.WeeklyPlan, 0, len(weeks)),
		Checks:    make([]safety.Result, 0, len(weeks)),
	}

	cadence := req.Profile.RecoveryRatio.CadenceWeeks()
	history := append([]float64{}, req.History...)
	prev := lastOf(history)

	for _, mw := range weeks {
		in := microcycle.WeekInput{
			Week:         mw,
			Profile:      req.Profile,
			Race:         req.Race,
			RecoveryWeek: isRecoveryWeek(mw, cadence),
			PrevWeekKm:   prev,
			Constraints:  req.Constraints,
		}
		week := e.micro.Generate(in)
		e.insertTuneUpRaces(&week, req.TuneUpRaces, req.Race)

		report := conflict.ResolveWeek(&week)
		for _, u := range report.Unresolved() {
			week.AddNote("unresolved conflict: " + u.Reason)
		}

		check := e.evaluator.Check(&week, req.Profile, history, prev)
		for _, w := range check.Warnings {
			week.AddNote("safety warning: " + w.Message)
		}

		prev = week.TotalDistanceKm()
		history = append(history, prev)
		out.Weeks = append(out.Weeks, week)
		out.Checks = append(out.Checks, check)
	}
	return out, nil
}

// AdaptWeek applies the feedback-driven adaptation pipeline to one week in
// place and returns the decision taken.
func (e *Engine) AdaptWeek(week *plan.WeeklyPlan, window []athlete.DailyFeedback, profile athlete.Profile, history []float64) adaptive.Decision {
	return e.controller.Apply(week, window, profile, history, lastOf(history))
}

// isRecoveryWeek marks every cadence-th week of the building phases.
func isRecoveryWeek(mw plan.MacrocycleWeek, cadence int) bool {
	switch mw.Phase {
	case plan.PhaseBase, plan.PhaseIntensity, plan.PhaseSpecificity:
		return cadence > 0 && mw.WeekInPhase%cadence == 0
	}
	return false
}

// insertTuneUpRaces adds locked race sessions for B/C races falling inside
// the week. The goal race itself is handled by the generator's race-week
// override.
func (e *Engine) insertTuneUpRaces(week *plan.WeeklyPlan, races []athlete.RaceEvent, goal athlete.RaceEvent) {
	for _, r := range races {
		if r.Date.Equal(goal.Date) || r.Date.Before(week.Start) || r.Date.After(week.End.AddDate(0, 0, 1)) {
			continue
		}
		idx := int(r.Date.Sub(week.Start).Hours() / 24)
		if idx < 0 || idx > 6 {
			continue
		}
		week.Days[idx].Sessions = []plan.Session{{
			ID:          week.Days[idx].Day + "-race",
			Type:        plan.TypeSimulation,
			Title:       r.Name,
			DistanceKm:  r.DistanceKm,
			VerticalM:   r.VerticalM,
			DurationMin: math.Round(r.EstimateDurationMin()),
			Intensity:   plan.IntensityHigh,
			Origin:      plan.OriginRace,
			Locked:      true,
			LockReason:  "scheduled " + string(r.Priority) + " race",
		}}
	}
}

func lastOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return vs[len(vs)-1]
}
