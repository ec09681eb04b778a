package adaptive

import (
	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/conflict"
	"github.com/briangreenhill/ultraplan/plan"
	"github.com/briangreenhill/ultraplan/safety"
)

// Controller wires signal extraction, the decision ladder and plan mutation
// together and re-validates every mutated week.
type Controller struct {
	evaluator *safety.Evaluator
}

// NewController builds a controller over a guardrail evaluator.
func NewController(evaluator *safety.Evaluator) *Controller {
	return &Controller{evaluator: evaluator}
}

// Apply ingests the rolling feedback window, decides an action and mutates
// the week in place. The mutated week is passed through the conflict
// resolver and re-checked by the guardrail evaluator; resulting warnings are
// appended to plan notes rather than reverting the mutation. Apply never
// fails: an empty window yields maintain by construction.
func (c *Controller) Apply(week *plan.WeeklyPlan, window []athlete.DailyFeedback, profile athlete.Profile, history []float64, prevWeekKm float64) Decision {
	decision := Decide(ExtractSignals(window))
	apply(week, decision)
	if decision.Action == ActionMaintain {
		return decision
	}

	report := conflict.ResolveWeek(week)
	for _, res := range report.Resolutions {
		week.AddNote(res.Note)
	}
	for _, u := range report.Unresolved() {
		week.AddNote("unresolved conflict: " + u.Reason)
	}

	check := c.evaluator.Check(week, profile, history, prevWeekKm)
	for _, v := range check.Violations {
		week.AddNote("safety: " + v.Message)
	}
	for _, w := range check.Warnings {
		week.AddNote("safety warning: " + w.Message)
	}
	return decision
}
