package constraints

import (
	"fmt"

	"github.com/briangreenhill/ultraplan/plan"
)

// FlagRestDayViolation marks a session scheduled on a constrained rest day.
const FlagRestDayViolation = "rest-day-violation"

// ValidationResult is the outcome of a structural weekly-plan check.
type ValidationResult struct {
	IsValid      bool     `json:"isValid"`
	Flags        []string `json:"flags,omitempty"`
	Messages     []string `json:"messages,omitempty"`
	RestDayCount int      `json:"restDayCount"` // days in the plan with no sessions
}

// ValidateWeeklyPlan enforces the hard structural rule that every day in the
// constraint's rest-day set has an empty session list. One flag is produced
// per violated rest day.
func ValidateWeeklyPlan(w *plan.WeeklyPlan, c TrainingConstraints) ValidationResult {
	res := ValidationResult{IsValid: true, RestDayCount: w.RestDayCount()}
	for _, day := range c.RestDays {
		d := w.Day(day)
		if d == nil {
			continue
		}
		if !d.IsRestDay() {
			res.IsValid = false
			res.Flags = append(res.Flags, FlagRestDayViolation)
			res.Messages = append(res.Messages,
				fmt.Sprintf("%d session(s) scheduled on rest day %s", len(d.Sessions), day))
		}
	}
	return res
}
