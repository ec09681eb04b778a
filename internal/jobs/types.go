// Package jobs defines the asynq task types shared by the API (producer)
// and the worker (consumer).
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskAdaptWeek re-runs the adaptive controller for one athlete's week
// after a feedback submission.
const TaskAdaptWeek = "adapt:week"

// AdaptWeekPayload identifies the week to adapt.
type AdaptWeekPayload struct {
	AthleteID  string `json:"athlete_id"`
	WeekNumber int    `json:"week_number"`
}

// NewAdaptWeekTask builds the asynq task for a feedback submission.
func NewAdaptWeekTask(p AdaptWeekPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAdaptWeek, payload), nil
}
