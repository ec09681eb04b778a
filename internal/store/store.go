// Package store persists athlete profiles, plans and feedback for the
// planning service. Concurrent mutations of the same athlete's current week
// are serialized with an optimistic-concurrency version check: the engine
// itself never performs I/O.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/engine"
	"github.com/briangreenhill/ultraplan/plan"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict means the plan changed between read and write; the
	// caller should re-read and retry.
	ErrVersionConflict = errors.New("plan version conflict")
)

// Store is the persistence boundary of the planning service.
type Store interface {
	SaveProfile(ctx context.Context, p athlete.Profile) error
	GetProfile(ctx context.Context, athleteID string) (athlete.Profile, error)

	// SavePlan stores a freshly built plan at version 1, replacing any
	// previous plan for the athlete.
	SavePlan(ctx context.Context, p *engine.TrainingPlan) error
	// GetPlan returns the plan and its current version.
	GetPlan(ctx context.Context, athleteID string) (*engine.TrainingPlan, int64, error)
	// ReplaceWeek swaps one week of the stored plan. It fails with
	// ErrVersionConflict unless expectedVersion matches the stored version;
	// on success the version is incremented.
	ReplaceWeek(ctx context.Context, athleteID string, week plan.WeeklyPlan, expectedVersion int64) error

	AddFeedback(ctx context.Context, athleteID string, fb athlete.DailyFeedback) error
	// FeedbackSince returns feedback on or after the cutoff, oldest first.
	FeedbackSince(ctx context.Context, athleteID string, cutoff time.Time) ([]athlete.DailyFeedback, error)

	// RecordMileage stores one completed week's actual mileage.
	RecordMileage(ctx context.Context, athleteID string, weekStart time.Time, km float64) error
	// MileageHistory returns up to n recorded weekly mileages, oldest first.
	MileageHistory(ctx context.Context, athleteID string, n int) ([]float64, error)
}
