package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/engine"
	"github.com/briangreenhill/ultraplan/plan"
)

// Memory is an in-process Store used by tests and the CLI. It honors the
// same version-conflict semantics as the Postgres store.
type Memory struct {
	mu       sync.RWMutex
	profiles map[string]athlete.Profile
	plans    map[string]*engine.TrainingPlan
	versions map[string]int64
	feedback map[string][]athlete.DailyFeedback
	mileage  map[string]map[time.Time]float64
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]athlete.Profile),
		plans:    make(map[string]*engine.TrainingPlan),
		versions: make(map[string]int64),
		feedback: make(map[string][]athlete.DailyFeedback),
		mileage:  make(map[string]map[time.Time]float64),
	}
}

func (m *Memory) SaveProfile(_ context.Context, p athlete.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

func (m *Memory) GetProfile(_ context.Context, athleteID string) (athlete.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[athleteID]
	if !ok {
		return athlete.Profile{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) SavePlan(_ context.Context, p *engine.TrainingPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Weeks = append([]plan.WeeklyPlan{}, p.Weeks...)
	m.plans[p.AthleteID] = &cp
	m.versions[p.AthleteID] = 1
	return nil
}

func (m *Memory) GetPlan(_ context.Context, athleteID string) (*engine.TrainingPlan, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[athleteID]
	if !ok {
		return nil, 0, ErrNotFound
	}
	cp := *p
	cp.Weeks = append([]plan.WeeklyPlan{}, p.Weeks...)
	return &cp, m.versions[athleteID], nil
}

func (m *Memory) ReplaceWeek(_ context.Context, athleteID string, week plan.WeeklyPlan, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[athleteID]
	if !ok {
		return ErrNotFound
	}
	if m.versions[athleteID] != expectedVersion {
		return ErrVersionConflict
	}
	for i := range p.Weeks {
		if p.Weeks[i].WeekNumber == week.WeekNumber {
			p.Weeks[i] = week
			m.versions[athleteID]++
			return nil
		}
	}
	return fmt.Errorf("week %d: %w", week.WeekNumber, ErrNotFound)
}

func (m *Memory) AddFeedback(_ context.Context, athleteID string, fb athlete.DailyFeedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.feedback[athleteID]
	for i := range list {
		if sameDay(list[i].Date, fb.Date) {
			list[i] = fb
			return nil
		}
	}
	m.feedback[athleteID] = append(list, fb)
	return nil
}

func (m *Memory) FeedbackSince(_ context.Context, athleteID string, cutoff time.Time) ([]athlete.DailyFeedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []athlete.DailyFeedback
	for _, fb := range m.feedback[athleteID] {
		if !fb.Date.Before(cutoff) {
			out = append(out, fb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) RecordMileage(_ context.Context, athleteID string, weekStart time.Time, km float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mileage[athleteID] == nil {
		m.mileage[athleteID] = make(map[time.Time]float64)
	}
	m.mileage[athleteID][weekStart] = km
	return nil
}

func (m *Memory) MileageHistory(_ context.Context, athleteID string, n int) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	weeks := make([]time.Time, 0, len(m.mileage[athleteID]))
	for ws := range m.mileage[athleteID] {
		weeks = append(weeks, ws)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
	if len(weeks) > n {
		weeks = weeks[len(weeks)-n:]
	}
	out := make([]float64, 0, len(weeks))
	for _, ws := range weeks {
		out = append(out, m.mileage[athleteID][ws])
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
