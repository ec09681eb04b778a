package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/constraints"
	"github.com/briangreenhill/ultraplan/macrocycle"
	"github.com/briangreenhill/ultraplan/plan"
)

var start = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday

func testRequest(weeksOut int) PlanRequest {
	profile := athlete.Classify(athlete.Profile{
		ID: "ath-1", Age: 34, YearsTraining: 6, ConsistencyPct: 85,
		WeeklyMileageKm: []float64{48, 50, 52, 50},
		Surface:         athlete.SurfaceTrail,
	})
	return PlanRequest{
		Profile: profile,
		Race: athlete.RaceEvent{
			Name:       "Alpine 100K",
			Date:       start.AddDate(0, 0, weeksOut*7-2), // Saturday of the goal week
			DistanceKm: 100,
			VerticalM:  4500,
			Type:       athlete.Race100K,
			Priority:   athlete.PriorityA,
		},
		Start:       start,
		Constraints: constraints.Derive(5, nil),
		History:     []float64{48, 50, 52, 50},
	}
}

func TestBuildPlan_EndToEnd(t *testing.T) {
	e := New(Options{})
	req := testRequest(20)

	got, err := e.BuildPlan(req)
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
	require.Equal(t, "ath-1", got.AthleteID)
	require.Len(t, got.Weeks, 20)
	require.Len(t, got.Checks, 20)
	require.Equal(t, 20, got.Breakdown.Total())

	for i := range got.Weeks {
		wk := &got.Weeks[i]
		require.Equal(t, i+1, wk.WeekNumber)
		// Rest days are never scheduled over.
		res := constraints.ValidateWeeklyPlan(wk, req.Constraints)
		require.Truef(t, res.IsValid, "week %d: %v", wk.WeekNumber, res.Messages)
	}
}

func TestBuildPlan_WeekOverWeekVolumeIsBounded(t *testing.T) {
	e := New(Options{})
	got, err := e.BuildPlan(testRequest(20))
	require.NoError(t, err)

	prev := 50.0 // last recorded history week
	for i := range got.Weeks {
		wk := &got.Weeks[i]
		target := wk.TargetDistanceKm
		if !wk.RecoveryWeek {
			require.LessOrEqualf(t, target, prev*1.1+0.05,
				"week %d target %.1f after %.1f", wk.WeekNumber, target, prev)
		}
		prev = wk.TotalDistanceKm()
	}
}

func TestBuildPlan_RecoveryCadence(t *testing.T) {
	e := New(Options{})
	req := testRequest(20) // Cat2 profile, 3:1 ratio
	got, err := e.BuildPlan(req)
	require.NoError(t, err)
	require.Equal(t, athlete.Recovery3to1, req.Profile.RecoveryRatio)

	var sawRecovery bool
	for i := range got.Weeks {
		wk := &got.Weeks[i]
		switch wk.Phase {
		case plan.PhaseBase, plan.PhaseIntensity, plan.PhaseSpecificity:
			if wk.RecoveryWeek {
				sawRecovery = true
			}
		default:
			require.Falsef(t, wk.RecoveryWeek, "week %d (%s) marked recovery", wk.WeekNumber, wk.Phase)
		}
	}
	require.True(t, sawRecovery, "a 20-week plan must contain recovery weeks")
}

func TestBuildPlan_InsufficientTime(t *testing.T) {
	e := New(Options{})
	_, err := e.BuildPlan(testRequest(6))
	var insufficient *macrocycle.InsufficientTrainingTimeError
	require.ErrorAs(t, err, &insufficient)
}

func TestBuildPlan_GoalWeekEndsWithRace(t *testing.T) {
	e := New(Options{})
	got, err := e.BuildPlan(testRequest(20))
	require.NoError(t, err)

	last := &got.Weeks[len(got.Weeks)-1]
	require.Equal(t, plan.PhaseGoal, last.Phase)

	var race *plan.Session
	for d := range last.Days {
		for s := range last.Days[d].Sessions {
			if last.Days[d].Sessions[s].Type == plan.TypeSimulation {
				race = &last.Days[d].Sessions[s]
			}
		}
	}
	require.NotNil(t, race, "goal week has no race session")
	require.True(t, race.Locked)
	require.Equal(t, plan.OriginRace, race.Origin)
	require.Equal(t, "Alpine 100K", race.Title)
}

func TestBuildPlan_TuneUpRaceInserted(t *testing.T) {
	e := New(Options{})
	req := testRequest(20)
	tuneUpDate := start.AddDate(0, 0, 8*7+5) // Saturday of week 9
	req.TuneUpRaces = []athlete.RaceEvent{{
		Name: "Local 50K", Date: tuneUpDate, DistanceKm: 50, VerticalM: 1500,
		Type: athlete.Race50K, Priority: athlete.PriorityB,
	}}

	got, err := e.BuildPlan(req)
	require.NoError(t, err)

	week := got.Week(9)
	require.NotNil(t, week)
	sat := week.Day("Saturday")
	require.Len(t, sat.Sessions, 1)
	require.Equal(t, plan.TypeSimulation, sat.Sessions[0].Type)
	require.True(t, sat.Sessions[0].Locked)
	require.Equal(t, "Local 50K", sat.Sessions[0].Title)
}

func TestAdaptWeek_MutatesInPlace(t *testing.T) {
	e := New(Options{})
	got, err := e.BuildPlan(testRequest(20))
	require.NoError(t, err)

	week := got.Week(5)
	require.NotNil(t, week)
	before := week.TotalDistanceKm()

	window := []athlete.DailyFeedback{
		{Fatigue: 8}, {Fatigue: 8}, {Fatigue: 7}, {Fatigue: 8, InjuryReported: true},
	}
	d := e.AdaptWeek(week, window, testRequest(20).Profile, []float64{48, 50, 52, 50})
	require.Equal(t, "deload_week", string(d.Action))
	require.Less(t, week.TotalDistanceKm(), before)
	require.NotEmpty(t, week.AdaptationNote)
}

func TestWeek_Lookup(t *testing.T) {
	e := New(Options{})
	got, err := e.BuildPlan(testRequest(10))
	require.NoError(t, err)
	require.Nil(t, got.Week(0))
	require.Nil(t, got.Week(11))
	require.NotNil(t, got.Week(10))
}
