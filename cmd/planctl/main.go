// planctl builds a training plan from the command line, without the API or a
// database. Useful for eyeballing what the engine produces for a profile.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/constraints"
	"github.com/briangreenhill/ultraplan/engine"
	"github.com/briangreenhill/ultraplan/plan"
)

type planInput struct {
	Profile athlete.Profile   `json:"profile"`
	Race    athlete.RaceEvent `json:"race"`
	History []float64         `json:"history,omitempty"`
}

func main() {
	var (
		inputPath = flag.String("input", "", "path to a JSON file with profile and race (use - for stdin)")
		days      = flag.Int("days", 5, "training days per week")
		restDays  = flag.String("rest", "", "comma-separated rest days, e.g. Monday,Friday")
		startStr  = flag.String("start", "", "plan start date YYYY-MM-DD (default: today)")
		fromRace  = flag.Bool("from-race", false, "anchor the plan backwards from race day")
		asJSON    = flag.Bool("json", false, "print the full plan as JSON")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	in, err := readInput(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	if in.Race.Type == "" {
		in.Race.Type = athlete.InferRaceType(in.Race.DistanceKm)
	}
	in.Profile = athlete.Classify(in.Profile)

	start := time.Now()
	if *startStr != "" {
		start, err = time.Parse("2006-01-02", *startStr)
		if err != nil {
			log.Fatalf("bad -start date: %v", err)
		}
	}

	var rest []string
	if *restDays != "" {
		rest = strings.Split(*restDays, ",")
	}

	eng := engine.New(engine.Options{})
	built, err := eng.BuildPlan(engine.PlanRequest{
		Profile:     in.Profile,
		Race:        in.Race,
		Start:       start,
		FromRace:    *fromRace,
		Constraints: constraints.Derive(*days, rest),
		History:     in.History,
	})
	if err != nil {
		log.Fatalf("build plan: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(built); err != nil {
			log.Fatalf("encode plan: %v", err)
		}
		return
	}
	printPlan(built)
}

func readInput(path string) (planInput, error) {
	var in planInput
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return in, err
		}
		defer f.Close()
	}
	err := json.NewDecoder(f).Decode(&in)
	return in, err
}

func printPlan(t *engine.TrainingPlan) {
	fmt.Printf("Plan for %s: %s (%s, %.0f km)\n", t.AthleteID, t.Race.Name, t.Race.Type, t.Race.DistanceKm)
	fmt.Printf("Phases: transition=%d base=%d intensity=%d specificity=%d taper=%d (total %d weeks)\n\n",
		t.Breakdown.Transition, t.Breakdown.Base, t.Breakdown.Intensity,
		t.Breakdown.Specificity, t.Breakdown.Taper, t.Breakdown.Total())

	for i := range t.Weeks {
		wk := &t.Weeks[i]
		fmt.Printf("Week %d  %s  %s  %.1f km  %+.0f m\n",
			wk.WeekNumber, wk.Start.Format("2006-01-02"), wk.Phase, wk.TotalDistanceKm(), wk.TotalVerticalM())
		for d := range wk.Days {
			day := &wk.Days[d]
			if day.IsRestDay() {
				fmt.Printf("  %-9s rest\n", day.Day)
				continue
			}
			for _, s := range day.Sessions {
				fmt.Printf("  %-9s %-18s %s\n", day.Day, s.Type, describe(s))
			}
		}
		for _, note := range wk.Notes {
			fmt.Printf("  note: %s\n", note)
		}
		fmt.Println()
	}
}

func describe(s plan.Session) string {
	parts := []string{}
	if s.DistanceKm > 0 {
		parts = append(parts, fmt.Sprintf("%.1f km", s.DistanceKm))
	}
	if s.DurationMin > 0 {
		parts = append(parts, fmt.Sprintf("%.0f min", s.DurationMin))
	}
	if s.VerticalM > 0 {
		parts = append(parts, fmt.Sprintf("%+.0f m", s.VerticalM))
	}
	if s.Locked {
		parts = append(parts, "locked")
	}
	return strings.Join(parts, "  ")
}
