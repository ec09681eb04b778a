package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/briangreenhill/ultraplan/engine"
	"github.com/briangreenhill/ultraplan/internal/config"
	"github.com/briangreenhill/ultraplan/internal/jobs"
	"github.com/briangreenhill/ultraplan/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}
	if !cfg.HasDatabase() {
		log.Fatal("DATABASE_URL is required for the worker")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("unable to connect to database:", err)
	}
	defer pool.Close()
	st := store.NewPostgres(pool)

	eng := engine.New(engine.Options{})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency:    cfg.WorkerConcurrency,
		StrictPriority: false,
		Queues: map[string]int{
			"adapt":   10, // higher priority
			"default": 5,  // default priority
		},
	})
	mux := asynq.NewServeMux()

	mux.HandleFunc(jobs.TaskAdaptWeek, func(ctx context.Context, t *asynq.Task) error {
		var p jobs.AdaptWeekPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Printf("[asynq] bad payload: %v", err)
			return err
		}
		log.Printf("[adapt] start athlete=%s week=%d", p.AthleteID, p.WeekNumber)
		start := time.Now()
		err := adaptWeek(ctx, st, eng, cfg.FeedbackWindowDays, p)
		duration := time.Since(start)

		if err != nil {
			if isRetryableError(err) {
				log.Printf("[adapt] retryable error athlete=%s duration=%v: %v", p.AthleteID, duration, err)
				return err // allow retry
			}
			log.Printf("[adapt] permanent error athlete=%s duration=%v: %v (dropping job)", p.AthleteID, duration, err)
			return nil // don't retry permanent failures
		}
		log.Printf("[adapt] done athlete=%s week=%d duration=%v", p.AthleteID, p.WeekNumber, duration)
		return nil
	})

	log.Println("Worker running...")
	log.Fatal(srv.Run(mux))
}

// adaptWeek loads the current week, runs the adaptive controller over the
// feedback window and writes the mutated week back with a version check.
func adaptWeek(ctx context.Context, st store.Store, eng *engine.Engine, windowDays int, p jobs.AdaptWeekPayload) error {
	trainingPlan, version, err := st.GetPlan(ctx, p.AthleteID)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}
	week := trainingPlan.Week(p.WeekNumber)
	if week == nil {
		return fmt.Errorf("week %d not in plan for athlete %s", p.WeekNumber, p.AthleteID)
	}

	profile, err := st.GetProfile(ctx, p.AthleteID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	window, err := st.FeedbackSince(ctx, p.AthleteID, cutoff)
	if err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}
	history, err := st.MileageHistory(ctx, p.AthleteID, 8)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	decision := eng.AdaptWeek(week, window, profile, history)
	log.Printf("[adapt] athlete=%s week=%d action=%s urgency=%s", p.AthleteID, p.WeekNumber, decision.Action, decision.Urgency)

	if err := st.ReplaceWeek(ctx, p.AthleteID, *week, version); err != nil {
		return fmt.Errorf("replace week: %w", err)
	}
	return nil
}

// isRetryableError determines if an error should trigger a job retry
func isRetryableError(err error) bool {
	// A concurrent writer beat us to the plan; re-running the job reads the
	// fresh version.
	if errors.Is(err, store.ErrVersionConflict) {
		return true
	}
	if errors.Is(err, store.ErrNotFound) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Connectivity issues - should retry
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "too many connections") {
		return true
	}
	return false
}
