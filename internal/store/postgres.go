package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/engine"
	"github.com/briangreenhill/ultraplan/plan"
)

// Postgres is the pgx-backed store. Plans and profiles are stored as JSONB
// documents; the plans table carries the optimistic-concurrency version.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pgx pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the service tables when they don't exist yet.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS athletes (
			id       TEXT PRIMARY KEY,
			profile  JSONB NOT NULL,
			updated  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS plans (
			athlete_id TEXT PRIMARY KEY REFERENCES athletes(id),
			doc        JSONB NOT NULL,
			version    BIGINT NOT NULL DEFAULT 1,
			updated    TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS feedback (
			athlete_id TEXT NOT NULL REFERENCES athletes(id),
			day        DATE NOT NULL,
			doc        JSONB NOT NULL,
			PRIMARY KEY (athlete_id, day)
		);
		CREATE TABLE IF NOT EXISTS weekly_mileage (
			athlete_id TEXT NOT NULL REFERENCES athletes(id),
			week_start DATE NOT NULL,
			km         DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (athlete_id, week_start)
		);
	`)
	return err
}

func (s *Postgres) SaveProfile(ctx context.Context, p athlete.Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO athletes (id, profile, updated) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET profile = EXCLUDED.profile, updated = now()
	`, p.ID, doc)
	return err
}

func (s *Postgres) GetProfile(ctx context.Context, athleteID string) (athlete.Profile, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT profile FROM athletes WHERE id = $1`, athleteID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return athlete.Profile{}, ErrNotFound
	}
	if err != nil {
		return athlete.Profile{}, err
	}
	var p athlete.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return athlete.Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

func (s *Postgres) SavePlan(ctx context.Context, p *engine.TrainingPlan) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO plans (athlete_id, doc, version, updated) VALUES ($1, $2, 1, now())
		ON CONFLICT (athlete_id) DO UPDATE SET doc = EXCLUDED.doc, version = 1, updated = now()
	`, p.AthleteID, doc)
	return err
}

func (s *Postgres) GetPlan(ctx context.Context, athleteID string) (*engine.TrainingPlan, int64, error) {
	var doc []byte
	var version int64
	err := s.pool.QueryRow(ctx, `SELECT doc, version FROM plans WHERE athlete_id = $1`, athleteID).Scan(&doc, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	var p engine.TrainingPlan
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, 0, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &p, version, nil
}

func (s *Postgres) ReplaceWeek(ctx context.Context, athleteID string, week plan.WeeklyPlan, expectedVersion int64) error {
	p, version, err := s.GetPlan(ctx, athleteID)
	if err != nil {
		return err
	}
	if version != expectedVersion {
		return ErrVersionConflict
	}
	replaced := false
	for i := range p.Weeks {
		if p.Weeks[i].WeekNumber == week.WeekNumber {
			p.Weeks[i] = week
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("week %d: %w", week.WeekNumber, ErrNotFound)
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE plans SET doc = $1, version = version + 1, updated = now()
		WHERE athlete_id = $2 AND version = $3
	`, doc, athleteID, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (s *Postgres) AddFeedback(ctx context.Context, athleteID string, fb athlete.DailyFeedback) error {
	doc, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO feedback (athlete_id, day, doc) VALUES ($1, $2, $3)
		ON CONFLICT (athlete_id, day) DO UPDATE SET doc = EXCLUDED.doc
	`, athleteID, fb.Date, doc)
	return err
}

func (s *Postgres) FeedbackSince(ctx context.Context, athleteID string, cutoff time.Time) ([]athlete.DailyFeedback, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc FROM feedback WHERE athlete_id = $1 AND day >= $2 ORDER BY day
	`, athleteID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []athlete.DailyFeedback
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var fb athlete.DailyFeedback
		if err := json.Unmarshal(doc, &fb); err != nil {
			return nil, fmt.Errorf("unmarshal feedback: %w", err)
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

func (s *Postgres) RecordMileage(ctx context.Context, athleteID string, weekStart time.Time, km float64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO weekly_mileage (athlete_id, week_start, km) VALUES ($1, $2, $3)
		ON CONFLICT (athlete_id, week_start) DO UPDATE SET km = EXCLUDED.km
	`, athleteID, weekStart, km)
	return err
}

func (s *Postgres) MileageHistory(ctx context.Context, athleteID string, n int) ([]float64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT km FROM (
			SELECT week_start, km FROM weekly_mileage
			WHERE athlete_id = $1 ORDER BY week_start DESC LIMIT $2
		) recent ORDER BY week_start
	`, athleteID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var km float64
		if err := rows.Scan(&km); err != nil {
			return nil, err
		}
		out = append(out, km)
	}
	return out, rows.Err()
}
