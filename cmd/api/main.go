// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/ultraplan/engine"
	"github.com/briangreenhill/ultraplan/internal/config"
	"github.com/briangreenhill/ultraplan/internal/http/routes"
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

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Printf("starting api on :%s", cfg.Port)

	// Store: postgres when configured, in-memory otherwise (local dev)
	var st store.Store
	if cfg.HasDatabase() {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer pool.Close()
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(context.Background()); err != nil {
			log.Fatalf("migrate error: %v", err)
		}
		st = pg
	} else {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory store")
		st = store.NewMemory()
	}

	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer queue.Close()

	eng := engine.New(engine.Options{})

	s := routes.New(routes.ServerOptions{
		Store:              st,
		Engine:             eng,
		Queue:              queue,
		Log:                logger,
		FeedbackWindowDays: cfg.FeedbackWindowDays,
	})
	h := hlog.NewHandler(logger)(s.Router)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}
	log.Fatal(srv.ListenAndServe())
}
