// Package routes wires the planning engine and store into the HTTP API.
package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/constraints"
	"github.com/briangreenhill/ultraplan/engine"
	"github.com/briangreenhill/ultraplan/internal/jobs"
	"github.com/briangreenhill/ultraplan/internal/store"
	"github.com/briangreenhill/ultraplan/macrocycle"
)

// Server holds the router and its collaborators.
type Server struct {
	Router *chi.Mux
	Store  store.Store
	Engine *engine.Engine
	Queue  *asynq.Client
	Log    zerolog.Logger

	// FeedbackWindowDays bounds the rolling window handed to the adaptive
	// controller.
	FeedbackWindowDays int
	// Now is injected so handlers stay testable; defaults to time.Now.
	Now func() time.Time
}

// ServerOptions configures New.
type ServerOptions struct {
	Store              store.Store
	Engine             *engine.Engine
	Queue              *asynq.Client
	Log                zerolog.Logger
	FeedbackWindowDays int
	Now                func() time.Time
}

// New builds the router.
func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:             r,
		Store:              opts.Store,
		Engine:             opts.Engine,
		Queue:              opts.Queue,
		Log:                opts.Log,
		FeedbackWindowDays: opts.FeedbackWindowDays,
		Now:                opts.Now,
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.FeedbackWindowDays <= 0 {
		s.FeedbackWindowDays = 7
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			s.Log.Error().Err(err).Msg("write health check response")
		}
	})

	r.Post("/athletes", s.handleCreateAthlete)
	r.Post("/athletes/{athleteID}/plan", s.handleCreatePlan)
	r.Get("/athletes/{athleteID}/plan", s.handleGetPlan)
	r.Get("/athletes/{athleteID}/plan/weeks/{week}", s.handleGetWeek)
	r.Post("/athletes/{athleteID}/feedback", s.handleFeedback)
	r.Post("/athletes/{athleteID}/mileage", s.handleRecordMileage)

	return s
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, map[string]string{"error": msg})
}

// handleCreateAthlete classifies onboarding data into a profile.
func (s *Server) handleCreateAthlete(w http.ResponseWriter, r *http.Request) {
	var p athlete.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p = athlete.Classify(p)
	if err := s.Store.SaveProfile(r.Context(), p); err != nil {
		s.Log.Error().Err(err).Str("athlete", p.ID).Msg("save profile")
		s.respondError(w, http.StatusInternalServerError, "could not save profile")
		return
	}
	s.respond(w, http.StatusCreated, p)
}

type createPlanRequest struct {
	Race        athlete.RaceEvent   `json:"race"`
	Start       *time.Time          `json:"start,omitempty"`
	FromRace    bool                `json:"fromRace"`
	DaysPerWeek int                 `json:"daysPerWeek"`
	RestDays    []string            `json:"restDays,omitempty"`
	TuneUpRaces []athlete.RaceEvent `json:"tuneUpRaces,omitempty"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	athleteID := chi.URLParam(r, "athleteID")
	profile, err := s.Store.GetProfile(r.Context(), athleteID)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "athlete not found")
		return
	}
	if err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("load profile")
		s.respondError(w, http.StatusInternalServerError, "could not load athlete")
		return
	}

	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid plan payload")
		return
	}
	if req.Race.Type == "" {
		req.Race.Type = athlete.InferRaceType(req.Race.DistanceKm)
	}
	start := s.Now()
	if req.Start != nil {
		start = *req.Start
	}
	history, err := s.Store.MileageHistory(r.Context(), athleteID, 8)
	if err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("load mileage history")
		s.respondError(w, http.StatusInternalServerError, "could not load history")
		return
	}

	built, err := s.Engine.BuildPlan(engine.PlanRequest{
		Profile:     profile,
		Race:        req.Race,
		Start:       start,
		FromRace:    req.FromRace,
		Constraints: constraints.Derive(req.DaysPerWeek, req.RestDays),
		History:     history,
		TuneUpRaces: req.TuneUpRaces,
	})
	var insufficient *macrocycle.InsufficientTrainingTimeError
	if errors.As(err, &insufficient) {
		s.respondError(w, http.StatusUnprocessableEntity,
			"not enough training time before the race: choose a later race date or provide more lead time")
		return
	}
	if err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("build plan")
		s.respondError(w, http.StatusInternalServerError, "could not build plan")
		return
	}

	if err := s.Store.SavePlan(r.Context(), built); err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("save plan")
		s.respondError(w, http.StatusInternalServerError, "could not save plan")
		return
	}
	s.Log.Info().Str("athlete", athleteID).Int("weeks", len(built.Weeks)).Msg("plan built")
	s.respond(w, http.StatusCreated, built)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	athleteID := chi.URLParam(r, "athleteID")
	p, version, err := s.Store.GetPlan(r.Context(), athleteID)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "no plan for athlete")
		return
	}
	if err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("load plan")
		s.respondError(w, http.StatusInternalServerError, "could not load plan")
		return
	}
	w.Header().Set("ETag", strconv.FormatInt(version, 10))
	s.respond(w, http.StatusOK, p)
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	athleteID := chi.URLParam(r, "athleteID")
	weekNum, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid week number")
		return
	}
	p, _, err := s.Store.GetPlan(r.Context(), athleteID)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "no plan for athlete")
		return
	}
	if err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("load plan")
		s.respondError(w, http.StatusInternalServerError, "could not load plan")
		return
	}
	week := p.Week(weekNum)
	if week == nil {
		s.respondError(w, http.StatusNotFound, "week not in plan")
		return
	}
	s.respond(w, http.StatusOK, week)
}

// handleFeedback stores the check-in and enqueues the adaptation job; the
// worker applies the controller asynchronously.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	athleteID := chi.URLParam(r, "athleteID")
	var fb athlete.DailyFeedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid feedback payload")
		return
	}
	if fb.Date.IsZero() {
		fb.Date = s.Now()
	}
	if err := s.Store.AddFeedback(r.Context(), athleteID, fb); err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("save feedback")
		s.respondError(w, http.StatusInternalServerError, "could not save feedback")
		return
	}

	weekNum, ok := s.currentWeekNumber(r, athleteID)
	if !ok {
		// Feedback without an active plan is stored but adapts nothing.
		s.respond(w, http.StatusAccepted, map[string]any{"stored": true, "queued": false})
		return
	}
	task, err := jobs.NewAdaptWeekTask(jobs.AdaptWeekPayload{AthleteID: athleteID, WeekNumber: weekNum})
	if err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("build adapt task")
		s.respondError(w, http.StatusInternalServerError, "could not queue adaptation")
		return
	}
	if _, err := s.Queue.Enqueue(task, asynq.Queue("adapt"), asynq.MaxRetry(3)); err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("enqueue adapt task")
		s.respondError(w, http.StatusInternalServerError, "could not queue adaptation")
		return
	}
	s.respond(w, http.StatusAccepted, map[string]any{"stored": true, "queued": true, "week": weekNum})
}

type recordMileageRequest struct {
	WeekStart  time.Time `json:"weekStart"`
	DistanceKm float64   `json:"distanceKm"`
}

// handleRecordMileage logs a completed week's actual mileage. The history
// feeds progression limits and load-ratio checks on the next build.
func (s *Server) handleRecordMileage(w http.ResponseWriter, r *http.Request) {
	athleteID := chi.URLParam(r, "athleteID")
	var req recordMileageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid mileage payload")
		return
	}
	if req.DistanceKm < 0 {
		s.respondError(w, http.StatusBadRequest, "distanceKm must be non-negative")
		return
	}
	if req.WeekStart.IsZero() {
		req.WeekStart = macrocycle.StartOfWeek(s.Now())
	}
	if err := s.Store.RecordMileage(r.Context(), athleteID, req.WeekStart, req.DistanceKm); err != nil {
		s.Log.Error().Err(err).Str("athlete", athleteID).Msg("record mileage")
		s.respondError(w, http.StatusInternalServerError, "could not record mileage")
		return
	}
	s.respond(w, http.StatusCreated, map[string]any{"recorded": true})
}

func (s *Server) currentWeekNumber(r *http.Request, athleteID string) (int, bool) {
	p, _, err := s.Store.GetPlan(r.Context(), athleteID)
	if err != nil {
		return 0, false
	}
	now := s.Now()
	for _, wk := range p.Weeks {
		if !now.Before(wk.Start) && now.Before(wk.End.AddDate(0, 0, 1)) {
			return wk.WeekNumber, true
		}
	}
	return 0, false
}
