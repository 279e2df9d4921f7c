// Package server exposes the scheduling computation over HTTP. It is thin
// glue: validate the payload, fetch busy intervals, run the core, apply the
// result to the task store, map the outcome to a response code.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"slotta/pkg/config"
	"slotta/pkg/history"
	"slotta/pkg/ledger"
	"slotta/pkg/model"
	"slotta/pkg/schedule"
	"slotta/pkg/taskstore"
)

// Calendar is the read-mostly calendar collaborator. *google.CalendarClient
// satisfies it; tests provide stubs.
type Calendar interface {
	ListBusyIntervals(ctx context.Context, from, to time.Time) ([]model.BusyInterval, error)
	SyncBlock(ctx context.Context, taskID, summary string, start, end time.Time) (string, error)
}

type Server struct {
	log     zerolog.Logger
	cfg     *config.Config
	sched   *schedule.Scheduler
	cal     Calendar
	store   taskstore.Store
	blocks  *ledger.Ledger // nil when calendar blocking is off
	hist    *history.Log   // nil when history is disabled
	limiter *rate.Limiter
	now     func() time.Time
}

func New(log zerolog.Logger, cfg *config.Config, cal Calendar, store taskstore.Store, blocks *ledger.Ledger, hist *history.Log) *Server {
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 5
	}
	return &Server{
		log:     log,
		cfg:     cfg,
		sched:   schedule.NewScheduler(cfg),
		cal:     cal,
		store:   store,
		blocks:  blocks,
		hist:    hist,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		now:     time.Now,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/schedule", s.handleSchedule)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		rejectedTotal.Inc()
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.limiter.Allow() {
		rejectedTotal.Inc()
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	reqID := uuid.NewString()
	log := s.log.With().Str("request_id", reqID).Logger()
	started := s.now()

	var payload taskPayload
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		rejectedTotal.Inc()
		log.Warn().Err(err).Msg("malformed request body")
		s.respond(w, log, http.StatusBadRequest, scheduleResponse{
			Status:  model.StatusError.String(),
			Message: "malformed request body: " + err.Error(),
		})
		return
	}

	outcome, code := s.schedule(r.Context(), log, payload)

	took := s.now().Sub(started)
	outcomeTotal.WithLabelValues(outcome.Status.String()).Inc()
	scheduleSeconds.Observe(took.Seconds())
	s.record(r.Context(), log, reqID, payload.TaskID, outcome, took)

	log.Info().
		Str("task_id", payload.TaskID).
		Str("status", outcome.Status.String()).
		Dur("took", took).
		Msg("scheduling request finished")

	s.respond(w, log, code, toResponse(outcome))
}

// schedule runs the full computation for one request and decides the
// response code. Panics inside the core are caught here and reported as a
// generic error outcome rather than crashing the request.
func (s *Server) schedule(ctx context.Context, log zerolog.Logger, payload taskPayload) (outcome model.Outcome, code int) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Any("panic", rec).Msg("scheduling computation panicked")
			outcome = model.Outcome{
				Status:  model.StatusError,
				Message: "internal scheduling error",
			}
			code = http.StatusInternalServerError
		}
	}()

	task, err := payload.toTask()
	if err != nil {
		return model.Outcome{Status: model.StatusError, Message: err.Error()}, http.StatusBadRequest
	}

	from, to := s.sched.Horizon(s.now())
	busy, err := s.cal.ListBusyIntervals(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("calendar fetch failed")
		return model.Outcome{
			Status:  model.StatusError,
			Message: "calendar source unavailable: " + err.Error(),
		}, http.StatusServiceUnavailable
	}

	outcome = s.sched.Schedule(task, busy, s.now())

	switch outcome.Status {
	case model.StatusScheduled:
		if err := s.apply(ctx, log, task, outcome); err != nil {
			return model.Outcome{
				Status:  model.StatusError,
				Message: "task store update failed: " + err.Error(),
			}, http.StatusServiceUnavailable
		}
		return outcome, http.StatusOK
	case model.StatusNoSlots, model.StatusConflict:
		return outcome, http.StatusBadRequest
	default:
		// Core validation and too-soon rejections.
		return outcome, http.StatusBadRequest
	}
}

// apply writes the chosen window to the task store and, when enabled, blocks
// the slot on the calendar.
func (s *Server) apply(ctx context.Context, log zerolog.Logger, task model.Task, outcome model.Outcome) error {
	update := model.ScheduleUpdate{
		Start:       outcome.Start,
		End:         outcome.End,
		StatusLabel: "Scheduled",
		Message:     outcome.Message,
	}
	if err := s.store.ApplyScheduleUpdate(ctx, task.ID, update); err != nil {
		return err
	}

	if !s.cfg.CalendarBlocking || s.blocks == nil {
		return nil
	}
	summary := task.Name
	if summary == "" {
		summary = task.ID
	}
	eventID, err := s.cal.SyncBlock(ctx, task.ID, summary, outcome.Start, outcome.End)
	if err != nil {
		// The task store already has the schedule; a blocking failure is
		// logged but does not fail the request.
		log.Warn().Err(err).Str("task_id", task.ID).Msg("calendar block failed")
		return nil
	}
	s.blocks.Set(task.ID, ledger.Block{
		EventID: eventID,
		Summary: summary,
		Start:   outcome.Start,
		End:     outcome.End,
	})
	if err := s.blocks.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to save block ledger")
	}
	return nil
}

func (s *Server) record(ctx context.Context, log zerolog.Logger, reqID, taskID string, outcome model.Outcome, took time.Duration) {
	if s.hist == nil {
		return
	}
	err := s.hist.Append(ctx, history.Entry{
		RequestID: reqID,
		TaskID:    taskID,
		Status:    outcome.Status,
		Start:     outcome.Start,
		End:       outcome.End,
		Message:   outcome.Message,
		TookMS:    took.Milliseconds(),
	})
	if err != nil && !errors.Is(err, history.ErrDisabled) {
		log.Warn().Err(err).Msg("failed to record outcome history")
	}
}

func (s *Server) respond(w http.ResponseWriter, log zerolog.Logger, code int, body scheduleResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func toResponse(outcome model.Outcome) scheduleResponse {
	resp := scheduleResponse{
		Success: outcome.Success,
		Status:  outcome.Status.String(),
		Message: outcome.Message,
	}
	if !outcome.Start.IsZero() {
		resp.Start = outcome.Start.Format(time.RFC3339)
		resp.End = outcome.End.Format(time.RFC3339)
	}
	for _, alt := range outcome.Alternatives {
		resp.Alternatives = append(resp.Alternatives, slotResponse{
			Start:   alt.Start.Format(time.RFC3339),
			End:     alt.End.Format(time.RFC3339),
			Quality: alt.Quality.String(),
		})
	}
	return resp
}
