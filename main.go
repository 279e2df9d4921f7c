package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"google.golang.org/api/calendar/v3"

	"slotta/pkg/auth"
	"slotta/pkg/config"
	"slotta/pkg/google"
	"slotta/pkg/history"
	"slotta/pkg/ledger"
	"slotta/pkg/server"
	"slotta/pkg/taskstore"
)

func main() {
	// 1. Parse Flags
	configPath := flag.String("config", "", "Path to config file (JSON or YAML; overrides the default location)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	setCalendar := flag.String("set-calendar", "", "Set the default Google Calendar name and exit")
	doAuth := flag.Bool("auth", false, "Authenticate with Google Calendar and exit")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	// 2. Handle Set Calendar
	if *setCalendar != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("error loading config")
		}
		cfg.Calendar = *setCalendar
		if err := config.Save(cfg); err != nil {
			log.Fatal().Err(err).Msg("error saving config")
		}
		fmt.Printf("Default calendar set to: %s\n", *setCalendar)
		return
	}

	// 3. Load Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	if *addr != "" {
		cfg.Listen = *addr
	}
	log = log.Level(parseLevel(cfg.LogLevel))

	// 4. Handle Authentication
	if *doAuth {
		if err := reauthenticate(log); err != nil {
			log.Fatal().Err(err).Msg("authentication failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Build Collaborators
	gClient, err := google.NewClient(ctx, cfg.Calendar)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating Google Calendar client")
	}
	store := taskstore.NewTaskwarrior()

	var blocks *ledger.Ledger
	if cfg.CalendarBlocking {
		blocks, err = ledger.New()
		if err != nil {
			log.Warn().Err(err).Msg("failed to open block ledger, calendar blocking disabled")
			cfg.CalendarBlocking = false
		}
	}

	var hist *history.Log
	if cfg.History.Driver == "sqlite" {
		hist, err = history.Open(cfg.History.Path)
		if err != nil {
			log.Warn().Err(err).Msg("failed to open history log, continuing without it")
		} else {
			defer hist.Close()
		}
	}

	// 6. Overdue Sweep
	var sweeper *cron.Cron
	if cfg.SweepInterval != "" && blocks != nil {
		sweeper = cron.New()
		spec := "@every " + cfg.SweepInterval
		if _, err := sweeper.AddFunc(spec, func() { sweepOverdue(ctx, log, gClient, blocks) }); err != nil {
			log.Fatal().Err(err).Str("spec", spec).Msg("invalid sweep interval")
		}
		sweeper.Start()
		defer sweeper.Stop()
	}

	// 7. Serve
	srv := server.New(log, cfg, gClient, store, blocks, hist)
	httpSrv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Listen).Str("calendar", cfg.Calendar).Msg("slotta listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown did not complete cleanly")
	}
}

// reauthenticate removes any cached token and runs the OAuth flow fresh.
func reauthenticate(log zerolog.Logger) error {
	base, err := auth.GetXdgHome()
	if err != nil {
		return fmt.Errorf("could not find path to configuration: %w", err)
	}
	tokenFile := filepath.Join(base, auth.TokenFile)
	if _, err := os.Stat(tokenFile); err == nil {
		log.Info().Str("path", tokenFile).Msg("removing existing token file")
		if err := os.Remove(tokenFile); err != nil {
			return fmt.Errorf("could not delete token file %s, please delete it manually: %w", tokenFile, err)
		}
	}
	if _, err := auth.GetClient(context.Background(), auth.Scopes()); err != nil {
		return err
	}
	log.Info().Str("path", tokenFile).Msg("authentication successful, token saved")
	return nil
}

// sweepOverdue marks lapsed schedule blocks on the calendar with an overdue
// prefix and drops them from the ledger.
func sweepOverdue(ctx context.Context, log zerolog.Logger, gClient *google.CalendarClient, blocks *ledger.Ledger) {
	swept := blocks.Sweep(time.Now())
	for _, b := range swept {
		patch := &calendar.Event{Summary: "! " + b.Summary}
		if _, err := gClient.PatchEvent(ctx, b.EventID, patch); err != nil {
			log.Warn().Err(err).Str("event_id", b.EventID).Msg("sweep: error patching event")
		}
	}
	if len(swept) > 0 {
		log.Info().Int("count", len(swept)).Msg("swept overdue blocks")
	}
	if err := blocks.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to save block ledger after sweep")
	}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
