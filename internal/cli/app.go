package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logging"
	"alcyxob/workout-tracker/internal/repository/kvstore"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// app holds what the commands share. The store is opened on first use so
// commands that need no storage never touch it.
type app struct {
	now func() time.Time

	configDir string
	backend   string
	dbPath    string
	namespace string
	verbose   bool

	cfg       config.Config
	store     storage.Store
	logCloser io.Closer

	workouts   service.WorkoutService
	progress   service.ProgressService
	completion service.CompletionService
	rewards    service.RewardsService
}

// Option customizes the CLI, mostly for tests.
type Option func(*app)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

func (a *app) open(ctx context.Context, stderr io.Writer) error {
	if a.store != nil {
		return nil
	}

	// an optional .env only seeds the environment
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
	}
	if a.dbPath != "" {
		cfg.Storage.SQLitePath = a.dbPath
	}
	if a.namespace != "" {
		cfg.Storage.Namespace = a.namespace
	}
	if !a.verbose {
		cfg.Log.Level = "warn"
	}
	a.logCloser = logging.Setup(cfg.Log)
	if cfg.Log.File == "" {
		log.SetOutput(stderr)
	}

	loc, err := cfg.Tracker.Location()
	if err != nil {
		return err
	}

	store, fallback, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	if fallback {
		fmt.Fprintln(stderr, color.YellowString("warning: %s store unavailable, nothing will be saved", cfg.Storage.Backend))
	}

	a.cfg = cfg
	a.store = store
	a.workouts = service.NewWorkoutService(kvstore.NewWorkoutRepository(store), a.now)
	a.progress = service.NewProgressService(kvstore.NewProgressRepository(store), loc, a.now)
	a.rewards = service.NewRewardsService(kvstore.NewPointsRepository(store), cfg.Tracker.PointsPerWorkout)
	a.completion = service.NewCompletionService(a.workouts, a.progress, a.rewards)
	return nil
}

func (a *app) ns() string {
	return a.cfg.Storage.Namespace
}

func (a *app) close() error {
	var err error
	if a.store != nil {
		err = multierr.Append(err, a.store.Close())
		a.store = nil
	}
	if a.logCloser != nil {
		err = multierr.Append(err, a.logCloser.Close())
		a.logCloser = nil
	}
	return err
}
