package playthrough

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NickTran11/masterbait/internal/platform/schedule"
	"github.com/NickTran11/masterbait/internal/platform/timeouts"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/host"
)

// DefaultParallel is how many files RunFiles plays at once.
const DefaultParallel = 4

// clockBase is where every playthrough clock starts.
var clockBase = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// Config controls playthrough execution.
type Config struct {
	// Catalog defaults to the embedded catalog.
	Catalog    *catalog.Catalog
	Seed       int64
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Parallel   int
	Logger     *zap.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Seed:       1,
		Timeout:    timeouts.PlaythroughStep,
		Assertions: AssertionStrict,
		Parallel:   DefaultParallel,
	}
}

// Runner executes playthroughs, each against its own session and clock.
type Runner struct {
	catalog    *catalog.Catalog
	seed       int64
	timeout    time.Duration
	assertions Assertions
	logger     *zap.Logger
	verbose    bool
}

// NewRunner prepares a playthrough runner.
func NewRunner(cfg Config) (*Runner, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cat := cfg.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.PlaythroughStep
	}
	return &Runner{
		catalog:    cat,
		seed:       cfg.Seed,
		timeout:    timeout,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
	}, nil
}

// runState is the per-playthrough session state.
type runState struct {
	session *host.Session
	clock   *schedule.Manual
	last    *coach.Feedback
}

// RunPlaythrough executes the steps against a fresh session.
func (r *Runner) RunPlaythrough(ctx context.Context, p *Playthrough) error {
	if p == nil {
		return errors.New("playthrough is required")
	}
	clock := schedule.NewManual(clockBase)
	sessions, err := host.NewManager(host.Config{
		Catalog:   r.catalog,
		Scheduler: clock,
		Now:       clock.Now,
		Logger:    r.logger.Named("host"),
		Seed:      r.seed,
	})
	if err != nil {
		return err
	}
	defer sessions.CloseAll()

	session, err := sessions.Create(ctx)
	if err != nil {
		return err
	}
	state := &runState{session: session, clock: clock}

	r.logf("playthrough start", zap.String("name", p.Name), zap.Int("steps", len(p.Steps)))
	for index, step := range p.Steps {
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("%s: step %d (%s): %w", p.Name, index+1, step.Kind, err)
		}
		r.logf("step done", zap.String("name", p.Name), zap.Int("step", index+1), zap.String("kind", step.Kind))
	}
	r.logf("playthrough done", zap.String("name", p.Name))
	return nil
}

// RunFile loads and executes a playthrough file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	p, err := LoadPlaythroughFromFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return r.RunPlaythrough(ctx, p)
}

// RunFiles executes every file concurrently, at most cfg.Parallel at a time,
// and returns the first failure.
func RunFiles(ctx context.Context, cfg Config, paths []string) error {
	if len(paths) == 0 {
		return errors.New("at least one playthrough file is required")
	}
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}
	parallel := cfg.Parallel
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for _, path := range paths {
		g.Go(func() error {
			return runner.RunFile(gctx, path)
		})
	}
	return g.Wait()
}

func (r *Runner) logf(msg string, fields ...zap.Field) {
	if !r.verbose {
		return
	}
	r.logger.Info(msg, fields...)
}
