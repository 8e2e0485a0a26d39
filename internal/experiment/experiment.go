package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/ecosys"
)

// Observer receives the population sample after construction and after
// every tick.
type Observer interface {
	OnTick(s ecosys.Sample)
}

type ObserverFunc func(s ecosys.Sample)

func (f ObserverFunc) OnTick(s ecosys.Sample) { f(s) }

type Config struct {
	Params ecosys.Params
	Seed   int64
	// LogEvery logs progress at debug level every n ticks; 0 disables it.
	LogEvery int
	// Interval paces ticks for live consumers; 0 runs flat out.
	Interval time.Duration
}

type Result struct {
	Samples []ecosys.Sample
	Status  ecosys.Status
	Elapsed time.Duration
}

type Experiment struct {
	cfg       Config
	rng       ecosys.Rand
	grid      *ecosys.Grid
	observers []Observer
	logger    *log.Logger
}

// New builds the grid for cfg from a source seeded with cfg.Seed.
func New(cfg Config, logger *log.Logger) (*Experiment, error) {
	e := &Experiment{
		cfg:    cfg,
		rng:    ecosys.NewRand(cfg.Seed),
		logger: logger,
	}
	if err := e.Restart(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Experiment) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Grid returns the current grid for read-only inspection between ticks.
func (e *Experiment) Grid() *ecosys.Grid { return e.grid }

// Restart discards the grid and scatters a new one, continuing the same
// random source.
func (e *Experiment) Restart() error {
	g, err := ecosys.New(e.cfg.Params, e.rng)
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}
	e.grid = g
	return nil
}

// Step ticks once and notifies observers. It reports false once the grid is
// finished.
func (e *Experiment) Step() bool {
	if e.grid.Finished() {
		return false
	}
	e.grid.Tick()
	e.notify(e.grid.Sample())
	return true
}

func (e *Experiment) notify(s ecosys.Sample) {
	for _, o := range e.observers {
		o.OnTick(s)
	}
}

// Run ticks until the grid is finished. The context is only checked between
// ticks.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	p := e.cfg.Params
	e.logger.Info("simulation started",
		"grid", fmt.Sprintf("%dx%d", p.Rows, p.Cols),
		"predators", p.Predators, "prey", p.Prey, "obstacles", p.Obstacles,
		"seed", e.cfg.Seed,
	)

	result := &Result{Samples: make([]ecosys.Sample, 0, p.IterationLimit+1)}
	record := ObserverFunc(func(s ecosys.Sample) { result.Samples = append(result.Samples, s) })

	start := time.Now()
	record(e.grid.Sample())
	e.notify(e.grid.Sample())

	var ticker *time.Ticker
	if e.cfg.Interval > 0 {
		ticker = time.NewTicker(e.cfg.Interval)
		defer ticker.Stop()
	}

	for !e.grid.Finished() {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-ticker.C:
			}
		} else {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
		}

		e.Step()
		s := e.grid.Sample()
		record(s)

		if e.cfg.LogEvery > 0 && s.Step%e.cfg.LogEvery == 0 {
			e.logger.Debug("tick", "step", s.Step, "predators", s.Predators, "prey", s.Prey)
		}
	}

	result.Elapsed = time.Since(start)
	result.Status = e.grid.Status()
	e.logger.Info("simulation finished",
		"outcome", result.Status.Outcome, "steps", result.Status.Step,
		"predators", result.Status.Predators, "prey", result.Status.Prey,
		"elapsed", result.Elapsed,
	)
	return result, nil
}
