package experiment

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/ecosys"
	"golang.org/x/sync/errgroup"
)

// EnsembleRun is the outcome of one seed.
type EnsembleRun struct {
	Seed    int64
	Status  ecosys.Status
	Elapsed time.Duration
}

// Ensemble runs the same parameters under consecutive seeds. Each run owns
// its grid and random source, so runs proceed in parallel.
type Ensemble struct {
	params    ecosys.Params
	numRuns   int
	seedStart int64
	logger    *log.Logger
}

func NewEnsemble(params ecosys.Params, numRuns int, seedStart int64, logger *log.Logger) (*Ensemble, error) {
	if numRuns < 1 {
		return nil, fmt.Errorf("experiment: ensemble needs at least one run, got %d", numRuns)
	}
	return &Ensemble{params: params, numRuns: numRuns, seedStart: seedStart, logger: logger}, nil
}

// Run returns one result per seed, in seed order. The first failing run
// cancels the rest.
func (e *Ensemble) Run(ctx context.Context) ([]EnsembleRun, error) {
	runs := make([]EnsembleRun, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			s := e.seedStart + int64(i)
			exp, err := New(Config{Params: e.params, Seed: s}, e.logger.With("seed", s))
			if err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			runs[i] = EnsembleRun{Seed: s, Status: res.Status, Elapsed: res.Elapsed}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Tally summarizes an ensemble.
type Tally struct {
	Runs      int
	Outcomes  map[ecosys.Outcome]int
	MeanSteps float64
}

func Summarize(runs []EnsembleRun) Tally {
	t := Tally{Runs: len(runs), Outcomes: make(map[ecosys.Outcome]int, 3)}
	if len(runs) == 0 {
		return t
	}
	total := 0
	for _, r := range runs {
		t.Outcomes[r.Status.Outcome]++
		total += r.Status.Step
	}
	t.MeanSteps = float64(total) / float64(len(runs))
	return t
}
