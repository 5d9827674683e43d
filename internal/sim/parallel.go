package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunFunc runs one independent simulation for seed and returns its summary
// metrics.
type RunFunc func(ctx context.Context, seed int64) (map[string]float64, error)

type EnsembleResult struct {
	Seed    int64
	Metrics map[string]float64
}

// Ensemble runs the same simulation with consecutive seeds on a bounded
// number of goroutines. Each run must own its world and frontend.
type Ensemble struct {
	numRuns   int
	seedStart int64
	workers   int
}

// NewEnsemble uses GOMAXPROCS workers when workers <= 0.
func NewEnsemble(numRuns int, seedStart int64, workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, workers: workers}
}

// Run returns results in seed order. The first error cancels the remaining
// runs.
func (e *Ensemble) Run(ctx context.Context, fn RunFunc) ([]EnsembleResult, error) {
	results := make([]EnsembleResult, e.numRuns)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < e.numRuns; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		seed := e.seedStart + int64(i)
		g.Go(func() error {
			m, err := fn(gctx, seed)
			if err != nil {
				return err
			}
			results[i] = EnsembleResult{Seed: seed, Metrics: m}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Aggregate is the mean, minimum and maximum of one metric across runs.
type Aggregate struct {
	Mean, Min, Max float64
}

// Summarize aggregates every metric name present in the results.
func Summarize(results []EnsembleResult) map[string]Aggregate {
	agg := make(map[string]Aggregate)
	counts := make(map[string]int)
	for _, r := range results {
		for name, v := range r.Metrics {
			a, ok := agg[name]
			if !ok {
				a = Aggregate{Min: v, Max: v}
			}
			a.Mean += v
			a.Min = min(a.Min, v)
			a.Max = max(a.Max, v)
			agg[name] = a
			counts[name]++
		}
	}
	for name, a := range agg {
		a.Mean /= float64(counts[name])
		agg[name] = a
	}
	return agg
}
