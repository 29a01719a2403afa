package engine

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/FlagRing/internal/model"
)

// RunResult holds the layout and computed statistics for a single seed.
type RunResult struct {
	Seed       int64
	Layout     model.Layout
	Radius     float64
	CanvasSide int
	Fill       float64
	Rounds     int
}

// CompareSeeds packs the same pieces once per seed and returns the results
// in seed order. Runs share no state and execute concurrently. The first
// failing run cancels the others and its error is returned.
func CompareSeeds(ctx context.Context, settings model.PackSettings, pieces []model.Piece, seeds []int64, opts ...Option) ([]RunResult, error) {
	results := make([]RunResult, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, seed := range seeds {
		g.Go(func() error {
			s := settings
			s.Seed = seed
			layout, err := New(s, opts...).Pack(ctx, pieces)
			if err != nil {
				return err
			}
			results[i] = RunResult{
				Seed:       layout.Seed,
				Layout:     layout,
				Radius:     layout.Radius,
				CanvasSide: layout.CanvasSide(),
				Fill:       layout.Fill(),
				Rounds:     layout.Rounds,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BestRun returns the index of the result with the smallest radius. Ties go
// to the earlier result. It returns -1 for an empty slice.
func BestRun(results []RunResult) int {
	best := -1
	for i, r := range results {
		if best < 0 || r.Radius < results[best].Radius {
			best = i
		}
	}
	return best
}

// RandomSeeds returns n distinct non-zero seeds drawn from rng.
func RandomSeeds(n int, rng *rand.Rand) []int64 {
	seen := make(map[int64]bool, n)
	seeds := make([]int64, 0, n)
	for len(seeds) < n {
		s := rng.Int63()
		if s == 0 || seen[s] {
			continue
		}
		seen[s] = true
		seeds = append(seeds, s)
	}
	return seeds
}
