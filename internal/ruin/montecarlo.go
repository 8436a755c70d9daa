package ruin

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/lox/letitride/internal/randutil"
)

const (
	// trajectorySessions bounds each simulated trajectory. First crossings
	// beyond a thousand resampled sessions contribute negligibly to the
	// estimates at the default bankroll levels.
	trajectorySessions = 1000

	// trajectoryBlock is the unit of work handed to workers. Each block
	// seeds its own generator from the block index, so the minima are
	// identical no matter how blocks map onto workers.
	trajectoryBlock = 256
)

// trajectoryMinima simulates sims trajectories of resampled session profits
// and returns each trajectory's running-balance minimum relative to its
// start. A trajectory's minimum is all the threshold tests need: the
// balance first crosses a level exactly when the cumulative profit's
// minimum reaches it.
func trajectoryMinima(profits []float64, sims int, seed int64, workers int) ([]float64, error) {
	minima := make([]float64, sims)
	numBlocks := (sims + trajectoryBlock - 1) / trajectoryBlock

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > numBlocks {
		workers = numBlocks
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			resampled := make([]float64, trajectorySessions)
			cum := make([]float64, trajectorySessions)

			for b := w; b < numBlocks; b += workers {
				rng := randutil.New(randutil.DeriveSeed(seed, int64(b)))
				start := b * trajectoryBlock
				end := min(start+trajectoryBlock, sims)

				for t := start; t < end; t++ {
					for i := range resampled {
						resampled[i] = profits[rng.IntN(len(profits))]
					}
					floats.CumSum(cum, resampled)
					minima[t] = floats.Min(cum)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return minima, nil
}
