package motion

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gridwalk/pkg/steer"
)

// minChunk keeps goroutine overhead below the cost of the work.
const minChunk = 256

// StepAll advances every agent by one tick in parallel. Agents only touch
// their own state, so the result does not depend on scheduling.
func (k *Kernel) StepAll(ctx context.Context, agents []*Agent, dt float32, tick steer.Tick) error {
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(agents) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(agents); start += chunk {
		end := start + chunk
		if end > len(agents) {
			end = len(agents)
		}
		part := agents[start:end]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, a := range part {
				k.Step(a, dt, tick)
			}
			return nil
		})
	}
	return g.Wait()
}
