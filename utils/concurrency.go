package utils

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SplitWork runs do for every work index in [0, workSize) over a pool of routines.
// Each routine pulls the next index from a shared counter, so a slow item never blocks the others.
// routines <= 0 selects a pool sized from the CPU count. The first error cancels ctx for the remaining work and is returned.
func SplitWork(ctx context.Context, routines int, workSize uint64, do func(ctx context.Context, workIndex uint64, routineIndex int) error) error {
	if routines <= 0 {
		routines = max(runtime.NumCPU()-routines, 4)
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	var counter atomic.Uint64

	eg, ctx := errgroup.WithContext(ctx)

	for routineIndex := range routines {
		eg.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}

				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err := do(ctx, workIndex-1, routineIndex); err != nil {
					return err
				}
			}
		})
	}
	return eg.Wait()
}
