package task

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run processes items with a fixed number of concurrent worker lanes.
//
// Run starts min(concurrency, len(items)) lanes (at least one). Each lane
// repeatedly claims the next unclaimed index from a shared atomic cursor
// and invokes worker on it, so items are claimed in ascending index order
// across all lanes combined; completion order is whatever the workers make
// of it.
//
// When delay is positive, a lane pauses for that duration after each
// completed item, as long as unclaimed items remain. The delay paces each
// lane individually, not the aggregate rate.
//
// Worker errors are not swallowed: a worker returning a non-nil error ends
// that lane, the remaining lanes drain the cursor, and Run returns the
// first error. Callers that want partial-failure tolerance must absorb
// errors inside worker.
//
// An empty items slice returns immediately with no lanes started.
//
// Example:
//
//	err := task.Run(ctx, bookIDs, 3, 500*time.Millisecond,
//	    func(ctx context.Context, id string, i int) error {
//	        return export(ctx, id)
//	    })
func Run[T any](ctx context.Context, items []T, concurrency int, delay time.Duration, worker func(ctx context.Context, item T, index int) error) error {
	n := len(items)
	if n == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > n {
		concurrency = n
	}

	var cursor atomic.Int64
	var g errgroup.Group

	for lane := 0; lane < concurrency; lane++ {
		g.Go(func() error {
			for {
				idx := int(cursor.Add(1)) - 1
				if idx >= n {
					return nil
				}

				if err := worker(ctx, items[idx], idx); err != nil {
					return err
				}

				// Pace this lane only while there is still work to claim.
				if delay > 0 && int(cursor.Load()) < n {
					if err := Sleep(ctx, delay); err != nil {
						return err
					}
				}
			}
		})
	}

	return g.Wait()
}
