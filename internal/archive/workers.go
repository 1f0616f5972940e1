package archive

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEach calls fn for 0..n-1, in order when running sequentially and on up
// to a.workers goroutines otherwise. The first error stops tasks that have
// not started yet and is returned.
func (a *Archive) forEach(n int, fn func(i int) error) error {
	if a.workers <= 1 || n <= 1 {
		for i := range n {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(a.workers)
	for i := range n {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return eg.Wait()
}
