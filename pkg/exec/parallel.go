package exec

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/authzed/graphexec/internal/logging"
	"github.com/authzed/graphexec/pkg/record"
)

// RunPartitioned executes n partitions of plan concurrently, each on its own
// Context built from opts, and returns the records of every partition in
// partition order. The first failure cancels the other partitions. Every
// partition is freed before returning; plan itself is left untouched.
//
// The options are applied once per partition, so they must not share state
// that is unsafe for concurrent use, such as a TraceLogger or an analysis map.
func RunPartitioned(ctx context.Context, plan *Plan, n int, opts ...ContextOption) ([]*record.Record, error) {
	partitions, err := plan.Partition(n)
	if err != nil {
		return nil, err
	}

	results := make([][]*record.Record, len(partitions))
	g, gctx := errgroup.WithContext(ctx)
	for i, partition := range partitions {
		g.Go(func() error {
			defer partition.Free()

			pctx := NewLocalContext(gctx, opts...)
			if err := partition.Init(pctx); err != nil {
				return fmt.Errorf("partition %d: %w", i, err)
			}

			for r, err := range partition.Records(pctx) {
				if err != nil {
					return fmt.Errorf("partition %d: %w", i, err)
				}
				results[i] = append(results[i], r)
				if err := gctx.Err(); err != nil {
					return err
				}
			}

			logging.Ctx(gctx).Debug().Int("partition", i).Int("records", len(results[i])).Msg("partition complete")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, records := range results {
			for _, r := range records {
				r.Release()
			}
		}
		return nil, err
	}

	var out []*record.Record
	for _, records := range results {
		out = append(out, records...)
	}
	return out, nil
}
