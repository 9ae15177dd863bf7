package scoring

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// DefaultBatchLimit bounds concurrent scoring when the caller passes no limit
const DefaultBatchLimit = 4

// ScoreJobs scores every job concurrently and returns results in input order.
// Bundles are built once and shared read-only by all workers. The only error is
// cancellation of ctx.
func ScoreJobs(ctx context.Context, jobs []types.Job, profile types.Profile, claims []types.Claim, opts Options, limit int) ([]types.ScoreResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	if opts.Now.IsZero() {
		// pin the clock so every job in the batch sees the same "Present"
		opts.Now = opts.now()
	}

	bundles := buildBundles(claims, opts)
	results := make([]types.ScoreResult, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			job := jobs[i]
			results[i] = scoreWithBundles(&job, &profile, bundles, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
