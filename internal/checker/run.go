package checker

import (
	"context"
	"slices"

	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/aleister1102/linkchecker/internal/progress"
	"golang.org/x/sync/errgroup"
)

// RunCounts is the tally of one Run.
type RunCounts struct {
	Good     int
	Bad      int
	Skipped  int
	Appended int
}

// Run verifies candidates with a fixed pool of workers. Results are consumed
// on the calling goroutine, which is the only writer to the ledger and the
// counters. Candidates not yet dispatched when ctx ends are skipped, and Bad
// results arriving after ctx ends are not persisted so the next run retries them.
func (c *Checker) Run(ctx context.Context, candidates []string) RunCounts {
	urls := slices.Clone(candidates)
	slices.Sort(urls)
	urls = slices.Compact(urls)

	workers := c.config.CheckerConfig.Workers
	if workers < 1 {
		workers = 1
	}

	c.progress.StartCheck(int64(len(urls)))

	jobs := make(chan string)
	results := make(chan models.VerificationResult, workers)

	var g errgroup.Group
	g.Go(func() error {
		defer close(jobs)
		for _, u := range urls {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for u := range jobs {
				results <- c.verifier.Verify(ctx, u)
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	var counts RunCounts
	for res := range results {
		if !res.IsGood() && ctx.Err() != nil {
			c.logger.Debug().Str("url", res.URL).Str("reason", res.Reason).Msg("Result discarded after interrupt")
			continue
		}

		if res.IsGood() {
			counts.Good++
		} else {
			counts.Bad++
		}
		c.progress.RecordResult(res.IsGood())

		if err := c.ledger.Append(res.Outcome, res.URL); err != nil {
			c.logger.Error().Err(err).Str("url", res.URL).Str("outcome", res.Outcome.String()).Msg("Failed to append to ledger")
		} else {
			counts.Appended++
		}

		c.logger.Debug().
			Str("url", res.URL).
			Str("outcome", res.Outcome.String()).
			Str("reason", res.Reason).
			Dur("duration", res.Duration).
			Msg("Verified")
	}

	counts.Skipped = len(urls) - counts.Good - counts.Bad
	if ctx.Err() != nil {
		c.progress.SetCheckStatus(progress.ProgressStatusCancelled, "interrupted")
	} else {
		c.progress.SetCheckStatus(progress.ProgressStatusComplete, "")
	}
	return counts
}
