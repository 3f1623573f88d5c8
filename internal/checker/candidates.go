package checker

import (
	"context"
	"slices"

	"github.com/aleister1102/linkchecker/internal/common/contextutils"
	"github.com/aleister1102/linkchecker/internal/progress"
)

// CompileCandidates extracts links from text, drops forbidden, unsupported
// and previously judged ones, expands paste links one level and returns the
// sorted, distinct result.
func (c *Checker) CompileCandidates(ctx context.Context, text string) ([]string, error) {
	raw := c.extractor.Extract(text)

	var direct []string
	for _, u := range raw {
		if c.isCandidate(u) {
			direct = append(direct, u)
		}
	}

	c.progress.StartCompile(int64(len(direct)))

	set := make(map[string]struct{}, len(direct))
	expanded := 0
	for i, u := range direct {
		if res := contextutils.CheckCancellationWithLog(ctx, c.logger, "compile"); res.Cancelled {
			c.progress.SetCompileStatus(progress.ProgressStatusCancelled, "interrupted")
			return nil, res.Error
		}

		if !c.registry.IsPaste(u) {
			set[u] = struct{}{}
		} else {
			for _, x := range c.expander.Expand(ctx, u, c.config.CheckerConfig.PasteDepth) {
				if c.isCandidate(x) {
					set[x] = struct{}{}
					expanded++
				}
			}
		}
		c.progress.UpdateCompile(int64(i+1), int64(len(direct)), "")
	}

	candidates := make([]string, 0, len(set))
	for u := range set {
		candidates = append(candidates, u)
	}
	slices.Sort(candidates)

	c.progress.SetCompileStatus(progress.ProgressStatusComplete, "")
	c.logger.Debug().
		Int("extracted", len(raw)).
		Int("valid", len(direct)).
		Int("from_pastes", expanded).
		Int("candidates", len(candidates)).
		Msg("Candidates compiled")

	return candidates, nil
}

// isCandidate reports whether url is supported, allowed and not yet judged
func (c *Checker) isCandidate(url string) bool {
	return c.registry.IsSupported(url) && !c.registry.IsForbidden(url) && !c.ledger.IsSeen(url)
}
