package sources

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/logging"
)

// Request pairs an adapter with the query to run against it.
type Request struct {
	Source Source
	Query  issues.Query
}

// Batch is the outcome of one Request.
type Batch struct {
	Source   issues.Source
	Issues   []issues.CanonicalIssue
	Duration time.Duration
	Err      error
}

// Fetch runs a single adapter, wrapping any failure in a FetchError.
func Fetch(ctx context.Context, src Source, query issues.Query) ([]issues.CanonicalIssue, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SourceFetchTimeout)
	defer cancel()

	ctx = logging.WithSource(ctx, src.ID().String())
	logger := logging.FromContext(ctx)
	logger.Debug().Str("project", query.ProjectKey).Str("component", query.Component).Msg("Fetching issues")

	start := time.Now()
	found, err := src.Fetch(ctx, query)
	if err != nil {
		return nil, errors.NewFetchError(src.ID().String(), err)
	}

	logger.Info().
		Int("issues", len(found)).
		Dur("duration", time.Since(start)).
		Msg("Fetched issues")
	return found, nil
}

// FetchAll runs independent requests concurrently. Adapters share no state,
// so one failing request does not cancel the others; each Batch carries its
// own error. Batches are returned in request order.
func FetchAll(ctx context.Context, requests []Request) []Batch {
	batches := make([]Batch, len(requests))

	var g errgroup.Group
	g.SetLimit(constants.MaxConcurrentSources)
	for i, req := range requests {
		g.Go(func() error {
			start := time.Now()
			found, err := Fetch(ctx, req.Source, req.Query)
			batches[i] = Batch{
				Source:   req.Source.ID(),
				Issues:   found,
				Duration: time.Since(start),
				Err:      err,
			}
			return nil
		})
	}
	_ = g.Wait()

	return batches
}
