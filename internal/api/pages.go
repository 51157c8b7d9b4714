package api

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/p6tools/p6view/internal/domain"
)

// maxPageFetchers bounds concurrent page requests so a large schedule
// does not stampede the server.
const maxPageFetchers = 4

// GetAllActivities fetches the first page, then fans out over the
// remaining pages concurrently and stitches the result back together
// in page order. The WBS structure and project info come from the
// first page; the server repeats them on every page.
func (c *httpClient) GetAllActivities(ctx context.Context, scheduleID int, q ActivityQuery) (*ActivityPage, error) {
	q.Page = 1
	first, err := c.GetActivities(ctx, scheduleID, q)
	if err != nil {
		return nil, err
	}
	if first.Pagination.Pages <= 1 {
		return first, nil
	}

	type pageResult struct {
		page int
		acts []*domain.Activity
	}
	results := make([]pageResult, 0, first.Pagination.Pages-1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPageFetchers)
	resultCh := make(chan pageResult, first.Pagination.Pages-1)

	for p := 2; p <= first.Pagination.Pages; p++ {
		page := p
		g.Go(func() error {
			pq := q
			pq.Page = page
			res, err := c.GetActivities(ctx, scheduleID, pq)
			if err != nil {
				return err
			}
			resultCh <- pageResult{page: page, acts: res.Activities}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(resultCh)

	for r := range resultCh {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].page < results[j].page })

	for _, r := range results {
		first.Activities = append(first.Activities, r.acts...)
	}
	first.Pagination.Page = 1
	first.Pagination.HasNext = false
	return first, nil
}
