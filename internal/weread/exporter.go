package weread

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zhaoyun/weread-exporter/internal/model"
	"github.com/zhaoyun/weread-exporter/internal/task"
	"github.com/zhaoyun/weread-exporter/internal/weread/dto"
)

// Exporter performs the retrying fetch-and-merge for single books.
//
// Example usage:
//
//	exporter := weread.NewExporter(weread.NewClient())
//	policy := task.RetryPolicy{Delays: []time.Duration{time.Second, 3 * time.Second}}
//
//	book, err := exporter.ExportBook(ctx, "832587", userVid, policy)
type Exporter struct {
	client *Client
}

// NewExporter creates an Exporter using the given client.
func NewExporter(client *Client) *Exporter {
	return &Exporter{client: client}
}

// Client returns the underlying API client.
func (e *Exporter) Client() *Client {
	return e.client
}

// ExportBook fetches and merges one book's annotations.
//
// Each attempt issues the three requests (bookmark list, review list,
// reading progress) concurrently; all three must succeed. When any of
// them fails, the attempt is discarded — successful sibling responses
// included — and the failure is classified:
//
//   - A permanent request error (e.g. 404) propagates immediately,
//     regardless of remaining retry budget.
//   - A retryable failure consumes one entry of the policy: the exporter
//     pauses for policy.Delay(attempt) and tries again, up to
//     policy.MaxRetries() retries.
//
// On success the three payloads are merged into an ExportedBook.
func (e *Exporter) ExportBook(ctx context.Context, bookID, userVid string, policy task.RetryPolicy) (*model.ExportedBook, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		bookmarks, reviews, progress, err := e.fetchAll(ctx, bookID, userVid)
		if err == nil {
			return MergeBook(bookID, bookmarks, reviews, progress), nil
		}

		lastErr = err
		if attempt >= policy.MaxRetries() || !IsRetryable(err) {
			return nil, lastErr
		}
		if err := task.Sleep(ctx, policy.Delay(attempt)); err != nil {
			return nil, err
		}
	}
}

// fetchAll issues the three per-book requests concurrently. The first
// failure cancels the group and is returned; partial results are
// discarded.
func (e *Exporter) fetchAll(ctx context.Context, bookID, userVid string) (*dto.BookmarkList, *dto.ReviewList, *dto.ReadingProgress, error) {
	var (
		bookmarks *dto.BookmarkList
		reviews   *dto.ReviewList
		progress  *dto.ReadingProgress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookmarks, err = e.client.BookmarkList(gctx, bookID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = e.client.ReviewList(gctx, bookID, userVid)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = e.client.Progress(gctx, bookID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return bookmarks, reviews, progress, nil
}
