package weread

import (
	"context"
	"errors"

	"github.com/zhaoyun/weread-exporter/internal/weread/dto"
)

// ErrNoNotebooks is returned when the shelf listing contains no books
// with notes.
//
// This typically occurs when:
//   - The account has no annotated books
//   - The request was made without a valid session cookie, and the
//     service answered with an empty listing instead of an error
var ErrNoNotebooks = errors.New("no books with notes on the shelf")

// ListNotebooks fetches the shelf and returns the entries that actually
// carry annotations, preserving the service's ordering.
//
// Entries reporting zero notes, reviews and bookmarks are filtered out;
// they cannot contribute anything to an export.
//
// Returns ErrNoNotebooks when nothing remains after filtering.
func (c *Client) ListNotebooks(ctx context.Context) ([]dto.NotebookEntry, error) {
	list, err := c.Notebooks(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.NotebookEntry, 0, len(list.Books))
	for _, entry := range list.Books {
		if entry.NoteCount == 0 && entry.ReviewCount == 0 && entry.BookmarkCount == 0 {
			continue
		}
		if entry.BookID == "" {
			entry.BookID = entry.Book.BookID
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoNotebooks
	}
	return entries, nil
}
