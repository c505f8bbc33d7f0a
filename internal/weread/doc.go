// Package weread talks to the WeRead web API and turns its three raw
// per-book payloads into normalized export records.
//
// The package handles three concerns:
//
//  1. HTTP access to the JSON endpoints, with status-code classification
//  2. The retrying fetch-and-merge for a single book
//  3. The deterministic merge of bookmarks, reviews and progress
//
// # Fetch-and-merge
//
// Use the Exporter to fetch one book with retry:
//
//	exporter := weread.NewExporter(weread.NewClient())
//	book, err := exporter.ExportBook(ctx, bookID, userVid, policy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s: %d notes\n", book.Title, len(book.Notes))
//
// # Error classification
//
// Non-success responses become *RequestError values. Classify maps a
// status code to Permanent or Retryable (429 and >= 500 are transient);
// IsRetryable extends the decision to arbitrary errors, treating
// unclassified failures as retryable.
//
// # Shelf listing
//
// ListNotebooks returns the user's annotated books for selection UIs and
// whole-shelf exports:
//
//	entries, err := client.ListNotebooks(ctx)
//	if errors.Is(err, weread.ErrNoNotebooks) {
//	    fmt.Println("nothing to export")
//	    return
//	}
package weread
