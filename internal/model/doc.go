// Package model defines the core data structures used throughout
// the weread-exporter application.
//
// # NoteRecord
//
// NoteRecord is one annotation, flattened so the export formats do not
// need to know the shapes of the three WeRead payloads:
//
//	note := model.NoteRecord{
//	    BookID:       "832587",
//	    Title:        "三体",
//	    ChapterTitle: "第一章",
//	    MarkText:     "...",
//	}
//
// # ExportedBook
//
// ExportedBook is the merged, immutable result for one book:
//
//	book.Markdown   // rendered single-book document
//	book.Notes      // ordered NoteRecord slice
//
// # BatchProgress
//
// BatchProgress is a snapshot of a running batch export, suitable for
// status displays:
//
//	p := manager.Progress()
//	fmt.Printf("%d/%d done, %d failing\n", p.Done, p.Total, len(p.Failed))
package model
