package model

// NoteRecord is one annotation flattened into a source-agnostic shape.
//
// A NoteRecord combines data from all three WeRead payloads:
//   - Book metadata (title, author, cover, rating) from the bookmark list
//   - The highlight itself (chapter, range, text, style, creation time)
//   - A matching personal review, when one exists for the same range
//   - Reading-progress fields, identical for every note of a book
//
// All fields except BookID and Title are optional; a missing value is the
// empty string (or zero for the numeric fields). Field names in JSON match
// the wire naming used by the export formats.
type NoteRecord struct {
	// BookID is the WeRead book id the note belongs to.
	BookID string `json:"bookId"`

	// Title is the book title, falling back to the book id when the
	// service returns no title.
	Title string `json:"title"`

	// Author is the book author, if known.
	Author string `json:"author,omitempty"`

	// CoverURL is the normalized cover image URL, if the book has one.
	CoverURL string `json:"coverUrl,omitempty"`

	// Rating is the book rating as a string ("rating" falling back to
	// "score"); empty when the service reports neither.
	Rating string `json:"rating,omitempty"`

	// ChapterUID identifies the chapter the highlight lives in.
	ChapterUID int `json:"chapterUid,omitempty"`

	// ChapterTitle is the chapter title resolved from the chapter table.
	ChapterTitle string `json:"chapterTitle,omitempty"`

	// Range is the highlight's character range inside the chapter,
	// as reported by the service (e.g. "120-340").
	Range string `json:"range,omitempty"`

	// MarkText is the highlighted text.
	MarkText string `json:"markText,omitempty"`

	// ReviewText is the user's note attached to the same range, if any.
	ReviewText string `json:"reviewText,omitempty"`

	// CreatedAt is the highlight creation time, formatted for display.
	CreatedAt string `json:"createdAt,omitempty"`

	// Style is the highlight style index (underline, background, ...).
	Style int `json:"style,omitempty"`

	// ReadingTime is the total reading time for the book, formatted for
	// display. Identical on every note of the same book.
	ReadingTime string `json:"readingTime,omitempty"`

	// StartTime is the date reading started, if reported.
	StartTime string `json:"startTime,omitempty"`

	// FinishTime is the date the book was finished, if reported.
	FinishTime string `json:"finishTime,omitempty"`
}

// ExportedBook is the normalized result of one successful fetch-and-merge.
//
// An ExportedBook is created once per book and never modified afterwards.
// Markdown holds the fully rendered document for the single book, with a
// cover image reference prepended when a cover exists.
type ExportedBook struct {
	// BookID is the WeRead book id.
	BookID string `json:"bookId"`

	// Title is the book title (book id when the service has none).
	Title string `json:"title"`

	// Author is the book author, if known.
	Author string `json:"author,omitempty"`

	// CoverURL is the normalized cover image URL, if any.
	CoverURL string `json:"coverUrl,omitempty"`

	// Rating is the book rating as a string, if any.
	Rating string `json:"rating,omitempty"`

	// Markdown is the rendered single-book document.
	Markdown string `json:"markdown"`

	// Notes are the book's annotations in chapter/range order.
	Notes []NoteRecord `json:"notes"`
}

// HasCover returns true if the book has a cover image URL.
func (b *ExportedBook) HasCover() bool {
	return b.CoverURL != ""
}
