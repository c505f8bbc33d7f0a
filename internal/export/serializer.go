package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zhaoyun/weread-exporter/internal/model"
)

// Format selects the combined-export representation.
type Format string

const (
	// FormatMarkdown concatenates every book's rendered document.
	FormatMarkdown Format = "markdown"

	// FormatJSON emits the pretty-printed array of export records.
	FormatJSON Format = "json"

	// FormatCSV emits one row per note in a fixed 14-column table.
	FormatCSV Format = "csv"
)

// ParseFormat validates a format name from flags or settings.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// File is a serialized export ready for an output sink.
type File struct {
	// Name is the suggested file name, including extension.
	Name string

	// Content is the serialized text.
	Content string

	// MIMEType is the media type matching Content.
	MIMEType string
}

// csvHeader is the fixed column set of the CSV export. Order matters;
// consumers key on it.
var csvHeader = []string{
	"bookId", "title", "author", "rating", "coverUrl",
	"chapterUid", "chapterTitle", "range", "markText", "reviewText",
	"createdAt", "readingTime", "startTime", "finishTime",
}

// BuildCombinedExport serializes a collection of exported books into one
// of the three formats.
//
// The function is pure and deterministic: the same books in the same
// order always produce byte-identical output. An unrecognized format is a
// programmer error and returns an error immediately.
//
// Example:
//
//	file, err := export.BuildCombinedExport(result.Succeeded, export.FormatCSV)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(file.Name, []byte(file.Content), 0644)
func BuildCombinedExport(books []*model.ExportedBook, format Format) (*File, error) {
	switch format {
	case FormatMarkdown:
		return buildMarkdown(books), nil
	case FormatJSON:
		return buildJSON(books)
	case FormatCSV:
		return buildCSV(books), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// buildMarkdown renders each book as "# {title}" plus its document,
// separated by a standalone --- line with blank lines around it.
func buildMarkdown(books []*model.ExportedBook) *File {
	sections := make([]string, len(books))
	for i, book := range books {
		sections[i] = fmt.Sprintf("# %s\n\n%s", book.Title, strings.TrimRight(book.Markdown, "\n"))
	}

	return &File{
		Name:     "weread-export.md",
		Content:  strings.Join(sections, "\n\n---\n\n") + "\n",
		MIMEType: "text/markdown",
	}
}

// buildJSON emits the book array with 2-space indentation.
func buildJSON(books []*model.ExportedBook) (*File, error) {
	if books == nil {
		books = []*model.ExportedBook{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}

	return &File{
		Name:     "weread-export.json",
		Content:  string(data),
		MIMEType: "application/json",
	}, nil
}

// buildCSV emits the fixed-header note table. A book without notes still
// contributes one row, carrying its rendered markdown in the markText
// column so no successful book disappears from the table.
func buildCSV(books []*model.ExportedBook) *File {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)

	for _, book := range books {
		if len(book.Notes) == 0 {
			writeCSVRow(&b, []string{
				book.BookID, book.Title, book.Author, book.Rating, book.CoverURL,
				"", "", "", book.Markdown, "",
				"", "", "", "",
			})
			continue
		}
		for _, note := range book.Notes {
			chapterUID := ""
			if note.ChapterUID != 0 {
				chapterUID = fmt.Sprintf("%d", note.ChapterUID)
			}
			writeCSVRow(&b, []string{
				note.BookID, note.Title, note.Author, note.Rating, note.CoverURL,
				chapterUID, note.ChapterTitle, note.Range, note.MarkText, note.ReviewText,
				note.CreatedAt, note.ReadingTime, note.StartTime, note.FinishTime,
			})
		}
	}

	return &File{
		Name:     "weread-export.csv",
		Content:  b.String(),
		MIMEType: "text/csv",
	}
}

// writeCSVRow writes one fully quoted row. Embedded quotes are doubled
// and embedded line breaks become the literal two characters \n, keeping
// every record on a single physical line.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvField(field))
	}
	b.WriteByte('\n')
}

// csvField escapes and quotes a single CSV value.
func csvField(s string) string {
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, `"`, `""`)
	return `"` + s + `"`
}
