package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/zhaoyun/weread-exporter/internal/model"
)

func sampleBooks() []*model.ExportedBook {
	return []*model.ExportedBook{
		{
			BookID:   "1",
			Title:    "活着",
			Author:   "余华",
			CoverURL: "https://cdn/t6_1.jpg",
			Rating:   "88",
			Markdown: "**作者：** 余华\n\n> a highlight\n",
			Notes: []model.NoteRecord{
				{
					BookID:     "1",
					Title:      "活着",
					Author:     "余华",
					CoverURL:   "https://cdn/t6_1.jpg",
					ChapterUID: 1,
					Range:      "120-180",
					MarkText:   "a highlight",
					ReviewText: "a thought",
				},
			},
		},
		{
			BookID:   "2",
			Title:    "empty book",
			Markdown: "no notes\n",
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"markdown", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"xml", "", true},
		{"", "", true},
		{"Markdown", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildCombinedExportUnknownFormat(t *testing.T) {
	if _, err := BuildCombinedExport(nil, Format("yaml")); err == nil {
		t.Error("BuildCombinedExport() with unknown format should fail")
	}
}

func TestBuildMarkdown(t *testing.T) {
	file, err := BuildCombinedExport(sampleBooks(), FormatMarkdown)
	if err != nil {
		t.Fatalf("BuildCombinedExport() error = %v", err)
	}

	if file.Name != "weread-export.md" {
		t.Errorf("Name = %q, want weread-export.md", file.Name)
	}
	if file.MIMEType != "text/markdown" {
		t.Errorf("MIMEType = %q, want text/markdown", file.MIMEType)
	}

	if !strings.HasPrefix(file.Content, "# 活着\n\n") {
		t.Errorf("content does not start with the first title heading:\n%s", file.Content)
	}
	if !strings.Contains(file.Content, "\n\n---\n\n# empty book\n") {
		t.Errorf("books not separated by a standalone --- line:\n%s", file.Content)
	}
	// Book markdown carried verbatim.
	if !strings.Contains(file.Content, "> a highlight") {
		t.Errorf("content missing book markdown:\n%s", file.Content)
	}
}

func TestBuildJSONRoundTrip(t *testing.T) {
	books := sampleBooks()
	file, err := BuildCombinedExport(books, FormatJSON)
	if err != nil {
		t.Fatalf("BuildCombinedExport() error = %v", err)
	}

	if file.Name != "weread-export.json" || file.MIMEType != "application/json" {
		t.Errorf("file meta = %q/%q", file.Name, file.MIMEType)
	}

	var decoded []*model.ExportedBook
	if err := json.Unmarshal([]byte(file.Content), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d books, want 2", len(decoded))
	}
	if decoded[0].Title != "活着" || decoded[0].CoverURL != "https://cdn/t6_1.jpg" {
		t.Errorf("decoded[0] = %q/%q", decoded[0].Title, decoded[0].CoverURL)
	}
	if decoded[0].Notes[0].MarkText != "a highlight" {
		t.Errorf("decoded note MarkText = %q", decoded[0].Notes[0].MarkText)
	}
}

func TestBuildJSONNilBooks(t *testing.T) {
	file, err := BuildCombinedExport(nil, FormatJSON)
	if err != nil {
		t.Fatalf("BuildCombinedExport() error = %v", err)
	}
	if file.Content != "[]" {
		t.Errorf("Content = %q, want empty array", file.Content)
	}
}

func TestBuildCSV(t *testing.T) {
	file, err := BuildCombinedExport(sampleBooks(), FormatCSV)
	if err != nil {
		t.Fatalf("BuildCombinedExport() error = %v", err)
	}

	if file.Name != "weread-export.csv" || file.MIMEType != "text/csv" {
		t.Errorf("file meta = %q/%q", file.Name, file.MIMEType)
	}

	lines := strings.Split(strings.TrimRight(file.Content, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), file.Content)
	}

	wantHeader := `"bookId","title","author","rating","coverUrl","chapterUid","chapterTitle","range","markText","reviewText","createdAt","readingTime","startTime","finishTime"`
	if lines[0] != wantHeader {
		t.Errorf("header = %s\nwant %s", lines[0], wantHeader)
	}

	if !strings.Contains(lines[1], `"a highlight"`) || !strings.Contains(lines[1], `"120-180"`) {
		t.Errorf("note row missing fields: %s", lines[1])
	}

	// The zero-note book still contributes a row, carrying its markdown in
	// the markText column with line breaks as the literal \n.
	if !strings.Contains(lines[2], `"no notes\n"`) {
		t.Errorf("fallback row missing markdown: %s", lines[2])
	}
}

func TestCSVEscaping(t *testing.T) {
	books := []*model.ExportedBook{{
		BookID: "1",
		Title:  `he said "go"`,
		Notes: []model.NoteRecord{{
			BookID:     "1",
			Title:      `he said "go"`,
			ChapterUID: 3,
			MarkText:   "first line\r\nsecond line\nthird",
		}},
	}}

	file, err := BuildCombinedExport(books, FormatCSV)
	if err != nil {
		t.Fatalf("BuildCombinedExport() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(file.Content, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("embedded line breaks leaked into the row structure:\n%s", file.Content)
	}

	row := lines[1]
	if !strings.Contains(row, `"he said ""go"""`) {
		t.Errorf("quotes not doubled: %s", row)
	}
	if !strings.Contains(row, `"first line\nsecond line\nthird"`) {
		t.Errorf("line breaks not flattened to literal \\n: %s", row)
	}
	if !strings.Contains(row, `"3"`) {
		t.Errorf("chapterUid not emitted: %s", row)
	}
}

func TestCSVZeroChapterUIDEmpty(t *testing.T) {
	books := []*model.ExportedBook{{
		BookID: "1",
		Title:  "t",
		Notes:  []model.NoteRecord{{BookID: "1", Title: "t", MarkText: "x"}},
	}}

	file, err := BuildCombinedExport(books, FormatCSV)
	if err != nil {
		t.Fatalf("BuildCombinedExport() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(file.Content, "\n"), "\n")
	fields := strings.Split(lines[1], ",")
	if fields[5] != `""` {
		t.Errorf("chapterUid field = %s, want empty for unset chapter", fields[5])
	}
}
