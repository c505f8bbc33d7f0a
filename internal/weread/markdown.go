package weread

import (
	"fmt"
	"strings"
	"time"

	"github.com/zhaoyun/weread-exporter/internal/model"
)

// RenderMarkdown renders a single book's annotations as a Markdown
// document.
//
// The document starts with a cover image reference when the book has a
// cover, followed by the book metadata, then the notes grouped by chapter
// with highlights as blockquotes and attached reviews beneath them.
func RenderMarkdown(book *model.ExportedBook) string {
	var b strings.Builder

	if book.HasCover() {
		fmt.Fprintf(&b, "![%s 封面](%s)\n\n", book.Title, book.CoverURL)
	}

	if book.Author != "" {
		fmt.Fprintf(&b, "**作者：** %s\n\n", book.Author)
	}
	if book.Rating != "" {
		fmt.Fprintf(&b, "**评分：** %s\n\n", book.Rating)
	}
	if len(book.Notes) > 0 {
		n := book.Notes[0]
		if n.ReadingTime != "" {
			fmt.Fprintf(&b, "**阅读时长：** %s\n\n", n.ReadingTime)
		}
		if n.StartTime != "" {
			fmt.Fprintf(&b, "**开始阅读：** %s\n\n", n.StartTime)
		}
		if n.FinishTime != "" {
			fmt.Fprintf(&b, "**读完时间：** %s\n\n", n.FinishTime)
		}
	}

	lastChapter := -1
	for _, note := range book.Notes {
		if note.ChapterUID != lastChapter {
			title := note.ChapterTitle
			if title == "" {
				title = fmt.Sprintf("第 %d 章", note.ChapterUID)
			}
			fmt.Fprintf(&b, "## %s\n\n", title)
			lastChapter = note.ChapterUID
		}

		if note.MarkText != "" {
			fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(note.MarkText, "\n", "\n> "))
		}
		if note.ReviewText != "" {
			fmt.Fprintf(&b, "**笔记：** %s\n\n", note.ReviewText)
		}
		if note.CreatedAt != "" {
			fmt.Fprintf(&b, "<small>%s</small>\n\n", note.CreatedAt)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatReadingTime formats a reading time in seconds as 小时/分钟.
// Zero or negative input returns an empty string.
func FormatReadingTime(seconds int64) string {
	if seconds <= 0 {
		return ""
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d小时%d分钟", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d小时", hours)
	default:
		return fmt.Sprintf("%d分钟", minutes)
	}
}

// formatDate renders a unix timestamp as a date; zero returns "".
func formatDate(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2006-01-02")
}

// formatDateTime renders a unix timestamp with time of day; zero returns "".
func formatDateTime(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}
