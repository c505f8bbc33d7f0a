package weread

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zhaoyun/weread-exporter/internal/model"
	"github.com/zhaoyun/weread-exporter/internal/weread/dto"
)

// MergeBook combines the three raw payloads for one book into a
// normalized ExportedBook.
//
// The merge is deterministic:
//   - Chapter titles are resolved by joining the chapter table on
//     chapterUid.
//   - Reviews are indexed by "chapterUid-range" and matched only when the
//     review has type 1 and a non-empty range; the user's content is
//     preferred, the abstract is the fallback.
//   - Only bookmark entries with type 1 become notes; everything else is
//     dropped.
//   - Reading-time fields come from the progress payload and are attached
//     to every note of the book.
//   - Notes are ordered by chapterUid, then by the numeric offset prefix
//     of the range.
//
// The title falls back to the raw book id when the metadata has none;
// the rating falls back through rating → score → empty string.
func MergeBook(bookID string, bookmarks *dto.BookmarkList, reviews *dto.ReviewList, progress *dto.ReadingProgress) *model.ExportedBook {
	title := bookmarks.Book.Title
	if title == "" {
		title = bookID
	}

	book := &model.ExportedBook{
		BookID:   bookID,
		Title:    title,
		Author:   bookmarks.Book.Author,
		CoverURL: NormalizeCoverURL(bookmarks.Book.Cover),
		Rating:   ratingString(bookmarks.Book),
	}

	chapterTitles := make(map[int]string, len(bookmarks.Chapters))
	for _, ch := range bookmarks.Chapters {
		chapterTitles[ch.ChapterUID] = ch.Title
	}

	reviewTexts := make(map[string]string)
	for _, item := range reviews.Reviews {
		r := item.Review
		if r.Type != 1 || r.Range == "" {
			continue
		}
		text := r.Content
		if text == "" {
			text = r.Abstract
		}
		reviewTexts[fmt.Sprintf("%d-%s", r.ChapterUID, r.Range)] = text
	}

	readingTime := FormatReadingTime(progress.Book.ReadingTime)
	startTime := formatDate(progress.Book.StartReadingTime)
	finishTime := formatDate(progress.Book.FinishTime)

	for _, bm := range bookmarks.Updated {
		if bm.Type != 1 {
			continue
		}
		book.Notes = append(book.Notes, model.NoteRecord{
			BookID:       bookID,
			Title:        title,
			Author:       book.Author,
			CoverURL:     book.CoverURL,
			Rating:       book.Rating,
			ChapterUID:   bm.ChapterUID,
			ChapterTitle: chapterTitles[bm.ChapterUID],
			Range:        bm.Range,
			MarkText:     bm.MarkText,
			ReviewText:   reviewTexts[fmt.Sprintf("%d-%s", bm.ChapterUID, bm.Range)],
			CreatedAt:    formatDateTime(bm.CreateTime),
			Style:        bm.Style,
			ReadingTime:  readingTime,
			StartTime:    startTime,
			FinishTime:   finishTime,
		})
	}

	sort.SliceStable(book.Notes, func(i, j int) bool {
		a, b := book.Notes[i], book.Notes[j]
		if a.ChapterUID != b.ChapterUID {
			return a.ChapterUID < b.ChapterUID
		}
		return rangeOffset(a.Range) < rangeOffset(b.Range)
	})

	book.Markdown = RenderMarkdown(book)

	return book
}

// NormalizeCoverURL rewrites the cover URL's small-size "s_" path segment
// to the larger "t6_" variant served by the image host. URLs without the
// segment pass through unchanged.
func NormalizeCoverURL(cover string) string {
	if cover == "" {
		return ""
	}
	return strings.Replace(cover, "/s_", "/t6_", 1)
}

// ratingString picks the first populated rating field.
func ratingString(book dto.BookInfo) string {
	if book.Rating.String() != "" {
		return book.Rating.String()
	}
	return book.Score.String()
}

// rangeOffset parses the leading offset of a range like "120-340".
// Malformed ranges sort first.
func rangeOffset(r string) int {
	head, _, _ := strings.Cut(r, "-")
	n, err := strconv.Atoi(head)
	if err != nil {
		return -1
	}
	return n
}
