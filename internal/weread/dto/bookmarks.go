package dto

import "encoding/json"

// BookmarkList is the payload of /web/book/bookmarklist.
//
// The service returns the book metadata, the chapter table, and the
// highlight entries in one document. Every field is optional; absent
// fields decode to their zero values.
type BookmarkList struct {
	Book     BookInfo       `json:"book"`
	Chapters []ChapterInfo  `json:"chapters"`
	Updated  []BookmarkItem `json:"updated"`
}

// BookInfo carries the book metadata embedded in the bookmark list.
type BookInfo struct {
	BookID string `json:"bookId"`
	Title  string `json:"title"`
	Author string `json:"author"`

	// Cover is the cover image URL in the service's small-size variant.
	Cover string `json:"cover"`

	// Rating and Score are alternative rating fields; pages differ in
	// which one they populate.
	Rating json.Number `json:"rating"`
	Score  json.Number `json:"score"`
}

// ChapterInfo is one row of the chapter table, keyed by chapterUid.
type ChapterInfo struct {
	ChapterUID int    `json:"chapterUid"`
	Title      string `json:"title"`
}

// BookmarkItem is one highlight entry.
//
// Only entries with Type == 1 are user highlights; other types are
// service-internal markers and are dropped during the merge.
type BookmarkItem struct {
	BookID     string `json:"bookId"`
	ChapterUID int    `json:"chapterUid"`
	Range      string `json:"range"`
	MarkText   string `json:"markText"`
	CreateTime int64  `json:"createTime"`
	Style      int    `json:"style"`
	Type       int    `json:"type"`
}
