package dto

// ReviewList is the payload of /web/review/list.
type ReviewList struct {
	Reviews []ReviewItem `json:"reviews"`
}

// ReviewItem wraps one review; the service nests the review body one
// level down.
type ReviewItem struct {
	ReviewID string `json:"reviewId"`
	Review   Review `json:"review"`
}

// Review is one personal note.
//
// Reviews attach to a highlight range; only Type == 1 entries with a
// non-empty Range are chapter notes that can be matched to a highlight.
// Content is the user's free text, Abstract the quoted passage.
type Review struct {
	ChapterUID int    `json:"chapterUid"`
	Range      string `json:"range"`
	Content    string `json:"content"`
	Abstract   string `json:"abstract"`
	Type       int    `json:"type"`
	CreateTime int64  `json:"createTime"`
}
