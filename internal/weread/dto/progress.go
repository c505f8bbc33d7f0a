package dto

// ReadingProgress is the payload of /web/book/getProgress.
type ReadingProgress struct {
	Book ProgressInfo `json:"book"`
}

// ProgressInfo carries the reading-time metadata for one book.
//
// Times are unix seconds; zero means the service has no value. These
// fields are book-level: the merge attaches them to every note of the
// book rather than per note.
type ProgressInfo struct {
	// ReadingTime is the accumulated reading time in seconds.
	ReadingTime int64 `json:"readingTime"`

	// StartReadingTime is when the user started the book.
	StartReadingTime int64 `json:"startReadingTime"`

	// FinishTime is when the user finished the book.
	FinishTime int64 `json:"finishTime"`
}
