package dto

// NotebookList is the payload of /api/user/notebook: the books on the
// user's shelf that carry at least one note.
type NotebookList struct {
	Books []NotebookEntry `json:"books"`
}

// NotebookEntry is one shelf book with its annotation counts.
type NotebookEntry struct {
	BookID        string   `json:"bookId"`
	Book          BookInfo `json:"book"`
	NoteCount     int      `json:"noteCount"`
	ReviewCount   int      `json:"reviewCount"`
	BookmarkCount int      `json:"bookmarkCount"`
}
