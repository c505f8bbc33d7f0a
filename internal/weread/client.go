package weread

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zhaoyun/weread-exporter/internal/weread/dto"
)

const (
	defaultBaseURL = "https://weread.qq.com"

	bookmarkListPath = "/web/book/bookmarklist"
	reviewListPath   = "/web/review/list"
	progressPath     = "/web/book/getProgress"
	notebookPath     = "/api/user/notebook"

	defaultTimeout = 30 * time.Second
)

// Client wraps HTTP access to the WeRead web API.
//
// Client provides:
//   - The three per-book JSON endpoints (bookmarks, reviews, progress)
//   - The notebook shelf listing
//   - Cover image download
//
// Every non-2xx response surfaces as a *RequestError carrying the status
// code, which the retry layers classify with Classify/IsRetryable.
//
// Example usage:
//
//	client := weread.NewClient()
//
//	bookmarks, err := client.BookmarkList(ctx, "832587")
//	progress, err := client.Progress(ctx, "832587")
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cookie     string
}

// NewClient creates a Client against the production WeRead endpoints.
//
// The client is configured with a 30 second timeout and a browser-like
// User-Agent; the service rejects requests without one.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a Client against a custom base URL.
// Tests point this at an httptest server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   baseURL,
		userAgent: "Mozilla/5.0 (weread-exporter)",
	}
}

// SetCookie sets the raw Cookie header sent with every request. The
// exporter does not manage sessions; callers paste a logged-in browser
// cookie when the endpoints require one.
func (c *Client) SetCookie(cookie string) {
	c.cookie = cookie
}

// BookmarkList fetches the highlight list for a book, including the book
// metadata and chapter table.
func (c *Client) BookmarkList(ctx context.Context, bookID string) (*dto.BookmarkList, error) {
	q := url.Values{}
	q.Set("bookId", bookID)

	var out dto.BookmarkList
	if err := c.getJSON(ctx, bookmarkListPath, q, &out); err != nil {
		return nil, fmt.Errorf("bookmark list for %s: %w", bookID, err)
	}
	return &out, nil
}

// ReviewList fetches the user's personal reviews for a book.
//
// The query carries the parameter set the WeRead web client sends for
// personal chapter reviews.
func (c *Client) ReviewList(ctx context.Context, bookID, userVid string) (*dto.ReviewList, error) {
	q := url.Values{}
	q.Set("bookId", bookID)
	q.Set("listType", "4")
	q.Set("userVid", userVid)
	q.Set("rangeType", "2")
	q.Set("mine", "1")

	var out dto.ReviewList
	if err := c.getJSON(ctx, reviewListPath, q, &out); err != nil {
		return nil, fmt.Errorf("review list for %s: %w", bookID, err)
	}
	return &out, nil
}

// Progress fetches the reading-progress metadata for a book.
func (c *Client) Progress(ctx context.Context, bookID string) (*dto.ReadingProgress, error) {
	q := url.Values{}
	q.Set("bookId", bookID)

	var out dto.ReadingProgress
	if err := c.getJSON(ctx, progressPath, q, &out); err != nil {
		return nil, fmt.Errorf("reading progress for %s: %w", bookID, err)
	}
	return &out, nil
}

// Notebooks fetches the shelf listing: every book that carries at least
// one note. This feeds the selection UI and the -all CLI mode.
func (c *Client) Notebooks(ctx context.Context) (*dto.NotebookList, error) {
	var out dto.NotebookList
	if err := c.getJSON(ctx, notebookPath, nil, &out); err != nil {
		return nil, fmt.Errorf("notebook list: %w", err)
	}
	return &out, nil
}

// DownloadCover fetches a cover image and returns its bytes.
//
// Cover downloads are best effort: callers treat failures as warnings
// and never retry them.
func (c *Client) DownloadCover(ctx context.Context, coverURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewRequestError(resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// getJSON performs a GET against path with the given query and decodes
// the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewRequestError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
