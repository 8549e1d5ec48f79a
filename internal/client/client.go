// ABOUTME: HTTP fetch collaborator against the review server's forum API
// ABOUTME: Retrying GET of the locale feed plus submission of composed posts

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"

	"github.com/perlover/cldrforum/internal/models"
)

// Fetcher is the transport contract the session consumes. Retry and timeout
// policy live behind this interface; the reconstruction core never retries.
type Fetcher interface {
	// FetchPosts returns the flat post feed for a locale.
	FetchPosts(ctx context.Context, locale string) ([]*models.Post, error)
	// SubmitPost sends a composed post and returns the server's record.
	SubmitPost(ctx context.Context, draft *Draft) (*models.Post, error)
}

// Draft is a post to be submitted.
type Draft struct {
	Locale  string             `json:"locale"`
	Xpath   string             `json:"xpath,omitempty"`
	Parent  int64              `json:"parent"`
	Subject string             `json:"subject"`
	Text    string             `json:"text"`
	Status  models.ForumStatus `json:"forumStatus,omitempty"`
}

// HTTPStatusError reports a non-OK response from the server.
type HTTPStatusError struct {
	Status int
	URL    string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.URL)
}

// IsAuthError reports whether the error is a 401/403 from the server.
func IsAuthError(err error) bool {
	var se *HTTPStatusError
	return errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden)
}

type feedResponse struct {
	Posts []*models.Post `json:"posts"`
	Err   string         `json:"err,omitempty"`
}

type submitResponse struct {
	Post *models.Post `json:"post"`
	Err  string       `json:"err,omitempty"`
}

// Client fetches the forum feed over HTTP.
type Client struct {
	base   string
	client *http.Client
	logger *slog.Logger
}

// New creates a client for the given server base URL.
func New(base string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		client: httpClient,
		logger: logger,
	}
}

// FetchPosts implements Fetcher.
func (c *Client) FetchPosts(ctx context.Context, locale string) ([]*models.Post, error) {
	q := url.Values{}
	q.Set("what", "forum_fetch")
	q.Set("xpath", "0")
	q.Set("_", locale)
	endpoint := c.base + "/SurveyAjax?" + q.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			reqID := uuid.NewString()
			c.logger.Debug("fetching forum feed", "locale", locale, "request_id", reqID)

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
			if err != nil {
				return fmt.Errorf("create request: %w", err)
			}
			req.Header.Set("Accept", "application/json")
			req.Header.Set("X-Request-ID", reqID)

			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return &HTTPStatusError{Status: resp.StatusCode, URL: endpoint}
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}
			return nil
		},
		retry.Attempts(4),
		retry.LastErrorOnly(true),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying forum fetch", "attempt", n, "locale", locale, "error", err)
		}),
		retry.RetryIf(func(err error) bool {
			return !IsAuthError(err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for %s: %w", locale, err)
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse forum feed: %w", err)
	}
	if feed.Err != "" {
		return nil, fmt.Errorf("server rejected fetch: %s", feed.Err)
	}

	c.logger.Debug("forum feed fetched", "locale", locale, "posts", len(feed.Posts))
	return feed.Posts, nil
}

// SubmitPost implements Fetcher. Submission is not retried: a duplicate post
// is worse than a failed one surfaced to the user.
func (c *Client) SubmitPost(ctx context.Context, draft *Draft) (*models.Post, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}

	endpoint := c.base + "/SurveyAjax?what=forum_post"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{Status: resp.StatusCode, URL: endpoint}
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse submit response: %w", err)
	}
	if out.Err != "" {
		return nil, fmt.Errorf("server rejected post: %s", out.Err)
	}
	if out.Post == nil {
		return nil, errors.New("server returned no post record")
	}
	return out.Post, nil
}
