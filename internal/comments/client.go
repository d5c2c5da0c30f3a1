package comments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API is the remote comment store.
type API interface {
	List(ctx context.Context, page string) ([]Comment, error)
	Post(ctx context.Context, page string, s Submission) error
}

// Client talks to the comments API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the API at baseURL. A zero timeout leaves
// requests bounded by their context only.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) endpoint(page string) string {
	return c.baseURL + "/comments?" + url.Values{"pageName": {page}}.Encode()
}

func (c *Client) newRequest(ctx context.Context, method, page string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(page), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	return req, nil
}

// List fetches the comments of page in API order.
func (c *Client) List(ctx context.Context, page string) ([]Comment, error) {
	req, err := c.newRequest(ctx, http.MethodGet, page, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)}
	}

	var comments []Comment
	if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

// Post submits a comment for page. A non-2xx answer with a JSON body becomes
// an *APIError carrying the API's message.
func (c *Client) Post(ctx context.Context, page string, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, page, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitting comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		return fmt.Errorf("decoding error response (status %d): %w", resp.StatusCode, err)
	}
	msg := errBody.Error
	if msg == "" {
		msg = DefaultSubmitFailed
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
