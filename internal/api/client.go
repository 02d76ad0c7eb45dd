// Package api is the REST client for the notebook annotation server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/marginhq/margin/internal/core/notebook"
)

// DefaultTimeout bounds every request when the config does not say otherwise.
const DefaultTimeout = 10 * time.Second

const userAgent = "margin-client"

// Client talks to a single notebook server.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client for the given base URL. A zero timeout falls back to
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "api").Logger(),
	}
}

// BaseURL returns the server base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListEntities fetches the sidebar entity list.
func (c *Client) ListEntities(ctx context.Context) ([]notebook.EntitySummary, error) {
	body, err := c.get(ctx, c.baseURL+"/entities")
	if err != nil {
		return nil, err
	}

	var entities []notebook.EntitySummary
	if err := json.Unmarshal(body, &entities); err != nil {
		return nil, &DecodeError{URL: c.baseURL + "/entities", Err: err}
	}
	return entities, nil
}

// GetEntity fetches one entity with its comments.
func (c *Client) GetEntity(ctx context.Context, entityID int) (notebook.Entity, error) {
	url := fmt.Sprintf("%s/entities/%d", c.baseURL, entityID)

	body, err := c.get(ctx, url)
	if err != nil {
		return notebook.Entity{}, err
	}

	var entity notebook.Entity
	if err := json.Unmarshal(body, &entity); err != nil {
		return notebook.Entity{}, &DecodeError{URL: url, Err: err}
	}
	return entity, nil
}

// GetComment fetches a single comment by entity and comment ID. The body is
// decoded exactly once; a payload that is itself a JSON-encoded string (the
// legacy double-encoded form) is rejected as malformed rather than unwrapped.
func (c *Client) GetComment(ctx context.Context, entityID, commentID int) (notebook.Comment, error) {
	url := fmt.Sprintf("%s/entities/%d/%d?whole_comment=True&HTML=True", c.baseURL, entityID, commentID)

	body, err := c.get(ctx, url)
	if err != nil {
		return notebook.Comment{}, err
	}

	if isStringWrapped(body) {
		return notebook.Comment{}, &DecodeError{
			URL: url,
			Err: fmt.Errorf("payload is a JSON-encoded string, expected a comment object"),
		}
	}

	var comment notebook.Comment
	if err := json.Unmarshal(body, &comment); err != nil {
		return notebook.Comment{}, &DecodeError{URL: url, Err: err}
	}
	return comment, nil
}

// CreateEntity creates a new entity with the given name and returns its
// summary.
func (c *Client) CreateEntity(ctx context.Context, name string) (notebook.EntitySummary, error) {
	url := c.baseURL + "/entities"

	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return notebook.EntitySummary{}, fmt.Errorf("encode create request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return notebook.EntitySummary{}, err
	}

	var summary notebook.EntitySummary
	if len(body) > 0 {
		if err := json.Unmarshal(body, &summary); err != nil {
			return notebook.EntitySummary{}, &DecodeError{URL: url, Err: err}
		}
	}
	summary.Name = name
	return summary, nil
}

// SaveComment appends a new content revision to a comment.
func (c *Client) SaveComment(ctx context.Context, entityID, commentID int, content string) error {
	url := fmt.Sprintf("%s/entities/%d/%d", c.baseURL, entityID, commentID)

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("encode save request: %w", err)
	}

	_, err = c.do(ctx, http.MethodPost, url, payload)
	return err
}

// ImageURL returns the address of the binary image resource for an
// image-type comment. The resource itself is fetched by whatever displays
// it; the client only knows the address form.
func (c *Client) ImageURL(entityID, commentID int) string {
	return fmt.Sprintf("%s/entities/%d/%d", c.baseURL, entityID, commentID)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Debug().Err(err).Str("url", url).Msg("close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("request failed")
		return nil, &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// isStringWrapped reports whether the body's first non-space byte opens a
// JSON string.
func isStringWrapped(body []byte) bool {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return true
		default:
			return false
		}
	}
	return false
}
