package shortcut

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultEndpoint is the Shortcut story search API
const DefaultEndpoint = "https://api.app.shortcut.com/api/v3/search"

const pageSize = 20

type client struct {
	token      string
	endpoint   string
	httpClient *http.Client
}

// Option is a functional option for the Shortcut client
type Option func(*client)

// WithEndpoint overrides the search endpoint
func WithEndpoint(endpoint string) Option {
	return func(c *client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Shortcut client authenticated with token
func NewClient(token string, opts ...Option) interfaces.IssueTracker {
	c := &client{
		token:      token,
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Stories struct {
		Data []struct {
			ID any `json:"id"`
		} `json:"data"`
	} `json:"stories"`
}

// SearchStoryIDs returns ids of stories linked to the pull request at prURL
func (c *client) SearchStoryIDs(ctx context.Context, prURL string) ([]string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid Shortcut endpoint", goerr.V("endpoint", c.endpoint))
	}
	q := u.Query()
	q.Set("query", "is:story and pr:"+prURL)
	q.Set("page_size", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Shortcut search request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Shortcut-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search Shortcut stories", goerr.V("pr_url", prURL))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read Shortcut response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected Shortcut status code",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var result searchResponse
	if err := dec.Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode Shortcut response")
	}

	ids := make([]string, 0, len(result.Stories.Data))
	for _, story := range result.Stories.Data {
		if story.ID == nil {
			continue
		}
		ids = append(ids, fmt.Sprint(story.ID))
	}
	return ids, nil
}
