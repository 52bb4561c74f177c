package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTP fetches data files from a static web origin. Every request carries a
// cache-busting query parameter and no-cache headers.
type HTTP struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewHTTP(baseURL string) *HTTP {
	return &HTTP{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (c *HTTP) Name() string {
	return "http:" + c.baseURL
}

func (c *HTTP) Fetch(ctx context.Context, p string) ([]byte, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(p, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s fetch: %w", p, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: p, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read: %w", p, err)
	}
	return body, nil
}
