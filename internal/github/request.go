package github

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	acceptHeader    = "application/vnd.github+json"
	contentEncoding = "gzip, deflate, br"
)

type Item interface{}

// GetItems makes GET requests to the GitHub API and returns items from all
// pages. GitHub list endpoints respond with a bare JSON array, so pagination
// advances the page parameter until a short page is returned.
func (c *Client) GetItems(endpoint string, q url.Values) ([]Item, error) {
	var items []Item

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.URL.RawQuery = q.Encode()

	pageSize, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || pageSize <= 0 {
		pageSize = 30 // GitHub default page size
	}

	for page := 1; ; page++ {
		pageItems, err := c.getPage(addPage(req, page))
		if err != nil {
			return nil, err
		}

		items = append(items, pageItems...)

		if len(pageItems) < pageSize {
			break
		}

		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"page %d returned a full page of %d items", page, len(pageItems)),
		))
	}

	return items, nil
}

func (c *Client) getPage(req *http.Request) ([]Item, error) {
	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		body, err = gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
	default:
		body = resp.Body
	}
	defer body.Close()

	var items []Item
	if err := json.NewDecoder(body).Decode(&items); err != nil {
		return nil, err
	}

	return items, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

// addPage adds the page parameter to the request URL.
func addPage(req *http.Request, page int) *http.Request {
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	return req
}
