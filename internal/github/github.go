package github

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.github.com"
	userAgent = "gsoc-buddy (github.com/gsocbuddy/gsoc-buddy)"
	// Max value GitHub accepts for per_page.
	perPage = "100"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a GitHub API client. The token is optional: public repositories
// can be read unauthenticated at a lower rate limit.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// ListIssues fetches open issues for the repository described by params.
func (c *Client) ListIssues(params *IssueParams) (*Issues, error) {
	return c.listIssues(params)
}
