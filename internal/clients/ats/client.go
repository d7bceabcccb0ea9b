package ats

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Source identifies one company's job board on a specific ATS platform.
type Source struct {
	Name          string
	Platform      entities.AtsPlatform
	Identifier    string
	WorkdayDomain string
	WorkdaySiteID string
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	proxies     []proxy
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		proxies:    defaultProxies,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// FetchPostings retrieves and normalizes every posting currently listed on
// the source's board. An empty board yields an empty slice, not an error.
func (c *Client) FetchPostings(ctx context.Context, source Source) ([]entities.Posting, error) {

	switch source.Platform {
	case entities.PlatformGreenhouse:
		return c.fetchGreenhouse(ctx, source.Identifier)
	case entities.PlatformLever:
		return c.fetchLever(ctx, source.Identifier)
	case entities.PlatformAshby:
		return c.fetchAshby(ctx, source.Identifier)
	case entities.PlatformWorkday:
		return c.fetchWorkday(ctx, source.WorkdayDomain, source.WorkdaySiteID)
	default:
		return nil, errors.Errorf("unsupported ats platform: %v", source.Platform)
	}
}

func (c *Client) get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, int, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error creating request")
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error sending request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, "error reading response body")
	}

	return body, resp.StatusCode, nil
}

func encodeTarget(target string) string {
	return url.QueryEscape(target)
}
