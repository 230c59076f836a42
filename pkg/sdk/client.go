package labdex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client calls the labdex HTTP API.
type Client struct {
	http     *resty.Client
	basePath string
	obs      *observer
}

// New creates a Client for the server at addr (scheme and host, e.g. http://localhost:8080).
func New(addr string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		basePath: DefaultBasePath,
		timeout:  defaultHTTPTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if addr == "" {
		return nil, errors.New("labdex: server address required")
	}
	if cfg.timeout <= 0 {
		cfg.timeout = defaultHTTPTimeout
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	rc := cfg.resty
	if rc == nil {
		rc = resty.New()
	}
	rc.SetBaseURL(addr).
		SetTimeout(cfg.timeout).
		SetHeader("Accept", "application/json")
	if cfg.apiKey != "" {
		rc.SetAuthToken(cfg.apiKey)
	}

	return &Client{
		http:     rc,
		basePath: "/" + strings.Trim(cfg.basePath, "/"),
		obs:      obs,
	}, nil
}

func (c *Client) path(p string) string {
	if c.basePath == "/" {
		return p
	}
	return c.basePath + p
}

// Organisations lists every organisation, ordered by name.
func (c *Client) Organisations(ctx context.Context) (orgs []Organisation, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opOrganisations, start, err, "count", len(orgs)) }()

	var out organisationList
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if err = c.do(req, c.path("/org")); err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	if out.Data == nil {
		out.Data = []Organisation{}
	}
	return out.Data, nil
}

// Samples searches the samples of one organisation. A nil query fetches everything.
func (c *Client) Samples(ctx context.Context, orgID string, q *Query) (doc *Document, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if doc != nil {
			n = len(doc.Data)
		}
		c.obs.observe(opSamples, start, err, "org", orgID, "count", n)
	}()

	out := &Document{}
	req := c.http.R().
		SetContext(ctx).
		SetPathParam("orgId", orgID).
		SetQueryParams(q.values()).
		SetResult(out)
	if err = c.do(req, c.path("/org/{orgId}/sample")); err != nil {
		return nil, fmt.Errorf("search samples of %s: %w", orgID, err)
	}
	return out, nil
}

// do issues a GET and converts non-2xx responses into *APIError.
func (c *Client) do(req *resty.Request, url string) error {
	body := &errorBody{}
	resp, err := req.SetError(body).Get(url)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Code:       body.Code,
			Message:    body.Message,
		}
	}
	return nil
}
