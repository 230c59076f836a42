package labdex

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Health fetches the server health report. A degraded or failing server answers 503,
// which is returned as a report rather than an error.
func (c *Client) Health(ctx context.Context) (hs HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opHealth, start, err, "status", hs.Status) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&hs).
		SetError(&hs).
		Get("/health")
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health: %w", err)
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusServiceUnavailable:
		return hs, nil
	default:
		return HealthStatus{}, &APIError{StatusCode: resp.StatusCode()}
	}
}
