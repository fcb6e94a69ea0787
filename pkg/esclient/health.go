package esclient

import (
	"context"
	"errors"
	"net/http"
)

// ErrHealthcheckFailed indicates the cluster is unreachable or unhealthy.
var ErrHealthcheckFailed = errors.New("search backend healthcheck failed")

// Healthcheck returns a function suitable for liveness/readiness probes.
// The returned function hits the cluster root to verify connectivity and is
// safe for concurrent use in HTTP health endpoints.
func Healthcheck(c *Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := ExecuteJSON(ctx, c, http.MethodGet, c.URL(), nil, discardBody); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
