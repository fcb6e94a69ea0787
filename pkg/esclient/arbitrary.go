package esclient

import (
	"context"
	"fmt"
	"strings"
)

// Method restricts arbitrary requests to the verbs the backend accepts for
// administrative endpoints.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
)

// Do issues an arbitrary request against the cluster and returns the raw
// response body. An endpoint starting with "/" is resolved against the
// cluster root; anything else is resolved against the index URL. Escape
// hatch for endpoints without a dedicated builder.
func (c *Client) Do(ctx context.Context, method Method, endpoint string, body any) (string, error) {
	switch method {
	case GET, POST, PUT, DELETE:
	default:
		return "", fmt.Errorf("unsupported request method %q", method)
	}

	var target string
	if strings.HasPrefix(endpoint, "/") {
		// The cluster URL carries a trailing slash; drop the endpoint's
		// leading one.
		target = c.URL() + endpoint[1:]
	} else {
		target = c.BaseURL() + "/" + endpoint
	}

	return ExecuteJSON(ctx, c, string(method), target, body, decodeText)
}
