package esclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// Cat queries a _cat endpoint ("indices", "health", "shards", ...) in JSON
// format and returns the raw rows.
func (c *Client) Cat(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return ExecuteJSON(ctx, c, http.MethodGet,
		c.URL()+"_cat/"+endpoint+"?format=json", nil,
		DecodeJSON[json.RawMessage])
}
