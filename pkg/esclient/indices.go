package esclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// CreateIndex creates the physical index with the given mapping/settings
// body.
func (c *Client) CreateIndex(ctx context.Context, body map[string]any) error {
	_, err := ExecuteJSON(ctx, c, http.MethodPut, c.BaseURL(), body, discardBody)
	return err
}

// DeleteIndex drops the physical index. A 404 is surfaced as a remote
// error; use IsNotFound when a missing index is acceptable.
func (c *Client) DeleteIndex(ctx context.Context) error {
	_, err := ExecuteJSON(ctx, c, http.MethodDelete, c.BaseURL(), nil, discardBody)
	return err
}

// RefreshIndex makes recent writes visible to search.
func (c *Client) RefreshIndex(ctx context.Context) error {
	_, err := ExecuteJSON(ctx, c, http.MethodPost, c.BaseURL()+"/_refresh", nil, discardBody)
	return err
}

// ExpungeDeletes force-merges segments, dropping tombstoned documents.
func (c *Client) ExpungeDeletes(ctx context.Context) error {
	_, err := ExecuteJSON(ctx, c, http.MethodPost,
		c.BaseURL()+"/_forcemerge?only_expunge_deletes=true", nil, discardBody)
	return err
}

// UpdateSettings applies dynamic index settings.
func (c *Client) UpdateSettings(ctx context.Context, settings map[string]any) error {
	_, err := ExecuteJSON(ctx, c, http.MethodPut, c.BaseURL()+"/_settings", settings, discardBody)
	return err
}

// PutMapping adds fields to the index mapping.
func (c *Client) PutMapping(ctx context.Context, mapping map[string]any) error {
	_, err := ExecuteJSON(ctx, c, http.MethodPut, c.BaseURL()+"/_mapping", mapping, discardBody)
	return err
}

// GetSettings fetches the index settings document, keyed by the physical
// index name.
func (c *Client) GetSettings(ctx context.Context) (json.RawMessage, error) {
	return ExecuteJSON(ctx, c, http.MethodGet, c.BaseURL()+"/_settings", nil,
		DecodeJSON[json.RawMessage])
}
