package esclient

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/searchkit/pkg/esquery"
)

type countResponse struct {
	Count int64 `json:"count"`
}

// Count returns the number of documents matching the query, resolved
// through the alias.
func (c *Client) Count(ctx context.Context, query *esquery.Prepared) (int64, error) {
	return c.count(ctx, c.AliasURL(), query)
}

// RawCount counts against the physical index, bypassing the alias and any
// filters it carries.
func (c *Client) RawCount(ctx context.Context, query *esquery.Prepared) (int64, error) {
	return c.count(ctx, c.BaseURL(), query)
}

func (c *Client) count(ctx context.Context, base string, query *esquery.Prepared) (int64, error) {
	if query == nil {
		query = esquery.MatchAll()
	}
	body := map[string]any{"query": query.Wire()}
	resp, err := ExecuteJSON(ctx, c, http.MethodPost, base+"/_count", body,
		DecodeJSON[countResponse])
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}
