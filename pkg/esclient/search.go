package esclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/searchkit/pkg/esquery"
)

// SearchHit is one matched document.
type SearchHit struct {
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// SearchResponse is the decoded body of a _search request.
type SearchResponse struct {
	Took     int  `json:"took"`
	TimedOut bool `json:"timed_out"`
	Hits     struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore float64     `json:"max_score"`
		Hits     []SearchHit `json:"hits"`
	} `json:"hits"`
}

// Search runs the prepared query against the alias, honoring its limit,
// offset, minimum score and sort decorations.
func (c *Client) Search(ctx context.Context, query *esquery.Prepared) (*SearchResponse, error) {
	if query == nil {
		query = esquery.MatchAll()
	}
	body := map[string]any{
		"query":            query.Wire(),
		"track_total_hits": true,
	}
	if limit, ok := query.Limit(); ok {
		body["size"] = limit
	}
	if offset, ok := query.Offset(); ok {
		body["from"] = offset
	}
	if minScore, ok := query.MinScore(); ok {
		body["min_score"] = minScore
	}
	if sort := query.Sort(); sort != nil {
		body["sort"] = sort
	}

	resp, err := ExecuteJSON(ctx, c, http.MethodPost, c.AliasURL()+"/_search", body,
		DecodeJSON[SearchResponse])
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProfileQuery runs the query with the profile flag set and returns the
// backend's raw profiling report.
func (c *Client) ProfileQuery(ctx context.Context, query *esquery.Prepared) (string, error) {
	if query == nil {
		query = esquery.MatchAll()
	}
	body := map[string]any{
		"profile": true,
		"query":   query.Wire(),
		"size":    0,
	}
	result, err := ExecuteJSON(ctx, c, http.MethodPost, c.AliasURL()+"/_search", body,
		DecodeJSON[map[string]any])
	if err != nil {
		return "", err
	}
	return prettyJSON(result), nil
}
