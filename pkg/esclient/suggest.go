package esclient

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/searchkit/pkg/esquery"
)

// TermSuggestion is one correction candidate for a suggested term.
type TermSuggestion struct {
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	Frequency int64   `json:"freq"`
}

type suggestResponse struct {
	Suggest map[string][]struct {
		Options []TermSuggestion `json:"options"`
	} `json:"suggest"`
}

// SuggestTerms asks the term suggester for corrections of suggest within
// field, scoped by the query.
func (c *Client) SuggestTerms(ctx context.Context, query *esquery.Prepared, field, suggest string) ([]TermSuggestion, error) {
	if query == nil {
		query = esquery.MatchAll()
	}
	body := map[string]any{
		"query": query.Wire(),
		"size":  0,
		"suggest": map[string]any{
			"suggestions": map[string]any{
				"text": suggest,
				"term": map[string]any{"field": field},
			},
		},
	}
	resp, err := ExecuteJSON(ctx, c, http.MethodPost, c.AliasURL()+"/_search", body,
		DecodeJSON[suggestResponse])
	if err != nil {
		return nil, err
	}
	var out []TermSuggestion
	for _, entry := range resp.Suggest["suggestions"] {
		out = append(out, entry.Options...)
	}
	return out, nil
}
