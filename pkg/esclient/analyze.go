package esclient

import (
	"context"
	"net/http"
)

// AnalyzeToken is one token produced by the _analyze endpoint.
type AnalyzeToken struct {
	Token       string `json:"token"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	Type        string `json:"type"`
	Position    int    `json:"position"`
}

type analyzeResponse struct {
	Tokens []AnalyzeToken `json:"tokens"`
}

// AnalyzeRequest selects the analysis chain for AnalyzeCustom. Zero fields
// are omitted from the request.
type AnalyzeRequest struct {
	Field      string   `json:"field,omitempty"`
	Text       string   `json:"text,omitempty"`
	Tokenizer  string   `json:"tokenizer,omitempty"`
	Normalizer string   `json:"normalizer,omitempty"`
	Filter     []string `json:"filter,omitempty"`
	CharFilter []string `json:"char_filter,omitempty"`
}

// AnalyzeText runs text through a named analyzer.
func (c *Client) AnalyzeText(ctx context.Context, analyzer, text string) ([]AnalyzeToken, error) {
	return c.analyze(ctx, map[string]any{"analyzer": analyzer, "text": text})
}

// AnalyzeWithField runs text through the analyzer configured for a mapped
// field.
func (c *Client) AnalyzeWithField(ctx context.Context, field, text string) ([]AnalyzeToken, error) {
	return c.analyze(ctx, map[string]any{"field": field, "text": text})
}

// AnalyzeCustom runs text through an ad hoc analysis chain.
func (c *Client) AnalyzeCustom(ctx context.Context, req AnalyzeRequest) ([]AnalyzeToken, error) {
	return c.analyze(ctx, req)
}

func (c *Client) analyze(ctx context.Context, body any) ([]AnalyzeToken, error) {
	resp, err := ExecuteJSON(ctx, c, http.MethodPost, c.BaseURL()+"/_analyze", body,
		DecodeJSON[analyzeResponse])
	if err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}
