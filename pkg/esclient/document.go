package esclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Document is the result of fetching a single document by id.
type Document struct {
	ID     string          `json:"_id"`
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// GetDocument fetches one document by id. With realtime set the fetch sees
// writes that have not been refreshed yet. A missing document is a normal
// outcome: found=false, no error.
func (c *Client) GetDocument(ctx context.Context, id string, realtime bool) (*Document, error) {
	endpoint := c.BaseURL() + "/" + c.TypeName() + "/" + url.PathEscape(id) +
		"?realtime=" + strconv.FormatBool(realtime)
	doc, err := ExecuteJSON(ctx, c, http.MethodGet, endpoint, nil, DecodeJSON[Document])
	if err != nil {
		if IsNotFound(err) {
			return &Document{ID: id, Found: false}, nil
		}
		return nil, err
	}
	return &doc, nil
}
