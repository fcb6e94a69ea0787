package esclient

import (
	"context"
	"net/http"
	"strings"
)

// SchemaLookup answers whether a dotted field path is declared nested in
// the target index's mapping. Implementations must treat an unknown path as
// not nested rather than an error.
type SchemaLookup interface {
	IsNestedField(ctx context.Context, path string) (bool, error)
}

// MappingSchema is a SchemaLookup backed by a fetched index mapping.
type MappingSchema struct {
	properties map[string]any
}

// NewMappingSchema builds a schema from the `mappings` object of a
// get-mapping response (the value that holds `properties`).
func NewMappingSchema(mappings map[string]any) *MappingSchema {
	props, _ := mappings["properties"].(map[string]any)
	return &MappingSchema{properties: props}
}

// IsNestedField walks the mapping's properties along the dotted path and
// reports whether the addressed object is of type "nested". A path that
// does not exist in the mapping is simply not nested.
func (s *MappingSchema) IsNestedField(_ context.Context, path string) (bool, error) {
	props := s.properties
	var node map[string]any
	for _, segment := range strings.Split(path, ".") {
		if props == nil {
			return false, nil
		}
		var ok bool
		node, ok = props[segment].(map[string]any)
		if !ok {
			return false, nil
		}
		props, _ = node["properties"].(map[string]any)
	}
	fieldType, _ := node["type"].(string)
	return fieldType == "nested", nil
}

// GetMapping fetches the index's full mapping document, keyed by the
// physical index name.
func (c *Client) GetMapping(ctx context.Context) (map[string]any, error) {
	return ExecuteJSON(ctx, c, http.MethodGet, c.BaseURL()+"/_mapping", nil,
		DecodeJSON[map[string]any])
}

// Schema fetches the live mapping and wraps it as a MappingSchema. The
// result is valid for as long as the mapping does not change; callers that
// issue many rewrites should hold on to it.
func (c *Client) Schema(ctx context.Context) (*MappingSchema, error) {
	mapping, err := c.GetMapping(ctx)
	if err != nil {
		return nil, err
	}
	// The response is keyed by index name; with exactly one index there is
	// exactly one entry.
	for _, v := range mapping {
		if body, ok := v.(map[string]any); ok {
			if mappings, ok := body["mappings"].(map[string]any); ok {
				return NewMappingSchema(mappings), nil
			}
		}
	}
	return NewMappingSchema(nil), nil
}
