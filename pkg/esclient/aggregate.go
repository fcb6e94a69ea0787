package esclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/searchkit/pkg/esquery"
)

// singleAggName is the aggregation name used by the single-agg convenience
// wrappers, mirrored in their response decoding.
const singleAggName = "the_agg"

// RewriteAggregations makes aggregations on nested fields transparent. When
// field lives inside a nested mapping, every aggregation in the set is
// wrapped in a `nested` scope on the field's containing path; with
// needFilter set, the matching nested filter is pulled out of the prepared
// query (removing it there, so the remaining query does not filter the path
// twice) and placed as an inner `filter` aggregation.
//
// Aggregations on non-nested fields, fields without a containing path, and
// requests without a field pass through unchanged.
func (c *Client) RewriteAggregations(ctx context.Context, field string, needFilter bool, query *esquery.Prepared, aggs map[string]any) map[string]any {
	if field == "" {
		return aggs
	}

	// The containing path is the field name minus its last dotted segment;
	// a field without a dot has no path and cannot be nested.
	dot := strings.LastIndex(field, ".")
	if dot < 0 {
		return aggs
	}
	path := field[:dot]

	if !c.isNested(ctx, path) {
		return aggs
	}

	var filter map[string]any
	if needFilter && query != nil {
		filter, _ = query.TakeNestedFilter(path)
	}

	wrapped := make(map[string]any, len(aggs))
	for name, agg := range aggs {
		wrapped[name] = makeNestedAgg(name, agg, path, filter)
	}
	return wrapped
}

// isNested consults the configured schema lookup, falling back to the live
// index mapping. Lookup failures and unknown fields count as not nested.
func (c *Client) isNested(ctx context.Context, path string) bool {
	lookup := c.schema
	if lookup == nil {
		schema, err := c.Schema(ctx)
		if err != nil {
			return false
		}
		lookup = schema
	}
	nested, err := lookup.IsNestedField(ctx, path)
	return err == nil && nested
}

// makeNestedAgg wraps one aggregation body in a nested scope, threading the
// optional filter in between under the same aggregation name.
func makeNestedAgg(name string, agg any, path string, filter map[string]any) map[string]any {
	inner := agg
	if filter != nil {
		inner = map[string]any{
			"filter": filter,
			"aggs":   map[string]any{name: agg},
		}
	}
	return map[string]any{
		"nested": map[string]any{"path": path},
		"aggs":   map[string]any{name: inner},
	}
}

// AggregateSet runs a set of named aggregations against the alias,
// rewriting nested targets first. The returned map is keyed by aggregation
// name; T is the decoded shape of one aggregation result.
func AggregateSet[T any](ctx context.Context, c *Client, field string, needFilter bool, query *esquery.Prepared, aggs map[string]any) (map[string]T, error) {
	aggs = c.RewriteAggregations(ctx, field, needFilter, query, aggs)

	if query == nil {
		query = esquery.MatchAll()
	}
	body := map[string]any{
		"query": query.Wire(),
		"aggs":  aggs,
		"size":  0,
	}
	type response struct {
		Aggregations map[string]T `json:"aggregations"`
	}
	resp, err := ExecuteJSON(ctx, c, http.MethodPost, c.AliasURL()+"/_search", body,
		DecodeJSON[response])
	if err != nil {
		return nil, err
	}
	return resp.Aggregations, nil
}

// Aggregate runs one unnamed aggregation and decodes its result as T.
func Aggregate[T any](ctx context.Context, c *Client, field string, needFilter bool, query *esquery.Prepared, agg map[string]any) (T, error) {
	var zero T
	results, err := AggregateSet[T](ctx, c, field, needFilter, query,
		map[string]any{singleAggName: agg})
	if err != nil {
		return zero, err
	}
	return results[singleAggName], nil
}

// RawAggregate sends an aggregation request body untouched and returns the
// raw aggregation results keyed by name. Escape hatch for callers that
// assemble their own aggregation DSL.
func (c *Client) RawAggregate(ctx context.Context, aggs map[string]any) (map[string]json.RawMessage, error) {
	body := map[string]any{"aggs": aggs, "size": 0}
	type response struct {
		Aggregations map[string]json.RawMessage `json:"aggregations"`
	}
	resp, err := ExecuteJSON(ctx, c, http.MethodPost, c.AliasURL()+"/_search", body,
		DecodeJSON[response])
	if err != nil {
		return nil, err
	}
	return resp.Aggregations, nil
}
