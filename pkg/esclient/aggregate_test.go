package esclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit/pkg/esclient"
	"github.com/dmitrymomot/searchkit/pkg/esquery"
)

// stubSchema answers nested-ness from a fixed set of paths.
type stubSchema struct {
	nested map[string]bool
	err    error
}

func (s stubSchema) IsNestedField(_ context.Context, path string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.nested[path], nil
}

func termsAgg(field string) map[string]any {
	return map[string]any{"terms": map[string]any{"field": field}}
}

func TestRewriteAggregations_NoField(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{"comments": true}}))

	aggs := map[string]any{"by_author": termsAgg("comments.author")}
	out := c.RewriteAggregations(context.Background(), "", false, nil, aggs)
	assert.Equal(t, aggs, out)
}

func TestRewriteAggregations_FieldWithoutPath(t *testing.T) {
	t.Parallel()

	// Even a schema that claims everything is nested cannot make a dotless
	// field nested: it has no containing path.
	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{"title": true}}))

	aggs := map[string]any{"by_title": termsAgg("title")}
	out := c.RewriteAggregations(context.Background(), "title", true, esquery.MatchAll(), aggs)
	assert.Equal(t, aggs, out)
}

func TestRewriteAggregations_NotNestedIsIdentity(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{}}))

	aggs := map[string]any{"by_author": termsAgg("comments.author")}
	out := c.RewriteAggregations(context.Background(), "comments.author", true,
		esquery.MatchAll(), aggs)
	assert.Equal(t, aggs, out)
}

func TestRewriteAggregations_SchemaErrorTreatedAsNotNested(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{err: errors.New("lookup failed")}))

	aggs := map[string]any{"by_author": termsAgg("comments.author")}
	out := c.RewriteAggregations(context.Background(), "comments.author", false, nil, aggs)
	assert.Equal(t, aggs, out)
}

func TestRewriteAggregations_NestedNoFilter(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{"comments": true}}))

	original := termsAgg("comments.author")
	out := c.RewriteAggregations(context.Background(), "comments.author", false, nil,
		map[string]any{"by_author": original})

	assert.Equal(t, map[string]any{
		"by_author": map[string]any{
			"nested": map[string]any{"path": "comments"},
			"aggs":   map[string]any{"by_author": original},
		},
	}, out)
}

func TestRewriteAggregations_NestedWithFilter(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{"comments": true}}))

	filter := map[string]any{"term": map[string]any{"comments.author": "bob"}}
	q := esquery.New(map[string]any{
		"bool": map[string]any{
			"must": []any{
				map[string]any{"term": map[string]any{"status": "published"}},
				map[string]any{"nested": map[string]any{
					"path":  "comments",
					"query": filter,
				}},
			},
		},
	})

	original := termsAgg("comments.author")
	out := c.RewriteAggregations(context.Background(), "comments.author", true, q,
		map[string]any{"by_author": original})

	assert.Equal(t, map[string]any{
		"by_author": map[string]any{
			"nested": map[string]any{"path": "comments"},
			"aggs": map[string]any{
				"by_author": map[string]any{
					"filter": filter,
					"aggs":   map[string]any{"by_author": original},
				},
			},
		},
	}, out)

	// The extracted filter was consumed: the query no longer carries the
	// nested clause, so the remainder is not double-filtered.
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"nested"`)
	assert.Contains(t, string(data), `"published"`)
}

func TestRewriteAggregations_FilterRequestedButAbsent(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{"comments": true}}))

	q := esquery.QueryString("status:published")
	original := termsAgg("comments.author")
	out := c.RewriteAggregations(context.Background(), "comments.author", true, q,
		map[string]any{"by_author": original})

	// No matching filter subtree exists; proceed without one.
	assert.Equal(t, map[string]any{
		"by_author": map[string]any{
			"nested": map[string]any{"path": "comments"},
			"aggs":   map[string]any{"by_author": original},
		},
	}, out)
}

func TestRewriteAggregations_MultipleAggsShareFilter(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:9200",
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{"comments": true}}))

	filter := map[string]any{"term": map[string]any{"comments.author": "bob"}}
	q := esquery.New(map[string]any{
		"nested": map[string]any{"path": "comments", "query": filter},
	})

	byAuthor := termsAgg("comments.author")
	byDate := map[string]any{"date_histogram": map[string]any{
		"field": "comments.created_at", "calendar_interval": "day",
	}}
	out := c.RewriteAggregations(context.Background(), "comments.author", true, q,
		map[string]any{"by_author": byAuthor, "by_date": byDate})

	require.Len(t, out, 2)
	for name, original := range map[string]any{"by_author": byAuthor, "by_date": byDate} {
		assert.Equal(t, map[string]any{
			"nested": map[string]any{"path": "comments"},
			"aggs": map[string]any{
				name: map[string]any{
					"filter": filter,
					"aggs":   map[string]any{name: original},
				},
			},
		}, out[name], "aggregation %q", name)
	}
}

func TestAggregateSet_Wire(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products-alias/_search", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{
			"aggregations": {
				"by_author": {"buckets": [{"key": "bob", "doc_count": 3}]}
			}
		}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL,
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{}}))

	type bucketAgg struct {
		Buckets []struct {
			Key      string `json:"key"`
			DocCount int64  `json:"doc_count"`
		} `json:"buckets"`
	}
	results, err := esclient.AggregateSet[bucketAgg](context.Background(), c,
		"author", false, esquery.QueryString("status:published"),
		map[string]any{"by_author": termsAgg("author")})
	require.NoError(t, err)

	require.Contains(t, results, "by_author")
	require.Len(t, results["by_author"].Buckets, 1)
	assert.Equal(t, "bob", results["by_author"].Buckets[0].Key)
	assert.Equal(t, int64(3), results["by_author"].Buckets[0].DocCount)

	// Aggregation requests never fetch hits.
	assert.Equal(t, float64(0), captured["size"])
	assert.Contains(t, captured, "query")
	assert.Contains(t, captured, "aggs")
}

func TestAggregate_SingleAgg(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		aggs := body["aggs"].(map[string]any)
		assert.Contains(t, aggs, "the_agg")
		w.Write([]byte(`{"aggregations": {"the_agg": {"value": 42}}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL,
		esclient.WithSchemaLookup(stubSchema{nested: map[string]bool{}}))

	type valueAgg struct {
		Value float64 `json:"value"`
	}
	result, err := esclient.Aggregate[valueAgg](context.Background(), c, "", false,
		esquery.MatchAll(), map[string]any{"avg": map[string]any{"field": "price"}})
	require.NoError(t, err)
	assert.Equal(t, float64(42), result.Value)
}
