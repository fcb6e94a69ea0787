package esquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit/pkg/esquery"
)

func nestedClause(path string, inner map[string]any) map[string]any {
	return map[string]any{
		"nested": map[string]any{
			"path":  path,
			"query": inner,
		},
	}
}

func TestTakeNestedFilter_AtRoot(t *testing.T) {
	t.Parallel()

	inner := map[string]any{"term": map[string]any{"comments.author": "bob"}}
	q := esquery.New(nestedClause("comments", inner))

	filter, ok := q.TakeNestedFilter("comments")
	require.True(t, ok)
	assert.Equal(t, inner, filter)

	// The clause is gone; what remains matches everything.
	assert.Equal(t, map[string]any{"match_all": map[string]any{}}, q.Wire())
}

func TestTakeNestedFilter_InsideBoolMust(t *testing.T) {
	t.Parallel()

	inner := map[string]any{"term": map[string]any{"comments.author": "bob"}}
	keep := map[string]any{"term": map[string]any{"status": "published"}}
	q := esquery.New(map[string]any{
		"bool": map[string]any{
			"must": []any{keep, nestedClause("comments", inner)},
		},
	})

	filter, ok := q.TakeNestedFilter("comments")
	require.True(t, ok)
	assert.Equal(t, inner, filter)

	// The sibling clause survives, the nested clause does not.
	assert.Equal(t, map[string]any{
		"bool": map[string]any{"must": []any{keep}},
	}, q.Wire())
}

func TestTakeNestedFilter_SingleClauseUnderBool(t *testing.T) {
	t.Parallel()

	inner := map[string]any{"term": map[string]any{"comments.author": "bob"}}
	q := esquery.New(map[string]any{
		"bool": map[string]any{"filter": nestedClause("comments", inner)},
	})

	filter, ok := q.TakeNestedFilter("comments")
	require.True(t, ok)
	assert.Equal(t, inner, filter)
	assert.Equal(t, map[string]any{"bool": map[string]any{}}, q.Wire())
}

func TestTakeNestedFilter_PathMismatch(t *testing.T) {
	t.Parallel()

	q := esquery.New(nestedClause("comments", map[string]any{"match_all": map[string]any{}}))

	_, ok := q.TakeNestedFilter("attachments")
	assert.False(t, ok)

	// The tree is untouched.
	assert.Contains(t, q.Wire(), "nested")
}

func TestTakeNestedFilter_SecondCallMisses(t *testing.T) {
	t.Parallel()

	q := esquery.New(map[string]any{
		"bool": map[string]any{
			"must": []any{nestedClause("comments", map[string]any{"match_all": map[string]any{}})},
		},
	})

	_, ok := q.TakeNestedFilter("comments")
	require.True(t, ok)

	_, ok = q.TakeNestedFilter("comments")
	assert.False(t, ok)
}

func TestTakeNestedFilter_ClauseWithoutInnerQuery(t *testing.T) {
	t.Parallel()

	q := esquery.New(map[string]any{
		"nested": map[string]any{"path": "comments"},
	})

	filter, ok := q.TakeNestedFilter("comments")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"match_all": map[string]any{}}, filter)
}

func TestTakeNestedFilter_EmptyQuery(t *testing.T) {
	t.Parallel()

	var q esquery.Prepared
	_, ok := q.TakeNestedFilter("comments")
	assert.False(t, ok)
}
