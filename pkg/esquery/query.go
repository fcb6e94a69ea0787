package esquery

import "encoding/json"

// Prepared is a mutable, serializable query-DSL tree plus the request
// decorations attached by the builder layer. Construct with New or
// QueryString; the zero value behaves as a match-all query.
type Prepared struct {
	dsl         map[string]any
	limit       *uint64
	offset      *uint64
	minScore    *float64
	rowEstimate *uint64
	sortField   string
	sortDir     string
}

// New wraps an existing query-DSL subtree. The tree is owned by the
// returned value afterwards; callers must not keep mutating it.
func New(dsl map[string]any) *Prepared {
	return &Prepared{dsl: dsl}
}

// QueryString builds a prepared query around a single query_string clause.
func QueryString(query string) *Prepared {
	return New(map[string]any{
		"query_string": map[string]any{"query": query},
	})
}

// MatchAll builds a prepared query matching every document.
func MatchAll() *Prepared {
	return New(map[string]any{"match_all": map[string]any{}})
}

func (p *Prepared) SetLimit(n uint64) *Prepared {
	p.limit = &n
	return p
}

func (p *Prepared) SetOffset(n uint64) *Prepared {
	p.offset = &n
	return p
}

func (p *Prepared) SetMinScore(score float64) *Prepared {
	p.minScore = &score
	return p
}

func (p *Prepared) SetRowEstimate(n uint64) *Prepared {
	p.rowEstimate = &n
	return p
}

// SetSort orders results by field in direction "asc" or "desc".
func (p *Prepared) SetSort(field, direction string) *Prepared {
	p.sortField = field
	p.sortDir = direction
	return p
}

func (p *Prepared) Limit() (uint64, bool) {
	if p.limit == nil {
		return 0, false
	}
	return *p.limit, true
}

func (p *Prepared) Offset() (uint64, bool) {
	if p.offset == nil {
		return 0, false
	}
	return *p.offset, true
}

func (p *Prepared) MinScore() (float64, bool) {
	if p.minScore == nil {
		return 0, false
	}
	return *p.minScore, true
}

func (p *Prepared) RowEstimate() (uint64, bool) {
	if p.rowEstimate == nil {
		return 0, false
	}
	return *p.rowEstimate, true
}

// Sort returns the configured sort descriptor in Elasticsearch wire shape,
// or nil when no sort is set.
func (p *Prepared) Sort() any {
	if p.sortField == "" {
		return nil
	}
	dir := p.sortDir
	if dir == "" {
		dir = "asc"
	}
	return []any{map[string]any{p.sortField: map[string]any{"order": dir}}}
}

// Wire returns the DSL subtree to embed under "query" in a request body.
// A query with no DSL degrades to match_all.
func (p *Prepared) Wire() map[string]any {
	if p.dsl == nil {
		return map[string]any{"match_all": map[string]any{}}
	}
	return p.dsl
}

// MarshalJSON renders the full decorated tree: the decorations at the top
// level next to the query_dsl subtree.
func (p *Prepared) MarshalJSON() ([]byte, error) {
	out := map[string]any{"query_dsl": p.Wire()}
	if p.limit != nil {
		out["limit"] = *p.limit
	}
	if p.offset != nil {
		out["offset"] = *p.offset
	}
	if p.minScore != nil {
		out["min_score"] = *p.minScore
	}
	if p.rowEstimate != nil {
		out["row_estimate"] = *p.rowEstimate
	}
	if s := p.Sort(); s != nil {
		out["sort"] = s
	}
	return json.Marshal(out)
}
