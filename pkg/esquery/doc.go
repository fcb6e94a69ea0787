// Package esquery holds the prepared representation of a search request's
// query-DSL tree prior to it being sent to Elasticsearch.
//
// A Prepared value wraps an arbitrary query-DSL subtree (the part that ends
// up under "query" on the wire) together with the request decorations the
// builder layer attaches on top of it: limit, offset, minimum score, sort
// and row estimate. The zero decoration set serializes to just the DSL.
//
// Beyond serialization, Prepared supports one structural operation:
// TakeNestedFilter extracts the inner query of a `nested` clause with a
// given path and removes that clause from the tree. The aggregation layer
// in pkg/esclient uses the extracted subtree as the filter of a rewritten
// nested aggregation; the removal guarantees the remaining query does not
// filter the same path twice.
//
// # Usage
//
//	q := esquery.QueryString("title:go").SetLimit(50).SetMinScore(1.5)
//	body, _ := json.Marshal(q) // {"limit":50,"min_score":1.5,"query_dsl":{...}}
//
// Prepared values are not safe for concurrent mutation; each value is
// expected to be consumed by exactly one request.
package esquery
