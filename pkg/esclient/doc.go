// Package esclient turns logical search and index operations into
// Elasticsearch HTTP requests and turns the responses back into typed
// results or classified errors.
//
// The package is designed for concurrent applications. All clients share
// one process-wide HTTP transport, built lazily on first use with TLS trust
// sourced from the platform certificate store, a one-hour read timeout for
// slow bulk and search operations, and an idle-connection pool sized to the
// host's CPU count. Beyond the transport, the package has four load-bearing
// parts:
//
//   - ExecuteJSON – the generic "send body, classify response, decode body"
//     primitive every endpoint builder is written on top of.
//
//   - RewriteAggregations – transparently wraps aggregations targeting
//     fields inside nested mappings in a nested/filter/aggs structure,
//     extracting the matching filter from the prepared query.
//
//   - BulkConcurrency / StartBulk – size and drive concurrent bulk-indexing
//     sessions without exceeding the index's shard count, the host's CPU
//     count or the operator's configured cap.
//
//   - The endpoint builders – thin single-endpoint wrappers (search, count,
//     aliases, mapping, settings, cat, analyze, suggest, documents) over
//     ExecuteJSON.
//
// # Usage
//
//	target, err := config.Load[esclient.IndexTarget]()
//	if err != nil { ... }
//
//	client, err := esclient.New(target)
//	if err != nil { ... }
//
//	q := esquery.QueryString("title:go").SetLimit(10)
//	resp, err := client.Search(ctx, q)
//
// # Error Handling
//
// Failures are classified into three kinds, all checkable with errors.Is:
// ErrTransport when the request never reached the backend (no status code),
// ErrRemote when the backend answered non-2xx (status code plus the error
// body rendered as text — JSON and CBOR bodies are decoded and re-rendered
// as pretty-printed JSON, anything else passes through verbatim), and
// ErrDecode when a 2xx body failed to parse into the expected shape.
// None of them are retried here; retry policy belongs to callers. A 404 is
// a distinguishable, often non-fatal outcome:
//
//	if err := client.DeleteIndex(ctx); err != nil && !esclient.IsNotFound(err) {
//	    return err
//	}
//
// # Testing
//
// Builds tagged `insecuretls` skip server certificate verification for test
// clusters with self-signed certificates. The tag must never reach a
// production binary.
package esclient
