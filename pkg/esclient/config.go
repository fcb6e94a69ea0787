package esclient

// IndexTarget identifies one Elasticsearch index and the knobs the client
// needs to talk to it. Values are read-only for the lifetime of a request;
// the struct is copied cheaply into each Client.
//
// Field tags allow zero-config loading through
// github.com/dmitrymomot/searchkit/pkg/config.
type IndexTarget struct {
	// URL of the cluster root, with or without a trailing slash.
	URL string `env:"ES_URL,required"`

	// Index is the physical index name.
	Index string `env:"ES_INDEX,required"`

	// Alias is the read alias; defaults to the index name when empty.
	Alias string `env:"ES_ALIAS"`

	// Shards is the index's shard count, the server-side unit of write
	// parallelism.
	Shards int `env:"ES_SHARDS" envDefault:"5"`

	// BulkConcurrency is the operator-controlled ceiling on parallel bulk
	// workers.
	BulkConcurrency int `env:"ES_BULK_CONCURRENCY" envDefault:"12"`

	// BatchSize is the bulk request payload threshold in bytes.
	BatchSize int `env:"ES_BATCH_SIZE" envDefault:"8388608"`

	// TypeName is the mapping type; modern clusters only accept _doc.
	TypeName string `env:"ES_TYPE_NAME" envDefault:"_doc"`
}
