package esclient

import (
	"net/http"
	"runtime"
	"sync"
	"time"
)

// readTimeout bounds a full request/response round trip. Bulk and heavy
// aggregation requests can legitimately run for a very long time, so the
// transport waits up to an hour before giving up. This timeout is the sole
// cancellation mechanism at this layer.
const readTimeout = time.Hour

var (
	sharedOnce sync.Once
	sharedHTTP *http.Client
	sharedErr  error
)

// sharedClient returns the process-wide HTTP client, building it on first
// use. Construction happens exactly once even under concurrent first use;
// the client itself is safe for concurrent use without external locking.
// There are no retries at this layer.
func sharedClient() (*http.Client, error) {
	sharedOnce.Do(func() {
		tlsCfg, err := tlsConfig()
		if err != nil {
			sharedErr = err
			return
		}
		sharedHTTP = &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: tlsCfg,
				// One idle connection per CPU; the pool is only really
				// exercised by parallel bulk workers.
				MaxIdleConnsPerHost: runtime.NumCPU(),
				IdleConnTimeout:     90 * time.Second,
			},
		}
	})
	return sharedHTTP, sharedErr
}
