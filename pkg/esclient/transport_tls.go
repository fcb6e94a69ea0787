//go:build !insecuretls

package esclient

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
)

// tlsConfig trusts the platform's native certificate store. If the store
// cannot be loaded there is no safe insecure fallback: initialization fails
// and every client constructor surfaces the error.
func tlsConfig() (*tls.Config, error) {
	pool, err := x509.SystemCertPool()
	if err != nil {
		return nil, errors.Join(ErrNoTrustedCerts, err)
	}
	if pool == nil {
		return nil, ErrNoTrustedCerts
	}
	return &tls.Config{RootCAs: pool}, nil
}
