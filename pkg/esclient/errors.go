package esclient

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport indicates the request never reached the search backend
	// (DNS failure, connection refusal, timeout). Use errors.Is() to check.
	ErrTransport = errors.New("request did not reach the search backend")

	// ErrRemote indicates the backend responded with a non-2xx status.
	// The carried *ResponseError exposes the status code and the rendered
	// error body.
	ErrRemote = errors.New("search backend rejected the request")

	// ErrDecode indicates a 2xx response body failed to parse into the
	// expected shape. This is a client/server contract violation, not a
	// transient condition, and is never retried.
	ErrDecode = errors.New("unexpected response body from search backend")

	// ErrNoTrustedCerts indicates the platform certificate store yielded no
	// usable trust anchors. There is no insecure fallback in production
	// builds, so transport initialization fails fatally.
	ErrNoTrustedCerts = errors.New("no trusted certificates available for TLS")

	// ErrInvalidTarget indicates the index target is missing required
	// fields or carries an unusable URL.
	ErrInvalidTarget = errors.New("invalid index target")

	// ErrBulkFinished is returned when operations are submitted to a bulk
	// session after Finish was called.
	ErrBulkFinished = errors.New("bulk session already finished")
)

// ResponseError is the normalized failure of one HTTP round trip. Status is
// zero when no response was received at all; otherwise it carries the
// backend's status code and the rendered error body.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("HTTP %d %s", e.Status, e.Message)
	}
	return e.Message
}

// Unwrap maps the error onto the package taxonomy so callers can use
// errors.Is(err, ErrRemote) / errors.Is(err, ErrTransport).
func (e *ResponseError) Unwrap() error {
	if e.Status > 0 {
		return ErrRemote
	}
	return ErrTransport
}

// IsNotFound reports whether the error is a remote 404. Callers decide
// whether "not found" is fatal; the core treats it as a normal outcome.
func IsNotFound(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.Status == 404
}
