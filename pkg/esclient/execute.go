package esclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ExecuteJSON sends one HTTP request with an optional JSON body and hands
// the 2xx response body to decode. It is the single primitive every
// endpoint builder is written on top of.
//
// Outcomes map onto the package error taxonomy:
//
//   - the request never reached the backend → *ResponseError with no
//     status, matching ErrTransport;
//   - the backend answered non-2xx → *ResponseError with the status code
//     and the rendered error body, matching ErrRemote;
//   - the backend answered 2xx but decode failed → the decoder's error
//     joined with ErrDecode. Decoders are expected to fail loudly on
//     malformed bodies rather than substitute defaults.
//
// A nil body sends a bodyless request. No retries, no caching.
func ExecuteJSON[T any](ctx context.Context, c *Client, method, url string, body any, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	var payload io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, url, contentType, payload)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	v, err := decode(resp.Body)
	if err != nil {
		return zero, errors.Join(ErrDecode, err)
	}
	return v, nil
}

// do performs the round trip and classifies the outcome. A returned
// response always has a 2xx status; everything else comes back as an error.
func (c *Client) do(ctx context.Context, method, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &ResponseError{Message: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// No response was received; there is no status code to report.
		return nil, &ResponseError{Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, classifyFailure(resp)
	}
	return resp, nil
}

// DecodeJSON is the decoder most endpoint builders plug into ExecuteJSON:
// it parses the body as JSON into T and fails on malformed input.
func DecodeJSON[T any](r io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// decodeText reads the body verbatim.
func decodeText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// discardBody acknowledges a 2xx response whose body carries nothing the
// caller needs.
func discardBody(r io.Reader) (struct{}, error) {
	_, err := io.Copy(io.Discard, r)
	return struct{}{}, err
}
