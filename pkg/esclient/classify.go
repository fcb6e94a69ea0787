package esclient

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// noResponseData is the placeholder embedded in a remote error whose body
// could not be read at all.
const noResponseData = "no response data"

// cborDecMode decodes CBOR maps with string keys so the decoded value can
// be re-rendered as JSON.
var cborDecMode, _ = cbor.DecOptions{
	DefaultMapType: reflect.TypeOf(map[string]any(nil)),
}.DecMode()

// classifyFailure turns a non-2xx response into a *ResponseError. The error
// body is decoded according to its declared content type and re-rendered as
// pretty-printed JSON, so JSON and CBOR bodies normalize to one
// human-readable format; anything else is passed through verbatim.
func classifyFailure(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ResponseError{Status: resp.StatusCode, Message: noResponseData}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))

	message := ""
	switch mediaType {
	case "application/json":
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			message = prettyJSON(v)
		}
	case "application/cbor":
		var v any
		if err := cborDecMode.Unmarshal(data, &v); err == nil {
			message = prettyJSON(v)
		}
	}
	if message == "" {
		// Unknown content type, or a body that lied about its encoding.
		message = string(data)
	}

	return &ResponseError{Status: resp.StatusCode, Message: message}
}

func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
