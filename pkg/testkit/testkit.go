// Package testkit holds HTTP helpers shared by the backend tests: sending
// JSON requests against an httptest server and asserting on the JSON shapes
// the storefront client consumes.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// Request describes one call against a test server.
type Request struct {
	Method string
	Path   string
	Token  string      // bearer token, "" for unauthenticated calls
	Body   interface{} // marshalled to JSON when non-nil
}

// Response captures the status and raw body of a test call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Do sends req against baseURL and returns the response. Transport or
// encoding failures end the test.
func Do(t *testing.T, baseURL string, req Request) Response {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		require.NoError(t, err, "marshal request body")
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequest(req.Method, baseURL+req.Path, body)
	require.NoError(t, err, "build request")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err, "%s %s", req.Method, req.Path)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "read response body")

	return Response{StatusCode: resp.StatusCode, Body: raw}
}

// JSON unmarshals the response body into dest, failing the test on
// malformed JSON.
func (r Response) JSON(t *testing.T, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, dest),
		"response is not valid JSON: %s", r.Body)
}

// Message returns the "message" field of an error response.
func (r Response) Message(t *testing.T) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	r.JSON(t, &body)
	return body.Message
}
