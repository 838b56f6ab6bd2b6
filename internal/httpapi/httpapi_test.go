package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)
	return srv
}

func postTool(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url+"/tool", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestTool_Evaluate(t *testing.T) {
	srv := newTestServer(t)
	code, out := postTool(t, srv.URL, `{"tool":"evaluate","params":{"expression":"2i+3i"}}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "5i", out["string"])
	result := out["result"].(map[string]any)
	assert.Equal(t, "complex", result["kind"])
	assert.Equal(t, 5.0, result["imag"])
}

func TestTool_NaNResultEncodes(t *testing.T) {
	srv := newTestServer(t)
	code, out := postTool(t, srv.URL, `{"tool":"evaluate","params":{"expression":"1/0"}}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Error", out["string"])
	assert.Nil(t, out["result"].(map[string]any)["real"])
}

func TestTool_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	code, out := postTool(t, srv.URL, `{"tool":"evaluate","bogus":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out["error"], "unknown field")

	code, out = postTool(t, srv.URL, `{"tool":"evaluate"} {}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid JSON: trailing data", out["error"])

	resp, err := http.Get(srv.URL + "/tool")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSchemaAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/schema")
	require.NoError(t, err)
	var schema struct {
		Tools []struct{ Name string } `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schema))
	resp.Body.Close()
	assert.NotEmpty(t, schema.Tools)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ok", health["status"])
}
