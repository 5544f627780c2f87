package streamable

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcpcognito/protocol"
	"golang.org/x/oauth2"
)

func TestTransport_Call(t *testing.T) {
	var testCases = []struct {
		description  string
		contentType  string
		body         string
		expectKind   protocol.Kind
		expectResult string
		expectFail   string
	}{
		{
			description:  "plain json",
			contentType:  "application/json",
			body:         `{"jsonrpc":"2.0","id":1,"result":{"tools":[]}}`,
			expectKind:   protocol.KindResult,
			expectResult: `{"tools":[]}`,
		},
		{
			description:  "sse framed",
			contentType:  "text/event-stream",
			body:         "event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{\"tools\":[]}}\n\n",
			expectKind:   protocol.KindResult,
			expectResult: `{"tools":[]}`,
		},
		{
			description:  "sse labeled as json",
			contentType:  "application/json",
			body:         "event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{}}\n\n",
			expectKind:   protocol.KindResult,
			expectResult: `{}`,
		},
		{
			description:  "json labeled as sse",
			contentType:  "text/event-stream",
			body:         `{"jsonrpc":"2.0","id":1,"result":{}}`,
			expectKind:   protocol.KindResult,
			expectResult: `{}`,
		},
		{
			description: "sse without data",
			contentType: "text/event-stream",
			body:        "event: message\n\n",
			expectKind:  protocol.KindFailure,
			expectFail:  protocol.NoSSEData,
		},
		{
			description: "application error",
			contentType: "application/json",
			body:        `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`,
			expectKind:  protocol.KindError,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", testCase.contentType)
				_, _ = io.WriteString(w, testCase.body)
			}))
			defer server.Close()
			transport, err := New(server.URL + "/mcp")
			require.NoError(t, err)
			request, err := protocol.NewRequest(1, "tools/list", nil)
			require.NoError(t, err)
			msg, err := transport.Call(context.Background(), request)
			require.NoError(t, err)
			assert.Equal(t, testCase.expectKind, msg.Kind())
			if testCase.expectResult != "" {
				assert.JSONEq(t, testCase.expectResult, string(msg.Result()))
			}
			if testCase.expectFail != "" {
				text, ok := msg.Failure()
				assert.True(t, ok)
				assert.Equal(t, testCase.expectFail, text)
			}
		})
	}
}

func TestTransport_Headers(t *testing.T) {
	var captured http.Header
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&payload)
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":5,"result":{}}`)
	}))
	defer server.Close()

	transport, err := New(server.URL+"/mcp", WithBearerToken(&oauth2.Token{AccessToken: "abc.def.ghi"}))
	require.NoError(t, err)
	request, err := protocol.NewRequest(5, "initialize", nil)
	require.NoError(t, err)
	_, err = transport.Call(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc.def.ghi", captured.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Get("Content-Type"))
	assert.Equal(t, "application/json, text/event-stream", captured.Get("Accept"))
	assert.Equal(t, "2.0", payload["jsonrpc"])
	assert.Equal(t, "initialize", payload["method"])
	assert.EqualValues(t, 5, payload["id"])
	assert.Equal(t, map[string]interface{}{}, payload["params"])
}

func TestTransport_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()
	transport, err := New(server.URL + "/mcp")
	require.NoError(t, err)
	request, err := protocol.NewRequest(1, "tools/list", nil)
	require.NoError(t, err)
	_, err = transport.Call(context.Background(), request)
	var transportErr *protocol.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusForbidden, transportErr.StatusCode)
	assert.False(t, transportErr.Timeout())
}

func TestTransport_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	timeout := 100 * time.Millisecond
	transport, err := New(server.URL+"/mcp", WithTimeout(timeout))
	require.NoError(t, err)
	request, err := protocol.NewRequest(1, "tools/list", nil)
	require.NoError(t, err)

	started := time.Now()
	_, err = transport.Call(context.Background(), request)
	elapsed := time.Since(started)

	var transportErr *protocol.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, transportErr.Timeout())
	assert.Less(t, elapsed, timeout+2*time.Second)
}

func TestTransport_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "data: {\"jsonrpc\":\"2.0\",\"id\":2,\"error\":{\"code\":-32002,\"message\":\"Server not initialized\"}}\n\n")
	}))
	defer server.Close()
	transport, err := New(server.URL + "/mcp")
	require.NoError(t, err)
	request, err := protocol.NewRequest(2, "tools/list", nil)
	require.NoError(t, err)
	response, err := transport.Send(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, response.Error)
	assert.Equal(t, -32002, response.Error.Code)
}

func TestTransport_Notify(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notification := &jsonrpc.Notification{}
		_ = json.NewDecoder(r.Body).Decode(notification)
		method = notification.Method
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()
	transport, err := New(server.URL + "/mcp")
	require.NoError(t, err)
	notification, err := protocol.NewNotification("notifications/initialized", nil)
	require.NoError(t, err)
	require.NoError(t, transport.Notify(context.Background(), notification))
	assert.Equal(t, "notifications/initialized", method)
}

func TestTransport_Health(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = io.WriteString(w, `{"status":"healthy","service":"currency-converter"}`)
	}))
	defer server.Close()
	transport, err := New(server.URL + "/prod/mcp")
	require.NoError(t, err)
	status, err := transport.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/prod", path)
	assert.Equal(t, &HealthStatus{Status: "healthy", Service: "currency-converter"}, status)
}

func TestBaseURL(t *testing.T) {
	var testCases = []struct {
		endpoint string
		expect   string
	}{
		{endpoint: "https://abc.execute-api.us-east-1.amazonaws.com/prod/mcp", expect: "https://abc.execute-api.us-east-1.amazonaws.com/prod"},
		{endpoint: "https://abc.execute-api.us-east-1.amazonaws.com/prod/mcp/", expect: "https://abc.execute-api.us-east-1.amazonaws.com/prod"},
		{endpoint: "http://localhost:8080/mcp", expect: "http://localhost:8080/"},
		{endpoint: "http://localhost:8080/rpc", expect: "http://localhost:8080/rpc"},
	}
	for _, testCase := range testCases {
		actual, err := BaseURL(testCase.endpoint)
		require.NoError(t, err, testCase.endpoint)
		assert.Equal(t, testCase.expect, actual, testCase.endpoint)
	}
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
	_, err = New("not a url")
	assert.Error(t, err)
}
