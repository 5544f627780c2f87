package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcpcognito/client/mock"
	"github.com/viant/mcpcognito/protocol"
	"golang.org/x/oauth2"
)

var signingKey = []byte("test-signing-key")

func TestClient_Session(t *testing.T) {
	var testCases = []struct {
		description string
		options     []mock.Option
	}{
		{description: "json framing", options: []mock.Option{mock.WithFraming(protocol.FramingJSON)}},
		{description: "sse framing", options: []mock.Option{mock.WithFraming(protocol.FramingSSE)}},
		{description: "sse labeled as json", options: []mock.Option{mock.WithFraming(protocol.FramingSSE), mock.WithContentType("application/json")}},
		{description: "json labeled as sse", options: []mock.Option{mock.WithFraming(protocol.FramingJSON), mock.WithContentType("text/event-stream")}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			options := append([]mock.Option{
				mock.WithImplementation("currency-converter", "1.0.0"),
				mock.WithSigningKey(signingKey),
				mock.WithStrictSequence(),
				mock.WithTool(mock.ConvertUSDToINR()),
				mock.WithTool(mock.Echo()),
			}, testCase.options...)
			server := mock.NewHTTPTestServer(options...)
			defer server.Close()
			token, err := server.MCP.IssueToken("alice")
			require.NoError(t, err)

			ctx := context.Background()
			aClient, err := New(server.Endpoint, token, WithClientInfo("test-client", "0.1.0"))
			require.NoError(t, err)

			initResult, err := aClient.Initialize(ctx)
			require.NoError(t, err)
			assert.Equal(t, "currency-converter", initResult.ServerInfo.Name)
			assert.Equal(t, "1.0.0", initResult.ServerInfo.Version)
			assert.True(t, aClient.Initialized())
			assert.Equal(t, "currency-converter", aClient.ServerInfo().Name)

			listResult, err := aClient.ListTools(ctx, nil)
			require.NoError(t, err)
			require.Len(t, listResult.Tools, 2)
			assert.Equal(t, "convert_usd_to_inr", listResult.Tools[0].Name)
			assert.Equal(t, "Convert an amount in US dollars to Indian rupees", protocol.ToolDescription(&listResult.Tools[0]))
			assert.Equal(t, protocol.NoDescription, protocol.ToolDescription(&listResult.Tools[1]))
			assert.Equal(t, []string{"convert_usd_to_inr", "echo"}, aClient.Tools())
			tool, ok := aClient.Tool("echo")
			require.True(t, ok)
			assert.Equal(t, "echo", tool.Name)

			callResult, err := aClient.CallTool(ctx, "convert_usd_to_inr", map[string]interface{}{"amount": 100})
			require.NoError(t, err)
			require.Len(t, callResult.Content, 1)
			assert.Equal(t, "100.00 USD = 8312.00 INR", callResult.Content[0].Text)
			assert.False(t, callResult.IsError)

			require.NoError(t, aClient.Ping(ctx))

			requests := server.MCP.Requests()
			require.Len(t, requests, 4)
			var callParams map[string]interface{}
			require.NoError(t, json.Unmarshal(requests[2].Params, &callParams))
			assert.Equal(t, "convert_usd_to_inr", callParams["name"])
			assert.EqualValues(t, map[string]interface{}{"amount": float64(100)}, callParams["arguments"])
		})
	}
}

func TestClient_OutOfOrder(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithStrictSequence(), mock.WithTool(mock.Echo()))
	defer server.Close()
	aClient, err := New(server.Endpoint, nil)
	require.NoError(t, err)

	msg, err := aClient.Call(context.Background(), "tools/list", nil)
	require.NoError(t, err)
	assert.Equal(t, protocol.KindError, msg.Kind())
	require.NotNil(t, msg.RPCError())
	assert.Equal(t, mock.ServerNotInitialized, msg.RPCError().Code)

	_, err = aClient.ListTools(context.Background(), nil)
	var appErr *protocol.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, mock.ServerNotInitialized, appErr.Code())
	assert.Equal(t, "Server not initialized", appErr.Err.Message)
}

func TestClient_StrictSequence(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithTool(mock.Echo()))
	defer server.Close()
	aClient, err := New(server.Endpoint, nil, WithStrictSequence())
	require.NoError(t, err)

	_, err = aClient.ListTools(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = aClient.CallTool(context.Background(), "echo", nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Empty(t, server.MCP.Requests())

	_, err = aClient.Initialize(context.Background())
	require.NoError(t, err)
	result, err := aClient.CallTool(context.Background(), "echo", map[string]interface{}{"message": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result.Text())
}

func TestClient_Timeout(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithDelay(3 * time.Second))
	defer server.Close()
	timeout := 100 * time.Millisecond
	aClient, err := New(server.Endpoint, nil, WithTimeout(timeout))
	require.NoError(t, err)

	started := time.Now()
	_, err = aClient.Initialize(context.Background())
	elapsed := time.Since(started)

	var transportErr *protocol.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, transportErr.Timeout())
	assert.Less(t, elapsed, timeout+2*time.Second)
}

func TestClient_Unauthorized(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithSigningKey(signingKey))
	defer server.Close()

	var testCases = []struct {
		description string
		token       *oauth2.Token
		expect      int
	}{
		{description: "missing token", token: nil, expect: 401},
		{description: "invalid token", token: &oauth2.Token{AccessToken: "not.a.jwt"}, expect: 403},
	}
	for _, testCase := range testCases {
		aClient, err := New(server.Endpoint, testCase.token)
		require.NoError(t, err, testCase.description)
		_, err = aClient.Initialize(context.Background())
		var transportErr *protocol.TransportError
		require.True(t, errors.As(err, &transportErr), testCase.description)
		assert.Equal(t, testCase.expect, transportErr.StatusCode, testCase.description)
		assert.NotContains(t, err.Error(), "not.a.jwt", testCase.description)
	}
}

func TestClient_CallTool(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithTool(mock.Echo()))
	defer server.Close()
	ctx := context.Background()

	t.Run("unknown tool without validation", func(t *testing.T) {
		aClient, err := New(server.Endpoint, nil)
		require.NoError(t, err)
		_, err = aClient.CallTool(ctx, "get_weather", nil)
		var appErr *protocol.ApplicationError
		require.True(t, errors.As(err, &appErr))
		assert.EqualValues(t, jsonrpc.InvalidParams, appErr.Code())
		assert.Equal(t, "Unknown tool: get_weather", appErr.Err.Message)
	})

	t.Run("unknown tool with validation", func(t *testing.T) {
		aClient, err := New(server.Endpoint, nil, WithToolValidation())
		require.NoError(t, err)
		before := len(server.MCP.Requests())
		_, err = aClient.CallTool(ctx, "get_weather", nil)
		assert.ErrorIs(t, err, ErrUnknownTool)
		requests := server.MCP.Requests()[before:]
		require.Len(t, requests, 1)
		assert.Equal(t, "tools/list", requests[0].Method)

		result, err := aClient.CallTool(ctx, "echo", map[string]interface{}{"message": "ok"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ok"}, result.Texts())
	})
}

func TestClient_Identifiers(t *testing.T) {
	server := mock.NewHTTPTestServer()
	defer server.Close()
	ctx := context.Background()

	aClient, err := New(server.Endpoint, nil, WithIDGenerator(UUIDSequence()))
	require.NoError(t, err)
	msg, err := aClient.Call(ctx, "ping", nil)
	require.NoError(t, err)
	var id string
	require.NoError(t, json.Unmarshal(msg.ID(), &id))
	assert.Len(t, id, 36)

	msg, err = aClient.CallWithID(ctx, "custom-7", "ping", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `"custom-7"`, string(msg.ID()))

	sequence := &IntSequence{}
	assert.Equal(t, 1, sequence.NextID())
	assert.Equal(t, 2, sequence.NextID())
}

func TestClient_InitializedNotification(t *testing.T) {
	server := mock.NewHTTPTestServer()
	defer server.Close()
	aClient, err := New(server.Endpoint, nil, WithInitializedNotification(), WithProtocolVersion("2024-11-05"))
	require.NoError(t, err)
	result, err := aClient.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Equal(t, []string{"notifications/initialized"}, server.MCP.Notifications())
}

func TestClient_Health(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithImplementation("weather", "2.0.0"), mock.WithPath("/prod/mcp"))
	defer server.Close()
	aClient, err := New(server.Endpoint, nil)
	require.NoError(t, err)
	status, err := aClient.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "weather", status.Service)
}

type sendOnlyTransport struct {
	response *jsonrpc.Response
	err      error
}

func (s *sendOnlyTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	ret := *s.response
	ret.Id = request.Id
	return &ret, nil
}

func (s *sendOnlyTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	return s.err
}

func TestNewWithTransport(t *testing.T) {
	ctx := context.Background()

	aTransport := &sendOnlyTransport{response: &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Result: json.RawMessage(`{"content":[{"type":"text","text":"pong"}]}`)}}
	aClient := NewWithTransport(aTransport)
	result, err := aClient.CallTool(ctx, "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", result.Text())

	_, err = aClient.Health(ctx)
	assert.Error(t, err)

	failing := NewWithTransport(&sendOnlyTransport{err: errors.New("connection refused")})
	_, err = failing.Call(ctx, "ping", nil)
	assert.EqualError(t, err, "connection refused")
}
