package streamable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcpcognito/protocol"
)

const (
	// DefaultTimeout bounds a single JSON-RPC call
	DefaultTimeout = 30 * time.Second
	// DefaultHealthTimeout bounds a health check
	DefaultHealthTimeout = 5 * time.Second

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"

	contentTypeJSON = "application/json"
	acceptAll       = "application/json, text/event-stream"
	mcpPathSegment  = "/mcp"
)

// Transport posts JSON-RPC messages to a streamable HTTP MCP endpoint
type Transport struct {
	endpoint      string
	client        *http.Client
	header        http.Header
	timeout       time.Duration
	healthTimeout time.Duration
	logger        *slog.Logger
}

// HealthStatus represents health endpoint response
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Endpoint returns MCP endpoint URL
func (t *Transport) Endpoint() string {
	return t.endpoint
}

// Call posts request and decodes response body, decoding failures are reported as failure messages
func (t *Transport) Call(ctx context.Context, request *jsonrpc.Request) (*protocol.Message, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %v request: %w", request.Method, err)
	}
	body, err := t.post(ctx, request.Method, payload)
	if err != nil {
		return nil, err
	}
	framing := protocol.Sniff(body)
	msg := protocol.Decode(body)
	t.logger.Debug("mcp call", "method", request.Method, "id", request.Id, "framing", string(framing), "kind", msg.Kind().String())
	return msg, nil
}

// Send implements transport.Transport
func (t *Transport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	msg, err := t.Call(ctx, request)
	if err != nil {
		return nil, err
	}
	return msg.Response()
}

// Notify implements transport.Transport
func (t *Transport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode %v notification: %w", notification.Method, err)
	}
	_, err = t.post(ctx, notification.Method, payload)
	if err == nil {
		t.logger.Debug("mcp notification", "method", notification.Method)
	}
	return err
}

func (t *Transport) post(ctx context.Context, method string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &protocol.TransportError{Method: method, URL: t.endpoint, Err: err}
	}
	for key, values := range t.header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	return t.do(httpRequest, method)
}

func (t *Transport) do(httpRequest *http.Request, method string) ([]byte, error) {
	URL := httpRequest.URL.String()
	response, err := t.client.Do(httpRequest)
	if err != nil {
		return nil, &protocol.TransportError{Method: method, URL: URL, Err: err}
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &protocol.TransportError{Method: method, URL: URL, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		t.logger.Debug("mcp call rejected", "method", method, "status", response.StatusCode)
		return nil, &protocol.TransportError{Method: method, URL: URL, StatusCode: response.StatusCode, Status: response.Status, Body: body}
	}
	return body, nil
}

// Health checks the service base path, the endpoint without its trailing /mcp segment
func (t *Transport) Health(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, t.healthTimeout)
	defer cancel()
	healthURL, err := BaseURL(t.endpoint)
	if err != nil {
		return nil, err
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return nil, &protocol.TransportError{Method: http.MethodGet, URL: healthURL, Err: err}
	}
	if authorization := t.header.Get(headerAuthorization); authorization != "" {
		httpRequest.Header.Set(headerAuthorization, authorization)
	}
	httpRequest.Header.Set(headerAccept, contentTypeJSON)
	body, err := t.do(httpRequest, http.MethodGet)
	if err != nil {
		return nil, err
	}
	ret := &HealthStatus{}
	if err = json.Unmarshal(body, ret); err != nil {
		return nil, &protocol.ProtocolError{Message: protocol.InvalidJSONResponse + err.Error(), Err: err}
	}
	return ret, nil
}

// BaseURL returns endpoint URL without trailing /mcp path segment
func BaseURL(endpoint string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %v: %w", endpoint, err)
	}
	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, mcpPathSegment)
	if path == "" {
		path = "/"
	}
	parsed.Path = path
	parsed.RawPath = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}

// New creates a transport for MCP endpoint
func New(endpoint string, options ...Option) (*Transport, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint was empty")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint %v: %w", endpoint, err)
	}
	ret := &Transport{
		endpoint:      endpoint,
		client:        http.DefaultClient,
		header:        http.Header{},
		timeout:       DefaultTimeout,
		healthTimeout: DefaultHealthTimeout,
		logger:        slog.Default(),
	}
	ret.header.Set(headerContentType, contentTypeJSON)
	ret.header.Set(headerAccept, acceptAll)
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}
