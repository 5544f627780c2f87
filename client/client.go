package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpcognito/internal/collection"
	"github.com/viant/mcpcognito/protocol"
	"github.com/viant/mcpcognito/transport/streamable"
	"golang.org/x/oauth2"
)

var (
	// ErrNotInitialized is returned by typed operations of a strict client before a successful initialize
	ErrNotInitialized = errors.New("session is not initialized")
	// ErrUnknownTool is returned by CallTool when tool validation is enabled and the tool was not listed
	ErrUnknownTool = errors.New("unknown tool")
)

// Caller is implemented by transports that expose the decoded response message
type Caller interface {
	Call(ctx context.Context, request *jsonrpc.Request) (*protocol.Message, error)
}

// Healther is implemented by transports that can check service health
type Healther interface {
	Health(ctx context.Context) (*streamable.HealthStatus, error)
}

// Client represents an MCP protocol client bound to one endpoint and one bearer token
type Client struct {
	transport         transport.Transport
	ids               IDGenerator
	info              schema.Implementation
	capabilities      schema.ClientCapabilities
	protocolVersion   string
	strict            bool
	validateTools     bool
	notifyInitialized bool
	logger            *slog.Logger
	transportOptions  []streamable.Option

	mux         sync.RWMutex
	initialized bool
	serverInfo  *schema.Implementation
	listed      bool
	tools       *collection.SyncMap[string, schema.Tool]
}

// Call sends a JSON-RPC request with the next sequenced id, the decoded response message is
// returned as is, error is returned only when the request could not be built or delivered
func (c *Client) Call(ctx context.Context, method string, params interface{}) (*protocol.Message, error) {
	return c.CallWithID(ctx, c.ids.NextID(), method, params)
}

// CallWithID sends a JSON-RPC request with caller supplied id
func (c *Client) CallWithID(ctx context.Context, id jsonrpc.RequestId, method string, params interface{}) (*protocol.Message, error) {
	request, err := protocol.NewRequest(id, method, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build %v request: %w", method, err)
	}
	if caller, ok := c.transport.(Caller); ok {
		return caller.Call(ctx, request)
	}
	response, err := c.transport.Send(ctx, request)
	if err != nil {
		return nil, err
	}
	return protocol.FromResponse(response)
}

// Notify sends a JSON-RPC notification
func (c *Client) Notify(ctx context.Context, method string, params interface{}) error {
	notification, err := protocol.NewNotification(method, params)
	if err != nil {
		return fmt.Errorf("failed to build %v notification: %w", method, err)
	}
	return c.transport.Notify(ctx, notification)
}

// Initialize performs the initialize handshake
func (c *Client) Initialize(ctx context.Context) (*schema.InitializeResult, error) {
	params := &schema.InitializeRequestParams{
		Capabilities:    c.capabilities,
		ClientInfo:      c.info,
		ProtocolVersion: c.protocolVersion,
	}
	result, err := send[schema.InitializeResult](ctx, c, schema.MethodInitialize, params)
	if err != nil {
		return nil, err
	}
	if c.notifyInitialized {
		if err = c.Notify(ctx, schema.MethodNotificationInitialized, nil); err != nil {
			return nil, fmt.Errorf("failed to notify initialized: %w", err)
		}
	}
	c.mux.Lock()
	c.initialized = true
	serverInfo := result.ServerInfo
	c.serverInfo = &serverInfo
	c.mux.Unlock()
	c.logger.Debug("mcp session initialized", "server", serverInfo.Name, "version", serverInfo.Version, "protocolVersion", result.ProtocolVersion)
	return result, nil
}

// ListTools lists server tools, nil cursor requests the first page and resets known tools
func (c *Client) ListTools(ctx context.Context, cursor *string) (*schema.ListToolsResult, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	var params interface{}
	if cursor != nil {
		params = map[string]interface{}{"cursor": *cursor}
	}
	result, err := send[schema.ListToolsResult](ctx, c, schema.MethodToolsList, params)
	if err != nil {
		return nil, err
	}
	c.mux.Lock()
	if cursor == nil || !c.listed {
		c.tools.Clear()
	}
	c.listed = true
	for _, tool := range result.Tools {
		c.tools.Put(tool.Name, tool)
	}
	c.mux.Unlock()
	return result, nil
}

// CallTool invokes a tool by name with arguments, nil arguments are sent as an empty object
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (*protocol.CallToolResult, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if c.validateTools {
		if err := c.ensureTool(ctx, name); err != nil {
			return nil, err
		}
	}
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	params := map[string]interface{}{"name": name, "arguments": arguments}
	return send[protocol.CallToolResult](ctx, c, schema.MethodToolsCall, params)
}

// Ping checks the server responds to JSON-RPC
func (c *Client) Ping(ctx context.Context) error {
	_, err := send[schema.PingResult](ctx, c, schema.MethodPing, nil)
	return err
}

// Health checks service health endpoint
func (c *Client) Health(ctx context.Context) (*streamable.HealthStatus, error) {
	healther, ok := c.transport.(Healther)
	if !ok {
		return nil, fmt.Errorf("transport %T does not support health check", c.transport)
	}
	return healther.Health(ctx)
}

// Initialized returns true after a successful initialize
func (c *Client) Initialized() bool {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.initialized
}

// ServerInfo returns server implementation reported by initialize
func (c *Client) ServerInfo() *schema.Implementation {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.serverInfo
}

// Tools returns sorted names of tools seen by ListTools
func (c *Client) Tools() []string {
	return c.tools.SortedKeys(func(a, b string) bool { return a < b })
}

// Tool returns a tool seen by ListTools
func (c *Client) Tool(name string) (*schema.Tool, bool) {
	tool, ok := c.tools.Get(name)
	if !ok {
		return nil, false
	}
	return &tool, true
}

func (c *Client) ensureInitialized() error {
	if c.strict && !c.Initialized() {
		return ErrNotInitialized
	}
	return nil
}

func (c *Client) ensureTool(ctx context.Context, name string) error {
	c.mux.RLock()
	listed := c.listed
	c.mux.RUnlock()
	if !listed {
		if _, err := c.ListTools(ctx, nil); err != nil {
			return err
		}
	}
	if _, known := c.tools.Get(name); !known {
		return fmt.Errorf("%w: %v", ErrUnknownTool, name)
	}
	return nil
}

func send[R any](ctx context.Context, client *Client, method string, params interface{}) (*R, error) {
	msg, err := client.Call(ctx, method, params)
	if err != nil {
		return nil, err
	}
	var result R
	if err = msg.DecodeResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// New creates a client posting to endpoint with bearer token
func New(endpoint string, token *oauth2.Token, options ...Option) (*Client, error) {
	ret := newClient(options...)
	transportOptions := append(ret.transportOptions, streamable.WithBearerToken(token), streamable.WithLogger(ret.logger))
	aTransport, err := streamable.New(endpoint, transportOptions...)
	if err != nil {
		return nil, err
	}
	ret.transport = aTransport
	return ret, nil
}

// NewWithTransport creates a client using supplied transport
func NewWithTransport(aTransport transport.Transport, options ...Option) *Client {
	ret := newClient(options...)
	ret.transport = aTransport
	return ret
}

func newClient(options ...Option) *Client {
	ret := &Client{
		info:            *schema.NewImplementation(DefaultName, DefaultVersion),
		ids:             &IntSequence{},
		protocolVersion: schema.LatestProtocolVersion,
		logger:          slog.Default(),
		tools:           collection.NewSyncMap[string, schema.Tool](),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
