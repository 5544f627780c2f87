package client

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpcognito/protocol"
	"github.com/viant/mcpcognito/transport/streamable"
)

// Interface defines the client interface for all exported operations
type Interface interface {
	// Call sends a raw JSON-RPC request
	Call(ctx context.Context, method string, params interface{}) (*protocol.Message, error)

	// CallWithID sends a raw JSON-RPC request with caller supplied id
	CallWithID(ctx context.Context, id jsonrpc.RequestId, method string, params interface{}) (*protocol.Message, error)

	// Notify sends a JSON-RPC notification
	Notify(ctx context.Context, method string, params interface{}) error

	// Initialize initializes the session
	Initialize(ctx context.Context) (*schema.InitializeResult, error)

	// ListTools lists tools
	ListTools(ctx context.Context, cursor *string) (*schema.ListToolsResult, error)

	// CallTool calls a tool
	CallTool(ctx context.Context, name string, arguments map[string]interface{}) (*protocol.CallToolResult, error)

	// Ping pings the server
	Ping(ctx context.Context) error

	// Health checks service health
	Health(ctx context.Context) (*streamable.HealthStatus, error)
}

var _ Interface = (*Client)(nil)
