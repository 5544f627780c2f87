package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpcognito/protocol"
	"golang.org/x/oauth2"
)

// ServerNotInitialized is returned for tools operations before initialize in strict mode
const ServerNotInitialized = -32002

// ToolHandler handles tools/call
type ToolHandler func(ctx context.Context, arguments map[string]interface{}) (*protocol.CallToolResult, error)

// Tool represents registered tool
type Tool struct {
	Name        string
	Description string
	Handler     ToolHandler
}

// Server represents mock MCP endpoint
type Server struct {
	name        string
	version     string
	path        string
	framing     protocol.Framing
	contentType string
	signingKey  []byte
	delay       time.Duration
	strict      bool
	tools       []*Tool

	mux           sync.Mutex
	initialized   bool
	requests      []*jsonrpc.Request
	notifications []string
}

type callParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ServeHTTP dispatches JSON-RPC posts to the MCP path and health checks to the base path
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == s.path && r.Method == http.MethodPost:
		s.handleMCP(w, r)
	case r.URL.Path == s.basePath() && r.Method == http.MethodGet:
		s.handleHealth(w)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) basePath() string {
	base := strings.TrimSuffix(s.path, "/mcp")
	if base == "" {
		return "/"
	}
	return base
}

func (s *Server) handleHealth(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "service": s.name})
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.authorize(r); !ok {
		http.Error(w, http.StatusText(status), status)
		return
	}
	request := &jsonrpc.Request{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		http.Error(w, "invalid JSON-RPC request", http.StatusBadRequest)
		return
	}
	if request.Id == nil {
		s.mux.Lock()
		s.notifications = append(s.notifications, request.Method)
		s.mux.Unlock()
		w.WriteHeader(http.StatusAccepted)
		return
	}
	s.mux.Lock()
	s.requests = append(s.requests, request)
	s.mux.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}
	response := &jsonrpc.Response{Id: request.Id, Jsonrpc: jsonrpc.Version}
	result, rpcErr := s.dispatch(r.Context(), request)
	if rpcErr != nil {
		response.Error = rpcErr
	} else {
		data, err := json.Marshal(result)
		if err != nil {
			response.Error = jsonrpc.NewInternalError(err.Error(), nil)
		} else {
			response.Result = data
		}
	}
	s.writeResponse(w, response)
}

func (s *Server) authorize(r *http.Request) (int, bool) {
	if len(s.signingKey) == 0 {
		return http.StatusOK, true
	}
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return http.StatusUnauthorized, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return http.StatusUnauthorized, false
	}
	_, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return http.StatusForbidden, false
	}
	return http.StatusOK, true
}

func (s *Server) dispatch(ctx context.Context, request *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	switch request.Method {
	case schema.MethodInitialize:
		return s.initialize(request)
	case schema.MethodPing:
		return map[string]interface{}{}, nil
	case schema.MethodToolsList:
		if err := s.ensureInitialized(); err != nil {
			return nil, err
		}
		return s.listTools(), nil
	case schema.MethodToolsCall:
		if err := s.ensureInitialized(); err != nil {
			return nil, err
		}
		return s.callTool(ctx, request)
	}
	return nil, jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
}

func (s *Server) initialize(request *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	params := &schema.InitializeRequestParams{}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(err.Error(), request.Params)
		}
	}
	version := params.ProtocolVersion
	if version == "" {
		version = schema.LatestProtocolVersion
	}
	s.mux.Lock()
	s.initialized = true
	s.mux.Unlock()
	return map[string]interface{}{
		"protocolVersion": version,
		"capabilities":    map[string]interface{}{"tools": map[string]interface{}{}},
		"serverInfo":      map[string]interface{}{"name": s.name, "version": s.version},
	}, nil
}

func (s *Server) ensureInitialized() *jsonrpc.Error {
	if !s.strict {
		return nil
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if !s.initialized {
		return jsonrpc.NewError(ServerNotInitialized, "Server not initialized", nil)
	}
	return nil
}

func (s *Server) listTools() interface{} {
	var tools = make([]map[string]interface{}, 0, len(s.tools))
	for _, tool := range s.tools {
		item := map[string]interface{}{
			"name":        tool.Name,
			"inputSchema": map[string]interface{}{"type": "object"},
		}
		if tool.Description != "" {
			item["description"] = tool.Description
		}
		tools = append(tools, item)
	}
	return map[string]interface{}{"tools": tools}
}

func (s *Server) callTool(ctx context.Context, request *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	params := &callParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(err.Error(), request.Params)
	}
	tool := s.lookup(params.Name)
	if tool == nil {
		return nil, jsonrpc.NewError(jsonrpc.InvalidParams, "Unknown tool: "+params.Name, nil)
	}
	if tool.Handler == nil {
		return &protocol.CallToolResult{Content: []protocol.ContentItem{}}, nil
	}
	result, err := tool.Handler(ctx, params.Arguments)
	if err != nil {
		return &protocol.CallToolResult{Content: []protocol.ContentItem{protocol.NewTextContent(err.Error())}, IsError: true}, nil
	}
	return result, nil
}

func (s *Server) lookup(name string) *Tool {
	for _, tool := range s.tools {
		if tool.Name == name {
			return tool
		}
	}
	return nil
}

// Requests returns JSON-RPC requests received so far
func (s *Server) Requests() []*jsonrpc.Request {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]*jsonrpc.Request{}, s.requests...)
}

// Notifications returns methods of notifications received so far
func (s *Server) Notifications() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]string{}, s.notifications...)
}

// IssueToken signs an access token accepted by the server
func (s *Server) IssueToken(subject string) (*oauth2.Token, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       subject,
		"token_use": "access",
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}, nil
}

// New creates a mock MCP server
func New(options ...Option) *Server {
	ret := &Server{
		name:    "mock-mcp",
		version: "1.0.0",
		path:    "/mcp",
		framing: protocol.FramingJSON,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
