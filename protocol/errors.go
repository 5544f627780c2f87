package protocol

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/viant/jsonrpc"
)

// TransportError represents network failure, timeout or non-success HTTP status
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %v %v: unexpected status: %v", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("transport error: %v %v: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout returns true if the request exceeded its deadline
func (e *TransportError) Timeout() bool {
	if e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ProtocolError represents a successful HTTP exchange whose body is not a usable JSON-RPC response
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Message
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ApplicationError wraps the error member of a well-formed JSON-RPC response
type ApplicationError struct {
	Err *jsonrpc.Error
}

func (e *ApplicationError) Error() string {
	if e.Err == nil {
		return "application error"
	}
	return fmt.Sprintf("application error %d: %s", e.Err.Code, e.Err.Message)
}

func (e *ApplicationError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// Code returns JSON-RPC error code
func (e *ApplicationError) Code() int {
	if e.Err == nil {
		return 0
	}
	return e.Err.Code
}
