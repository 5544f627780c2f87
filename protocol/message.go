package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
)

// Kind classifies a decoded response message
type Kind int

const (
	// KindInvalid marks a message carrying both or neither of result and error
	KindInvalid Kind = iota
	// KindResult marks a successful JSON-RPC response
	KindResult
	// KindError marks a JSON-RPC error response (application error)
	KindError
	// KindFailure marks a client side decoding failure, {"error": "<text>"}
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindResult:
		return "result"
	case KindError:
		return "error"
	case KindFailure:
		return "failure"
	}
	return "invalid"
}

const (
	fieldResult = "result"
	fieldError  = "error"
	fieldID     = "id"
)

// Message represents a decoded JSON-RPC response object
type Message struct {
	fields map[string]json.RawMessage
}

// NewMessage creates a message from decoded object members
func NewMessage(fields map[string]json.RawMessage) *Message {
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return &Message{fields: fields}
}

// NewFailure creates a message describing a client side decoding failure
func NewFailure(text string) *Message {
	encoded, _ := json.Marshal(text)
	return NewMessage(map[string]json.RawMessage{fieldError: encoded})
}

// ParseMessage parses a JSON object into a message
func ParseMessage(data []byte) (*Message, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("expected JSON object but got null")
	}
	return NewMessage(fields), nil
}

// FromResponse converts a jsonrpc response into a message
func FromResponse(response *jsonrpc.Response) (*Message, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}
	return ParseMessage(data)
}

// Raw returns the message members
func (m *Message) Raw() map[string]json.RawMessage {
	return m.fields
}

// Has returns true if member is present and not null
func (m *Message) Has(name string) bool {
	value, ok := m.fields[name]
	if !ok {
		return false
	}
	return !isNull(value)
}

// ID returns raw response id
func (m *Message) ID() json.RawMessage {
	return m.fields[fieldID]
}

// Result returns raw result or nil
func (m *Message) Result() json.RawMessage {
	if !m.Has(fieldResult) {
		return nil
	}
	return m.fields[fieldResult]
}

// RPCError returns the JSON-RPC error object, nil if error is absent or not an object
func (m *Message) RPCError() *jsonrpc.Error {
	if !m.Has(fieldError) {
		return nil
	}
	raw := m.fields[fieldError]
	var probe struct {
		Code    *int    `json:"code"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Code == nil || probe.Message == nil {
		return nil
	}
	ret := &jsonrpc.Error{}
	if err := json.Unmarshal(raw, ret); err != nil {
		return nil
	}
	return ret
}

// Failure returns the decoding failure text
func (m *Message) Failure() (string, bool) {
	if !m.Has(fieldError) {
		return "", false
	}
	var text string
	if err := json.Unmarshal(m.fields[fieldError], &text); err != nil {
		return "", false
	}
	return text, true
}

// Kind classifies the message
func (m *Message) Kind() Kind {
	hasResult := m.Has(fieldResult)
	hasError := m.Has(fieldError)
	switch {
	case hasResult && hasError:
		return KindInvalid
	case hasResult:
		return KindResult
	case hasError:
		if _, ok := m.Failure(); ok {
			return KindFailure
		}
		if m.RPCError() != nil {
			return KindError
		}
	}
	return KindInvalid
}

// Validate returns nil for a result message, otherwise the error the message represents
func (m *Message) Validate() error {
	switch m.Kind() {
	case KindResult:
		return nil
	case KindError:
		return &ApplicationError{Err: m.RPCError()}
	case KindFailure:
		text, _ := m.Failure()
		return &ProtocolError{Message: text}
	}
	if m.Has(fieldResult) {
		return &ProtocolError{Message: "response carries both result and error"}
	}
	if m.Has(fieldError) {
		return &ProtocolError{Message: "response error is neither a string nor an error object"}
	}
	return &ProtocolError{Message: "response missing both result and error"}
}

// DecodeResult validates message and unmarshal result into target
func (m *Message) DecodeResult(target interface{}) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := json.Unmarshal(m.Result(), target); err != nil {
		return &ProtocolError{Message: fmt.Sprintf("failed to decode result: %v", err), Err: err}
	}
	return nil
}

// Response converts a result or error message into a jsonrpc response
func (m *Message) Response() (*jsonrpc.Response, error) {
	switch m.Kind() {
	case KindResult, KindError:
	default:
		return nil, m.Validate()
	}
	data, err := json.Marshal(m.fields)
	if err != nil {
		return nil, err
	}
	ret := &jsonrpc.Response{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("failed to decode response: %v", err), Err: err}
	}
	return ret, nil
}

// MarshalJSON encodes message members
func (m *Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.fields)
}

// UnmarshalJSON decodes message members
func (m *Message) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	m.fields = fields
	if m.fields == nil {
		m.fields = map[string]json.RawMessage{}
	}
	return nil
}

func (m *Message) String() string {
	data, _ := m.MarshalJSON()
	return string(data)
}

func isNull(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
