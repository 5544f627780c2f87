package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/viant/jsonrpc"
)

var emptyParams = json.RawMessage("{}")

// NewRequest creates a JSON-RPC 2.0 request, nil params are sent as an empty object
func NewRequest(id jsonrpc.RequestId, method string, params interface{}) (*jsonrpc.Request, error) {
	data, err := encodeParams(params)
	if err != nil {
		return nil, err
	}
	return &jsonrpc.Request{Id: id, Jsonrpc: jsonrpc.Version, Method: method, Params: data}, nil
}

// NewNotification creates a JSON-RPC 2.0 notification, nil params are sent as an empty object
func NewNotification(method string, params interface{}) (*jsonrpc.Notification, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	return jsonrpc.NewNotification(method, params)
}

func encodeParams(params interface{}) (json.RawMessage, error) {
	switch actual := params.(type) {
	case nil:
		return emptyParams, nil
	case json.RawMessage:
		if len(bytes.TrimSpace(actual)) == 0 {
			return emptyParams, nil
		}
		return actual, nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(data, []byte("null")) {
		return emptyParams, nil
	}
	return data, nil
}
