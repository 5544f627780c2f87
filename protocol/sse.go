package protocol

import (
	"bytes"
	"strings"
)

// Framing represents response body framing
type Framing string

const (
	FramingJSON Framing = "json"
	FramingSSE  Framing = "sse"
)

const (
	sseDataPrefix = "data: "

	// NoSSEData is reported when an SSE body has no data line
	NoSSEData = "No data found in SSE response"
	// InvalidSSEData prefixes the raw payload of an SSE data line that is not JSON
	InvalidSSEData = "Invalid JSON in SSE data: "
	// InvalidJSONResponse prefixes plain JSON body decoding failures
	InvalidJSONResponse = "Invalid JSON response: "
)

var sseMarkers = [][]byte{[]byte("data:"), []byte("event:")}

// Sniff detects body framing from its leading bytes, response headers are not consulted
func Sniff(body []byte) Framing {
	if IsSSE(body) {
		return FramingSSE
	}
	return FramingJSON
}

// IsSSE returns true if body starts with an SSE field marker (data: or event:)
func IsSSE(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	for _, marker := range sseMarkers {
		if bytes.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// Decode decodes a response body of either framing
func Decode(body []byte) *Message {
	if IsSSE(body) {
		return DecodeSSE(body)
	}
	msg, err := ParseMessage(body)
	if err != nil {
		return NewFailure(InvalidJSONResponse + err.Error())
	}
	return msg
}

// DecodeSSE decodes the first `data: ` line of an SSE body, later data lines are ignored
func DecodeSSE(body []byte) *Message {
	payload, ok := firstSSEData(string(body))
	if !ok || payload == "" {
		return NewFailure(NoSSEData)
	}
	msg, err := ParseMessage([]byte(payload))
	if err != nil {
		return NewFailure(InvalidSSEData + payload)
	}
	return msg
}

func firstSSEData(text string) (string, bool) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, sseDataPrefix) {
			return line[len(sseDataPrefix):], true
		}
	}
	return "", false
}
