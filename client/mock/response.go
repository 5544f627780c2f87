package mock

import (
	"encoding/json"
	"net/http"

	"github.com/tmaxmax/go-sse"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcpcognito/protocol"
)

func (s *Server) writeResponse(w http.ResponseWriter, response *jsonrpc.Response) {
	data, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if s.framing != protocol.FramingSSE {
		w.Header().Set("Content-Type", s.responseContentType("application/json"))
		_, _ = w.Write(data)
		return
	}
	msg := &sse.Message{Type: sse.Type("message")}
	msg.AppendData(string(data))
	w.Header().Set("Content-Type", s.responseContentType("text/event-stream"))
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = msg.WriteTo(w)
}

func (s *Server) responseContentType(actual string) string {
	if s.contentType != "" {
		return s.contentType
	}
	return actual
}
