package client

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/viant/jsonrpc"
)

// IDGenerator generates request ids, ids of in-flight requests are never reused
type IDGenerator interface {
	NextID() jsonrpc.RequestId
}

// IntSequence generates increasing integer ids starting from 1
type IntSequence struct {
	counter atomic.Int64
}

func (s *IntSequence) NextID() jsonrpc.RequestId {
	return int(s.counter.Add(1))
}

type uuidSequence struct{}

func (uuidSequence) NextID() jsonrpc.RequestId {
	return uuid.New().String()
}

// UUIDSequence returns generator of random UUID string ids
func UUIDSequence() IDGenerator {
	return uuidSequence{}
}
