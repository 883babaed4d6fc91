// File: api/handler.go
// Package api defines the frame routing interfaces.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// IncomingFrames and OutgoingFrames are the two halves of the pluggable
// pipeline: the session forwards inbound frames to whatever IncomingFrames
// is installed and outbound frames to whatever OutgoingFrames is installed.
// An endpoint, a raw connection, or the head of an extension chain all
// satisfy them equally.

package api

// IncomingFrames consumes frames flowing from the transport toward the
// application.
type IncomingFrames interface {
	IncomingFrame(frame *Frame)
}

// OutgoingFrames consumes frames flowing from the application toward the
// transport. SendFrame must not block on I/O; the returned handle settles
// once the frame has been written or has failed.
type OutgoingFrames interface {
	SendFrame(frame *Frame) *SendResult
}

// Handler processes data payloads. Message handlers registered on a session
// implement this.
type Handler interface {
	Handle(data any) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(data any) error

// Handle calls fn(data).
func (fn HandlerFunc) Handle(data any) error {
	return fn(data)
}
