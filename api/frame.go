// File: api/frame.go
// Package api defines the frame value passed between routing stages.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Frames are opaque to the session core: it routes them between the
// transport side and the application side without inspecting payloads.

package api

// WebSocket opcodes per RFC 6455.
const (
	OpcodeContinuation = 0x0
	OpcodeText         = 0x1
	OpcodeBinary       = 0x2
	OpcodeClose        = 0x8
	OpcodePing         = 0x9
	OpcodePong         = 0xA

	// Control frame payloads may not exceed 125 bytes.
	MaxControlPayloadLen = 125
)

// Close codes per RFC 6455 section 7.4.1.
const (
	CloseNormalClosure      = 1000
	CloseGoingAway          = 1001
	CloseProtocolError      = 1002
	CloseUnsupportedData    = 1003
	CloseNoStatusRcvd       = 1005
	CloseAbnormalClosure    = 1006
	CloseInvalidPayloadData = 1007
	ClosePolicyViolation    = 1008
	CloseMessageTooBig      = 1009
	CloseMissingExtension   = 1010
	CloseInternalServerErr  = 1011
)

// Frame is a single protocol frame as delivered by the parser or handed to
// the outgoing pipeline. The session never mutates a frame it routes.
type Frame struct {
	Fin     bool
	Opcode  byte
	Payload []byte
}

// IsControl reports whether the frame carries a control opcode.
func (f *Frame) IsControl() bool {
	return f.Opcode >= OpcodeClose
}

// NewTextFrame builds a final text frame around payload.
func NewTextFrame(payload []byte) *Frame {
	return &Frame{Fin: true, Opcode: OpcodeText, Payload: payload}
}

// NewBinaryFrame builds a final binary frame around payload.
func NewBinaryFrame(payload []byte) *Frame {
	return &Frame{Fin: true, Opcode: OpcodeBinary, Payload: payload}
}

// NewPingFrame builds a ping frame around payload.
func NewPingFrame(payload []byte) *Frame {
	return &Frame{Fin: true, Opcode: OpcodePing, Payload: payload}
}

// NewPongFrame builds a pong frame around payload.
func NewPongFrame(payload []byte) *Frame {
	return &Frame{Fin: true, Opcode: OpcodePong, Payload: payload}
}
