// File: session/interfaces.go
// Package session collaborator contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The session core defines the shapes it needs from its collaborators and
// nothing more. Containers implement Endpoint around application callbacks
// and LogicalConnection around the physical transport.

package session

import (
	"net"

	"github.com/momentics/wsession/api"
)

// Endpoint is the application-side callback target. It doubles as the
// default inbound frame handler until an extension chain replaces it.
type Endpoint interface {
	api.IncomingFrames

	// SetSession hands the endpoint its session before OnConnect fires.
	SetSession(s *Session)

	// OnConnect signals that the session is open and writable.
	OnConnect()

	// IncomingError receives parser and transport errors.
	IncomingError(err error)
}

// LogicalConnection is the transport-side collaborator. It doubles as the
// default outbound frame handler until an extension chain replaces it.
type LogicalConnection interface {
	api.OutgoingFrames

	// Close shuts the connection down without a status exchange.
	Close() error

	// CloseWithStatus performs a close handshake with code and reason.
	CloseWithStatus(code int, reason string) error

	// IsInputClosed reports whether the read side has been shut down.
	// While true, the session suppresses all inbound routing.
	IsInputClosed() bool

	// LocalAddr returns the local endpoint of the connection.
	LocalAddr() net.Addr
}

// CloseNotifier is an optional LogicalConnection capability. Connections
// implementing it get their close events wired back into session lifecycle
// state at Open, so a peer disconnect clears IsOpen.
type CloseNotifier interface {
	OnClose(fn func(code int, reason string))
}

// CloseReason is a structured close status.
type CloseReason struct {
	Code   int
	Phrase string
}
