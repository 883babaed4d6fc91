// Package session
// Author: momentics <momentics@gmail.com>
//
// Lifecycle and frame-routing coordinator for a single already-handshaken
// WebSocket connection. A Session tracks Created/Open/Closed state, exposes
// the send surface through a RemoteEndpoint facade, and routes inbound
// frames and errors through a pluggable handler reference that can be
// rewired before open (typically to splice in an extension chain).
//
// The session owns no sockets and performs no wire I/O: handshake
// negotiation, frame parsing, extension processing, and transport reads and
// writes all live behind the Endpoint and LogicalConnection collaborator
// interfaces.

package session
