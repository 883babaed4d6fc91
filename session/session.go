// File: session/session.go
// Package session core implementation.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Session state machine: Created -> Open -> Closed, monotonic. Fields fixed
// at construction or at Open (parameter map, remote facade, handler
// references) are read lock-free afterwards; the state word is atomic since
// IsOpen is polled from arbitrary goroutines.

package session

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/momentics/wsession/api"
	"github.com/momentics/wsession/internal/urlenc"
	"github.com/momentics/wsession/policy"
)

const (
	stateCreated int32 = iota
	stateOpen
	stateClosed
)

// Session coordinates one live logical connection.
type Session struct {
	id         string
	requestURI *url.URL
	endpoint   Endpoint
	connection LogicalConnection
	params     *urlenc.Params
	pol        *policy.Policy
	log        zerolog.Logger

	state int32

	// Guards the fields that are mutable before Open and frozen after.
	mu                    sync.RWMutex
	incoming              api.IncomingFrames
	outgoing              api.OutgoingFrames
	negotiatedExtensions  []string
	negotiatedSubprotocol string
	protocolVersion       string

	// Written once during Open, before the state word flips; read
	// lock-free after an atomic state load observes stateOpen.
	remote *RemoteEndpoint

	handlers MessageHandlerCollection
	suspend  suspendState

	framesIn         int64
	framesSuppressed int64
	framesBuffered   int64
	errorsIn         int64
	writes           int64
}

// Compile-time check: a session is itself an inbound frame sink, so parsers
// feed it directly.
var _ api.IncomingFrames = (*Session)(nil)

// New constructs a session for requestURI bound to its two collaborators.
// The endpoint starts as the inbound handler and the connection as the
// outbound handler; both may be rewired until Open. The query component of
// requestURI is decoded into the parameter map exactly once, here.
func New(requestURI *url.URL, endpoint Endpoint, connection LogicalConnection, opts ...Option) (*Session, error) {
	if requestURI == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "request URI cannot be nil")
	}
	if endpoint == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "endpoint cannot be nil")
	}
	if connection == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "connection cannot be nil")
	}

	s := &Session{
		id:         uuid.NewString(),
		requestURI: requestURI,
		endpoint:   endpoint,
		connection: connection,
		params:     urlenc.ParseQuery(requestURI.RawQuery),
		pol:        policy.Default(),
		log:        zerolog.Nop(),
		incoming:   endpoint,
		outgoing:   connection,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Open activates the session. It binds the RemoteEndpoint to the outbound
// handler installed at this instant, flips the session open, subscribes to
// connection close events when available, and finally invokes the
// endpoint's connect callback. Opening an already open or closed session
// fails with an illegal-state error and mutates nothing.
func (s *Session) Open() error {
	s.mu.Lock()
	if atomic.LoadInt32(&s.state) != stateCreated {
		s.mu.Unlock()
		return api.NewError(api.ErrCodeIllegalState, "cannot open session, already open").
			WithContext("session", s.id)
	}
	s.remote = newRemoteEndpoint(s.outgoing, s.pol, s.log)
	atomic.StoreInt32(&s.state, stateOpen)
	s.mu.Unlock()

	if cn, ok := s.connection.(CloseNotifier); ok {
		cn.OnClose(s.NotifyClose)
	}

	s.endpoint.SetSession(s)
	s.endpoint.OnConnect()

	s.log.Debug().Str("session", s.id).Str("uri", s.requestURI.String()).Msg("session opened")
	return nil
}

// IsActive reports whether the session is open.
func (s *Session) IsActive() bool {
	return atomic.LoadInt32(&s.state) == stateOpen
}

// IsOpen is defined as IsActive.
func (s *Session) IsOpen() bool {
	return s.IsActive()
}

// NotifyClose moves the session to Closed. Collaborators observing
// connection closure call this; connections implementing CloseNotifier have
// it wired automatically at Open. Idempotent.
func (s *Session) NotifyClose(code int, reason string) {
	for {
		cur := atomic.LoadInt32(&s.state)
		if cur == stateClosed {
			return
		}
		if atomic.CompareAndSwapInt32(&s.state, cur, stateClosed) {
			s.log.Debug().Str("session", s.id).Int("code", code).Str("reason", reason).Msg("session closed")
			return
		}
	}
}

// Close shuts the session down without a status exchange.
func (s *Session) Close() error {
	err := s.connection.Close()
	s.NotifyClose(api.CloseNormalClosure, "")
	return err
}

// CloseWithStatus performs a close handshake with code and reason.
func (s *Session) CloseWithStatus(code int, reason string) error {
	err := s.connection.CloseWithStatus(code, reason)
	s.NotifyClose(code, reason)
	return err
}

// CloseWithReason closes with a structured reason.
func (s *Session) CloseWithReason(r CloseReason) error {
	return s.CloseWithStatus(r.Code, r.Phrase)
}

// IncomingFrame routes one inbound frame from the parser. A closed
// transport input turns the call into a silent no-op so shutdown never
// races in-flight frames. While suspended, frames are buffered instead of
// delivered.
func (s *Session) IncomingFrame(frame *api.Frame) {
	if s.connection.IsInputClosed() {
		atomic.AddInt64(&s.framesSuppressed, 1)
		s.log.Debug().Str("session", s.id).Msg("frame suppressed, input closed")
		return
	}
	if s.bufferIfSuspended(frame) {
		return
	}
	s.deliver(frame)
}

// IncomingError routes one inbound error from the parser to the endpoint,
// under the same input-closed guard as frames. Errors bypass suspension.
func (s *Session) IncomingError(err error) {
	if s.connection.IsInputClosed() {
		return
	}
	atomic.AddInt64(&s.errorsIn, 1)
	s.endpoint.IncomingError(err)
}

func (s *Session) deliver(frame *api.Frame) {
	s.mu.RLock()
	in := s.incoming
	s.mu.RUnlock()
	atomic.AddInt64(&s.framesIn, 1)
	in.IncomingFrame(frame)
}

// Write sends binary data, returning the completion handle. Fails with an
// illegal-state error before Open.
func (s *Session) Write(data []byte) (*api.SendResult, error) {
	r, err := s.Remote()
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&s.writes, 1)
	return r.SendBytes(data), nil
}

// WriteText sends a text message, returning the completion handle.
func (s *Session) WriteText(message string) (*api.SendResult, error) {
	r, err := s.Remote()
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&s.writes, 1)
	return r.SendText(message), nil
}

// Ping sends a ping control frame, returning the completion handle.
func (s *Session) Ping(payload []byte) (*api.SendResult, error) {
	r, err := s.Remote()
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&s.writes, 1)
	return r.SendPing(payload), nil
}

// Remote returns the outbound facade. Fails with an illegal-state error
// before Open; never nil afterwards.
func (s *Session) Remote() (*RemoteEndpoint, error) {
	if !s.IsOpen() {
		return nil, api.NewError(api.ErrCodeIllegalState, "session has not been opened yet").
			WithContext("session", s.id)
	}
	return s.remote, nil
}

// SetIncoming rewires the inbound handler, typically to the head of an
// extension chain. Allowed only before Open.
func (s *Session) SetIncoming(in api.IncomingFrames) error {
	if in == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "incoming handler cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadInt32(&s.state) != stateCreated {
		return api.NewError(api.ErrCodeIllegalState, "handlers are frozen once the session is open")
	}
	s.incoming = in
	return nil
}

// SetOutgoing rewires the outbound handler. Allowed only before Open; the
// RemoteEndpoint binds to whatever is installed at that moment.
func (s *Session) SetOutgoing(out api.OutgoingFrames) error {
	if out == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "outgoing handler cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadInt32(&s.state) != stateCreated {
		return api.NewError(api.ErrCodeIllegalState, "handlers are frozen once the session is open")
	}
	s.outgoing = out
	return nil
}

// Incoming returns the currently installed inbound handler.
func (s *Session) Incoming() api.IncomingFrames {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.incoming
}

// Outgoing returns the currently installed outbound handler.
func (s *Session) Outgoing() api.OutgoingFrames {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outgoing
}

// RequestURI returns the immutable request URI.
func (s *Session) RequestURI() *url.URL {
	return s.requestURI
}

// QueryString returns the raw query component of the request URI.
func (s *Session) QueryString() string {
	return s.requestURI.RawQuery
}

// ParameterMap returns a copy of the decoded query parameters, values in
// arrival order.
func (s *Session) ParameterMap() map[string][]string {
	return s.params.Map()
}

// ParameterNames returns parameter names in first-appearance order.
func (s *Session) ParameterNames() []string {
	return s.params.Names()
}

// ParameterValues returns the ordered values for name.
func (s *Session) ParameterValues(name string) []string {
	return s.params.Values(name)
}

// IsSecure reports whether the request URI scheme is wss, case-insensitive.
func (s *Session) IsSecure() bool {
	return strings.EqualFold(s.requestURI.Scheme, "wss")
}

// LocalAddr returns the local address of the underlying connection.
func (s *Session) LocalAddr() net.Addr {
	return s.connection.LocalAddr()
}

// Policy returns the session's configuration bundle.
func (s *Session) Policy() *policy.Policy {
	return s.pol
}

// AssertValidMessageSize delegates to the policy.
func (s *Session) AssertValidMessageSize(requested int64) error {
	return s.pol.AssertValidMessageSize(requested)
}

// Timeout returns the idle timeout in seconds. Sub-second precision held in
// the policy is discarded.
func (s *Session) Timeout() int64 {
	return s.pol.IdleTimeoutMillis() / 1000
}

// SetTimeout sets the idle timeout from seconds.
func (s *Session) SetTimeout(seconds int64) {
	s.pol.SetIdleTimeoutMillis(seconds * 1000)
}

// NegotiatedExtensions returns the extension names agreed at handshake.
func (s *Session) NegotiatedExtensions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.negotiatedExtensions))
	copy(out, s.negotiatedExtensions)
	return out
}

// SetNegotiatedExtensions records the handshake result. Allowed only before
// Open; the list is fixed for the session's life afterwards.
func (s *Session) SetNegotiatedExtensions(exts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadInt32(&s.state) != stateCreated {
		return api.NewError(api.ErrCodeIllegalState, "negotiated values are frozen once the session is open")
	}
	s.negotiatedExtensions = append([]string(nil), exts...)
	return nil
}

// NegotiatedSubprotocol returns the subprotocol agreed at handshake.
func (s *Session) NegotiatedSubprotocol() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.negotiatedSubprotocol
}

// SetNegotiatedSubprotocol records the handshake result, before Open only.
func (s *Session) SetNegotiatedSubprotocol(proto string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadInt32(&s.state) != stateCreated {
		return api.NewError(api.ErrCodeIllegalState, "negotiated values are frozen once the session is open")
	}
	s.negotiatedSubprotocol = proto
	return nil
}

// ProtocolVersion returns the wire protocol version.
func (s *Session) ProtocolVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.protocolVersion
}

// SetProtocolVersion records the wire protocol version, before Open only.
func (s *Session) SetProtocolVersion(version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadInt32(&s.state) != stateCreated {
		return api.NewError(api.ErrCodeIllegalState, "negotiated values are frozen once the session is open")
	}
	s.protocolVersion = version
	return nil
}

// AddMessageHandler registers a message handler.
func (s *Session) AddMessageHandler(h api.Handler) {
	s.handlers.Add(h)
}

// RemoveMessageHandler unregisters a message handler.
func (s *Session) RemoveMessageHandler(h api.Handler) {
	s.handlers.Remove(h)
}

// MessageHandlers returns the registered handlers.
func (s *Session) MessageHandlers() []api.Handler {
	return s.handlers.Handlers()
}

// Stats returns a snapshot of the session's routing counters.
func (s *Session) Stats() map[string]any {
	return map[string]any{
		"open":              s.IsOpen(),
		"frames_in":         atomic.LoadInt64(&s.framesIn),
		"frames_suppressed": atomic.LoadInt64(&s.framesSuppressed),
		"frames_buffered":   atomic.LoadInt64(&s.framesBuffered),
		"errors_in":         atomic.LoadInt64(&s.errorsIn),
		"writes":            atomic.LoadInt64(&s.writes),
	}
}

// String summarizes the session for logs and dumps.
func (s *Session) String() string {
	return fmt.Sprintf("Session[id=%s,uri=%s,open=%t,incoming=%T,outgoing=%T]",
		s.id, s.requestURI, s.IsOpen(), s.Incoming(), s.Outgoing())
}
