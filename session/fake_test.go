package session_test

import (
	"net"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/momentics/wsession/api"
	"github.com/momentics/wsession/session"
)

// fakeEndpoint records every callback it receives.
type fakeEndpoint struct {
	mu       sync.Mutex
	sess     *session.Session
	connects int
	frames   []*api.Frame
	errors   []error
}

func (e *fakeEndpoint) SetSession(s *session.Session) {
	e.mu.Lock()
	e.sess = s
	e.mu.Unlock()
}

func (e *fakeEndpoint) OnConnect() {
	e.mu.Lock()
	e.connects++
	e.mu.Unlock()
}

func (e *fakeEndpoint) IncomingFrame(f *api.Frame) {
	e.mu.Lock()
	e.frames = append(e.frames, f)
	e.mu.Unlock()
}

func (e *fakeEndpoint) IncomingError(err error) {
	e.mu.Lock()
	e.errors = append(e.errors, err)
	e.mu.Unlock()
}

func (e *fakeEndpoint) frameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.frames)
}

func (e *fakeEndpoint) errorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errors)
}

func (e *fakeEndpoint) payloads() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.frames))
	for i, f := range e.frames {
		out[i] = string(f.Payload)
	}
	return out
}

// fakeConnection is an in-memory LogicalConnection with CloseNotifier
// support. Sends settle their handles immediately with sendErr.
type fakeConnection struct {
	mu          sync.Mutex
	sent        []*api.Frame
	sendErr     error
	closeFns    []func(code int, reason string)
	closeCalls  int
	closeCode   int
	closeReason string

	inputClosed int32
}

func (c *fakeConnection) SendFrame(f *api.Frame) *api.SendResult {
	c.mu.Lock()
	c.sent = append(c.sent, f)
	err := c.sendErr
	c.mu.Unlock()
	return api.CompletedSendResult(err)
}

func (c *fakeConnection) Close() error {
	c.mu.Lock()
	c.closeCalls++
	c.mu.Unlock()
	c.fireClose(api.CloseNormalClosure, "")
	return nil
}

func (c *fakeConnection) CloseWithStatus(code int, reason string) error {
	c.mu.Lock()
	c.closeCalls++
	c.closeCode = code
	c.closeReason = reason
	c.mu.Unlock()
	c.fireClose(code, reason)
	return nil
}

func (c *fakeConnection) IsInputClosed() bool {
	return atomic.LoadInt32(&c.inputClosed) == 1
}

func (c *fakeConnection) closeInput() {
	atomic.StoreInt32(&c.inputClosed, 1)
}

func (c *fakeConnection) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9001}
}

func (c *fakeConnection) OnClose(fn func(code int, reason string)) {
	c.mu.Lock()
	c.closeFns = append(c.closeFns, fn)
	c.mu.Unlock()
}

func (c *fakeConnection) fireClose(code int, reason string) {
	c.mu.Lock()
	fns := append(([]func(int, string))(nil), c.closeFns...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(code, reason)
	}
}

func (c *fakeConnection) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func (c *fakeConnection) sentFrames() []*api.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*api.Frame(nil), c.sent...)
}

// recordingIncoming is a standalone inbound handler standing in for an
// extension chain head.
type recordingIncoming struct {
	mu     sync.Mutex
	frames []*api.Frame
}

func (r *recordingIncoming) IncomingFrame(f *api.Frame) {
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
}

func (r *recordingIncoming) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func newTestSession(t *testing.T, raw string) (*session.Session, *fakeEndpoint, *fakeConnection) {
	t.Helper()
	ep := &fakeEndpoint{}
	conn := &fakeConnection{}
	s, err := session.New(mustURL(t, raw), ep, conn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, ep, conn
}
