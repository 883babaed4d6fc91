// File: session/suspend.go
// Package session inbound suspension.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Token-based inbound backpressure. Suspend switches the session into
// buffering mode: frames arriving from the reader path are queued FIFO
// instead of delivered. Resume drains the queue in arrival order on the
// resuming goroutine, then restores direct delivery. Suspends nest; every
// token must be resumed before delivery restarts. Frames still buffered
// when the transport input closes are dropped, matching the input-closed
// suppression rule for live frames. Errors are never buffered.

package session

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/wsession/api"
)

// SuspendToken resumes inbound delivery paused by Session.Suspend.
type SuspendToken interface {
	// Resume releases this token. Idempotent per token.
	Resume()
}

type suspendState struct {
	mu    sync.Mutex
	depth int
	buf   *queue.Queue
}

type suspendToken struct {
	s    *Session
	once sync.Once
}

func (t *suspendToken) Resume() {
	t.once.Do(t.s.resume)
}

// Suspend pauses inbound frame delivery and returns the token that resumes
// it. Safe to call from any goroutine, including an inbound handler that
// wants to stall further frames mid-delivery.
func (s *Session) Suspend() SuspendToken {
	s.suspend.mu.Lock()
	if s.suspend.depth == 0 && s.suspend.buf == nil {
		s.suspend.buf = queue.New()
	}
	s.suspend.depth++
	s.suspend.mu.Unlock()
	s.log.Debug().Str("session", s.id).Msg("inbound delivery suspended")
	return &suspendToken{s: s}
}

// IsSuspended reports whether inbound delivery is currently paused or still
// draining a resume.
func (s *Session) IsSuspended() bool {
	s.suspend.mu.Lock()
	defer s.suspend.mu.Unlock()
	return s.suspend.depth > 0 || s.suspend.buf != nil
}

// bufferIfSuspended queues the frame when delivery is paused or a drain is
// still in flight, preserving arrival order relative to queued frames.
func (s *Session) bufferIfSuspended(frame *api.Frame) bool {
	s.suspend.mu.Lock()
	defer s.suspend.mu.Unlock()
	if s.suspend.depth == 0 && s.suspend.buf == nil {
		return false
	}
	s.suspend.buf.Add(frame)
	atomic.AddInt64(&s.framesBuffered, 1)
	return true
}

func (s *Session) resume() {
	s.suspend.mu.Lock()
	s.suspend.depth--
	if s.suspend.depth > 0 {
		s.suspend.mu.Unlock()
		return
	}
	s.suspend.mu.Unlock()

	s.log.Debug().Str("session", s.id).Msg("inbound delivery resumed")

	// Drain one frame at a time so handlers run outside the lock and a
	// handler calling Suspend again simply re-pauses with the remainder
	// still queued. The buffer stays attached until empty, so frames
	// arriving mid-drain keep their order behind the backlog.
	for {
		s.suspend.mu.Lock()
		if s.suspend.depth > 0 {
			s.suspend.mu.Unlock()
			return
		}
		if s.suspend.buf == nil || s.suspend.buf.Length() == 0 {
			s.suspend.buf = nil
			s.suspend.mu.Unlock()
			return
		}
		frame := s.suspend.buf.Remove().(*api.Frame)
		s.suspend.mu.Unlock()

		if s.connection.IsInputClosed() {
			atomic.AddInt64(&s.framesSuppressed, 1)
			continue
		}
		s.deliver(frame)
	}
}
