// File: policy/policy.go
// Package policy holds the per-session configuration bundle.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Policy governs the maximum inbound message size and the idle timeout.
// The idle timeout is stored in milliseconds; the session surface converts
// to and from seconds. Fields are atomics so containers may retune a live
// session without coordinating with the I/O paths.

package policy

import (
	"sync/atomic"

	"github.com/momentics/wsession/api"
)

// Policy is the mutable configuration bundle attached to a session.
type Policy struct {
	maxMessageSize int64 // bytes, <=0 means unlimited
	idleTimeoutMS  int64
}

// Default returns a policy with library defaults.
func Default() *Policy {
	p := &Policy{}
	p.SetMaxMessageSize(64 * 1024)  // 64 KiB inbound message cap
	p.SetIdleTimeoutMillis(300_000) // 5-minute idle timeout
	return p
}

// MaxMessageSize returns the configured maximum message size in bytes.
func (p *Policy) MaxMessageSize() int64 {
	return atomic.LoadInt64(&p.maxMessageSize)
}

// SetMaxMessageSize updates the maximum message size.
func (p *Policy) SetMaxMessageSize(n int64) {
	atomic.StoreInt64(&p.maxMessageSize, n)
}

// IdleTimeoutMillis returns the idle timeout in milliseconds.
func (p *Policy) IdleTimeoutMillis() int64 {
	return atomic.LoadInt64(&p.idleTimeoutMS)
}

// SetIdleTimeoutMillis updates the idle timeout.
func (p *Policy) SetIdleTimeoutMillis(ms int64) {
	atomic.StoreInt64(&p.idleTimeoutMS, ms)
}

// AssertValidMessageSize fails when requested exceeds the configured
// maximum. A non-positive maximum disables the check.
func (p *Policy) AssertValidMessageSize(requested int64) error {
	max := p.MaxMessageSize()
	if max > 0 && requested > max {
		return api.NewError(api.ErrCodeMessageTooLarge, "message exceeds maximum size").
			WithContext("requested", requested).
			WithContext("max", max)
	}
	return nil
}
