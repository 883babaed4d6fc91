// File: api/result.go
// Package api defines the asynchronous send completion handle.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import (
	"context"
	"sync"
)

// SendResult is the completion handle returned by every outbound send.
// The producer settles it exactly once via Complete; consumers observe the
// outcome through Done/Err/Wait. None of the consumer methods block the
// sending goroutine on network I/O.
type SendResult struct {
	done chan struct{}
	once sync.Once
	err  error
}

// NewSendResult returns an unsettled handle.
func NewSendResult() *SendResult {
	return &SendResult{done: make(chan struct{})}
}

// CompletedSendResult returns a handle already settled with err.
// Used for failures detected before the frame reaches the pipeline.
func CompletedSendResult(err error) *SendResult {
	r := NewSendResult()
	r.Complete(err)
	return r
}

// Complete settles the handle. A nil err marks success. Subsequent calls
// are no-ops, so racing completions cannot double-close or overwrite.
func (r *SendResult) Complete(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done returns a channel closed once the send has succeeded or failed.
func (r *SendResult) Done() <-chan struct{} {
	return r.done
}

// Err returns the failure, nil on success, or nil while still pending.
// Call after Done is closed for a definitive answer.
func (r *SendResult) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the handle settles or ctx is canceled.
func (r *SendResult) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
