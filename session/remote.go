// File: session/remote.go
// Package session outbound facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RemoteEndpoint wraps the outbound handler installed at Open. It builds
// frames around application payloads and forwards them; the completion
// handle from the handler is returned as-is, so failures surface only
// asynchronously and the caller is never blocked on I/O.

package session

import (
	"github.com/rs/zerolog"

	"github.com/momentics/wsession/api"
	"github.com/momentics/wsession/policy"
)

// RemoteEndpoint is the send surface of an open session. It is created
// exactly once, at Open, and bound to the outbound handler of that moment.
type RemoteEndpoint struct {
	outgoing api.OutgoingFrames
	pol      *policy.Policy
	log      zerolog.Logger
}

func newRemoteEndpoint(out api.OutgoingFrames, pol *policy.Policy, log zerolog.Logger) *RemoteEndpoint {
	return &RemoteEndpoint{outgoing: out, pol: pol, log: log}
}

// SendBytes sends a binary message. Payloads over the policy maximum settle
// the handle with a message-too-large error without reaching the handler.
func (r *RemoteEndpoint) SendBytes(data []byte) *api.SendResult {
	if err := r.pol.AssertValidMessageSize(int64(len(data))); err != nil {
		r.log.Debug().Int("len", len(data)).Msg("binary send rejected by policy")
		return api.CompletedSendResult(err)
	}
	return r.outgoing.SendFrame(api.NewBinaryFrame(data))
}

// SendText sends a text message.
func (r *RemoteEndpoint) SendText(message string) *api.SendResult {
	if err := r.pol.AssertValidMessageSize(int64(len(message))); err != nil {
		return api.CompletedSendResult(err)
	}
	return r.outgoing.SendFrame(api.NewTextFrame([]byte(message)))
}

// SendPing sends a ping control frame. Control payloads are capped at 125
// bytes by the protocol.
func (r *RemoteEndpoint) SendPing(payload []byte) *api.SendResult {
	if err := checkControlPayload(payload); err != nil {
		r.log.Debug().Int("len", len(payload)).Msg("ping rejected, oversize control payload")
		return api.CompletedSendResult(err)
	}
	return r.outgoing.SendFrame(api.NewPingFrame(payload))
}

// SendPong sends an unsolicited pong control frame.
func (r *RemoteEndpoint) SendPong(payload []byte) *api.SendResult {
	if err := checkControlPayload(payload); err != nil {
		return api.CompletedSendResult(err)
	}
	return r.outgoing.SendFrame(api.NewPongFrame(payload))
}

func checkControlPayload(payload []byte) error {
	if len(payload) > api.MaxControlPayloadLen {
		return api.NewError(api.ErrCodeInvalidArgument, "control payload exceeds 125 bytes").
			WithContext("len", len(payload))
	}
	return nil
}
