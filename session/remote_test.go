package session_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/wsession/api"
)

func TestRemoteSendOpcodes(t *testing.T) {
	s, _, conn := newTestSession(t, "ws://host/chat")
	require.NoError(t, s.Open())
	r, err := s.Remote()
	require.NoError(t, err)

	require.NoError(t, r.SendText("hi").Wait(context.Background()))
	require.NoError(t, r.SendBytes([]byte{1, 2}).Wait(context.Background()))
	require.NoError(t, r.SendPing([]byte("p")).Wait(context.Background()))
	require.NoError(t, r.SendPong([]byte("q")).Wait(context.Background()))

	frames := conn.sentFrames()
	require.Len(t, frames, 4)
	require.Equal(t, byte(api.OpcodeText), frames[0].Opcode)
	require.Equal(t, byte(api.OpcodeBinary), frames[1].Opcode)
	require.Equal(t, byte(api.OpcodePing), frames[2].Opcode)
	require.Equal(t, byte(api.OpcodePong), frames[3].Opcode)
	for _, f := range frames {
		require.True(t, f.Fin)
	}
	require.Equal(t, []byte("hi"), frames[0].Payload)
}

func TestRemoteControlPayloadLimit(t *testing.T) {
	s, _, conn := newTestSession(t, "ws://host/chat")
	require.NoError(t, s.Open())
	r, err := s.Remote()
	require.NoError(t, err)

	oversize := bytes.Repeat([]byte{0xFF}, api.MaxControlPayloadLen+1)
	res := r.SendPing(oversize)
	require.Equal(t, api.ErrCodeInvalidArgument, api.CodeOf(res.Err()))
	require.Equal(t, 0, conn.sentCount())

	res = r.SendPing(bytes.Repeat([]byte{0xFF}, api.MaxControlPayloadLen))
	require.NoError(t, res.Wait(context.Background()))
	require.Equal(t, 1, conn.sentCount())
}

func TestRemotePolicyLimit(t *testing.T) {
	s, _, conn := newTestSession(t, "ws://host/chat")
	s.Policy().SetMaxMessageSize(4)
	require.NoError(t, s.Open())

	res, err := s.Write([]byte("12345"))
	require.NoError(t, err)
	require.Equal(t, api.ErrCodeMessageTooLarge, api.CodeOf(res.Err()))
	require.Equal(t, 0, conn.sentCount())

	res, err = s.WriteText("1234")
	require.NoError(t, err)
	require.NoError(t, res.Wait(context.Background()))
	require.Equal(t, 1, conn.sentCount())
}
