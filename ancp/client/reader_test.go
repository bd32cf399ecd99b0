/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/facebook/ancp/ancp/protocol"
)

func encodedAdjacencyBody(t *testing.T, m bool, code protocol.AdjacencyCode, version uint8) []byte {
	t.Helper()
	frame := protocol.EncodeAdjacency(&protocol.AdjacencyPDU{
		Version: version,
		M:       m,
		Code:    code,
	})
	return frame[4:] // strip the common frame header; dispatchFrame takes the body
}

func TestDispatchFrameRejectsUnsupportedVersion(t *testing.T) {
	c, _ := newTestClient(t)
	body := encodedAdjacencyBody(t, true, protocol.CodeSyn, 1)

	_, err := c.dispatchFrame(body)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDispatchFrameRejectsMBitZero(t *testing.T) {
	c, _ := newTestClient(t)
	body := encodedAdjacencyBody(t, false, protocol.CodeSyn, protocol.RFCVersion)

	_, err := c.dispatchFrame(body)
	assert.ErrorIs(t, err, ErrWrongRole)
}

func TestDispatchFrameAdvancesStateMachineOnSyn(t *testing.T) {
	c, conn := newTestClient(t)
	conn.EXPECT().Write(gomock.Any()).Return(0, nil) // SYN reply from IDLE

	body := encodedAdjacencyBody(t, true, protocol.CodeSyn, protocol.RFCVersion)
	terminal, err := c.dispatchFrame(body)
	require.NoError(t, err)
	assert.False(t, terminal)
	assert.Equal(t, protocol.StateSynSent, c.State())
}

func TestDispatchFrameIgnoresAdjacencyUpdate(t *testing.T) {
	c, _ := newTestClient(t)
	body := []byte{protocol.RFCVersion, byte(protocol.MessageAdjacencyUpdate), 0x30, 0x00}

	terminal, err := c.dispatchFrame(body)
	require.NoError(t, err)
	assert.False(t, terminal)
}

func TestDispatchFrameIgnoresPortMessages(t *testing.T) {
	c, _ := newTestClient(t)
	body := []byte{protocol.RFCVersion, byte(protocol.MessagePortUp), 0x00, 0x00}

	terminal, err := c.dispatchFrame(body)
	require.NoError(t, err)
	assert.False(t, terminal)
}

func TestDispatchFrameTerminatesOnRstAckFromEstablished(t *testing.T) {
	c, conn := newTestClient(t)
	c.state = protocol.StateEstablished
	c.latchEstablished()
	conn.EXPECT().Write(gomock.Any()).Return(0, nil) // final ACK

	body := encodedAdjacencyBody(t, true, protocol.CodeRstAck, protocol.RFCVersion)
	terminal, err := c.dispatchFrame(body)
	require.NoError(t, err)
	assert.True(t, terminal)
}
